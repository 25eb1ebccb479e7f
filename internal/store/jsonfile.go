package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/robalobadob/guessgame/internal/player"
)

// JSONFile keeps every record in memory and writes the whole document on Flush.
// The document is an object keyed by username, indented by four spaces.
type JSONFile struct {
	*memory
	path string
	log  zerolog.Logger
}

// OpenJSONFile loads path. A missing file starts an empty store; a malformed
// one is logged and also starts empty, leaving the file untouched until the
// next Flush.
func OpenJSONFile(path string, log zerolog.Logger) (*JSONFile, error) {
	seed := map[string]*player.Record{}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Info().Str("path", path).Msg("data file not found, starting empty")
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := json.Unmarshal(b, &seed); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("data file unreadable, starting empty")
			seed = map[string]*player.Record{}
		}
	}
	for name, r := range seed {
		if r == nil {
			delete(seed, name)
		}
	}
	return &JSONFile{memory: newMemory(seed), path: path, log: log}, nil
}

// Flush writes the document atomically (temp file + rename).
func (s *JSONFile) Flush(context.Context) error {
	s.mu.RLock()
	b, err := json.MarshalIndent(s.snapshot(), "", "    ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	s.log.Debug().Str("path", s.path).Msg("users saved")
	return nil
}

// Close flushes and releases nothing else.
func (s *JSONFile) Close() error {
	return s.Flush(context.Background())
}
