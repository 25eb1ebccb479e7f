// Package store persists user records keyed by canonical username.
//
// Three backends are provided: in-memory (tests), a JSON document on disk
// (the default, loaded once and flushed at the end of a session) and sqlite
// (writes through on every Set).
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/robalobadob/guessgame/internal/player"
)

// ErrUserNotFound is returned by Get for unknown usernames.
var ErrUserNotFound = errors.New("no such user")

// Store defines the persistence interface for user records.
type Store interface {
	// Get returns a copy of the record. Mutating it has no effect until Set.
	Get(ctx context.Context, name string) (*player.Record, error)

	// Set creates or replaces a record.
	Set(ctx context.Context, name string, r *player.Record) error

	// SetAll replaces several records together: all are written or none are.
	SetAll(ctx context.Context, recs map[string]*player.Record) error

	Exists(ctx context.Context, name string) (bool, error)

	// All returns copies of every record.
	All(ctx context.Context) (map[string]*player.Record, error)

	// Flush makes pending changes durable.
	Flush(ctx context.Context) error

	Close() error
}

func notFound(name string) error {
	return fmt.Errorf("%w: %s", ErrUserNotFound, name)
}
