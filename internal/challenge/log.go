package challenge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// Log is an append-only sink for challenge results.
type Log interface {
	Append(ctx context.Context, r Result) error
}

const (
	logTimeLayout    = "2006-01-02 15:04:05"
	storedTimeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Line formats r the way the text log stores it (without the newline).
func Line(r Result) string {
	return fmt.Sprintf("[%s] %s challenged %s. Winner: %s. Number: %d",
		r.PlayedAt.Local().Format(logTimeLayout), r.Challenger, r.Opponent, r.Winner, r.Secret)
}

// FileLog appends one line per result to a text file.
type FileLog struct {
	mu   sync.Mutex
	path string
}

func NewFileLog(path string) *FileLog { return &FileLog{path: path} }

// Append opens the file for append, writes one line and syncs before returning.
func (l *FileLog) Append(_ context.Context, r Result) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open challenge log: %w", err)
	}
	if _, err := f.WriteString(Line(r) + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("write challenge log: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync challenge log: %w", err)
	}
	return f.Close()
}

// SQLiteLog records results in the challenge_results table.
type SQLiteLog struct {
	db *sql.DB
}

func NewSQLiteLog(db *sql.DB) *SQLiteLog { return &SQLiteLog{db: db} }

func (l *SQLiteLog) Append(ctx context.Context, r Result) error {
	_, err := l.db.ExecContext(ctx, `
        INSERT INTO challenge_results
            (id, challenger, opponent, winner, secret, challenger_attempts, opponent_attempts, played_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Challenger, r.Opponent, r.Winner, r.Secret,
		r.ChallengerAttempts, r.OpponentAttempts, r.PlayedAt.UTC().Format(storedTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert challenge result: %w", err)
	}
	return nil
}

// Recent returns the latest results, newest first.
// A non-positive limit defaults to 20.
func (l *SQLiteLog) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx, `
        SELECT id, challenger, opponent, winner, secret, challenger_attempts, opponent_attempts, played_at
        FROM challenge_results
        ORDER BY played_at DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var (
			r      Result
			played string
		)
		if err := rows.Scan(&r.ID, &r.Challenger, &r.Opponent, &r.Winner, &r.Secret,
			&r.ChallengerAttempts, &r.OpponentAttempts, &played); err != nil {
			return nil, err
		}
		r.PlayedAt, _ = time.Parse(storedTimeLayout, played)
		out = append(out, r)
	}
	return out, rows.Err()
}

// MultiLog fans a result out to every sink. Every sink is attempted; the
// failures are joined.
type MultiLog []Log

func (m MultiLog) Append(ctx context.Context, r Result) error {
	var errs []error
	for _, l := range m {
		if err := l.Append(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
