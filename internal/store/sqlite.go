package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/robalobadob/guessgame/internal/player"
)

// SQLite is a write-through Store over the users table.
// List-valued fields are stored as JSON arrays.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an already migrated database (see OpenDB).
func NewSQLite(db *sql.DB) *SQLite { return &SQLite{db: db} }

// DB exposes the handle so other sqlite-backed components can share it.
func (s *SQLite) DB() *sql.DB { return s.db }

const userColumns = `wins, losses, games, streak, challenges_won, challenges_lost,
	friends, friend_requests, badges, pin_hash`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner, extra ...any) (*player.Record, error) {
	var (
		r                        player.Record
		friends, requests, badges string
	)
	dest := append(extra,
		&r.Wins, &r.Losses, &r.Games, &r.Streak, &r.ChallengesWon, &r.ChallengesLost,
		&friends, &requests, &badges, &r.PINHash,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		raw string
		dst *[]string
	}{{friends, &r.Friends}, {requests, &r.FriendRequests}, {badges, &r.Badges}} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, fmt.Errorf("decode list column: %w", err)
		}
	}
	r.Normalize()
	return &r, nil
}

func (s *SQLite) Get(ctx context.Context, name string) (*player.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username=?`, name)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", name, err)
	}
	return r, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, ex execer, name string, r *player.Record) error {
	c := r.Clone()
	friends, _ := json.Marshal(c.Friends)
	requests, _ := json.Marshal(c.FriendRequests)
	badges, _ := json.Marshal(c.Badges)
	_, err := ex.ExecContext(ctx, `
        INSERT INTO users (username, `+userColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(username) DO UPDATE SET
            wins=excluded.wins, losses=excluded.losses, games=excluded.games,
            streak=excluded.streak, challenges_won=excluded.challenges_won,
            challenges_lost=excluded.challenges_lost, friends=excluded.friends,
            friend_requests=excluded.friend_requests, badges=excluded.badges,
            pin_hash=excluded.pin_hash`,
		name, c.Wins, c.Losses, c.Games, c.Streak, c.ChallengesWon, c.ChallengesLost,
		string(friends), string(requests), string(badges), c.PINHash,
	)
	if err != nil {
		return fmt.Errorf("save user %s: %w", name, err)
	}
	return nil
}

func (s *SQLite) Set(ctx context.Context, name string, r *player.Record) error {
	return upsert(ctx, s.db, name, r)
}

func (s *SQLite) SetAll(ctx context.Context, recs map[string]*player.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for name, r := range recs {
		if err := upsert(ctx, tx, name, r); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLite) Exists(ctx context.Context, name string) (bool, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE username=?`, name,
	).Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (s *SQLite) All(ctx context.Context) (map[string]*player.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT username, `+userColumns+` FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]*player.Record{}
	for rows.Next() {
		var name string
		r, err := scanRecord(rows, &name)
		if err != nil {
			return nil, err
		}
		out[name] = r
	}
	return out, rows.Err()
}

// Flush is a no-op: every Set is already durable.
func (s *SQLite) Flush(context.Context) error { return nil }

func (s *SQLite) Close() error { return s.db.Close() }
