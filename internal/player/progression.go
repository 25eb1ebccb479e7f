package player

import (
	"github.com/rs/zerolog"

	"github.com/robalobadob/guessgame/internal/game"
)

const (
	BadgeFirstWin  = "First Win"
	BadgeFiveInRow = "5 Wins in a Row"
)

// Tracker applies solo-round outcomes to a record.
type Tracker struct {
	log zerolog.Logger
}

func NewTracker(log zerolog.Logger) *Tracker {
	return &Tracker{log: log}
}

// Apply updates counters for one resolved solo round and returns the badges
// unlocked by it, in the order they were granted.
func (t *Tracker) Apply(name string, r *Record, o game.Outcome) []string {
	var unlocked []string
	if o.Won {
		r.Wins++
		r.Streak++
		unlocked = AwardBadges(r)
	} else {
		r.Losses++
		r.Streak = 0
	}
	r.Games++

	t.log.Info().
		Str("user", name).
		Bool("won", o.Won).
		Int("attempts", o.Attempts).
		Int("streak", r.Streak).
		Int("games", r.Games).
		Strs("badges_unlocked", unlocked).
		Msg("solo round applied")
	return unlocked
}

// AwardBadges grants any badge whose threshold the record sits on exactly.
// Each badge is granted at most once.
func AwardBadges(r *Record) []string {
	var unlocked []string
	grant := func(badge string) {
		if r.HasBadge(badge) {
			return
		}
		r.Badges = append(r.Badges, badge)
		unlocked = append(unlocked, badge)
	}
	if r.Wins == 1 {
		grant(BadgeFirstWin)
	}
	if r.Streak == 5 {
		grant(BadgeFiveInRow)
	}
	return unlocked
}
