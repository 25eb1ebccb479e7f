// internal/game/types.go
//
// Core type definitions for the guessing-round engine.
// Defines:
//   - Outcome: result of one bounded guessing round (won in N / lost).
//   - Round:   parameters of a single round.
//   - Level:   solo-play difficulty presets.
//   - Input, Clock, Random: collaborators the engine consumes.

package game

import (
	"errors"
	"time"
)

// ErrInputClosed is returned when the input source is exhausted mid-round.
var ErrInputClosed = errors.New("input closed")

// Outcome is the result of one Engine.Run.
// On a win Attempts is in [1, limit]; on a loss it equals the limit.
type Outcome struct {
	Won      bool
	Attempts int
}

// Won builds a winning outcome that used n attempts.
func Won(n int) Outcome { return Outcome{Won: true, Attempts: n} }

// Lost builds a losing outcome for a round with the given attempt limit.
func Lost(limit int) Outcome { return Outcome{Won: false, Attempts: limit} }

// Round holds the parameters of a single guessing round.
type Round struct {
	ID     string // correlates log lines; generated when empty
	Player string // canonical username, used in prompts and logs
	Target int    // hidden number
	Limit  int    // attempt budget
	Range  int    // numbers are drawn from [1, Range]
	Masked bool   // read guesses without echo (challenge rounds)
}

// Level is a solo-play difficulty preset.
type Level struct {
	Key      string
	Name     string
	Attempts int
	Range    int
}

// Levels lists the solo difficulty presets in menu order.
var Levels = []Level{
	{Key: "1", Name: "Easy", Attempts: 10, Range: 20},
	{Key: "2", Name: "Intermediate", Attempts: 7, Range: 30},
	{Key: "3", Name: "Hard", Attempts: 5, Range: 50},
	{Key: "4", Name: "Legendary", Attempts: 3, Range: 100},
}

// LevelByKey looks up a level by its menu key.
func LevelByKey(key string) (Level, bool) {
	for _, l := range Levels {
		if l.Key == key {
			return l, true
		}
	}
	return Level{}, false
}

// Input is a synchronous line source. ReadMaskedLine must not echo.
// Both return io.EOF when no more input is available.
type Input interface {
	ReadLine(prompt string) (string, error)
	ReadMaskedLine(prompt string) (string, error)
}

// Clock reports wall-clock time.
type Clock interface {
	Now() time.Time
}

// Random draws uniform integers in the closed interval [low, high].
type Random interface {
	Between(low, high int) int
}
