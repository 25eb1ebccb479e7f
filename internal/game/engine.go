// internal/game/engine.go
//
// Core engine for a single bounded guessing round.
// Responsibilities:
//   - Read guesses from an Input (plain or masked).
//   - Apply the soft per-guess timeout (checked after the read returns).
//   - Grant at most one hint per round.
//   - Count attempts and give directional feedback.
//
// Notes:
//   - The engine never touches player records; callers apply the Outcome.
//   - A non-integer entry costs nothing. A slow entry always costs an attempt.
//   - Once the hint is spent, "hint" is just another non-integer entry.
package game

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultGuessTimeout is the soft limit on how long a single guess may take.
const DefaultGuessTimeout = 10 * time.Second

const hintToken = "hint"

// Engine runs guessing rounds.
type Engine struct {
	in      Input
	out     io.Writer
	clock   Clock
	hints   *HintPolicy
	timeout time.Duration
	log     zerolog.Logger
}

// NewEngine constructs an Engine. A non-positive timeout selects DefaultGuessTimeout.
func NewEngine(in Input, out io.Writer, clock Clock, hints *HintPolicy, timeout time.Duration, log zerolog.Logger) *Engine {
	if timeout <= 0 {
		timeout = DefaultGuessTimeout
	}
	return &Engine{in: in, out: out, clock: clock, hints: hints, timeout: timeout, log: log}
}

// Timeout reports the soft per-guess limit in effect.
func (e *Engine) Timeout() time.Duration { return e.timeout }

// Run plays one round and reports how it ended.
// It returns ErrInputClosed if the input runs dry before the round resolves.
func (e *Engine) Run(r Round) (Outcome, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	l := e.log.With().Str("round_id", r.ID).Str("user", r.Player).Logger()

	trial := 0
	hintUsed := false
	for trial < r.Limit {
		start := e.clock.Now()
		raw, err := e.read(r, r.Limit-trial)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Outcome{}, ErrInputClosed
			}
			return Outcome{}, fmt.Errorf("read guess: %w", err)
		}
		if e.clock.Now().Sub(start) > e.timeout {
			e.say("⏰ Time's up! You took too long.")
			trial++
			l.Debug().Int("trial", trial).Msg("guess timed out")
			continue
		}

		entry := strings.TrimSpace(raw)
		if strings.EqualFold(entry, hintToken) && !hintUsed {
			e.say(e.hints.Hint(r.Target, r.Range).String())
			hintUsed = true
			l.Debug().Msg("hint granted")
			continue
		}

		guess, err := strconv.Atoi(entry)
		if err != nil {
			e.say("Must enter a valid integer or type 'hint' once!")
			continue
		}

		trial++
		if guess == r.Target {
			e.say(fmt.Sprintf("🎯 Correct! You got it in %d attempts.", trial))
			l.Info().Int("attempts", trial).Bool("hint_used", hintUsed).Msg("round won")
			return Won(trial), nil
		}
		e.say(Feedback(guess, r.Target))
	}

	l.Info().Int("attempts", r.Limit).Bool("hint_used", hintUsed).Msg("round lost")
	return Lost(r.Limit), nil
}

func (e *Engine) read(r Round, left int) (string, error) {
	if r.Masked {
		return e.in.ReadMaskedLine(fmt.Sprintf("%s's Guess (%d left): ", DisplayName(r.Player), left))
	}
	return e.in.ReadLine(fmt.Sprintf("Entry (%d attempts left): ", left))
}

func (e *Engine) say(msg string) {
	_, _ = fmt.Fprintln(e.out, msg)
}

// Feedback returns the directional message for a wrong guess.
// Guesses adjacent to the target get a "very close" variant.
func Feedback(guess, target int) string {
	switch {
	case guess == target-1:
		return "Very close! A bit higher."
	case guess < target:
		return "Too low!"
	case guess == target+1:
		return "Very close! A bit lower."
	default:
		return "Too high."
	}
}

// DisplayName capitalises a canonical username for display.
func DisplayName(name string) string {
	r := []rune(name)
	if len(r) == 0 {
		return name
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
