// Package challenge runs head-to-head rounds between two users on the same
// device and records who won.
//
// A challenge goes through these phases:
//
//	validate -> secret -> challenger round -> handoff -> opponent round
//	         -> compare -> commit both records -> log
//
// Both records are read before any round starts and written together at the
// end, so an aborted challenge leaves the store untouched.
package challenge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/metrics"
	"github.com/robalobadob/guessgame/internal/player"
	"github.com/robalobadob/guessgame/internal/store"
)

const (
	DefaultAttempts = 5
	DefaultRange    = 30

	// Tie is reported as the winner when both players scored the same.
	Tie = "Tie"
)

var (
	ErrSelfChallenge      = errors.New("cannot challenge yourself")
	ErrUnknownParticipant = errors.New("unknown participant")
)

// Result is the write-once record of one challenge.
type Result struct {
	ID                 string    `json:"id"`
	Challenger         string    `json:"challenger"`
	Opponent           string    `json:"opponent"`
	Winner             string    `json:"winner"`
	Secret             int       `json:"secret"`
	ChallengerAttempts int       `json:"challengerAttempts"`
	OpponentAttempts   int       `json:"opponentAttempts"`
	PlayedAt           time.Time `json:"playedAt"`
}

// LogError reports that the challenge was decided and committed but the log
// sink rejected the result.
type LogError struct {
	Result Result
	Err    error
}

func (e *LogError) Error() string { return "challenge log: " + e.Err.Error() }
func (e *LogError) Unwrap() error { return e.Err }

// Handoff pauses between the two rounds until the device has changed hands.
type Handoff interface {
	PassTo(name string) error
}

// Rounds runs one guessing round. *game.Engine satisfies it.
type Rounds interface {
	Run(r game.Round) (game.Outcome, error)
}

// Settings are the challenge tunables.
type Settings struct {
	Attempts int
	Range    int
}

// Arbiter runs challenges.
type Arbiter struct {
	store    store.Store
	rounds   Rounds
	handoff  Handoff
	rnd      game.Random
	clock    game.Clock
	sink     Log
	out      io.Writer
	settings Settings
	log      zerolog.Logger
}

func NewArbiter(
	st store.Store,
	rounds Rounds,
	handoff Handoff,
	rnd game.Random,
	clock game.Clock,
	sink Log,
	out io.Writer,
	settings Settings,
	log zerolog.Logger,
) *Arbiter {
	if settings.Attempts <= 0 {
		settings.Attempts = DefaultAttempts
	}
	if settings.Range <= 1 {
		settings.Range = DefaultRange
	}
	return &Arbiter{
		store:    st,
		rounds:   rounds,
		handoff:  handoff,
		rnd:      rnd,
		clock:    clock,
		sink:     sink,
		out:      out,
		settings: settings,
		log:      log,
	}
}

// Score converts a round outcome into a comparable score: attempts used on a
// win, limit+1 on a loss.
func Score(o game.Outcome, limit int) int {
	if o.Won {
		return o.Attempts
	}
	return limit + 1
}

// Run plays a full challenge between two canonical usernames.
//
// On success the returned error is nil. If only the log write failed, the
// result is returned together with a *LogError; the records are already
// committed in that case. Any other error means nothing was written.
func (a *Arbiter) Run(ctx context.Context, challenger, opponent string) (Result, error) {
	if challenger == opponent {
		return Result{}, ErrSelfChallenge
	}
	cRec, err := a.participant(ctx, challenger)
	if err != nil {
		return Result{}, err
	}
	oRec, err := a.participant(ctx, opponent)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		ID:         uuid.NewString(),
		Challenger: challenger,
		Opponent:   opponent,
		Secret:     game.Secret(a.rnd, a.settings.Range),
	}
	l := a.log.With().Str("challenge_id", res.ID).Logger()
	l.Debug().Str("challenger", challenger).Str("opponent", opponent).Msg("challenge started")

	a.printf("\n%s, it's your turn to guess (1 - %d):\n", game.DisplayName(challenger), a.settings.Range)
	res.ChallengerAttempts, err = a.play(challenger, cRec, res.Secret)
	if err != nil {
		return Result{}, fmt.Errorf("challenger round: %w", err)
	}

	if err := a.handoff.PassTo(opponent); err != nil {
		return Result{}, fmt.Errorf("handoff: %w", err)
	}

	a.printf("\n%s, it's your turn to guess:\n", game.DisplayName(opponent))
	res.OpponentAttempts, err = a.play(opponent, oRec, res.Secret)
	if err != nil {
		return Result{}, fmt.Errorf("opponent round: %w", err)
	}

	switch {
	case res.ChallengerAttempts < res.OpponentAttempts:
		res.Winner = challenger
		cRec.ChallengesWon++
		oRec.ChallengesLost++
	case res.OpponentAttempts < res.ChallengerAttempts:
		res.Winner = opponent
		oRec.ChallengesWon++
		cRec.ChallengesLost++
	default:
		res.Winner = Tie
	}
	res.PlayedAt = a.clock.Now()

	if err := a.store.SetAll(ctx, map[string]*player.Record{challenger: cRec, opponent: oRec}); err != nil {
		return Result{}, fmt.Errorf("commit challenge: %w", err)
	}

	if res.Winner == Tie {
		metrics.ChallengesTotal.WithLabelValues("tie").Inc()
		a.printf("\nIt's a tie!\n")
	} else {
		metrics.ChallengesTotal.WithLabelValues("decided").Inc()
		a.printf("\n🏆 %s wins the challenge!\n", game.DisplayName(res.Winner))
	}
	l.Info().
		Str("challenger", challenger).
		Str("opponent", opponent).
		Str("winner", res.Winner).
		Int("challenger_attempts", res.ChallengerAttempts).
		Int("opponent_attempts", res.OpponentAttempts).
		Msg("challenge decided")

	if err := a.sink.Append(ctx, res); err != nil {
		l.Error().Err(err).Msg("challenge log write failed")
		metrics.ChallengeLogErrorsTotal.Inc()
		return res, &LogError{Result: res, Err: err}
	}
	return res, nil
}

func (a *Arbiter) participant(ctx context.Context, name string) (*player.Record, error) {
	r, err := a.store.Get(ctx, name)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, name)
	}
	return r, err
}

// play runs one masked round for name and folds the outcome into rec's
// win/loss counters. Games and streak are left alone.
func (a *Arbiter) play(name string, rec *player.Record, secret int) (int, error) {
	limit := a.settings.Attempts
	a.printf("%s, you have %d attempts. Type 'hint' once if needed. You have %d seconds per guess.\n",
		game.DisplayName(name), limit, int(a.timeout().Seconds()))

	o, err := a.rounds.Run(game.Round{
		Player: name,
		Target: secret,
		Limit:  limit,
		Range:  a.settings.Range,
		Masked: true,
	})
	if err != nil {
		return 0, err
	}
	metrics.RoundsTotal.WithLabelValues("challenge", metrics.Result(o.Won)).Inc()
	if o.Won {
		rec.Wins++
	} else {
		rec.Losses++
		a.printf("😢 %s couldn't guess it. The answer was hidden.\n", game.DisplayName(name))
	}
	return Score(o, limit), nil
}

func (a *Arbiter) timeout() time.Duration {
	if t, ok := a.rounds.(interface{ Timeout() time.Duration }); ok {
		return t.Timeout()
	}
	return game.DefaultGuessTimeout
}

func (a *Arbiter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}
