package game_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/game/gametest"
)

// newEngine wires an engine whose hint policy always yields a parity hint.
func newEngine(script *gametest.Script, clock *gametest.Clock) (*game.Engine, *bytes.Buffer) {
	var out bytes.Buffer
	hints := game.NewHintPolicy(gametest.NewRandom(1))
	return game.NewEngine(script, &out, clock, hints, 10*time.Second, zerolog.Nop()), &out
}

func round(target, limit int) game.Round {
	return game.Round{Player: "ada", Target: target, Limit: limit, Range: 30}
}

func TestEngine_WinReportsAttempts(t *testing.T) {
	clock := gametest.NewClock()
	script := gametest.Lines(clock, "5", "25", "17")
	e, out := newEngine(script, clock)

	got, err := e.Run(round(17, 5))
	require.NoError(t, err)
	assert.Equal(t, game.Won(3), got)
	assert.Contains(t, out.String(), "Too low!")
	assert.Contains(t, out.String(), "Too high.")
	assert.Contains(t, out.String(), "You got it in 3 attempts")
}

func TestEngine_LossUsesWholeBudget(t *testing.T) {
	clock := gametest.NewClock()
	script := gametest.Lines(clock, "1", "2", "3")
	e, _ := newEngine(script, clock)

	got, err := e.Run(round(20, 3))
	require.NoError(t, err)
	assert.False(t, got.Won)
	assert.Equal(t, 3, got.Attempts)
}

func TestEngine_InvalidInputCostsNothing(t *testing.T) {
	clock := gametest.NewClock()
	script := gametest.Lines(clock, "abc", "", "4.5", "9")
	e, out := newEngine(script, clock)

	got, err := e.Run(round(9, 1))
	require.NoError(t, err)
	assert.Equal(t, game.Won(1), got)
	assert.Equal(t, 3, bytes.Count(out.Bytes(), []byte("Must enter a valid integer")))
}

func TestEngine_TimeoutConsumesAttempt(t *testing.T) {
	clock := gametest.NewClock()
	script := gametest.NewScript(clock,
		gametest.Slow("9", 11*time.Second), // correct but too slow
		gametest.Slow("9", 9*time.Second),
	)
	e, out := newEngine(script, clock)

	got, err := e.Run(round(9, 2))
	require.NoError(t, err)
	assert.Equal(t, game.Won(2), got)
	assert.Contains(t, out.String(), "Time's up")
}

func TestEngine_TimeoutCanExhaustBudget(t *testing.T) {
	clock := gametest.NewClock()
	script := gametest.NewScript(clock,
		gametest.Slow("hint", 30*time.Second),
		gametest.Slow("9", 30*time.Second),
	)
	e, out := newEngine(script, clock)

	got, err := e.Run(round(9, 2))
	require.NoError(t, err)
	assert.Equal(t, game.Lost(2), got)
	assert.NotContains(t, out.String(), "Hint:")
}

func TestEngine_ExactlyTimeoutIsAccepted(t *testing.T) {
	clock := gametest.NewClock()
	script := gametest.NewScript(clock, gametest.Slow("9", 10*time.Second))
	e, _ := newEngine(script, clock)

	got, err := e.Run(round(9, 1))
	require.NoError(t, err)
	assert.True(t, got.Won)
}

func TestEngine_HintOncePerRound(t *testing.T) {
	clock := gametest.NewClock()
	script := gametest.Lines(clock, "hint", "HINT", "hint", "12")
	e, out := newEngine(script, clock)

	got, err := e.Run(round(12, 1))
	require.NoError(t, err)
	assert.Equal(t, game.Won(1), got)
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("Hint:")))
	// later requests fall through to integer parsing
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("Must enter a valid integer")))
	assert.Contains(t, out.String(), "Hint: It's an even number.")
}

func TestEngine_AdjacentFeedback(t *testing.T) {
	clock := gametest.NewClock()
	script := gametest.Lines(clock, "16", "18", "17")
	e, out := newEngine(script, clock)

	_, err := e.Run(round(17, 3))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Very close! A bit higher.")
	assert.Contains(t, out.String(), "Very close! A bit lower.")
}

func TestEngine_MaskedRoundUsesMaskedReads(t *testing.T) {
	clock := gametest.NewClock()
	script := gametest.Lines(clock, "3", "4")
	e, _ := newEngine(script, clock)

	r := round(4, 5)
	r.Masked = true
	_, err := e.Run(r)
	require.NoError(t, err)
	assert.Equal(t, 2, script.Masked)
	assert.Equal(t, "Ada's Guess (5 left): ", script.Prompts[0])
	assert.Equal(t, "Ada's Guess (4 left): ", script.Prompts[1])
}

func TestEngine_InputClosed(t *testing.T) {
	clock := gametest.NewClock()
	script := gametest.Lines(clock, "1")
	e, _ := newEngine(script, clock)

	_, err := e.Run(round(9, 3))
	assert.ErrorIs(t, err, game.ErrInputClosed)
}

func TestEngine_AttemptsWithinLimit(t *testing.T) {
	for limit := 1; limit <= 6; limit++ {
		for target := 1; target <= limit; target++ {
			clock := gametest.NewClock()
			var lines []string
			for g := 1; g <= limit; g++ {
				lines = append(lines, "junk", itoa(g))
			}
			e, _ := newEngine(gametest.Lines(clock, lines...), clock)
			got, err := e.Run(round(target, limit))
			require.NoError(t, err)
			assert.True(t, got.Won)
			assert.Equal(t, target, got.Attempts)
			assert.GreaterOrEqual(t, got.Attempts, 1)
			assert.LessOrEqual(t, got.Attempts, limit)
		}
	}
}

func TestFeedback(t *testing.T) {
	assert.Equal(t, "Too low!", game.Feedback(3, 10))
	assert.Equal(t, "Very close! A bit higher.", game.Feedback(9, 10))
	assert.Equal(t, "Very close! A bit lower.", game.Feedback(11, 10))
	assert.Equal(t, "Too high.", game.Feedback(20, 10))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ada", game.DisplayName("ada"))
	assert.Equal(t, "", game.DisplayName(""))
	assert.Equal(t, "Émile", game.DisplayName("émile"))
}

func itoa(n int) string {
	return string(rune('0' + n))
}
