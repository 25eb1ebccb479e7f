package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessgame/internal/challenge"
	"github.com/robalobadob/guessgame/internal/cli"
	"github.com/robalobadob/guessgame/internal/console"
	"github.com/robalobadob/guessgame/internal/game/gametest"
	"github.com/robalobadob/guessgame/internal/player"
	"github.com/robalobadob/guessgame/internal/store"
)

type stubLog struct {
	results []challenge.Result
	err     error
}

func (l *stubLog) Append(_ context.Context, r challenge.Result) error {
	if l.err != nil {
		return l.err
	}
	l.results = append(l.results, r)
	return nil
}

type session struct {
	st   store.Store
	sink *stubLog
	out  *bytes.Buffer
}

func newSession(t *testing.T, users map[string]*player.Record) *session {
	t.Helper()
	st := store.NewMemoryStore()
	for name, rec := range users {
		require.NoError(t, st.Set(context.Background(), name, rec))
	}
	return &session{st: st, sink: &stubLog{}, out: &bytes.Buffer{}}
}

// run plays input against the session with every secret drawn as secret.
func (s *session) run(t *testing.T, secret int, input ...string) error {
	t.Helper()
	term := console.NewFromReader(strings.NewReader(strings.Join(input, "\n")+"\n"), s.out)
	app := cli.New(s.st, term, s.out, gametest.NewRandom(secret), gametest.NewClock(), s.sink, cli.Options{
		GuessTimeout: 10 * time.Second,
		Challenge:    challenge.Settings{Attempts: 5, Range: 30},
	}, zerolog.Nop())
	return app.Run(context.Background())
}

func (s *session) record(t *testing.T, name string) *player.Record {
	t.Helper()
	r, err := s.st.Get(context.Background(), name)
	require.NoError(t, err)
	return r
}

func friends(a, b string) map[string]*player.Record {
	ra, rb := player.New(), player.New()
	ra.Friends = []string{b}
	rb.Friends = []string{a}
	return map[string]*player.Record{a: ra, b: rb}
}

func TestRun_NewUserWinsSoloRound(t *testing.T) {
	s := newSession(t, nil)

	require.NoError(t, s.run(t, 7, "  Ada ", "1", "1", "3", "7", "q", "q"))

	out := s.out.String()
	assert.Contains(t, out, "Welcome Ada! Let's get started.")
	assert.Contains(t, out, "Too low!")
	assert.Contains(t, out, "🎯 Correct! You got it in 2 attempts.")
	assert.Contains(t, out, "🏅 Achievement Unlocked: First Win!")
	assert.Contains(t, out, "Wins: 1 | Losses: 0 | Win Rate: 100.00%")
	assert.Contains(t, out, "Goodbye!")

	rec := s.record(t, "ada")
	assert.Equal(t, 1, rec.Wins)
	assert.Equal(t, 1, rec.Games)
	assert.Equal(t, 1, rec.Streak)
	assert.Equal(t, []string{player.BadgeFirstWin}, rec.Badges)
}

func TestRun_SoloLossRevealsNumber(t *testing.T) {
	s := newSession(t, map[string]*player.Record{"ada": {Streak: 3, Wins: 3, Games: 3}})

	require.NoError(t, s.run(t, 50, "ada", "1", "4", "1", "2", "3", "q", "q"))

	out := s.out.String()
	assert.Contains(t, out, "Welcome back Ada!")
	assert.Contains(t, out, "Out of attempts! Correct number was 50.")

	rec := s.record(t, "ada")
	assert.Equal(t, 1, rec.Losses)
	assert.Equal(t, 4, rec.Games)
	assert.Zero(t, rec.Streak)
}

func TestRun_InvalidChoicesAreRejected(t *testing.T) {
	s := newSession(t, nil)

	require.NoError(t, s.run(t, 1, "", "ada", "x", "1", "9x", "q", "q"))

	out := s.out.String()
	assert.Contains(t, out, "Username cannot be empty. Please try again.")
	assert.Contains(t, out, "Invalid choice. Try again.")
	assert.Contains(t, out, "Invalid input! Try again.")
	assert.Zero(t, s.record(t, "ada").Games)
}

func TestRun_InputEndsQuietly(t *testing.T) {
	s := newSession(t, nil)

	assert.NoError(t, s.run(t, 5, "ada", "1", "1", "2"))
	assert.Zero(t, s.record(t, "ada").Games, "an unfinished round is not recorded")
}

func TestRun_PIN(t *testing.T) {
	hash, err := player.HashPIN("1234")
	require.NoError(t, err)

	t.Run("wrong three times", func(t *testing.T) {
		s := newSession(t, map[string]*player.Record{"ada": {PINHash: hash}})
		err := s.run(t, 1, "ada", "0000", "1111", "2222", "q")
		assert.ErrorIs(t, err, cli.ErrLoginFailed)
		assert.Contains(t, s.out.String(), "Too many wrong PINs.")
		assert.NotContains(t, s.out.String(), "Welcome back")
	})

	t.Run("correct after a miss", func(t *testing.T) {
		s := newSession(t, map[string]*player.Record{"ada": {PINHash: hash}})
		require.NoError(t, s.run(t, 1, "ada", "0000", "1234", "q"))
		assert.Contains(t, s.out.String(), "Welcome back Ada!")
	})

	t.Run("set and remove", func(t *testing.T) {
		s := newSession(t, map[string]*player.Record{"ada": player.New()})
		require.NoError(t, s.run(t, 1, "ada", "9", "12", "9", "4321", "q"))
		assert.Contains(t, s.out.String(), "PIN must be 4-12 digits.")
		assert.True(t, s.record(t, "ada").CheckPIN("4321"))
		assert.False(t, s.record(t, "ada").CheckPIN("1234"))

		require.NoError(t, s.run(t, 1, "ada", "4321", "9", "", "q"))
		assert.Empty(t, s.record(t, "ada").PINHash)
	})
}

func TestRun_FriendFlow(t *testing.T) {
	s := newSession(t, map[string]*player.Record{"ada": player.New(), "bob": player.New()})

	require.NoError(t, s.run(t, 1, "ada", "3", "ghost", "3", "ada", "3", "BOB", "3", "bob", "q"))
	out := s.out.String()
	assert.Contains(t, out, "That user doesn't exist.")
	assert.Contains(t, out, "You can't add yourself.")
	assert.Contains(t, out, "Friend request sent to Bob.")
	assert.Contains(t, out, "Request already sent.")

	s.out.Reset()
	require.NoError(t, s.run(t, 1, "bob", "4", "1", "5", "q"))
	out = s.out.String()
	assert.Contains(t, out, "You and Ada are now friends!")
	assert.Contains(t, out, "- Ada")

	assert.Equal(t, []string{"ada"}, s.record(t, "bob").Friends)
	assert.Equal(t, []string{"bob"}, s.record(t, "ada").Friends)
	assert.Empty(t, s.record(t, "bob").FriendRequests)
}

func TestRun_Challenge(t *testing.T) {
	s := newSession(t, friends("ada", "bob"))

	// ada guesses 12 first try; bob needs two.
	require.NoError(t, s.run(t, 12, "ada", "6", "1", "12", "", "5", "12", "q"))

	out := s.out.String()
	assert.Contains(t, out, "Ada, it's your turn to guess (1 - 30):")
	assert.Contains(t, out, "🏆 Ada wins the challenge!")
	assert.NotContains(t, out, "(1 - 12)")

	require.Len(t, s.sink.results, 1)
	res := s.sink.results[0]
	assert.Equal(t, "ada", res.Winner)
	assert.Equal(t, 1, res.ChallengerAttempts)
	assert.Equal(t, 2, res.OpponentAttempts)

	ada, bob := s.record(t, "ada"), s.record(t, "bob")
	assert.Equal(t, 1, ada.ChallengesWon)
	assert.Equal(t, 1, bob.ChallengesLost)
	assert.Equal(t, 1, ada.Wins)
	assert.Equal(t, 1, bob.Wins)
	assert.Zero(t, ada.Games, "challenges do not count as solo games")
}

func TestRun_ChallengeLogFailureIsReported(t *testing.T) {
	s := newSession(t, friends("ada", "bob"))
	s.sink.err = errors.New("read-only file system")

	require.NoError(t, s.run(t, 3, "ada", "6", "1", "3", "", "3", "q"))

	out := s.out.String()
	assert.Contains(t, out, "It's a tie!")
	assert.Contains(t, out, "could not be written to the challenge log: read-only file system")
	assert.Equal(t, 1, s.record(t, "ada").Wins, "records are committed before the log write")
}

func TestRun_ChallengeWithoutFriends(t *testing.T) {
	s := newSession(t, map[string]*player.Record{"ada": player.New()})

	require.NoError(t, s.run(t, 1, "ada", "6", "q"))
	assert.Contains(t, s.out.String(), "You have no friends to challenge.")
	assert.Empty(t, s.sink.results)
}

func TestRun_ChallengeBadSelection(t *testing.T) {
	s := newSession(t, friends("ada", "bob"))

	require.NoError(t, s.run(t, 1, "ada", "6", "two", "6", "3", "q"))
	out := s.out.String()
	assert.Contains(t, out, "Invalid input. Please enter a number.")
	assert.Contains(t, out, "Invalid choice.")
	assert.Empty(t, s.sink.results)
}

func TestRun_Leaderboard(t *testing.T) {
	s := newSession(t, map[string]*player.Record{
		"ada": {Wins: 2, Losses: 2, Games: 4},
		"bob": {Wins: 5, Games: 5},
		"cy":  {Wins: 2, Games: 2},
	})

	require.NoError(t, s.run(t, 1, "ada", "7", "q"))
	out := s.out.String()
	assert.Contains(t, out, "1. Bob - Wins: 5, Games: 5, Win Rate: 100.00%")
	assert.Contains(t, out, "2. Ada - Wins: 2, Games: 4, Win Rate: 50.00%")
	assert.Contains(t, out, "3. Cy - Wins: 2, Games: 2, Win Rate: 100.00%")
}

func TestRun_Help(t *testing.T) {
	s := newSession(t, nil)

	require.NoError(t, s.run(t, 1, "ada", "8", "q"))
	assert.Contains(t, s.out.String(), "Welcome to the Number Challenge Game!")
}
