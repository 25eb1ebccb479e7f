package player

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessgame/internal/game"
)

func TestTracker_WinUpdatesCounters(t *testing.T) {
	tr := NewTracker(zerolog.Nop())
	r := New()

	unlocked := tr.Apply("ada", r, game.Won(3))
	assert.Equal(t, 1, r.Wins)
	assert.Equal(t, 0, r.Losses)
	assert.Equal(t, 1, r.Games)
	assert.Equal(t, 1, r.Streak)
	assert.Equal(t, []string{BadgeFirstWin}, unlocked)
	assert.Equal(t, []string{BadgeFirstWin}, r.Badges)
}

func TestTracker_LossResetsStreak(t *testing.T) {
	tr := NewTracker(zerolog.Nop())
	r := New()
	r.Streak = 4

	unlocked := tr.Apply("ada", r, game.Lost(5))
	assert.Empty(t, unlocked)
	assert.Equal(t, 1, r.Losses)
	assert.Equal(t, 0, r.Streak)
	assert.Equal(t, 1, r.Games)
}

func TestTracker_GamesEqualsWinsPlusLosses(t *testing.T) {
	tr := NewTracker(zerolog.Nop())
	r := New()
	outcomes := []game.Outcome{game.Won(1), game.Lost(3), game.Won(2), game.Won(3), game.Lost(3)}
	for _, o := range outcomes {
		tr.Apply("ada", r, o)
		assert.Equal(t, r.Wins+r.Losses, r.Games)
	}
	assert.Equal(t, 5, r.Games)
}

func TestTracker_FiveInARowOnce(t *testing.T) {
	tr := NewTracker(zerolog.Nop())
	r := New()

	for i := 0; i < 7; i++ {
		tr.Apply("ada", r, game.Won(1))
	}
	assert.Equal(t, 7, r.Streak)
	assert.Equal(t, []string{BadgeFirstWin, BadgeFiveInRow}, r.Badges)

	// break the streak and rebuild it; no duplicate badge
	tr.Apply("ada", r, game.Lost(3))
	for i := 0; i < 5; i++ {
		tr.Apply("ada", r, game.Won(1))
	}
	assert.Equal(t, []string{BadgeFirstWin, BadgeFiveInRow}, r.Badges)
}

func TestAwardBadges_Idempotent(t *testing.T) {
	r := New()
	r.Wins = 1
	r.Streak = 1

	assert.Equal(t, []string{BadgeFirstWin}, AwardBadges(r))
	assert.Empty(t, AwardBadges(r))
	assert.Equal(t, []string{BadgeFirstWin}, r.Badges)
}

func TestRecord_NormalizeFillsCollections(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"wins":2,"games":3}`), &r))
	r.Normalize()
	assert.NotNil(t, r.Friends)
	assert.NotNil(t, r.FriendRequests)
	assert.NotNil(t, r.Badges)
	assert.Equal(t, 2, r.Wins)
}

func TestRecord_CloneIsDeep(t *testing.T) {
	r := New()
	r.Friends = append(r.Friends, "bob")
	c := r.Clone()
	c.Friends[0] = "eve"
	c.Wins = 9
	assert.Equal(t, "bob", r.Friends[0])
	assert.Equal(t, 0, r.Wins)
}

func TestRecord_WinRate(t *testing.T) {
	r := New()
	assert.Zero(t, r.WinRate())
	r.Wins, r.Games = 7, 10
	assert.InDelta(t, 70.0, r.WinRate(), 0.01)
}

func TestCanonical(t *testing.T) {
	n, err := Canonical("  Ada ")
	require.NoError(t, err)
	assert.Equal(t, "ada", n)

	_, err = Canonical("   ")
	assert.ErrorIs(t, err, ErrInvalidUsername)
}

func TestRank(t *testing.T) {
	records := map[string]*Record{
		"carol": {Wins: 2, Games: 4},
		"ada":   {Wins: 5, Games: 5},
		"bob":   {Wins: 2, Games: 2},
		"dave":  {},
	}
	got := Rank(records, 0)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"ada", "bob", "carol", "dave"},
		[]string{got[0].Username, got[1].Username, got[2].Username, got[3].Username})
	assert.Equal(t, 1, got[0].Rank)
	assert.InDelta(t, 50.0, got[2].WinRate, 0.01)
	assert.Zero(t, got[3].WinRate)

	assert.Len(t, Rank(records, 2), 2)
}

func TestPIN(t *testing.T) {
	_, err := HashPIN("12")
	assert.ErrorIs(t, err, ErrWeakPIN)
	_, err = HashPIN("12ab")
	assert.ErrorIs(t, err, ErrWeakPIN)

	h, err := HashPIN("4321")
	require.NoError(t, err)
	r := New()
	assert.True(t, r.CheckPIN("anything"))
	r.PINHash = h
	assert.True(t, r.CheckPIN("4321"))
	assert.False(t, r.CheckPIN("1234"))
}
