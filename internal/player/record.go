// Package player holds the per-user record and the rules that mutate it
// after a solo round: win/loss counters, streaks and badges.
package player

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidUsername = errors.New("invalid username")

// Record is the persisted state of one user. Every field is populated at
// creation time; collections are never nil after Normalize.
type Record struct {
	Wins           int      `json:"wins"`
	Losses         int      `json:"losses"`
	Games          int      `json:"games"`
	ChallengesWon  int      `json:"challenges_won"`
	ChallengesLost int      `json:"challenges_lost"`
	Friends        []string `json:"friends"`
	FriendRequests []string `json:"friend_requests"`
	Streak         int      `json:"streak"`
	Badges         []string `json:"badges"`
	PINHash        string   `json:"pin_hash,omitempty"`
}

// New returns a zero-valued record with empty collections.
func New() *Record {
	return &Record{
		Friends:        []string{},
		FriendRequests: []string{},
		Badges:         []string{},
	}
}

// Normalize fills nil collections so older documents load with the full schema.
func (r *Record) Normalize() {
	if r.Friends == nil {
		r.Friends = []string{}
	}
	if r.FriendRequests == nil {
		r.FriendRequests = []string{}
	}
	if r.Badges == nil {
		r.Badges = []string{}
	}
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	c := *r
	c.Friends = slices.Clone(r.Friends)
	c.FriendRequests = slices.Clone(r.FriendRequests)
	c.Badges = slices.Clone(r.Badges)
	c.Normalize()
	return &c
}

// HasBadge reports whether the badge was already granted.
func (r *Record) HasBadge(name string) bool {
	return slices.Contains(r.Badges, name)
}

// HasFriend reports whether name is in the friend list.
func (r *Record) HasFriend(name string) bool {
	return slices.Contains(r.Friends, name)
}

// WinRate is wins/games as a percentage, 0 when no games were played.
func (r *Record) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games) * 100
}

var validate = validator.New()

type username struct {
	Name string `validate:"required,max=64"`
}

// Canonical trims and lowercases a username and checks it is usable as a key.
func Canonical(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if err := validate.Struct(username{Name: n}); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidUsername, name)
	}
	return n, nil
}
