// Package social manages friend requests and friend lists.
package social

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/robalobadob/guessgame/internal/player"
	"github.com/robalobadob/guessgame/internal/store"
)

var (
	ErrSelfRequest   = errors.New("you can't add yourself")
	ErrRequestExists = errors.New("request already sent")
	ErrNoSuchRequest = errors.New("no such friend request")
)

type Service struct {
	store store.Store
	log   zerolog.Logger
}

func NewService(st store.Store, log zerolog.Logger) *Service {
	return &Service{store: st, log: log}
}

// SendRequest queues from in to's pending requests.
func (s *Service) SendRequest(ctx context.Context, from, to string) error {
	to, err := player.Canonical(to)
	if err != nil {
		return err
	}
	if to == from {
		return ErrSelfRequest
	}
	rec, err := s.store.Get(ctx, to)
	if err != nil {
		return err
	}
	if slices.Contains(rec.FriendRequests, from) {
		return ErrRequestExists
	}
	rec.FriendRequests = append(rec.FriendRequests, from)
	if err := s.store.Set(ctx, to, rec); err != nil {
		return fmt.Errorf("send friend request: %w", err)
	}
	s.log.Info().Str("from", from).Str("to", to).Msg("friend request sent")
	return nil
}

// Requests lists user's pending inbound requests in arrival order.
func (s *Service) Requests(ctx context.Context, user string) ([]string, error) {
	rec, err := s.store.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	return rec.FriendRequests, nil
}

// Accept takes the 1-based index of a pending request, links both users as
// friends and drops the request. It returns the new friend's name.
func (s *Service) Accept(ctx context.Context, user string, index int) (string, error) {
	rec, err := s.store.Get(ctx, user)
	if err != nil {
		return "", err
	}
	if index < 1 || index > len(rec.FriendRequests) {
		return "", ErrNoSuchRequest
	}
	from := rec.FriendRequests[index-1]
	other, err := s.store.Get(ctx, from)
	if err != nil {
		return "", err
	}

	rec.Friends = append(rec.Friends, from)
	rec.FriendRequests = slices.Delete(rec.FriendRequests, index-1, index)
	other.Friends = append(other.Friends, user)
	if err := s.store.SetAll(ctx, map[string]*player.Record{user: rec, from: other}); err != nil {
		return "", fmt.Errorf("accept friend request: %w", err)
	}
	s.log.Info().Str("user", user).Str("friend", from).Msg("friend request accepted")
	return from, nil
}

// Friends lists user's friends.
func (s *Service) Friends(ctx context.Context, user string) ([]string, error) {
	rec, err := s.store.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	return rec.Friends, nil
}
