package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/player"
	"github.com/robalobadob/guessgame/internal/social"
	"github.com/robalobadob/guessgame/internal/store"
)

func (a *App) addFriend(ctx context.Context, name string) error {
	target, err := a.readLine("Enter the username to send a friend request: ")
	if err != nil {
		return err
	}
	err = a.social.SendRequest(ctx, name, target)
	switch {
	case err == nil:
		canon, _ := player.Canonical(target)
		a.printf("Friend request sent to %s.\n", game.DisplayName(canon))
	case errors.Is(err, player.ErrInvalidUsername):
		a.println("Invalid username.")
	case errors.Is(err, social.ErrSelfRequest):
		a.println("You can't add yourself.")
	case errors.Is(err, social.ErrRequestExists):
		a.println("Request already sent.")
	case errors.Is(err, store.ErrUserNotFound):
		a.println("That user doesn't exist.")
	default:
		return err
	}
	return nil
}

func (a *App) friendRequests(ctx context.Context, name string) error {
	reqs, err := a.social.Requests(ctx, name)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		a.println("No pending friend requests.")
		return nil
	}
	a.println("\n--- Friend Requests ---")
	for i, r := range reqs {
		a.printf("%d. %s\n", i+1, game.DisplayName(r))
	}
	choice, err := a.readLine("Accept which request (number)? 0 to skip: ")
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(choice)
	if err != nil {
		a.println("Invalid input. Please enter a number.")
		return nil
	}
	if idx == 0 {
		return nil
	}
	friend, err := a.social.Accept(ctx, name, idx)
	if errors.Is(err, social.ErrNoSuchRequest) {
		a.println("Invalid choice.")
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("You and %s are now friends!\n", game.DisplayName(friend))
	return nil
}

func (a *App) showFriends(ctx context.Context, name string) error {
	friends, err := a.social.Friends(ctx, name)
	if err != nil {
		return err
	}
	if len(friends) == 0 {
		a.println("You have no friends yet.")
		return nil
	}
	a.println("\n--- Friends ---")
	for _, f := range friends {
		a.printf("- %s\n", game.DisplayName(f))
	}
	return nil
}
