package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/robalobadob/guessgame/assets"
	"github.com/robalobadob/guessgame/internal/challenge"
	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/player"
)

func (a *App) challengeFriend(ctx context.Context, name string) error {
	friends, err := a.social.Friends(ctx, name)
	if err != nil {
		return err
	}
	if len(friends) == 0 {
		a.println("You have no friends to challenge.")
		return nil
	}
	a.println("\n--- Choose a friend to challenge ---")
	for i, f := range friends {
		a.printf("%d. %s\n", i+1, game.DisplayName(f))
	}
	choice, err := a.readLine("Enter the number of the friend: ")
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(choice)
	if err != nil {
		a.println("Invalid input. Please enter a number.")
		return nil
	}
	if idx < 1 || idx > len(friends) {
		a.println("Invalid choice.")
		return nil
	}

	opponent := friends[idx-1]
	ok, err := a.store.Exists(ctx, opponent)
	if err != nil {
		return err
	}
	if !ok {
		a.println("That user no longer exists.")
		return nil
	}

	_, err = a.arbiter.Run(ctx, name, opponent)
	var logErr *challenge.LogError
	switch {
	case err == nil:
	case errors.As(err, &logErr):
		a.printf("⚠️  The result was saved but could not be written to the challenge log: %v\n", logErr.Err)
	case errors.Is(err, challenge.ErrUnknownParticipant):
		a.println("That user no longer exists.")
		return nil
	default:
		return err
	}
	return a.store.Flush(ctx)
}

func (a *App) showHelp() {
	a.println()
	a.println(strings.TrimRight(assets.Help(), "\n"))
}

func (a *App) setPIN(ctx context.Context, name string) error {
	pin, err := a.term.ReadMaskedLine("New PIN (4-12 digits, empty to remove): ")
	if err != nil {
		return err
	}
	pin = strings.TrimSpace(pin)

	rec, err := a.store.Get(ctx, name)
	if err != nil {
		return err
	}
	if pin == "" {
		rec.PINHash = ""
	} else {
		hash, err := player.HashPIN(pin)
		if errors.Is(err, player.ErrWeakPIN) {
			a.printf("%v.\n", err)
			return nil
		}
		if err != nil {
			return err
		}
		rec.PINHash = hash
	}
	if err := a.store.Set(ctx, name, rec); err != nil {
		return err
	}
	if pin == "" {
		a.println("PIN removed.")
	} else {
		a.println("PIN set.")
	}
	return nil
}
