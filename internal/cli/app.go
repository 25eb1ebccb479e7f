// Package cli is the interactive front end: login, the main menu and every
// screen reachable from it.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/guessgame/internal/challenge"
	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/player"
	"github.com/robalobadob/guessgame/internal/social"
	"github.com/robalobadob/guessgame/internal/store"
)

const maxPINTries = 3

var ErrLoginFailed = errors.New("login failed")

// Terminal is what the app needs from the console: prompted reads (plain and
// masked) and the challenge handoff.
type Terminal interface {
	game.Input
	challenge.Handoff
}

// Options carries the tunables from config.
type Options struct {
	GuessTimeout time.Duration
	Challenge    challenge.Settings
}

// App holds one interactive session.
type App struct {
	store   store.Store
	term    Terminal
	out     io.Writer
	rnd     game.Random
	engine  *game.Engine
	tracker *player.Tracker
	arbiter *challenge.Arbiter
	social  *social.Service
	log     zerolog.Logger
}

// New wires a session over st. Nothing is read until Run.
func New(
	st store.Store,
	term Terminal,
	out io.Writer,
	rnd game.Random,
	clock game.Clock,
	sink challenge.Log,
	opts Options,
	log zerolog.Logger,
) *App {
	engine := game.NewEngine(term, out, clock, game.NewHintPolicy(rnd), opts.GuessTimeout, log)
	return &App{
		store:   st,
		term:    term,
		out:     out,
		rnd:     rnd,
		engine:  engine,
		tracker: player.NewTracker(log),
		arbiter: challenge.NewArbiter(st, engine, term, rnd, clock, sink, out, opts.Challenge, log),
		social:  social.NewService(st, log),
		log:     log,
	}
}

// Run logs a user in and serves the main menu until they quit or input ends.
// The store is flushed on the way out.
func (a *App) Run(ctx context.Context) (err error) {
	defer func() {
		if ferr := a.store.Flush(ctx); ferr != nil {
			a.log.Error().Err(ferr).Msg("failed to save users")
			if err == nil {
				err = ferr
			}
		}
	}()

	name, err := a.login(ctx)
	if err != nil {
		return ignoreEOF(err)
	}
	return ignoreEOF(a.mainMenu(ctx, name))
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, game.ErrInputClosed) {
		return nil
	}
	return err
}

func (a *App) println(args ...any) { _, _ = fmt.Fprintln(a.out, args...) }

func (a *App) printf(format string, args ...any) { _, _ = fmt.Fprintf(a.out, format, args...) }

func (a *App) readLine(prompt string) (string, error) {
	s, err := a.term.ReadLine(prompt)
	return strings.TrimSpace(s), err
}

func (a *App) login(ctx context.Context) (string, error) {
	for {
		raw, err := a.readLine("Enter a username to play: ")
		if err != nil {
			return "", err
		}
		name, err := player.Canonical(raw)
		if err != nil {
			a.println("Username cannot be empty. Please try again.")
			continue
		}

		rec, err := a.store.Get(ctx, name)
		if errors.Is(err, store.ErrUserNotFound) {
			if err := a.store.Set(ctx, name, player.New()); err != nil {
				return "", err
			}
			a.printf("Welcome %s! Let's get started.\n", game.DisplayName(name))
			a.log.Info().Str("user", name).Msg("user created")
			return name, nil
		}
		if err != nil {
			return "", err
		}
		if err := a.checkPIN(rec); err != nil {
			a.log.Warn().Str("user", name).Msg("PIN check failed")
			return "", err
		}
		a.printf("Welcome back %s!\n", game.DisplayName(name))
		return name, nil
	}
}

func (a *App) checkPIN(rec *player.Record) error {
	if rec.PINHash == "" {
		return nil
	}
	for i := 0; i < maxPINTries; i++ {
		pin, err := a.term.ReadMaskedLine("PIN: ")
		if err != nil {
			return err
		}
		if rec.CheckPIN(strings.TrimSpace(pin)) {
			return nil
		}
		a.println("Wrong PIN.")
	}
	a.println("Too many wrong PINs.")
	return ErrLoginFailed
}

func (a *App) mainMenu(ctx context.Context, name string) error {
	for {
		a.println("\n--- Main Menu ---")
		a.println("1. Play Game")
		a.println("2. View Stats")
		a.println("3. Add Friend")
		a.println("4. View Friend Requests")
		a.println("5. View Friends")
		a.println("6. Challenge Friend")
		a.println("7. View Leaderboard")
		a.println("8. How to play (help).")
		a.println("9. Set PIN")
		a.println("'q' to Quit")
		a.println("_________________")
		choice, err := a.readLine("Choose an option: ")
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "1":
			err = a.difficultyMenu(ctx, name)
		case "2":
			err = a.showStats(ctx, name)
		case "3":
			err = a.addFriend(ctx, name)
		case "4":
			err = a.friendRequests(ctx, name)
		case "5":
			err = a.showFriends(ctx, name)
		case "6":
			err = a.challengeFriend(ctx, name)
		case "7":
			err = a.showLeaderboard(ctx)
		case "8":
			a.showHelp()
		case "9":
			err = a.setPIN(ctx, name)
		case "q":
			a.println("Goodbye!")
			return nil
		default:
			a.println("Invalid choice. Try again.")
		}
		if err != nil {
			return err
		}
	}
}
