package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessgame/internal/challenge"
	"github.com/robalobadob/guessgame/internal/cli"
	"github.com/robalobadob/guessgame/internal/config"
	"github.com/robalobadob/guessgame/internal/console"
	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/httpserver"
	"github.com/robalobadob/guessgame/internal/store"
	"github.com/robalobadob/guessgame/pkg/logger"
)

const usage = `usage: guessgame [play|serve]

  play   interactive game on this terminal (default)
  serve  read-only HTTP API over the same data`

func main() {
	cmd := "play"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != "play" && cmd != "serve" {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(context.Background(), cmd); err != nil {
		fmt.Fprintln(os.Stderr, "guessgame:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	l, err := logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, File: cfg.Log.File})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()
	log.Logger = l

	st, history, err := openStore(cfg, l)
	if err != nil {
		return err
	}
	defer func() {
		// serve never writes; closing a JSON store would rewrite the file
		// over whatever a concurrent play session saved.
		if cmd == "serve" && cfg.StoreDriver == config.DriverJSON {
			return
		}
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("close store")
		}
	}()

	if cmd == "serve" {
		// Play mode keeps default signal handling so Ctrl-C ends a blocked read.
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		var h httpserver.ChallengeHistory
		if history != nil {
			h = history
		}
		return httpserver.New(st, h, l).Start(ctx, cfg.HTTPAddr)
	}

	var sink challenge.Log = challenge.NewFileLog(cfg.ChallengeLog)
	if history != nil {
		sink = challenge.MultiLog{sink, history}
	}
	app := cli.New(
		st,
		console.New(os.Stdin, os.Stdout),
		os.Stdout,
		game.NewRandom(),
		game.SystemClock{},
		sink,
		cli.Options{
			GuessTimeout: cfg.Game.GuessTimeout,
			Challenge: challenge.Settings{
				Attempts: cfg.Game.ChallengeAttempts,
				Range:    cfg.Game.ChallengeRange,
			},
		},
		l,
	)
	l.Info().Str("driver", cfg.StoreDriver).Msg("session started")
	return app.Run(ctx)
}

// openStore opens the configured user store. The sqlite driver also yields
// the challenge history table.
func openStore(cfg *config.Config, l zerolog.Logger) (store.Store, *challenge.SQLiteLog, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := store.OpenDB(cfg.SQLitePath, l)
		if err != nil {
			return nil, nil, err
		}
		return store.NewSQLite(db), challenge.NewSQLiteLog(db), nil
	default:
		st, err := store.OpenJSONFile(cfg.DataFile, l)
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	}
}
