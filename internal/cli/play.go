package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/metrics"
	"github.com/robalobadob/guessgame/internal/player"
)

func (a *App) difficultyMenu(ctx context.Context, name string) error {
	for {
		a.println("\n_____Difficulty level_____")
		for _, l := range game.Levels {
			a.printf("%s. %s\n", l.Key, l.Name)
		}
		a.println("('q' to quit)")
		a.println("__________________________")
		choice, err := a.readLine("\nLevel : ")
		if err != nil {
			return err
		}
		if strings.EqualFold(choice, "q") {
			a.println("\nGoodbye and thank you for playing.")
			return nil
		}
		level, ok := game.LevelByKey(choice)
		if !ok {
			a.println("Invalid input! Try again.")
			continue
		}
		if err := a.soloRound(ctx, name, level); err != nil {
			return err
		}
	}
}

// soloRound plays one round at level and applies it to name's record.
func (a *App) soloRound(ctx context.Context, name string, level game.Level) error {
	target := game.Secret(a.rnd, level.Range)
	a.printf("Enter a number (1 - %d, type 'hint' for a hint.)\n", level.Range)

	o, err := a.engine.Run(game.Round{
		Player: name,
		Target: target,
		Limit:  level.Attempts,
		Range:  level.Range,
	})
	if err != nil {
		return err
	}
	metrics.RoundsTotal.WithLabelValues("solo", metrics.Result(o.Won)).Inc()

	rec, err := a.store.Get(ctx, name)
	if err != nil {
		return err
	}
	for _, badge := range a.tracker.Apply(name, rec, o) {
		a.printf("🏅 Achievement Unlocked: %s!\n", badge)
	}
	if !o.Won {
		a.printf("Out of attempts! Correct number was %d.\n", target)
	}
	if err := a.store.Set(ctx, name, rec); err != nil {
		return fmt.Errorf("save round: %w", err)
	}
	a.printStats(name, rec)
	return nil
}

func (a *App) showStats(ctx context.Context, name string) error {
	rec, err := a.store.Get(ctx, name)
	if err != nil {
		return err
	}
	a.printStats(name, rec)
	return nil
}

func (a *App) printStats(name string, r *player.Record) {
	badges := "None"
	if len(r.Badges) > 0 {
		badges = strings.Join(r.Badges, ", ")
	}
	a.printf("\n--- Stats for %s ---\n", game.DisplayName(name))
	a.printf("Games played: %d\n", r.Games)
	a.printf("Wins: %d | Losses: %d | Win Rate: %.2f%%\n", r.Wins, r.Losses, r.WinRate())
	a.printf("Challenges Won: %d | Challenges Lost: %d\n", r.ChallengesWon, r.ChallengesLost)
	a.printf("Current Win Streak: %d\n", r.Streak)
	a.printf("Badges: %s\n", badges)
}

func (a *App) showLeaderboard(ctx context.Context) error {
	all, err := a.store.All(ctx)
	if err != nil {
		return err
	}
	a.println("\n--- Leaderboard ---")
	for _, s := range player.Rank(all, 0) {
		a.printf("%d. %s - Wins: %d, Games: %d, Win Rate: %.2f%%\n",
			s.Rank, game.DisplayName(s.Username), s.Wins, s.Games, s.WinRate)
	}
	return nil
}
