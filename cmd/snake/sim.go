package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/autopilot"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagDuration time.Duration
	flagGames    int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless game steered by the autopilot",
	Long: `Run games without a terminal UI. A greedy autopilot steers the snake
in real time and engine events are logged. Each game ends on collision or
when --duration elapses.

Examples:
  snake sim
  snake sim --duration 1m --games 3
  snake sim --difficulty hard --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().DurationVar(&flagDuration, "duration", 30*time.Second, "Maximum length of each game")
	simCmd.Flags().IntVar(&flagGames, "games", 1, "Number of games to play")
}

func runSim(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(flagLogLevel, flagLogFile, os.Stderr, "snake-sim")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	engine, err := snake.New(settings, snake.WithLogger(logger))
	if err != nil {
		return err
	}
	defer engine.Close()

	store, err := storage.OpenMemory()
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	for game := 1; game <= max(1, flagGames); game++ {
		res, err := playOne(ctx, engine, logger)
		interrupted := errors.Is(err, context.Canceled)
		if err != nil && !interrupted && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		snap := res.Final
		if _, err := store.SaveScore(storage.Entry{
			SessionID: snap.SessionID,
			Score:     snap.Score,
			Level:     snap.Level,
			Length:    snap.Len(),
		}); err != nil {
			return err
		}

		ending := "time limit"
		switch {
		case res.GameOver:
			ending = "collision"
		case interrupted:
			ending = "interrupted"
		}
		fmt.Fprintf(out, "game %d: score %d, level %d, length %d, %d ticks, %d eaten (%s)\n",
			game, snap.Score, snap.Level, snap.Len(), snap.Tick, res.Eaten, ending)

		if interrupted {
			break
		}
		engine.Reset()
	}

	entries, err := store.History(0)
	if err != nil {
		return err
	}
	if len(entries) > 1 {
		fmt.Fprintln(out, "ranking:")
		for _, r := range storage.Rank(entries) {
			marker := " "
			if r.Best {
				marker = "*"
			}
			fmt.Fprintf(out, "  %s #%d  %d\n", marker, r.Rank, r.Score)
		}
	}
	return nil
}

// playOne starts a fresh game and lets the autopilot drive it to the end.
func playOne(ctx context.Context, engine *snake.Engine, logger *log.Logger) (autopilot.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, flagDuration)
	defer cancel()

	sub := engine.Subscribe(snake.DefaultEventBuffer)
	defer sub.Close()

	engine.Start()
	return autopilot.Drive(ctx, engine, sub, logger)
}
