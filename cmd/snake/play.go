package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Arrows/WASD  - Steer
  Space/P      - Start, pause, resume; after game over, play again
  R            - Reset
  Tab          - Score history
  Esc          - Toggle full help (or close history)
  Q/Ctrl+C     - Quit

Score history is kept for as long as the program runs.

Difficulty options:
  easy   - Slower start (260ms per move), speeds up every 10 points
  normal - 200ms per move, speeds up every 10 points
  hard   - Faster start (150ms per move), speeds up every 10 points
  fixed  - No speed-up

Examples:
  snake play
  snake play --difficulty hard
  snake play --width 30 --height 20
  snake play --config ./my-snake.yaml --log-file snake.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	if err := checkTerminal(settings); err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to --log-file or nowhere.
	logger, closeLog, err := newLogger(flagLogLevel, flagLogFile, nil, "snake")
	if err != nil {
		return err
	}
	defer closeLog()

	engine, err := snake.New(settings, snake.WithLogger(logger))
	if err != nil {
		return err
	}
	defer engine.Close()

	store, err := storage.OpenMemory()
	if err != nil {
		logger.Warn("score history unavailable", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	return tui.Run(engine, store, logger)
}

// checkTerminal fails early when stdout is a terminal too small for the grid.
func checkTerminal(settings snake.Settings) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("play needs an interactive terminal; try 'snake sim' instead")
	}

	w, h, err := term.GetSize(fd)
	if err != nil {
		return nil // Unknown size: let the TUI report it
	}
	needW, needH := tui.ScreenSize(settings.Width, settings.Height)
	needH++ // Help bar
	if w < needW || h < needH {
		return fmt.Errorf("terminal is %dx%d but a %dx%d grid needs %dx%d; resize or pass --width/--height",
			w, h, settings.Width, settings.Height, needW, needH)
	}
	return nil
}
