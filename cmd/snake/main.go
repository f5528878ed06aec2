// snake is a terminal snake game.
//
// Usage:
//
//	snake play     - Play in the terminal
//	snake sim      - Run a headless game steered by the autopilot
//	snake config   - Print the effective configuration
//
// Global flags:
//
//	--config <path>       - Engine config YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--seed <value>        - RNG seed for reproducible spawns
//	--width, --height     - Grid size override
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagWidth      int
	flagHeight     int
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is a terminal version of the classic game. Eat food to grow
and score, grab the time-limited bonus for extra points, and avoid the
walls and your own tail. Every 10 points the game speeds up.

Available commands:
  play     - Play in the terminal
  sim      - Run a headless game steered by the autopilot
  config   - Print the effective configuration

Examples:
  snake play
  snake play --difficulty hard
  snake sim --duration 20s --log-level debug
  snake config --difficulty easy`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagWidth, "width", 0, "Grid width override")
	rootCmd.PersistentFlags().IntVar(&flagHeight, "height", 0, "Grid height override")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}
