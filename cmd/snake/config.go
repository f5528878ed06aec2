package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the engine configuration after applying the config file,
difficulty preset and flags. The output is valid YAML and can be saved as
~/.snake/configs/snake.yaml or ./configs/snake.yaml.

Config search order:
  --config <path>
  ~/.snake/configs/snake.yaml
  ./configs/snake.yaml
  built-in defaults

Examples:
  snake config
  snake config --difficulty hard > configs/snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, src, err := loadConfig(flagOverrides())
	if err != nil {
		return err
	}

	out, err := config.Encode(cfg)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "# source: %s\n", src)
	if flagDifficulty != "" {
		fmt.Fprintf(w, "# difficulty: %s\n", flagDifficulty)
	}
	_, err = w.Write(out)
	return err
}
