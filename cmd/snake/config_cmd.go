package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long: `Print the configuration snake would play with, after applying
--config and --difficulty, and check that it is valid.

Search order:
  1. --config path
  2. ~/.snake/configs/snake.yaml
  3. ./configs/snake.yaml
  4. built-in defaults

Examples:
  snake config
  snake config --difficulty hard
  snake config --config ./my-snake.yaml
  snake config --defaults > ~/.snake/configs/snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in default file instead")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, preset, err := loadSettings()
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "\nUser config: %s\n", config.UserConfigPath(config.FileName))
	return nil
}
