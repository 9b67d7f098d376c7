package main

import (
	"fmt"

	"github.com/aurmate/aurmate/internal/common/config"
	"github.com/aurmate/aurmate/internal/common/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	Args:  cobra.NoArgs,
	Run:   runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	if path, err := config.FindConfigPath(); err == nil {
		output.PrintInfo("Configuration file: %s", path)
	}
	fmt.Println()
	fmt.Println(cfg.String())
}
