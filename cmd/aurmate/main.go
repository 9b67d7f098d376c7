package main

import (
	"fmt"
	"os"

	"github.com/aurmate/aurmate/internal/common/config"
	"github.com/aurmate/aurmate/internal/common/logger"
	"github.com/aurmate/aurmate/internal/common/output"
	"github.com/aurmate/aurmate/internal/common/version"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:     "aurmate",
	Short:   "AUR helper for Arch Linux",
	Long:    `A helper that installs and upgrades AUR packages alongside pacman: search, dependency resolution, source builds and bulk upgrades.`,
	Version: version.Short(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Configure logging based on flags
		if verbose {
			logger.SetVerbose(true)
		}
		if quiet {
			logger.SetQuiet(true)
		}
		if noColor {
			output.NoColor()
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// loadConfig loads the configuration and wires the file log sink.
// Exits the process when no configuration can be obtained.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}
	if err := logger.Default().EnableFileLogging(cfg.Log.Path); err != nil {
		logger.Warn("file logging disabled: %v", err)
	}
	return cfg
}

func main() {
	defer logger.Default().Close()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
