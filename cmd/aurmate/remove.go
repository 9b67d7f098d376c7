package main

import (
	"os"

	"github.com/aurmate/aurmate/internal/common/output"
	"github.com/aurmate/aurmate/internal/pacman"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <package>...",
	Short: "Remove installed packages",
	Long:  `Remove one or more installed packages with pacman -R. Works for AUR and repository packages alike.`,
	Args:  cobra.MinimumNArgs(1),
	Run:   runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	native := pacman.NewRunner(cfg.Pacman.SuProgram)

	failed := false
	for _, name := range args {
		if err := native.Remove(name); err != nil {
			output.PrintError("Failed to remove %s: %v", name, err)
			failed = true
			continue
		}
		output.PrintSuccess("Removed %s", name)
	}

	if failed {
		os.Exit(1)
	}
}
