package main

import (
	"errors"
	"os"

	"github.com/aurmate/aurmate/internal/aur"
	"github.com/aurmate/aurmate/internal/common/output"
	"github.com/aurmate/aurmate/internal/install"
	"github.com/aurmate/aurmate/internal/pacman"
	"github.com/spf13/cobra"
)

var (
	installForce bool
	installYes   bool
)

var installCmd = &cobra.Command{
	Use:   "install <package>...",
	Short: "Install packages from the AUR",
	Long: `Install one or more packages, resolving their AUR dependencies and
building each from source. Packages available in the native repositories
are handed to pacman instead.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runInstall,
}

func init() {
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Reinstall even when already up to date")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Answer yes to all prompts")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	native := pacman.NewRunner(cfg.Pacman.SuProgram)
	client := aur.NewClient(cfg.AUR.URL)
	decider := install.NewTermDecider(cfg.Install.AutoConfirm || installYes)
	installer := install.New(cfg, native, client, install.NewCmdBuilder(), decider)

	failed := false
	for _, name := range args {
		if err := installer.Install(name, installForce); err != nil {
			if errors.Is(err, install.ErrAborted) {
				output.PrintWarning("Skipped %s", name)
			} else {
				output.PrintError("Failed to install %s: %v", name, err)
			}
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
