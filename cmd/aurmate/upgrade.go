package main

import (
	"fmt"
	"os"

	"github.com/aurmate/aurmate/internal/aur"
	"github.com/aurmate/aurmate/internal/common/config"
	"github.com/aurmate/aurmate/internal/common/logger"
	"github.com/aurmate/aurmate/internal/common/output"
	"github.com/aurmate/aurmate/internal/common/progress"
	"github.com/aurmate/aurmate/internal/install"
	"github.com/aurmate/aurmate/internal/pacman"
	"github.com/aurmate/aurmate/internal/upgrade"
	"github.com/spf13/cobra"
)

var upgradeYes bool

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade all outdated foreign packages",
	Long: `Compare every installed foreign package against the AUR and rebuild
the ones that are out of date. Packages listed in upgrade.toml next to
the configuration file are skipped.`,
	Args: cobra.NoArgs,
	Run:  runUpgrade,
}

func init() {
	upgradeCmd.Flags().BoolVarP(&upgradeYes, "yes", "y", false, "Answer yes to all prompts")
	rootCmd.AddCommand(upgradeCmd)
}

func runUpgrade(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	ignorePath, err := config.UpgradeConfigPath()
	if err != nil {
		logger.Error("locating upgrade config: %v", err)
		os.Exit(1)
	}
	ignore, err := upgrade.LoadIgnoreConfig(ignorePath)
	if err != nil {
		logger.Error("reading upgrade config: %v", err)
		os.Exit(1)
	}

	native := pacman.NewRunner(cfg.Pacman.SuProgram)
	client := aur.NewClient(cfg.AUR.URL)
	planner := upgrade.NewPlanner(native, client, ignore.Ignore)

	spinner := progress.Start("Checking for updates")
	outdated, err := planner.Plan()
	spinner.Stop()
	if err != nil {
		logger.Error("checking for updates: %v", err)
		os.Exit(1)
	}

	if len(outdated) == 0 {
		output.PrintSuccess("All foreign packages are up to date")
		return
	}

	output.PrintInfo("%d package(s) to upgrade:", len(outdated))
	for _, o := range outdated {
		fmt.Println("  " + output.FormatUpgrade(o.Name, o.Installed, o.Remote))
	}

	decider := install.NewTermDecider(cfg.Install.AutoConfirm || upgradeYes)
	installer := install.New(cfg, native, client, install.NewCmdBuilder(), decider)

	if err := planner.Apply(installer, outdated); err != nil {
		logger.Error("upgrade finished with failures: %v", err)
		os.Exit(1)
	}
	output.PrintSuccess("Upgraded %d package(s)", len(outdated))
}
