package main

import (
	"fmt"
	"os"

	"github.com/aurmate/aurmate/internal/common/logger"
	"github.com/aurmate/aurmate/internal/common/output"
	"github.com/aurmate/aurmate/internal/pacman"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed foreign packages",
	Long:  `List packages installed outside the native repositories, the set that upgrade considers.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	native := pacman.NewRunner(cfg.Pacman.SuProgram)
	records, err := native.ForeignPackages()
	if err != nil {
		logger.Error("listing foreign packages: %v", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		output.PrintInfo("No foreign packages installed")
		return
	}

	for _, rec := range records {
		fmt.Println(output.FormatPackage(rec.Name, rec.Version))
	}
}
