package main

import (
	"fmt"
	"os"

	"github.com/aurmate/aurmate/internal/aur"
	"github.com/aurmate/aurmate/internal/common/output"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>...",
	Short: "Search the AUR by name and description",
	Args:  cobra.MinimumNArgs(1),
	Run:   runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	client := aur.NewClient(cfg.AUR.URL)

	found := false
	for _, term := range args {
		results, err := client.Search(term)
		if err != nil {
			output.PrintError("Search for %q failed: %v", term, err)
			os.Exit(1)
		}
		if len(results) == 0 {
			output.PrintWarning("No results for %q", term)
			continue
		}
		found = true
		printSearchResults(results)
	}

	if !found {
		os.Exit(1)
	}
}

func printSearchResults(results []aur.PackageInfo) {
	for _, r := range results {
		fmt.Printf("%s %s", output.FormatPackage(r.Name, r.Version), output.Dim.Sprintf("(%.2f)", r.Popularity))
		if r.Maintainer == "" {
			fmt.Printf(" %s", output.Missing.Sprint("[orphan]"))
		}
		fmt.Println()
		if r.Description != "" {
			fmt.Printf("    %s\n", r.Description)
		}
	}
}
