package install

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aurmate/aurmate/internal/aur"
	"github.com/aurmate/aurmate/internal/common/output"
	"github.com/aurmate/aurmate/internal/resolve"
)

// Decider separates the interactive decision points from the install
// state machine, so the pipeline is testable without a terminal.
type Decider interface {
	// ConfirmNativeInstall asks whether a repository package should be
	// installed with pacman instead
	ConfirmNativeInstall(name string) bool

	// ConfirmInstall asks whether to continue installing pkg from the AUR
	ConfirmInstall(pkg *resolve.Package) bool

	// ConfirmBuildScript shows the PKGBUILD and asks whether to build
	ConfirmBuildScript(name string, script []byte) bool

	// SelectFromSearch presents search results and asks the user to
	// pick one; ok is false when nothing was chosen
	SelectFromSearch(results []aur.PackageInfo) (name string, ok bool)
}

// TermDecider prompts on the terminal. With autoConfirm set every
// confirmation succeeds without prompting and search selection is
// declined, matching unattended runs.
type TermDecider struct {
	auto bool
	in   *bufio.Reader
	out  io.Writer
}

// NewTermDecider creates a terminal-backed Decider
func NewTermDecider(autoConfirm bool) *TermDecider {
	return &TermDecider{
		auto: autoConfirm,
		in:   bufio.NewReader(os.Stdin),
		out:  os.Stdout,
	}
}

// ask prompts with a yes-default question. A read failure (end of
// input, interrupt) counts as a decline so the run aborts cleanly.
func (d *TermDecider) ask(prompt string) bool {
	if d.auto {
		return true
	}

	fmt.Fprintf(d.out, "%s [Y/n]: ", prompt)
	line, err := d.in.ReadString('\n')
	if err != nil {
		fmt.Fprintln(d.out)
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) != "n"
}

// ConfirmNativeInstall asks before falling back to a plain pacman install
func (d *TermDecider) ConfirmNativeInstall(name string) bool {
	output.PrintInfo("%s is available in the repositories.", name)
	return d.ask(fmt.Sprintf("Install %s with pacman?", name))
}

// ConfirmInstall asks before cloning and building pkg
func (d *TermDecider) ConfirmInstall(pkg *resolve.Package) bool {
	return d.ask(fmt.Sprintf("Continue installation of %s?", pkg.Name))
}

// ConfirmBuildScript prints the PKGBUILD and asks before building
func (d *TermDecider) ConfirmBuildScript(name string, script []byte) bool {
	if d.auto {
		return true
	}
	output.Println(output.Header, "PKGBUILD for "+name+":")
	fmt.Fprintln(d.out, string(script))
	return d.ask(fmt.Sprintf("Build %s with this PKGBUILD?", name))
}

// SelectFromSearch prints the results and loops until the user names
// one of them or gives up with an empty line.
func (d *TermDecider) SelectFromSearch(results []aur.PackageInfo) (string, bool) {
	if d.auto || len(results) == 0 {
		return "", false
	}

	byName := make(map[string]bool, len(results))
	for _, info := range results {
		byName[info.Name] = true
		fmt.Fprintf(d.out, "  %s\n", output.FormatPackage(info.Name, info.Version))
		if info.Description != "" {
			fmt.Fprintf(d.out, "    %s\n", output.Sprint(output.Dim, info.Description))
		}
	}

	for {
		fmt.Fprint(d.out, "Please type the desired package name (empty to abort): ")
		line, err := d.in.ReadString('\n')
		if err != nil {
			fmt.Fprintln(d.out)
			return "", false
		}

		name := strings.TrimSpace(line)
		if name == "" {
			return "", false
		}
		if byName[name] {
			return name, true
		}
		output.PrintWarning("Package %s not found in search results.", name)
	}
}

// Ensure TermDecider implements Decider interface
var _ Decider = (*TermDecider)(nil)
