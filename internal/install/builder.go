package install

import (
	"errors"
	"os"
	"os/exec"
)

var (
	// ErrClone indicates the package source repository could not be cloned
	ErrClone = errors.New("failed to clone package repository")
	// ErrBuild indicates makepkg exited nonzero
	ErrBuild = errors.New("package build failed")
)

// Builder abstracts the source fetch and build tool invocations.
// This interface allows for mocking the build pipeline in tests.
type Builder interface {
	// Clone checks out the package source repository into dir
	Clone(repoURL, dir string) error

	// Build runs the build tool inside dir. asDependency marks the
	// resulting package as a dependency install
	Build(dir string, asDependency bool) error
}

// CmdBuilder runs git and makepkg with the terminal attached; both
// tools own their prompts and progress output.
type CmdBuilder struct{}

// NewCmdBuilder creates a Builder backed by the real git and makepkg
func NewCmdBuilder() *CmdBuilder {
	return &CmdBuilder{}
}

// Clone checks out repoURL into dir
func (b *CmdBuilder) Clone(repoURL, dir string) error {
	cmd := exec.Command("git", "clone", repoURL, dir)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Join(ErrClone, err)
	}
	return nil
}

// Build runs makepkg -si inside dir. makepkg handles its own privilege
// escalation for the final pacman -U step.
func (b *CmdBuilder) Build(dir string, asDependency bool) error {
	args := []string{"-si", "--needed"}
	if asDependency {
		args = append(args, "--asdeps")
	}

	cmd := exec.Command("makepkg", args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Join(ErrBuild, err)
	}
	return nil
}

// Ensure CmdBuilder implements Builder interface
var _ Builder = (*CmdBuilder)(nil)
