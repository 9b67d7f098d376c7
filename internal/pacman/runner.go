package pacman

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
)

var (
	ErrPacmanCommand = errors.New("pacman command failed")
	ErrInstallFailed = errors.New("native package install failed")
	ErrRemoveFailed  = errors.New("package removal failed")
)

// Runner executes pacman commands, using the configured privilege
// escalation program for mutating operations.
type Runner struct {
	suProgram string
}

// NewRunner creates a Runner that escalates with suProgram (sudo/doas)
func NewRunner(suProgram string) *Runner {
	if suProgram == "" {
		suProgram = "sudo"
	}
	return &Runner{suProgram: suProgram}
}

// runQuery executes a read-only pacman command and returns stdout
func (r *Runner) runQuery(args ...string) (string, error) {
	cmd := exec.Command("pacman", args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	if err != nil {
		// Wrap the error with stderr for context, keeping the exec
		// error reachable for errors.As
		if stderr := strings.TrimSpace(stderrBuf.String()); stderr != "" {
			err = errors.Join(ErrPacmanCommand, err, errors.New(stderr))
		}
		return stdoutBuf.String(), err
	}

	return stdoutBuf.String(), nil
}

// runPrivileged executes a mutating pacman command through the su program
// with the terminal attached, so pacman's own prompts and progress reach
// the user.
func (r *Runner) runPrivileged(args ...string) error {
	full := append([]string{"pacman"}, args...)
	cmd := exec.Command(r.suProgram, full...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// IsAvailable reports whether the sync repositories carry an exact match.
// pacman -Ss with an anchored pattern exits 0 only on a hit.
func (r *Runner) IsAvailable(name string) bool {
	cmd := exec.Command("pacman", "-Ss", "^"+name+"$")
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// InstalledVersion returns the installed version of name via pacman -Qs.
// A nonzero exit means the package is not installed.
func (r *Runner) InstalledVersion(name string) (string, bool) {
	out, err := r.runQuery("-Qs", "^"+name+"$")
	if err != nil {
		return "", false
	}
	return ParseInstalledVersion(out)
}

// ParseInstalledVersion extracts the version from pacman -Qs output.
// The first line has the form "local/<name> <version>"; the second
// whitespace-separated token is the version string.
func ParseInstalledVersion(out string) (string, bool) {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}

// Install installs a repository package through the su program
func (r *Runner) Install(name string, asDependency bool) error {
	args := []string{"-S", "--needed"}
	if asDependency {
		args = append(args, "--asdeps")
	}
	args = append(args, name)

	if err := r.runPrivileged(args...); err != nil {
		return errors.Join(ErrInstallFailed, err)
	}
	return nil
}

// Remove uninstalls a package through the su program
func (r *Runner) Remove(name string) error {
	if err := r.runPrivileged("-R", name); err != nil {
		return errors.Join(ErrRemoveFailed, err)
	}
	return nil
}

// ForeignPackages lists installed packages not present in the sync
// repositories (pacman -Qm). pacman exits nonzero when the list is
// empty, which is not an error here.
func (r *Runner) ForeignPackages() ([]InstalledRecord, error) {
	out, err := r.runQuery("-Qm")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, nil
		}
		return nil, err
	}
	return ParseForeignOutput(out), nil
}

// ParseForeignOutput parses pacman -Qm output, one "name version" pair
// per line.
func ParseForeignOutput(out string) []InstalledRecord {
	var records []InstalledRecord

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		records = append(records, InstalledRecord{
			Name:    fields[0],
			Version: fields[1],
		})
	}

	return records
}

// Ensure Runner implements Executor interface
var _ Executor = (*Runner)(nil)
