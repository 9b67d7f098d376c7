// Package upgrade compares installed AUR packages against remote
// metadata and feeds the out-of-date ones to the installer.
package upgrade

import (
	"errors"
	"fmt"

	"github.com/aurmate/aurmate/internal/alpm"
	"github.com/aurmate/aurmate/internal/aur"
	"github.com/aurmate/aurmate/internal/common/logger"
	"github.com/aurmate/aurmate/internal/common/output"
	"github.com/aurmate/aurmate/internal/pacman"
)

// Index supplies AUR metadata for a set of names. *aur.Client satisfies
// this.
type Index interface {
	Info(names []string) ([]aur.PackageInfo, error)
}

// Installer runs the install pipeline for one package. *install.Installer
// satisfies this.
type Installer interface {
	Install(name string, force bool) error
}

// Outdated is one package whose installed version lags the AUR
type Outdated struct {
	Name      string
	Installed string
	Remote    string
}

// Planner computes and applies the bulk upgrade set
type Planner struct {
	native  pacman.Executor
	index   Index
	ignored map[string]bool
}

// NewPlanner creates a Planner. Names in ignore are never considered
// for upgrade.
func NewPlanner(native pacman.Executor, index Index, ignore []string) *Planner {
	ignored := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		ignored[name] = true
	}
	return &Planner{native: native, index: index, ignored: ignored}
}

// Plan snapshots the foreign packages installed on the system, fetches
// their remote metadata and returns those that are out of date. A
// package whose version cannot be compared is reported and skipped, not
// fatal for the run.
func (p *Planner) Plan() ([]Outdated, error) {
	records, err := p.native.ForeignPackages()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(records))
	for _, rec := range records {
		if p.ignored[rec.Name] {
			logger.Debug("ignoring %s per upgrade config", rec.Name)
			continue
		}
		names = append(names, rec.Name)
	}

	infos, err := p.index.Info(names)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]aur.PackageInfo, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}

	var outdated []Outdated
	for _, rec := range records {
		if p.ignored[rec.Name] {
			continue
		}
		info, ok := byName[rec.Name]
		if !ok {
			// Installed from elsewhere or deleted from the AUR
			logger.Debug("%s is not in the AUR, skipping", rec.Name)
			continue
		}

		cmp, err := alpm.Compare(rec.Version, info.Version)
		if err != nil {
			logger.Warn("cannot compare versions of %s (%s vs %s): %v",
				rec.Name, rec.Version, info.Version, err)
			continue
		}
		if cmp == alpm.Less {
			outdated = append(outdated, Outdated{
				Name:      rec.Name,
				Installed: rec.Version,
				Remote:    info.Version,
			})
		}
	}

	return outdated, nil
}

// Apply installs every outdated package. One package's failure does not
// stop the rest; the returned error joins every failure, so the run
// succeeds only when all packages did.
func (p *Planner) Apply(installer Installer, outdated []Outdated) error {
	var errs []error
	for _, o := range outdated {
		output.PrintInfo("Upgrading %s", output.FormatUpgrade(o.Name, o.Installed, o.Remote))
		if err := installer.Install(o.Name, false); err != nil {
			output.PrintError("Upgrade of %s failed: %v", o.Name, err)
			errs = append(errs, fmt.Errorf("%s: %w", o.Name, err))
		}
	}
	return errors.Join(errs...)
}
