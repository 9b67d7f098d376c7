// Package install drives the end-to-end pipeline for one requested
// package: satisfy natively or fetch from the AUR, resolve and install
// AUR-only dependencies, clone, build, and clean up.
package install

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aurmate/aurmate/internal/alpm"
	"github.com/aurmate/aurmate/internal/aur"
	"github.com/aurmate/aurmate/internal/common/config"
	"github.com/aurmate/aurmate/internal/common/logger"
	"github.com/aurmate/aurmate/internal/common/output"
	"github.com/aurmate/aurmate/internal/common/progress"
	"github.com/aurmate/aurmate/internal/pacman"
	"github.com/aurmate/aurmate/internal/resolve"
)

var (
	// ErrPackageNotFound indicates the requested name is known to
	// neither the repositories nor the AUR
	ErrPackageNotFound = errors.New("package not found")
	// ErrAborted indicates the user declined to continue; a clean
	// abort, not a fault
	ErrAborted = errors.New("installation aborted")
)

// Index combines the AUR metadata operations the installer needs.
// *aur.Client satisfies this.
type Index interface {
	Info(names []string) ([]aur.PackageInfo, error)
	Search(term string) ([]aur.PackageInfo, error)
}

// Installer owns the install state machine for one run. Names already
// installed or skipped in this run are not processed again.
type Installer struct {
	cfg      *config.Config
	native   pacman.Executor
	index    Index
	builder  Builder
	decide   Decider
	resolver *resolve.Resolver
	done     map[string]bool
}

// New creates an Installer over explicit collaborators; nothing is read
// from ambient state.
func New(cfg *config.Config, native pacman.Executor, index Index, builder Builder, decide Decider) *Installer {
	return &Installer{
		cfg:      cfg,
		native:   native,
		index:    index,
		builder:  builder,
		decide:   decide,
		resolver: resolve.NewResolver(native, index),
		done:     make(map[string]bool),
	}
}

// Install runs the pipeline for one explicitly requested package.
// force reinstalls even when the installed version is current.
func (ins *Installer) Install(name string, force bool) error {
	return ins.install(name, false, force)
}

func (ins *Installer) install(name string, asDep, force bool) error {
	if ins.done[name] {
		return nil
	}

	// A repository hit ends the pipeline early: dependency-mode calls
	// trust the parent's install to pull it in, explicit calls offer a
	// plain pacman install.
	if ins.native.IsAvailable(name) {
		if asDep {
			return nil
		}
		if !ins.decide.ConfirmNativeInstall(name) {
			return ErrAborted
		}
		if err := ins.native.Install(name, false); err != nil {
			return err
		}
		ins.done[name] = true
		return nil
	}

	sp := progress.Start("querying the AUR")
	infos, err := ins.index.Info([]string{name})
	sp.Stop()
	if err != nil {
		return err
	}

	var info aur.PackageInfo
	if len(infos) == 0 {
		if asDep {
			return fmt.Errorf("%w: %s", ErrPackageNotFound, name)
		}
		info, err = ins.searchFallback(name)
		if err != nil {
			return err
		}
	} else {
		info = infos[0]
	}

	if !force {
		if installed, ok := ins.native.InstalledVersion(info.Name); ok {
			cmp, err := alpm.Compare(installed, info.Version)
			if err != nil {
				return fmt.Errorf("comparing versions of %s: %w", info.Name, err)
			}
			if cmp != alpm.Less {
				output.PrintInfo("Skipping %s: already installed and up to date (version %s).", info.Name, installed)
				ins.done[info.Name] = true
				return nil
			}
		}
	}

	sp = progress.Start("resolving dependencies")
	pkg, err := ins.resolver.FromInfo(info, true)
	sp.Stop()
	if err != nil {
		return err
	}

	if !asDep {
		printSummary(pkg)
	}

	// Dependencies install leaf-first; any failure aborts this package
	if plan := pkg.Plan(); len(plan) > 0 {
		output.PrintInfo("Installing %d AUR dependencies of %s...", len(plan), pkg.Name)
		for _, dep := range plan {
			if err := ins.install(dep.Name, true, false); err != nil {
				return fmt.Errorf("installing dependency %s: %w", dep.Name, err)
			}
		}
	}

	if !ins.decide.ConfirmInstall(pkg) {
		return ErrAborted
	}

	if err := ins.fetchAndBuild(pkg, asDep); err != nil {
		return err
	}

	ins.done[pkg.Name] = true
	output.PrintSuccess("Installed %s %s", pkg.Name, pkg.Version)
	return nil
}

// searchFallback offers interactive search-and-select when the exact
// name is missing from the AUR.
func (ins *Installer) searchFallback(name string) (aur.PackageInfo, error) {
	output.PrintWarning("Package %s not found.", name)

	results, err := ins.index.Search(name)
	if err != nil {
		return aur.PackageInfo{}, err
	}
	if len(results) == 0 {
		return aur.PackageInfo{}, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
	}

	chosen, ok := ins.decide.SelectFromSearch(results)
	if !ok {
		return aur.PackageInfo{}, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
	}

	// Search results omit dependency lists, fetch the full record
	infos, err := ins.index.Info([]string{chosen})
	if err != nil {
		return aur.PackageInfo{}, err
	}
	if len(infos) == 0 {
		return aur.PackageInfo{}, fmt.Errorf("%w: %s", ErrPackageNotFound, chosen)
	}
	return infos[0], nil
}

// fetchAndBuild clones the package source into a scratch directory,
// builds it, and removes the directory on every path out.
func (ins *Installer) fetchAndBuild(pkg *resolve.Package, asDep bool) error {
	buildDir, err := ins.cfg.GetBuildDir()
	if err != nil {
		return err
	}
	scratch := filepath.Join(buildDir, pkg.Name)

	// Stale state from an interrupted earlier run
	if err := os.RemoveAll(scratch); err != nil {
		return fmt.Errorf("cleaning scratch directory: %w", err)
	}

	repoURL := fmt.Sprintf("%s/%s.git", ins.cfg.AUR.URL, pkg.Base)
	if err := ins.builder.Clone(repoURL, scratch); err != nil {
		return err
	}
	defer ins.removeScratch(scratch)

	if ins.cfg.Install.ReviewPkgbuild {
		script, err := os.ReadFile(filepath.Join(scratch, "PKGBUILD"))
		if err != nil {
			return fmt.Errorf("reading PKGBUILD: %w", err)
		}
		if !ins.decide.ConfirmBuildScript(pkg.Name, script) {
			return ErrAborted
		}
	}

	return ins.builder.Build(scratch, asDep)
}

// removeScratch is best effort; a leftover directory is logged, never
// escalated to a build failure.
func (ins *Installer) removeScratch(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		logger.Warn("could not remove build files at %s: %v", dir, err)
	}
}

func printSummary(pkg *resolve.Package) {
	fmt.Printf("  Package: %s\n", output.Sprint(output.Package, pkg.Name))
	fmt.Printf("  Description: %s\n", pkg.Description)
	fmt.Printf("  Version: %s\n", output.Sprint(output.Version, pkg.Version))
	fmt.Printf("  Maintainer: %s\n", pkg.Maintainer)
	if deps := pkg.DependencyNames(); len(deps) > 0 {
		fmt.Printf("  Dependencies: %s\n", strings.Join(deps, ", "))
	}
	fmt.Println()
}
