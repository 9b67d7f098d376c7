// Package resolve builds package descriptors from AUR metadata and
// computes the AUR-only transitive dependency plan for an install.
package resolve

import (
	"strings"

	"github.com/aurmate/aurmate/internal/aur"
)

// Package is the in-memory model of one resolvable AUR package: its
// identity, declared dependency lists, and the descriptors of those
// dependencies that cannot be satisfied from the sync repositories.
// Immutable once resolution has run.
type Package struct {
	Name        string
	Version     string
	Base        string // source repository name; differs from Name for split packages
	Description string
	Maintainer  string

	RunDeps   []string
	BuildDeps []string
	CheckDeps []string

	// AurDeps holds descriptors only for declared dependencies that
	// pacman reports as unavailable; empty until resolution runs
	AurDeps []*Package
}

// newPackage builds a descriptor from one metadata record without
// resolving its dependency subtree.
func newPackage(info aur.PackageInfo) *Package {
	base := info.PackageBase
	if base == "" {
		base = info.Name
	}
	return &Package{
		Name:        info.Name,
		Version:     info.Version,
		Base:        base,
		Description: info.Description,
		Maintainer:  info.Maintainer,
		RunDeps:     info.Depends,
		BuildDeps:   info.MakeDepends,
		CheckDeps:   info.CheckDepends,
	}
}

// DependencyNames returns the declared run, build and check dependency
// names with version constraints stripped, de-duplicated, in declaration
// order.
func (p *Package) DependencyNames() []string {
	seen := make(map[string]bool)
	var names []string

	for _, list := range [][]string{p.RunDeps, p.BuildDeps, p.CheckDeps} {
		for _, dep := range list {
			name := StripConstraint(dep)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	return names
}

// Plan returns the flattened, leaf-first installation plan for p's AUR
// dependency subtree. Each dependency's own subtree precedes it, so a
// descriptor never appears before anything it depends on.
func (p *Package) Plan() []*Package {
	var plan []*Package
	for _, dep := range p.AurDeps {
		plan = append(plan, dep.Plan()...)
		plan = append(plan, dep)
	}
	return plan
}

// StripConstraint removes an inline version constraint from a declared
// dependency name: "foo>=1.2" becomes "foo". Constraint enforcement is
// out of scope; the constraint only affects name extraction.
func StripConstraint(dep string) string {
	if idx := strings.IndexAny(dep, "<>="); idx != -1 {
		return dep[:idx]
	}
	return dep
}
