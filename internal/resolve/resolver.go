package resolve

import (
	"errors"
	"fmt"

	"github.com/aurmate/aurmate/internal/aur"
	"github.com/aurmate/aurmate/internal/pacman"
)

var (
	// ErrNotFound indicates a package or dependency is known to neither
	// the sync repositories nor the AUR
	ErrNotFound = errors.New("package not found in the AUR")
	// ErrDependencyCycle indicates the dependency graph loops back on
	// itself
	ErrDependencyCycle = errors.New("dependency cycle detected")
)

// MetadataSource supplies AUR metadata for a set of names. *aur.Client
// satisfies this.
type MetadataSource interface {
	Info(names []string) ([]aur.PackageInfo, error)
}

// Resolver computes AUR-only dependency subtrees. One Resolver covers
// one run: names it has already planned are not planned again, so a
// package reached through two subtrees is resolved once.
type Resolver struct {
	native  pacman.Executor
	index   MetadataSource
	planned map[string]bool
}

// NewResolver creates a Resolver over the given pacman gateway and
// metadata source.
func NewResolver(native pacman.Executor, index MetadataSource) *Resolver {
	return &Resolver{
		native:  native,
		index:   index,
		planned: make(map[string]bool),
	}
}

// Resolve fetches metadata for name and builds its descriptor. With
// withDeps false the dependency subtree is left unresolved, which is
// enough for list and search style views.
func (r *Resolver) Resolve(name string, withDeps bool) (*Package, error) {
	infos, err := r.index.Info([]string{name})
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return r.FromInfo(infos[0], withDeps)
}

// FromInfo builds a descriptor from already-fetched metadata, resolving
// the AUR dependency subtree when withDeps is set.
func (r *Resolver) FromInfo(info aur.PackageInfo, withDeps bool) (*Package, error) {
	pkg := newPackage(info)
	if !withDeps {
		return pkg, nil
	}

	inProgress := map[string]bool{pkg.Name: true}
	if err := r.resolveDeps(pkg, inProgress); err != nil {
		return nil, err
	}
	return pkg, nil
}

// resolveDeps populates pkg.AurDeps with descriptors for every declared
// dependency pacman cannot satisfy, recursively. inProgress carries the
// names on the current resolution path so a cycle becomes an error
// instead of unbounded recursion.
func (r *Resolver) resolveDeps(pkg *Package, inProgress map[string]bool) error {
	var missing []string
	for _, name := range pkg.DependencyNames() {
		if inProgress[name] {
			return fmt.Errorf("%w: %s depends on %s", ErrDependencyCycle, pkg.Name, name)
		}
		if r.planned[name] {
			// Already part of the plan via another subtree
			continue
		}
		if r.native.IsAvailable(name) {
			// Satisfied from the sync repositories, excluded from
			// the plan
			continue
		}
		missing = append(missing, name)
	}

	if len(missing) == 0 {
		return nil
	}

	infos, err := r.index.Info(missing)
	if err != nil {
		return err
	}

	byName := make(map[string]aur.PackageInfo, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}

	for _, name := range missing {
		info, ok := byName[name]
		if !ok {
			return fmt.Errorf("%w: %s (dependency of %s)", ErrNotFound, name, pkg.Name)
		}

		dep := newPackage(info)
		r.planned[name] = true

		inProgress[name] = true
		if err := r.resolveDeps(dep, inProgress); err != nil {
			return err
		}
		delete(inProgress, name)

		pkg.AurDeps = append(pkg.AurDeps, dep)
	}

	return nil
}
