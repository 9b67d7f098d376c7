package pacman

// InstalledRecord pairs a foreign (AUR-installed) package name with its
// installed version, as reported by pacman -Qm.
type InstalledRecord struct {
	Name    string
	Version string
}

// Executor defines the pacman operations the rest of the tool depends on.
// This interface allows for mocking pacman in tests.
type Executor interface {
	// IsAvailable reports whether the sync repositories carry an exact
	// match for name
	IsAvailable(name string) bool

	// InstalledVersion returns the installed version of name, and false
	// when the package is not installed
	InstalledVersion(name string) (string, bool)

	// Install installs a repository package. asDependency marks it as a
	// dependency in pacman's metadata so autoremove logic can reclaim it
	Install(name string, asDependency bool) error

	// Remove uninstalls a package
	Remove(name string) error

	// ForeignPackages lists all installed packages that did not come
	// from the sync repositories, with their installed versions
	ForeignPackages() ([]InstalledRecord, error)
}
