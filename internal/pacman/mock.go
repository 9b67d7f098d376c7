package pacman

// MockExecutor implements Executor for testing.
// Each method can be configured with a custom function to control behavior.
type MockExecutor struct {
	IsAvailableFunc      func(name string) bool
	InstalledVersionFunc func(name string) (string, bool)
	InstallFunc          func(name string, asDependency bool) error
	RemoveFunc           func(name string) error
	ForeignPackagesFunc  func() ([]InstalledRecord, error)

	// AvailabilityQueries records every name passed to IsAvailable
	AvailabilityQueries []string
	// Installed records every (name, asDependency) passed to Install
	Installed []InstallCall
}

// InstallCall records one Install invocation
type InstallCall struct {
	Name         string
	AsDependency bool
}

// IsAvailable reports repository availability
func (m *MockExecutor) IsAvailable(name string) bool {
	m.AvailabilityQueries = append(m.AvailabilityQueries, name)
	if m.IsAvailableFunc != nil {
		return m.IsAvailableFunc(name)
	}
	return false
}

// InstalledVersion returns the configured installed version
func (m *MockExecutor) InstalledVersion(name string) (string, bool) {
	if m.InstalledVersionFunc != nil {
		return m.InstalledVersionFunc(name)
	}
	return "", false
}

// Install records the call and delegates to the configured function
func (m *MockExecutor) Install(name string, asDependency bool) error {
	m.Installed = append(m.Installed, InstallCall{Name: name, AsDependency: asDependency})
	if m.InstallFunc != nil {
		return m.InstallFunc(name, asDependency)
	}
	return nil
}

// Remove delegates to the configured function
func (m *MockExecutor) Remove(name string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(name)
	}
	return nil
}

// ForeignPackages delegates to the configured function
func (m *MockExecutor) ForeignPackages() ([]InstalledRecord, error) {
	if m.ForeignPackagesFunc != nil {
		return m.ForeignPackagesFunc()
	}
	return nil, nil
}

// Ensure MockExecutor implements Executor interface
var _ Executor = (*MockExecutor)(nil)
