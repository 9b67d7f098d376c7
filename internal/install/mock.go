package install

import (
	"github.com/aurmate/aurmate/internal/aur"
	"github.com/aurmate/aurmate/internal/resolve"
)

// MockBuilder implements Builder for testing and records every call.
type MockBuilder struct {
	CloneFunc func(repoURL, dir string) error
	BuildFunc func(dir string, asDependency bool) error

	Cloned []CloneCall
	Built  []BuildCall
}

// CloneCall records one Clone invocation
type CloneCall struct {
	RepoURL string
	Dir     string
}

// BuildCall records one Build invocation
type BuildCall struct {
	Dir          string
	AsDependency bool
}

// Clone records the call and delegates to the configured function
func (m *MockBuilder) Clone(repoURL, dir string) error {
	m.Cloned = append(m.Cloned, CloneCall{RepoURL: repoURL, Dir: dir})
	if m.CloneFunc != nil {
		return m.CloneFunc(repoURL, dir)
	}
	return nil
}

// Build records the call and delegates to the configured function
func (m *MockBuilder) Build(dir string, asDependency bool) error {
	m.Built = append(m.Built, BuildCall{Dir: dir, AsDependency: asDependency})
	if m.BuildFunc != nil {
		return m.BuildFunc(dir, asDependency)
	}
	return nil
}

// MockDecider implements Decider for testing; unset functions confirm.
type MockDecider struct {
	ConfirmNativeInstallFunc func(name string) bool
	ConfirmInstallFunc       func(pkg *resolve.Package) bool
	ConfirmBuildScriptFunc   func(name string, script []byte) bool
	SelectFromSearchFunc     func(results []aur.PackageInfo) (string, bool)
}

// ConfirmNativeInstall delegates to the configured function
func (m *MockDecider) ConfirmNativeInstall(name string) bool {
	if m.ConfirmNativeInstallFunc != nil {
		return m.ConfirmNativeInstallFunc(name)
	}
	return true
}

// ConfirmInstall delegates to the configured function
func (m *MockDecider) ConfirmInstall(pkg *resolve.Package) bool {
	if m.ConfirmInstallFunc != nil {
		return m.ConfirmInstallFunc(pkg)
	}
	return true
}

// ConfirmBuildScript delegates to the configured function
func (m *MockDecider) ConfirmBuildScript(name string, script []byte) bool {
	if m.ConfirmBuildScriptFunc != nil {
		return m.ConfirmBuildScriptFunc(name, script)
	}
	return true
}

// SelectFromSearch delegates to the configured function
func (m *MockDecider) SelectFromSearch(results []aur.PackageInfo) (string, bool) {
	if m.SelectFromSearchFunc != nil {
		return m.SelectFromSearchFunc(results)
	}
	return "", false
}

// Ensure mocks implement their interfaces
var (
	_ Builder = (*MockBuilder)(nil)
	_ Decider = (*MockDecider)(nil)
)
