package resolve

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aurmate/aurmate/internal/aur"
	"github.com/aurmate/aurmate/internal/pacman"
)

// mockIndex serves canned metadata and records every requested name
type mockIndex struct {
	packages map[string]aur.PackageInfo
	queried  []string
}

func (m *mockIndex) Info(names []string) ([]aur.PackageInfo, error) {
	var results []aur.PackageInfo
	for _, name := range names {
		m.queried = append(m.queried, name)
		if info, ok := m.packages[name]; ok {
			results = append(results, info)
		}
	}
	return results, nil
}

func newIndex(infos ...aur.PackageInfo) *mockIndex {
	m := &mockIndex{packages: make(map[string]aur.PackageInfo)}
	for _, info := range infos {
		m.packages[info.Name] = info
	}
	return m
}

func nativeWith(available ...string) *pacman.MockExecutor {
	set := make(map[string]bool)
	for _, name := range available {
		set[name] = true
	}
	return &pacman.MockExecutor{
		IsAvailableFunc: func(name string) bool { return set[name] },
	}
}

func TestStripConstraint(t *testing.T) {
	tests := []struct {
		dep  string
		want string
	}{
		{"foo>=1.2", "foo"},
		{"foo<=2", "foo"},
		{"foo=1.0", "foo"},
		{"foo>1", "foo"},
		{"foo", "foo"},
		{"lib32-glibc>=2.38", "lib32-glibc"},
	}
	for _, tt := range tests {
		if got := StripConstraint(tt.dep); got != tt.want {
			t.Errorf("StripConstraint(%q) = %q, want %q", tt.dep, got, tt.want)
		}
	}
}

func TestDependencyNamesStripAndDedupe(t *testing.T) {
	pkg := &Package{
		RunDeps:   []string{"alpha>=1.0", "beta"},
		BuildDeps: []string{"gamma", "alpha"},
		CheckDeps: []string{"beta=2.0", "delta"},
	}

	got := pkg.DependencyNames()
	want := []string{"alpha", "beta", "gamma", "delta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DependencyNames = %v, want %v", got, want)
	}
}

func TestResolveDeferredLeavesSubtreeEmpty(t *testing.T) {
	index := newIndex(aur.PackageInfo{
		Name: "tool", Version: "1.0-1", Depends: []string{"missing-dep"},
	})
	r := NewResolver(nativeWith(), index)

	pkg, err := r.Resolve("tool", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(pkg.AurDeps) != 0 {
		t.Errorf("deferred resolve populated AurDeps: %+v", pkg.AurDeps)
	}
	// Only the root lookup should have hit the index
	if !reflect.DeepEqual(index.queried, []string{"tool"}) {
		t.Errorf("queried = %v, want only tool", index.queried)
	}
}

func TestResolveExcludesNativelyAvailableDeps(t *testing.T) {
	index := newIndex(
		aur.PackageInfo{Name: "tool", Version: "1.0-1", Depends: []string{"git", "aur-lib"}},
		aur.PackageInfo{Name: "aur-lib", Version: "0.2-1"},
	)
	r := NewResolver(nativeWith("git"), index)

	pkg, err := r.Resolve("tool", true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(pkg.AurDeps) != 1 || pkg.AurDeps[0].Name != "aur-lib" {
		t.Fatalf("AurDeps = %+v, want only aur-lib", pkg.AurDeps)
	}

	// A natively available dependency must never reach the index
	for _, name := range index.queried {
		if name == "git" {
			t.Error("resolver queried the AUR for a natively available package")
		}
	}
}

func TestResolveMetadataWithoutDepKeys(t *testing.T) {
	// Mirrors an RPC record lacking Depends/MakeDepends/CheckDepends
	index := newIndex(aur.PackageInfo{Name: "standalone", Version: "2.0-1"})
	r := NewResolver(nativeWith(), index)

	pkg, err := r.Resolve("standalone", true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(pkg.RunDeps) != 0 || len(pkg.BuildDeps) != 0 || len(pkg.CheckDeps) != 0 {
		t.Errorf("dependency lists should be empty, got %+v", pkg)
	}
	if len(pkg.Plan()) != 0 {
		t.Errorf("plan should be empty for a dependency-free package")
	}
}

func TestResolvePlanIsLeafFirst(t *testing.T) {
	// root -> mid -> leaf
	index := newIndex(
		aur.PackageInfo{Name: "root", Version: "1.0-1", Depends: []string{"mid"}},
		aur.PackageInfo{Name: "mid", Version: "1.0-1", Depends: []string{"leaf"}},
		aur.PackageInfo{Name: "leaf", Version: "1.0-1"},
	)
	r := NewResolver(nativeWith(), index)

	pkg, err := r.Resolve("root", true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	plan := pkg.Plan()
	var names []string
	for _, p := range plan {
		names = append(names, p.Name)
	}
	if !reflect.DeepEqual(names, []string{"leaf", "mid"}) {
		t.Errorf("plan order = %v, want [leaf mid]", names)
	}
}

func TestResolveDeduplicatesSharedDependency(t *testing.T) {
	// Both branches depend on shared; it must appear once in the plan
	index := newIndex(
		aur.PackageInfo{Name: "root", Version: "1.0-1", Depends: []string{"left", "right"}},
		aur.PackageInfo{Name: "left", Version: "1.0-1", Depends: []string{"shared"}},
		aur.PackageInfo{Name: "right", Version: "1.0-1", Depends: []string{"shared"}},
		aur.PackageInfo{Name: "shared", Version: "1.0-1"},
	)
	r := NewResolver(nativeWith(), index)

	pkg, err := r.Resolve("root", true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	counts := make(map[string]int)
	for _, p := range pkg.Plan() {
		counts[p.Name]++
	}
	if counts["shared"] != 1 {
		t.Errorf("shared planned %d times, want 1", counts["shared"])
	}
}

func TestResolveDetectsDependencyCycle(t *testing.T) {
	index := newIndex(
		aur.PackageInfo{Name: "a", Version: "1.0-1", Depends: []string{"b"}},
		aur.PackageInfo{Name: "b", Version: "1.0-1", Depends: []string{"a"}},
	)
	r := NewResolver(nativeWith(), index)

	if _, err := r.Resolve("a", true); !errors.Is(err, ErrDependencyCycle) {
		t.Errorf("error = %v, want ErrDependencyCycle", err)
	}
}

func TestResolveUnknownDependencyFails(t *testing.T) {
	index := newIndex(
		aur.PackageInfo{Name: "p", Version: "1.0-1", Depends: []string{"q"}},
	)
	r := NewResolver(nativeWith(), index)

	_, err := r.Resolve("p", true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestResolveUnknownRootFails(t *testing.T) {
	r := NewResolver(nativeWith(), newIndex())
	if _, err := r.Resolve("ghost", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestResolveSplitPackageUsesPackageBase(t *testing.T) {
	index := newIndex(aur.PackageInfo{
		Name: "linux-ck-headers", PackageBase: "linux-ck", Version: "6.6-1",
	})
	r := NewResolver(nativeWith(), index)

	pkg, err := r.Resolve("linux-ck-headers", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pkg.Base != "linux-ck" {
		t.Errorf("Base = %q, want linux-ck", pkg.Base)
	}
}
