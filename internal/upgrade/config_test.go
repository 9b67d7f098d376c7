package upgrade

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadIgnoreConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "upgrade.toml")

	content := "ignore = [\"spotify\", \"linux-ck\"]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadIgnoreConfig(path)
	if err != nil {
		t.Fatalf("LoadIgnoreConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg.Ignore, []string{"spotify", "linux-ck"}) {
		t.Errorf("Ignore = %v", cfg.Ignore)
	}
}

func TestLoadIgnoreConfigMissingFile(t *testing.T) {
	cfg, err := LoadIgnoreConfig(filepath.Join(t.TempDir(), "upgrade.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(cfg.Ignore) != 0 {
		t.Errorf("Ignore = %v, want empty", cfg.Ignore)
	}
}

func TestLoadIgnoreConfigInvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "upgrade.toml")
	if err := os.WriteFile(path, []byte("ignore = not-a-list"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadIgnoreConfig(path); err == nil {
		t.Error("invalid TOML should be an error")
	}
}
