package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	chdirForTest(t, t.TempDir())

	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.Dir != "emodb-src" || cfg.Source.Archive != "emodb.zip" || cfg.Paths.Outputs != "emodb" {
		t.Errorf("paths = %+v / %+v", cfg.Source, cfg.Paths)
	}
	if cfg.Source.URL != "http://emodb.bilderbar.info/download/download.zip" {
		t.Errorf("url = %q", cfg.Source.URL)
	}
	if cfg.Media.SampleRate != 16000 || cfg.Media.Channels != 1 {
		t.Errorf("media = %+v", cfg.Media)
	}
	if got := cfg.TableFile(); got != filepath.Join("emodb-src", "erkennung.txt") {
		t.Errorf("TableFile = %q", got)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("CONFIG_ENV", "test")
	t.Setenv("EMODB_STORAGE_SQLITE", "true")

	body := "paths:\n  outputs: out/emodb\nmedia:\n  verify: true\n"
	if err := os.MkdirAll(filepath.Join(dir, "config", "test"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "test", "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.Outputs != "out/emodb" {
		t.Errorf("outputs = %q", cfg.Paths.Outputs)
	}
	if !cfg.Media.Verify {
		t.Error("media.verify not read from file")
	}
	if !cfg.Storage.SQLite {
		t.Error("storage.sqlite not read from environment")
	}
	if cfg.Source.Dir != "emodb-src" {
		t.Errorf("default lost: source.dir = %q", cfg.Source.Dir)
	}
}

func TestValidate(t *testing.T) {
	chdirForTest(t, t.TempDir())
	v := New()
	v.Set("paths.outputs", "emodb-src")
	_, err := Load(v)
	if err == nil || !strings.Contains(err.Error(), "must differ") {
		t.Fatalf("err = %v, want outputs/source clash", err)
	}
}

// chdirForTest changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir, added in Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore Chdir: %v", err)
		}
	})
}
