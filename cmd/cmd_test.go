package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"wav/03a01Wa.wav": "RIFF",
		"wav/11b09Fd.wav": "RIFF",
		"erkennung.txt":   "Satz erkannt\n03a01Wa.wav 90,5\n11b09Fd.wav 66\xa0\n",
	}
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBuildThenInspect(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	src := filepath.Join(dir, "corpus")
	dst := filepath.Join(dir, "out")
	writeSource(t, src)

	out, err := run(t, "build", "--source-dir", src, "--output", dst)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, want := range []string{"files", "anger", "happiness"} {
		if !strings.Contains(out, want) {
			t.Errorf("build output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "inspect", dst)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"emotion", "filewise", "speaker", "misc", "a01", "b09"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestRootBuildsByDefault(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	src := filepath.Join(dir, "corpus")
	dst := filepath.Join(dir, "custom-out")
	writeSource(t, src)

	out, err := run(t, "--source-dir", src, "--output", dst)
	if err != nil {
		t.Fatalf("emodb: %v", err)
	}
	if !strings.Contains(out, dst) {
		t.Errorf("summary does not name %s:\n%s", dst, out)
	}
	if _, err := os.Stat(filepath.Join(dst, "db.yaml")); err != nil {
		t.Errorf("db.yaml not written to --output: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "emodb")); !os.IsNotExist(err) {
		t.Errorf("default output dir was used: %v", err)
	}
}

func TestInspectMissingDatabase(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	if _, err := run(t, "inspect", filepath.Join(dir, "nothing")); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestBuildRejectsBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	if _, err := run(t, "build", "--log-level", "shout"); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestVersion(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "emodb dev") {
		t.Errorf("version output = %q", out.String())
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
