package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "opal.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\nversion = \"0.1.0\"\n")

	manifest, ok, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest() failed: %v", err)
	}
	if !ok {
		t.Fatalf("manifest not found in %s", dir)
	}
	if manifest.Config.Package.Name != "demo" {
		t.Fatalf("package name: got %q, want %q", manifest.Config.Package.Name, "demo")
	}
	if manifest.Root != dir {
		t.Fatalf("root: got %q, want %q", manifest.Root, dir)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(dir, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	manifest, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest() from nested dir: ok=%v err=%v", ok, err)
	}
	if manifest.Root != dir {
		t.Fatalf("root: got %q, want %q", manifest.Root, dir)
	}
}

func TestLoadManifestMissingName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nversion = \"0.1.0\"\n")

	_, ok, err := LoadManifest(dir)
	if !ok {
		t.Fatalf("manifest file should have been found")
	}
	if err == nil {
		t.Fatalf("expected an error for a manifest without [package].name")
	}
}

func TestLoadManifestRejectsAbsoluteInclude(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n\n[format]\ninclude = [\"/etc\"]\n")

	_, _, err := LoadManifest(dir)
	if err == nil {
		t.Fatalf("expected an error for an absolute [format].include entry")
	}
}

func TestSourceDirsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n")
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatalf("failed to create src: %v", err)
	}

	manifest, _, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest() failed: %v", err)
	}
	dirs := manifest.SourceDirs()
	if len(dirs) != 1 || dirs[0] != filepath.Join(dir, "src") {
		t.Fatalf("source dirs: got %v, want [%s]", dirs, filepath.Join(dir, "src"))
	}
}

func TestSourceDirsInclude(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n\n[format]\ninclude = [\"lib\", \"examples\"]\n")

	manifest, _, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest() failed: %v", err)
	}
	dirs := manifest.SourceDirs()
	want := []string{filepath.Join(dir, "lib"), filepath.Join(dir, "examples")}
	if len(dirs) != 2 || dirs[0] != want[0] || dirs[1] != want[1] {
		t.Fatalf("source dirs: got %v, want %v", dirs, want)
	}
}

func TestFindProjectRootNotFound(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := FindProjectRoot(dir)
	if err != nil {
		t.Fatalf("FindProjectRoot() failed: %v", err)
	}
	if ok {
		t.Fatalf("unexpected project root inside an empty temp dir")
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	a := HashBytes([]byte("a"))
	b := HashBytes([]byte("b"))
	if Combine(a, b) == Combine(b, a) {
		t.Fatalf("Combine should depend on argument order")
	}
	if Combine(a) == a {
		t.Fatalf("Combine of a single digest should still rehash")
	}
}
