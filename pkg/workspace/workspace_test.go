package workspace

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/autolink/pkg/errors"
)

func writeManifest(t *testing.T, root, rel, content string) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "core", `{"name":"core"}`)
	writeManifest(t, root, "ui", `{"name":"ui"}`)
	writeManifest(t, root, "@acme/theme", `{"name":"@acme/theme"}`)
	writeManifest(t, root, "ui/nested", `{"name":"ui/nested"}`)
	writeManifest(t, root, "core/node_modules/react", `{"name":"react"}`)
	writeManifest(t, root, ".cache/tmp", `{"name":".cache/tmp"}`)
	if err := os.MkdirAll(filepath.Join(root, "empty", "deeper"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(root, nil)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	want := []string{"@acme/theme", "core", "ui"}
	if !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_SegmentOrder(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "a-c", `{"name":"a-c"}`)
	writeManifest(t, root, "a/b", `{"name":"a/b"}`)

	got, err := Discover(root, nil)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if want := []string{"a/b", "a-c"}; !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want depth-first order %v", got, want)
	}
}

func TestDiscover_Exclude(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "core", `{"name":"core"}`)
	writeManifest(t, root, "fixtures/broken", `{"name":"nope"}`)
	writeManifest(t, root, "examples/demo", `{"name":"examples/demo"}`)

	got, err := Discover(root, []string{"fixtures", "examples/*"})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if want := []string{"core"}; !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_InvalidPattern(t *testing.T) {
	_, err := Discover(t.TempDir(), []string{"[unclosed"})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Discover() error = %v, want INVALID_CONFIG", err)
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), nil)
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Discover() error = %v, want INVALID_PATH", err)
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "core", `{"name":"core","version":"1.0.0"}`)
	writeManifest(t, root, "ui", `{
  "name": "ui",
  "dependencies": {"react": "^18.0.0"},
  "localDependencies": ["core"],
  "scripts": {"build": "tsc"}
}`)

	pkgs, err := Load(root, Options{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(pkgs) != 2 {
		t.Fatalf("len(pkgs) = %d, want 2", len(pkgs))
	}

	ui := Index(pkgs)["ui"]
	if ui == nil {
		t.Fatal("ui not indexed")
	}
	if ui.Dir != filepath.Join(root, "ui") {
		t.Errorf("Dir = %q", ui.Dir)
	}
	if !slices.Equal(ui.Manifest.LocalDependencies, []string{"core"}) {
		t.Errorf("LocalDependencies = %v", ui.Manifest.LocalDependencies)
	}
	if !ui.Manifest.HasScript("build") || ui.Manifest.HasScript("test") {
		t.Error("HasScript mismatch")
	}
}

func TestLoad_ManifestMismatch(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "libs/core", `{"name":"core"}`)

	_, err := Load(root, Options{})
	if !errors.Is(err, errors.ErrCodeManifestMismatch) {
		t.Fatalf("Load() error = %v, want MANIFEST_MISMATCH", err)
	}
	msg := errors.UserMessage(err)
	if !strings.Contains(msg, "core") || !strings.Contains(msg, "libs/core") {
		t.Errorf("message %q should name declared and expected names", msg)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "core", `{"name":`)

	_, err := Load(root, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Load() error = %v, want INVALID_MANIFEST", err)
	}
}

func TestManifest_ExternalDependencies(t *testing.T) {
	m, err := ParseManifest([]byte(`{
  "name": "app",
  "dependencies": {"react": "^18", "lodash": "^4"},
  "devDependencies": {"jest": "^29", "react": "^18"}
}`), "package.json")
	if err != nil {
		t.Fatalf("ParseManifest() error: %v", err)
	}
	if got, want := m.ExternalDependencies(), []string{"jest", "lodash", "react"}; !slices.Equal(got, want) {
		t.Errorf("ExternalDependencies() = %v, want %v", got, want)
	}
}
