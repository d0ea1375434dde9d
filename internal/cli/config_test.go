package cli

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/autolink/pkg/errors"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(t.TempDir(), "")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.PackagesDir != "packages" || cfg.Tool != "yarn" || cfg.Artifact != ".autolink" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Concurrency != 0 || cfg.Strict {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfig_File(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, configFile), `
packages_dir = "libs"
tool = "npm"
concurrency = 4
strict = true
exclude = ["fixtures/**", "examples/*"]
`)

	cfg, err := loadConfig(root, "")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.PackagesDir != "libs" || cfg.Tool != "npm" || cfg.Concurrency != 4 || !cfg.Strict {
		t.Errorf("cfg = %+v", cfg)
	}
	if !slices.Equal(cfg.Exclude, []string{"fixtures/**", "examples/*"}) {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if cfg.Artifact != ".autolink" {
		t.Errorf("unset keys should keep defaults, Artifact = %q", cfg.Artifact)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, configFile), `tool = "npm"`)
	t.Setenv(envTool, "yarn")
	t.Setenv(envPackagesDir, "modules")

	cfg, err := loadConfig(root, "")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Tool != "yarn" || cfg.PackagesDir != "modules" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `packages_dir = "src"`)

	cfg, err := loadConfig(t.TempDir(), path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.PackagesDir != "src" {
		t.Errorf("PackagesDir = %q, want src", cfg.PackagesDir)
	}

	if _, err := loadConfig(dir, filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("missing explicit config: error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `packages_dir = `},
		{"unknown key", `packges_dir = "libs"`},
		{"absolute packages dir", `packages_dir = "/abs"`},
		{"traversal artifact", `artifact = "../.autolink"`},
		{"negative concurrency", `concurrency = -1`},
		{"unsupported tool", `tool = "pnpm"`},
		{"wrong type", `strict = "yes"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, filepath.Join(root, configFile), tt.content)
			if _, err := loadConfig(root, ""); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}
