package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/autolink/pkg/errors"
	"github.com/matzehuels/autolink/pkg/orchestrator"
	"github.com/matzehuels/autolink/pkg/pipeline"
)

// configFile is looked up in the invocation root when --config is not given.
const configFile = "autolink.toml"

// Environment variables overriding the config file.
const (
	envTool        = "AUTOLINK_TOOL"
	envPackagesDir = "AUTOLINK_PACKAGES_DIR"
)

// Config is the contents of autolink.toml.
type Config struct {
	PackagesDir string   `toml:"packages_dir"` // relative to the root
	Tool        string   `toml:"tool"`         // yarn or npm, optionally a path
	Artifact    string   `toml:"artifact"`     // snapshot path relative to the root
	Concurrency int      `toml:"concurrency"`  // install/clean limit, 0 = unbounded
	Strict      bool     `toml:"strict"`       // unknown local dependencies are errors
	Exclude     []string `toml:"exclude"`      // globs relative to packages_dir
}

func defaultConfig() Config {
	return Config{
		PackagesDir: pipeline.DefaultPackagesDir,
		Tool:        "yarn",
		Artifact:    ".autolink",
	}
}

// loadConfig reads the config for root. An explicit path must exist; the
// default autolink.toml is optional. Environment overrides are applied last.
func loadConfig(root, path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, configFile)
	}

	if _, err := os.Stat(path); err == nil {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	} else if explicit {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}

	if v := os.Getenv(envTool); v != "" {
		cfg.Tool = v
	}
	if v := os.Getenv(envPackagesDir); v != "" {
		cfg.PackagesDir = v
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if err := errors.ValidatePath(c.PackagesDir); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "packages_dir")
	}
	if c.Artifact != "" {
		if err := errors.ValidatePath(c.Artifact); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "artifact")
		}
	}
	if c.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "concurrency must not be negative, got %d", c.Concurrency)
	}
	if _, err := orchestrator.DialectFor(c.Tool); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "tool")
	}
	return nil
}
