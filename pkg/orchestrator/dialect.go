package orchestrator

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/autolink/pkg/errors"
)

// Dialect is the argument vocabulary of a package manager.
type Dialect struct {
	Name    string
	Install []string // Install the package's external dependencies
	Publish []string // Register the package in the global link registry
	Unlink  []string // Remove the package from the link registry

	consume func(dep string) []string
	run     func(script string) []string
	add     func(dep string, dev bool) []string
	remove  func(dep string) []string
}

// Consume returns the arguments that link dep into the current package.
func (d Dialect) Consume(dep string) []string { return d.consume(dep) }

// Run returns the arguments that run a manifest script.
func (d Dialect) Run(script string) []string { return d.run(script) }

// Add returns the arguments that add a registry dependency.
func (d Dialect) Add(dep string, dev bool) []string { return d.add(dep, dev) }

// Remove returns the arguments that remove a dependency.
func (d Dialect) Remove(dep string) []string { return d.remove(dep) }

// Yarn is the default dialect.
var Yarn = Dialect{
	Name:    "yarn",
	Install: []string{"install"},
	Publish: []string{"link"},
	Unlink:  []string{"unlink"},
	consume: func(dep string) []string { return []string{"link", dep} },
	run:     func(script string) []string { return []string{"run", script} },
	add: func(dep string, dev bool) []string {
		if dev {
			return []string{"add", dep, "--dev"}
		}
		return []string{"add", dep}
	},
	remove: func(dep string) []string { return []string{"remove", dep} },
}

// Npm drives npm with the equivalent commands.
var Npm = Dialect{
	Name:    "npm",
	Install: []string{"install"},
	Publish: []string{"link"},
	Unlink:  []string{"unlink"},
	consume: func(dep string) []string { return []string{"link", dep} },
	run:     func(script string) []string { return []string{"run", script} },
	add: func(dep string, dev bool) []string {
		if dev {
			return []string{"install", dep, "--save-dev"}
		}
		return []string{"install", dep}
	},
	remove: func(dep string) []string { return []string{"uninstall", dep} },
}

// DialectFor picks the dialect for a tool binary name or path.
func DialectFor(tool string) (Dialect, error) {
	base := strings.TrimSuffix(filepath.Base(tool), filepath.Ext(tool))
	switch base {
	case "yarn", "yarnpkg":
		return Yarn, nil
	case "npm":
		return Npm, nil
	default:
		return Dialect{}, errors.New(errors.ErrCodeUnsupported, "unsupported package manager: %q (must be yarn or npm)", tool)
	}
}
