package orchestrator

import (
	"strings"

	"github.com/matzehuels/autolink/pkg/errors"
)

// Mode selects the schedule a Command runs.
type Mode int

const (
	ModeInstall Mode = iota + 1
	ModeLink
	ModeClean
	ModeBootstrap
	ModeExec
	ModeAdd
	ModeRemove
)

var modeNames = map[Mode]string{
	ModeInstall:   "install",
	ModeLink:      "link",
	ModeClean:     "clean",
	ModeBootstrap: "bootstrap",
	ModeExec:      "exec",
	ModeAdd:       "add",
	ModeRemove:    "remove",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Scoped reports whether the mode targets a single package.
func (m Mode) Scoped() bool {
	return m == ModeExec || m == ModeAdd || m == ModeRemove
}

// Command is a parsed invocation. Only the fields relevant to Mode are read:
// Exec uses Scope and Script; Add and Remove use Scope, Dependency and Dev.
type Command struct {
	Mode       Mode
	Scope      string // Target package for scoped modes
	Script     string // Script name for ModeExec
	Dependency string // Dependency to add or remove
	Dev        bool   // Add as a development dependency
}

// Validate checks that the fields required by the mode are present.
func (c Command) Validate() error {
	if _, ok := modeNames[c.Mode]; !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown mode %d", int(c.Mode))
	}
	if !c.Mode.Scoped() {
		return nil
	}
	if c.Scope == "" {
		return errors.New(errors.ErrCodeInvalidInput, "%s requires a scope", c.Mode)
	}
	switch c.Mode {
	case ModeExec:
		return errors.ValidateScriptName(c.Script)
	default:
		return errors.ValidateNpmPackageName(dependencyName(c.Dependency))
	}
}

// dependencyName strips a version range from dep, so "react@^18" and
// "@acme/ui@1.2.0" validate as "react" and "@acme/ui".
func dependencyName(dep string) string {
	if i := strings.LastIndex(dep, "@"); i > 0 {
		return dep[:i]
	}
	return dep
}
