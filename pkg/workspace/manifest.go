package workspace

import (
	"encoding/json"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/autolink/pkg/errors"
)

// ManifestFile is the name of the manifest every package directory contains.
const ManifestFile = "package.json"

// Manifest is the subset of package.json autolink reads.
//
// Local dependencies are declared in their own "localDependencies" array,
// separate from the registry-resolved "dependencies" maps. Its order is the
// order linked dependencies are consumed in.
type Manifest struct {
	Name              string            `json:"name"`
	Version           string            `json:"version"`
	Private           bool              `json:"private"`
	Scripts           map[string]string `json:"scripts"`
	Dependencies      map[string]string `json:"dependencies"`
	DevDependencies   map[string]string `json:"devDependencies"`
	PeerDependencies  map[string]string `json:"peerDependencies"`
	LocalDependencies []string          `json:"localDependencies"`
}

// HasScript reports whether the manifest defines the named script.
func (m *Manifest) HasScript(name string) bool {
	_, ok := m.Scripts[name]
	return ok
}

// ExternalDependencies returns the sorted names of registry dependencies of
// all kinds.
func (m *Manifest) ExternalDependencies() []string {
	var names []string
	for _, set := range []map[string]string{m.Dependencies, m.DevDependencies, m.PeerDependencies} {
		for name := range set {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return names
}

// ReadManifest reads and decodes the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read %s", path)
	}
	return ParseManifest(data, path)
}

// ParseManifest decodes manifest bytes; source names the file in errors.
func ParseManifest(data []byte, source string) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "error trying to parse %s", source)
	}
	m.Name = strings.TrimSpace(m.Name)
	return &m, nil
}
