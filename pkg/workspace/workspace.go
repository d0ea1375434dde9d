// Package workspace loads the local packages of a monorepo.
//
// A workspace is a packages directory whose sub-directories (at any depth)
// each hold a package.json. The relative path of a package directory is its
// expected name, so packages/@acme/ui must declare "name": "@acme/ui".
package workspace

import (
	"path/filepath"

	"github.com/matzehuels/autolink/pkg/errors"
)

// Package is a local package discovered in the workspace.
type Package struct {
	Name     string    // Declared name, equal to Path
	Path     string    // Slash-separated path relative to the packages directory
	Dir      string    // Directory on disk
	Manifest *Manifest // Parsed package.json
}

// Options configures workspace loading.
type Options struct {
	Exclude []string // doublestar globs relative to the packages directory
}

// Load discovers every package below root and reads its manifest, returning
// packages in discovery order.
//
// The declared name of each package must equal its path relative to root;
// the first mismatch fails with MANIFEST_MISMATCH naming both values. No
// graph is built here, so mismatches surface before any dependency analysis.
func Load(root string, opts Options) ([]*Package, error) {
	dirs, err := Discover(root, opts.Exclude)
	if err != nil {
		return nil, err
	}

	pkgs := make([]*Package, 0, len(dirs))
	for _, rel := range dirs {
		dir := filepath.Join(root, filepath.FromSlash(rel))
		m, err := ReadManifest(filepath.Join(dir, ManifestFile))
		if err != nil {
			return nil, err
		}
		if m.Name != rel {
			return nil, errors.New(errors.ErrCodeManifestMismatch, "%s should be %s", m.Name, rel)
		}
		if err := errors.ValidatePackageName(m.Name); err != nil {
			return nil, err
		}
		pkgs = append(pkgs, &Package{Name: m.Name, Path: rel, Dir: dir, Manifest: m})
	}
	return pkgs, nil
}

// Index maps package names to packages.
func Index(pkgs []*Package) map[string]*Package {
	m := make(map[string]*Package, len(pkgs))
	for _, p := range pkgs {
		m[p.Name] = p
	}
	return m
}
