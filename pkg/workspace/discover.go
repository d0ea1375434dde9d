package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"

	"github.com/matzehuels/autolink/pkg/errors"
)

// Discover returns the package directories below root, relative to root and
// slash-separated.
//
// A directory holding a package.json is a package and is not descended any
// further. node_modules and hidden directories are never entered, and
// directories matching one of the exclude globs (doublestar syntax, relative
// to root) are skipped with everything below them.
//
// The walk runs concurrently; the result is sorted segment by segment, which
// matches a depth-first scan visiting entries in lexical order.
func Discover(root string, exclude []string) ([]string, error) {
	for _, p := range exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid exclude pattern: %q", p)
		}
	}

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "packages directory %s", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "packages directory %s is not a directory", root)
	}

	var (
		mu   sync.Mutex
		dirs []string
	)
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}

		name := d.Name()
		if name == "node_modules" || strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if excluded(rel, exclude) {
			return filepath.SkipDir
		}

		if _, err := os.Stat(filepath.Join(path, ManifestFile)); err == nil {
			mu.Lock()
			dirs = append(dirs, rel)
			mu.Unlock()
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "scan %s", root)
	}

	slices.SortFunc(dirs, func(a, b string) int {
		return slices.Compare(strings.Split(a, "/"), strings.Split(b, "/"))
	})
	return dirs, nil
}

func excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
