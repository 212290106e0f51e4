// Package sample enumerates the sample library on disk.
package sample

import (
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"
)

// Library is the result of one walk over the samples root. Names are the
// base file names in walk order; the index of a name is only meaningful
// for the Library that produced it.
type Library struct {
	names []string
	paths map[string]string
}

// Discover returns the base name of every file under root, recursively.
// A missing root or unreadable entries produce fewer names, never an error.
func Discover(root string) []string {
	return Scan(root, nil).Names()
}

// Scan walks root and records each file's base name and full path. When two
// files share a base name, Path resolves to the one walked last.
func Scan(root string, log *zap.Logger) Library {
	if log == nil {
		log = zap.NewNop()
	}
	lib := Library{names: []string{}, paths: map[string]string{}}

	// WalkDir does not follow a symlinked root.
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		log.Debug("sample root unavailable", zap.String("root", root), zap.Error(err))
		return lib
	}
	_ = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debug("skipping sample entry", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() && path != resolved {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		// Paths stay under root as given, so a linked library keeps its link.
		if rel, err := filepath.Rel(resolved, path); err == nil {
			path = filepath.Join(root, rel)
		}
		name := d.Name()
		lib.names = append(lib.names, name)
		lib.paths[name] = path
		return nil
	})
	return lib
}

// Names returns a copy of the discovered names.
func (l Library) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Len is the number of discovered entries, duplicates included.
func (l Library) Len() int {
	return len(l.names)
}

// Path returns the file path for a sample name.
func (l Library) Path(name string) (string, bool) {
	p, ok := l.paths[name]
	return p, ok
}
