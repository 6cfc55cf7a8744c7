// Package manifest locates and parses Python dependency manifests.
//
// Three manifest kinds are recognized by exact filename: requirements.txt,
// setup.py, and pyproject.toml. Each parser converts one file into the flat
// dependency specifier strings it declares; deduplication across files is the
// caller's concern, as is any filtering of which discovered files to parse.
package manifest

import (
	"io/fs"
	"path/filepath"
)

// Kind identifies a recognized dependency manifest format.
type Kind string

const (
	// KindRequirements is the plain-list format (requirements.txt).
	KindRequirements Kind = "requirements"

	// KindSetup is the list embedded in packaging code (setup.py).
	KindSetup Kind = "setup"

	// KindPyproject is the structured TOML format (pyproject.toml).
	KindPyproject Kind = "pyproject"
)

// Kinds lists all manifest kinds in the order files are parsed.
var Kinds = []Kind{KindRequirements, KindSetup, KindPyproject}

// Filenames maps the exact (case-sensitive) manifest filenames to their kind.
var Filenames = map[string]Kind{
	"requirements.txt": KindRequirements,
	"setup.py":         KindSetup,
	"pyproject.toml":   KindPyproject,
}

// Find walks the tree under root and groups every recognized manifest file by
// kind, in traversal order. Paths are returned absolute. Every kind is present
// in the result, possibly with an empty slice.
//
// The walk deliberately descends into everything — virtualenvs, vendored
// trees, .git — matching filename exactly. A missing or unreadable root is a
// caller precondition; unreadable subtrees are skipped.
func Find(root string) map[Kind][]string {
	found := map[Kind][]string{
		KindRequirements: {},
		KindSetup:        {},
		KindPyproject:    {},
	}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		kind, ok := Filenames[d.Name()]
		if !ok {
			return nil
		}
		if abs, aerr := filepath.Abs(path); aerr == nil {
			path = abs
		}
		found[kind] = append(found[kind], path)
		return nil
	})

	return found
}
