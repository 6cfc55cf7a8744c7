package manifest

import (
	"os"

	"github.com/BurntSushi/toml"
)

// wildcardConstraint in a poetry table means "any version"; the specifier is
// then the bare package name.
const wildcardConstraint = "*"

type pyprojectDoc struct {
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// ParsePyproject parses a pyproject.toml file and returns the entries of the
// poetry dependency table (tool.poetry.dependencies) as specifiers: the key
// concatenated with its version constraint, with the `*` wildcard omitted.
// The `python` interpreter constraint is excluded. Entries come back in file
// order. Files without a poetry table yield nothing.
func (p *Parser) ParsePyproject(path string) []Specifier {
	data, err := os.ReadFile(path)
	if err != nil {
		p.diag.FileUnreadable(path, err)
		return nil
	}

	var doc pyprojectDoc
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		p.diag.ManifestMalformed(path, err)
		return nil
	}

	deps := doc.Tool.Poetry.Dependencies
	if len(deps) == 0 {
		return nil
	}

	// meta.Keys preserves document order, which the map has lost.
	var specs []Specifier
	for _, key := range meta.Keys() {
		if len(key) != 4 || key[0] != "tool" || key[1] != "poetry" || key[2] != "dependencies" {
			continue
		}
		name := key[3]
		if name == "python" {
			continue
		}
		value, ok := deps[name]
		if !ok {
			continue
		}
		specs = append(specs, Specifier(name+constraintOf(value)))
	}
	return specs
}

// constraintOf renders a poetry dependency value as a version constraint
// suffix. Plain strings are used as-is; table values ({version = "^4.0",
// extras = [...]}) contribute their version field. Wildcards and anything
// non-versioned collapse to the empty suffix.
func constraintOf(value any) string {
	switch v := value.(type) {
	case string:
		if v != wildcardConstraint {
			return v
		}
	case map[string]any:
		if s, ok := v["version"].(string); ok && s != wildcardConstraint {
			return s
		}
	}
	return ""
}
