package inactive

import "github.com/BurntSushi/toml"

// Override describes a known-abandoned package and what to use instead.
type Override struct {
	Reason       string   `toml:"reason" json:"reason"`
	Alternatives []string `toml:"alternatives" json:"alternatives"`
}

// Overrides maps package names to curated entries. Matching is exact and
// case-sensitive; no registry-style name normalization is applied.
type Overrides map[string]Override

// DefaultOverrides returns the built-in table of packages known to be
// abandoned on PyPI.
func DefaultOverrides() Overrides {
	return Overrides{
		"nose": {
			Reason:       "unmaintained since 2015 and broken on current Python releases.",
			Alternatives: []string{"pytest", "nose2"},
		},
		"pycrypto": {
			Reason:       "abandoned in 2013 with unpatched vulnerabilities.",
			Alternatives: []string{"pycryptodome", "cryptography"},
		},
		"sklearn": {
			Reason:       "deprecated alias; the real distribution is scikit-learn.",
			Alternatives: []string{"scikit-learn"},
		},
		"PIL": {
			Reason:       "original Imaging Library, last released in 2009.",
			Alternatives: []string{"pillow"},
		},
		"flask-script": {
			Reason:       "unmaintained; Flask ships its own CLI since 0.11.",
			Alternatives: []string{"flask"},
		},
	}
}

// overridesFile is the on-disk layout: one [packages.<name>] table per entry.
type overridesFile struct {
	Packages map[string]Override `toml:"packages"`
}

// LoadOverrides reads extra entries from a TOML file and merges them over
// base. File entries win on conflict; base is not modified.
func LoadOverrides(path string, base Overrides) (Overrides, error) {
	var doc overridesFile
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, err
	}
	merged := make(Overrides, len(base)+len(doc.Packages))
	for name, entry := range base {
		merged[name] = entry
	}
	for name, entry := range doc.Packages {
		merged[name] = entry
	}
	return merged, nil
}
