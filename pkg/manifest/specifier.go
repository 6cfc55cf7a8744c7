package manifest

import "strings"

// Specifier is a normalized dependency string such as "requests>=2.20".
// The package name is everything before the first version-constraint
// character.
type Specifier string

// nameTerminators are the characters that end the name portion of a
// specifier: the first of `> < = !` cuts it off.
const nameTerminators = "><=!"

// Name returns the package name portion of the specifier, trimmed of
// surrounding whitespace. "requests>=2.20" yields "requests"; a bare name
// yields itself.
func (s Specifier) Name() string {
	str := string(s)
	if i := strings.IndexAny(str, nameTerminators); i >= 0 {
		str = str[:i]
	}
	return strings.TrimSpace(str)
}

// Dedup collapses exact duplicate specifiers, preserving first-seen order.
// "numpy" and "numpy>=1.20" are distinct specifiers and both survive.
func Dedup(specs []Specifier) []Specifier {
	seen := make(map[Specifier]bool, len(specs))
	out := make([]Specifier, 0, len(specs))
	for _, s := range specs {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
