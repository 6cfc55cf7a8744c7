package manifest

import (
	"os"
	"regexp"
	"strings"
)

// installRequiresRE captures the first install_requires list literal. The
// negated class spans newlines, so a literal list without a `]` inside its
// strings is captured whole.
var installRequiresRE = regexp.MustCompile(`install_requires\s*=\s*\[([^\]]*)\]`)

// ParseSetup extracts the install_requires entries from a setup.py file.
//
// This is a best-effort textual capture, not a Python parse: lists built by
// concatenation, comprehension, or helper calls are invisible to it, and a
// `]` inside a requirement string truncates the capture. That narrowness is
// intentional — running or parsing arbitrary packaging code is out of scope.
func (p *Parser) ParseSetup(path string) []Specifier {
	data, err := os.ReadFile(path)
	if err != nil {
		p.diag.FileUnreadable(path, err)
		return nil
	}

	m := installRequiresRE.FindSubmatch(data)
	if m == nil {
		return nil
	}

	var specs []Specifier
	for _, piece := range strings.Split(string(m[1]), ",") {
		piece = strings.TrimSpace(piece)
		piece = strings.Trim(piece, `"'`)
		if piece = strings.TrimSpace(piece); piece == "" {
			continue
		}
		specs = append(specs, Specifier(piece))
	}
	return specs
}
