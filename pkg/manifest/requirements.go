package manifest

import (
	"bufio"
	"os"
	"strings"
)

// ParseRequirements parses a requirements.txt file: one specifier per
// non-empty, non-comment line, trimmed of surrounding whitespace. Lines are
// returned in file order; duplicates are kept.
func (p *Parser) ParseRequirements(path string) []Specifier {
	f, err := os.Open(path)
	if err != nil {
		p.diag.FileUnreadable(path, err)
		return nil
	}
	defer f.Close()

	var specs []Specifier
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		specs = append(specs, Specifier(line))
	}
	if err := scanner.Err(); err != nil {
		p.diag.FileUnreadable(path, err)
	}
	return specs
}
