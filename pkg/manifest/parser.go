package manifest

import "github.com/libfix/libfix/pkg/observability"

// Parser parses manifest files into dependency specifiers. Parse failures are
// never returned as errors: a missing file or undecodable document yields an
// empty result plus a diagnostic event, so one broken manifest never halts an
// audit.
type Parser struct {
	diag observability.Reporter
}

// NewParser creates a Parser reporting diagnostics to diag (nil for none).
func NewParser(diag observability.Reporter) *Parser {
	return &Parser{diag: observability.OrNoop(diag)}
}

// Parse dispatches to the parser for the given manifest kind.
// An unknown kind yields nil.
func (p *Parser) Parse(kind Kind, path string) []Specifier {
	switch kind {
	case KindRequirements:
		return p.ParseRequirements(path)
	case KindSetup:
		return p.ParseSetup(path)
	case KindPyproject:
		return p.ParsePyproject(path)
	default:
		return nil
	}
}
