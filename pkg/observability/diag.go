// Package observability provides structured diagnostics for the audit pipeline.
//
// The core recovers from every malformed input locally (missing manifests,
// undecodable TOML, failed registry lookups, unparsable version strings) and
// reports what happened through a [Reporter] instead of returning errors or
// printing to a console. Front ends inject whatever implementation suits them:
// the CLI logs events, tests collect them, embedders can forward them to any
// event channel.
//
// Reporters are injected, never registered globally, so two pipelines in the
// same process can diagnose to different sinks.
package observability

// Reporter receives diagnostic events from the locate → parse → lookup →
// classify pipeline. Implementations must be safe for use from a single
// goroutine; the core never calls a reporter concurrently.
type Reporter interface {
	// FileUnreadable reports a manifest file that could not be opened or read.
	FileUnreadable(path string, err error)

	// ManifestMalformed reports a manifest that was read but could not be decoded.
	ManifestMalformed(path string, err error)

	// LookupFailed reports a registry lookup that produced no metadata.
	LookupFailed(pkg string, err error)

	// VersionSkipped reports a release key that did not parse as a version
	// and was skipped during staleness analysis.
	VersionSkipped(pkg, version string, err error)
}

// NoopReporter discards all events.
type NoopReporter struct{}

func (NoopReporter) FileUnreadable(string, error)         {}
func (NoopReporter) ManifestMalformed(string, error)      {}
func (NoopReporter) LookupFailed(string, error)           {}
func (NoopReporter) VersionSkipped(string, string, error) {}

// OrNoop returns r, or a NoopReporter when r is nil, so callers can hold a
// reporter field without nil checks at every event site.
func OrNoop(r Reporter) Reporter {
	if r == nil {
		return NoopReporter{}
	}
	return r
}
