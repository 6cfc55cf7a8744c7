// Package pypi provides a client for the PyPI JSON API.
//
// A single Lookup issues one GET against /pypi/{name}/json and returns the
// metadata document the inactivity classifier consumes: the info block
// (latest version, trove classifiers) and the full releases map with per-file
// upload timestamps. Package names are normalized per PEP 503 before hitting
// the registry.
package pypi
