// Package inactive decides whether a PyPI package looks abandoned, based on
// registry metadata and a curated table of known-dead packages.
package inactive

import (
	"fmt"
	"time"

	"github.com/libfix/libfix/pkg/integrations/pypi"
	"github.com/libfix/libfix/pkg/observability"
)

// Trove classifiers that carry a maintenance signal.
const (
	classifierInactive = "Development Status :: 7 - Inactive"
	classifierMature   = "Development Status :: 6 - Mature"
	classifierStable   = "Development Status :: 5 - Production/Stable"
)

const (
	reasonInsufficient = "Could not retrieve sufficient PyPI information."
	reasonInactiveMark = "Marked as 'Inactive' on PyPI."
	reasonMature       = "Seems to be in a mature/stable state."
	reasonActive       = "Seems active."

	overridePrefix         = "Known inactive package: "
	overrideFallbackReason = "listed in the curated override table."
)

// DefaultThresholdYears is how long a package may go without a release before
// it counts as stale.
const DefaultThresholdYears = 2.0

const daysPerYear = 365.25

// Verdict is the outcome of classifying a single package. It is computed
// fresh per call and never mutated afterwards.
type Verdict struct {
	Inactive     bool     `json:"inactive"`
	Reason       string   `json:"reason"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// Classifier evaluates package metadata against the inactivity rules. The
// zero value classifies with no overrides, the default staleness threshold,
// the system clock, and silent diagnostics.
type Classifier struct {
	// Overrides is checked before any metadata. Lookups are exact and
	// case-sensitive.
	Overrides Overrides

	// ThresholdYears is the staleness cutoff. Zero means DefaultThresholdYears.
	ThresholdYears float64

	// Now supplies the current time. Nil means time.Now.
	Now func() time.Time

	Diag observability.Reporter
}

// NewClassifier returns a classifier using the given override table and the
// default threshold.
func NewClassifier(overrides Overrides, diag observability.Reporter) *Classifier {
	return &Classifier{Overrides: overrides, Diag: diag}
}

// Classify applies the inactivity rules in order and returns the first
// verdict that fires:
//
//  1. Curated override by name, metadata never inspected.
//  2. Missing metadata (nil, or neither info nor releases present).
//  3. Latest release older than the staleness threshold.
//  4. First development-status classifier with a maintenance signal.
//  5. Default: active.
//
// Classify never returns an error; malformed metadata degrades to a
// diagnostic and the next rule.
func (c *Classifier) Classify(meta *pypi.Metadata, name string) Verdict {
	if entry, ok := c.Overrides[name]; ok {
		reason := entry.Reason
		if reason == "" {
			reason = overrideFallbackReason
		}
		return Verdict{Inactive: true, Reason: overridePrefix + reason, Alternatives: entry.Alternatives}
	}

	if meta == nil || (meta.Info == nil && len(meta.Releases) == 0) {
		return Verdict{Reason: reasonInsufficient}
	}

	if _, uploaded, ok := latestRelease(meta, name, observability.OrNoop(c.Diag)); ok {
		years := c.now().Sub(uploaded).Hours() / 24 / daysPerYear
		if years > c.threshold() {
			return Verdict{Inactive: true, Reason: fmt.Sprintf("Last release was over %.1f years ago.", years)}
		}
	}

	if meta.Info != nil {
		for _, classifier := range meta.Info.Classifiers {
			switch classifier {
			case classifierInactive:
				return Verdict{Inactive: true, Reason: reasonInactiveMark}
			case classifierMature, classifierStable:
				return Verdict{Reason: reasonMature}
			}
		}
	}

	return Verdict{Reason: reasonActive}
}

func (c *Classifier) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Classifier) threshold() float64 {
	if c.ThresholdYears > 0 {
		return c.ThresholdYears
	}
	return DefaultThresholdYears
}
