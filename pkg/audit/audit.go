// Package audit orchestrates the dependency audit pipeline: locate manifest
// files, parse them into specifiers, look each package up on the registry, and
// classify it. Data flows one direction; no stage feeds back into an earlier
// one.
package audit

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/libfix/libfix/pkg/inactive"
	"github.com/libfix/libfix/pkg/integrations/pypi"
	"github.com/libfix/libfix/pkg/manifest"
	"github.com/libfix/libfix/pkg/observability"
)

// Options configure a single audit run.
type Options struct {
	// Root is the directory tree to scan for manifest files.
	Root string

	// Refresh bypasses the registry response cache.
	Refresh bool

	// ExcludeFilter, when non-nil, drops located manifest files before
	// parsing. It returns true for paths to exclude. The locator itself
	// stays unfiltered; exclusion is a shell-layer concern.
	ExcludeFilter func(path string) bool
}

// Result is the audited outcome for one dependency specifier.
type Result struct {
	Specifier     manifest.Specifier `json:"specifier"`
	Package       string             `json:"package"`
	LatestVersion string             `json:"latest_version,omitempty"`
	Verdict       inactive.Verdict   `json:"verdict"`
}

// Report is the outcome of one audit run.
type Report struct {
	ID         uuid.UUID                  `json:"id"`
	Root       string                     `json:"root"`
	StartedAt  time.Time                  `json:"started_at"`
	FinishedAt time.Time                  `json:"finished_at"`
	Files      map[manifest.Kind][]string `json:"files"`
	Results    []Result                   `json:"results"`
}

// InactiveCount returns how many results were flagged inactive.
func (r *Report) InactiveCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Verdict.Inactive {
			n++
		}
	}
	return n
}

// FileCount returns how many manifest files the run located (after
// exclusion).
func (r *Report) FileCount() int {
	n := 0
	for _, paths := range r.Files {
		n += len(paths)
	}
	return n
}

// Runner executes audit runs against a registry client and classifier.
type Runner struct {
	client     *pypi.Client
	classifier *inactive.Classifier
	parser     *manifest.Parser
	diag       observability.Reporter
	logger     *log.Logger
}

// NewRunner wires a runner. diag may be nil for silent diagnostics; logger
// may be nil for the default logger.
func NewRunner(client *pypi.Client, classifier *inactive.Classifier, diag observability.Reporter, logger *log.Logger) *Runner {
	diag = observability.OrNoop(diag)
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		client:     client,
		classifier: classifier,
		parser:     manifest.NewParser(diag),
		diag:       diag,
		logger:     logger,
	}
}

// Run executes the pipeline and returns a completed report. Recoverable
// failures (unreadable files, failed lookups) surface as diagnostics and
// degraded results, never as errors; the only error return is context
// cancellation, checked between lookups.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	report := &Report{
		ID:        uuid.New(),
		Root:      opts.Root,
		StartedAt: time.Now(),
		Files:     manifest.Find(opts.Root),
	}
	if opts.ExcludeFilter != nil {
		for kind, paths := range report.Files {
			report.Files[kind] = exclude(paths, opts.ExcludeFilter)
		}
	}

	var specs []manifest.Specifier
	for _, kind := range manifest.Kinds {
		for _, path := range report.Files[kind] {
			specs = append(specs, r.parser.Parse(kind, path)...)
		}
	}
	specs = manifest.Dedup(specs)
	r.logger.Debug("parsed manifests", "files", report.FileCount(), "specifiers", len(specs))

	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := spec.Name()
		var meta *pypi.Metadata
		if name != "" {
			m, err := r.client.Lookup(ctx, name, opts.Refresh)
			if err != nil {
				r.diag.LookupFailed(name, err)
			} else {
				meta = m
			}
		}

		result := Result{
			Specifier: spec,
			Package:   name,
			Verdict:   r.classifier.Classify(meta, name),
		}
		if meta != nil && meta.Info != nil {
			result.LatestVersion = meta.Info.Version
		}
		report.Results = append(report.Results, result)
	}

	report.FinishedAt = time.Now()
	r.logger.Debug("audit finished",
		"id", report.ID,
		"results", len(report.Results),
		"inactive", report.InactiveCount(),
		"took", report.FinishedAt.Sub(report.StartedAt))
	return report, nil
}

func exclude(paths []string, drop func(string) bool) []string {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if !drop(p) {
			kept = append(kept, p)
		}
	}
	return kept
}
