package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/libfix/libfix/pkg/audit"
)

// auditOpts holds the command-line flags for the audit command.
type auditOpts struct {
	jsonOut bool     // emit the report as JSON instead of the styled view
	output  string   // report destination (stdout if empty)
	refresh bool     // bypass cached registry responses
	noCache bool     // disable the response cache entirely
	exclude []string // glob patterns for manifest paths to skip
}

// auditCommand creates the audit command.
func (c *CLI) auditCommand() *cobra.Command {
	var opts auditOpts

	cmd := &cobra.Command{
		Use:   "audit [path]",
		Short: "Audit Python dependencies against PyPI",
		Long: `Audit scans a directory tree for requirements.txt, setup.py, and
pyproject.toml files, looks every declared dependency up on PyPI, and flags
packages that look unmaintained.

Examples:
  libfix audit                          # audit the current directory
  libfix audit ./backend                # audit a subtree
  libfix audit --exclude '*/.venv/*'    # skip virtualenv manifests
  libfix audit --json -o report.json    # machine-readable output`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return c.runAudit(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit the report as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report to a file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached registry responses")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "glob pattern for manifest paths to skip (repeatable)")

	return cmd
}

func (c *CLI) runAudit(ctx context.Context, root string, opts auditOpts) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if info, err := os.Stat(root); err != nil {
		return fmt.Errorf("audit root: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("audit root %s is not a directory", root)
	}

	filter, err := excludeFilter(opts.exclude)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Auditing %s...", root))
	spinner.Start()

	report, err := runner.Run(ctx, audit.Options{
		Root:          root,
		Refresh:       opts.refresh,
		ExcludeFilter: filter,
	})
	if err != nil {
		spinner.StopWithError("Audit failed")
		return fmt.Errorf("audit: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Audited %d packages", len(report.Results)))

	if opts.jsonOut {
		return writeJSON(report, opts.output)
	}
	renderReport(report)
	return nil
}

// excludeFilter compiles the given glob patterns into a path predicate for
// the audit pipeline. Patterns match the full path or the base name. Returns
// nil when no patterns are given.
func excludeFilter(patterns []string) (func(string) bool, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}

	return func(path string) bool {
		base := filepath.Base(path)
		for _, g := range globs {
			if g.Match(path) || g.Match(base) {
				return true
			}
		}
		return false
	}, nil
}

// writeJSON marshals the report and writes it to path, or stdout when path
// is empty.
func writeJSON(report *audit.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	printSuccess("Report written to %s", path)
	return nil
}
