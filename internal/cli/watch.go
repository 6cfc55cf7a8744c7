package cli

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/libfix/libfix/pkg/audit"
	"github.com/libfix/libfix/pkg/manifest"
)

// watchOpts holds the command-line flags for the watch command.
type watchOpts struct {
	debounce time.Duration // quiet period before re-auditing
	refresh  bool          // bypass cached registry responses on each run
	noCache  bool          // disable the response cache entirely
	exclude  []string      // glob patterns for manifest paths to skip
}

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	opts := watchOpts{debounce: 2 * time.Second}

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-audit whenever a manifest file changes",
		Long: `Watch runs an audit, then monitors the directory tree and re-runs it
whenever a requirements.txt, setup.py, or pyproject.toml changes. Bursts of
filesystem events are debounced into a single run. Stop with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return c.runWatch(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.debounce, "debounce", opts.debounce, "quiet period before re-auditing")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached registry responses")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "glob pattern for manifest paths to skip (repeatable)")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, root string, opts watchOpts) error {
	logger := loggerFromContext(ctx)

	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	filter, err := excludeFilter(opts.exclude)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	runOnce := func() {
		report, err := runner.Run(ctx, audit.Options{
			Root:          root,
			Refresh:       opts.refresh,
			ExcludeFilter: filter,
		})
		if err != nil {
			logger.Warn("Audit aborted", "err", err)
			return
		}
		renderReport(report)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	runOnce()
	printInfo("Watching %s for manifest changes (Ctrl-C to stop)", root)

	// Debounce: every manifest event re-arms the timer; the audit runs only
	// after a quiet period.
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need watches of their own.
			if event.Op.Has(fsnotify.Create) {
				if err := watchTree(watcher, event.Name); err == nil {
					logger.Debug("Watching new directory", "path", event.Name)
				}
			}
			if _, isManifest := manifest.Filenames[filepath.Base(event.Name)]; !isManifest {
				continue
			}
			if !event.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			logger.Debug("Manifest changed", "path", event.Name, "op", event.Op)
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(opts.debounce)
			timerC = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", "err", err)

		case <-timerC:
			timerC = nil
			runOnce()
		}
	}
}

// watchTree adds path and every directory below it to the watcher. Non-
// directory paths are ignored.
func watchTree(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}
