package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/finsight-labs/finsight-cli/internal/logger"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [corpus-dir]",
	Short: "Watch a corpus and re-index on changes",
	Long: `Indexes the corpus, then watches the tree and re-indexes whenever
files change. Document-level deduplication makes re-runs cheap: only
new documents are processed. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second,
		"quiet period after a change before re-indexing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	root := args[0]
	ctx := cmd.Context()

	report, err := ingestService.Ingest(ctx, root)
	if err != nil {
		return fmt.Errorf("initial indexing failed: %w", err)
	}
	cmd.Println(report.Summary())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, root); err != nil {
		return err
	}
	cmd.Printf("Watching %s\n", root)

	// Bursts of events (a corpus rsync, an unzip) collapse into one
	// re-index after the debounce window.
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				// New company or period directories must be watched too.
				if err := watchTree(watcher, event.Name); err != nil {
					logger.Debug("Watch %s: %v", event.Name, err)
				}
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename) {
				resetDebounce(timer, watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-timer.C:
			report, err := ingestService.Ingest(ctx, root)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Warn("Re-indexing failed: %v", err)
				continue
			}
			cmd.Println(report.Summary())
		}
	}
}

// resetDebounce restarts the debounce window. A fired-but-unread timer
// is drained first, otherwise the stale value in timer.C would trigger
// one immediate extra re-index.
func resetDebounce(timer *time.Timer, d time.Duration) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(d)
}

// watchTree registers path and every directory below it. Non-directory
// paths are ignored.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The entry may already be gone; events for it are moot.
			return nil //nolint:nilerr
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
		return nil
	})
}
