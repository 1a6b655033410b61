package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/martinemde/marlea/loader"
)

// watchDebounce groups the burst of events an editor produces on save.
const watchDebounce = 150 * time.Millisecond

var checkCmd = &cobra.Command{
	Use:   "check <network.csv>...",
	Short: "Check that network files parse",
	Long:  "Parse every given file and report which ones fail. With --watch, keep re-checking files as they change.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("watch", false, "Re-check files whenever they are written")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	watch, _ := cmd.Flags().GetBool("watch")
	reg := newRegistry()
	out := cmd.OutOrStdout()

	results, err := reg.LoadAll(ctx, args, viper.GetInt("jobs"))
	if err != nil {
		return err
	}
	failed := 0
	for _, res := range results {
		if !report(out, res) {
			failed++
		}
	}

	if watch {
		return watchFiles(ctx, reg, args, out)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
	}
	return nil
}

// report prints one result line and returns whether the file parsed.
func report(w io.Writer, res loader.Result) bool {
	if res.Err != nil {
		_, _ = fmt.Fprintf(w, "FAIL %s\n", res.Err)
		return false
	}
	_, _ = fmt.Fprintf(w, "ok   %s (%d reactions, %d species)\n",
		res.Path, res.Network.Reactions.Len(), len(res.Network.Solution))
	return true
}

// watchFiles re-checks paths on every write until ctx ends. Parent
// directories are watched so files replaced by rename are still seen.
func watchFiles(ctx context.Context, reg *loader.Registry, paths []string, out io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	display := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		display[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	logger.Info("watching", "files", len(paths), "dirs", len(dirs))

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs := filepath.Clean(event.Name)
			if _, ok := display[abs]; !ok {
				continue
			}
			pending[abs] = true
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for abs := range pending {
				changed = append(changed, abs)
			}
			sort.Strings(changed)
			clear(pending)

			for _, abs := range changed {
				path := display[abs]
				net, err := reg.LoadFile(path)
				report(out, loader.Result{Path: path, Network: net, Err: err})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
