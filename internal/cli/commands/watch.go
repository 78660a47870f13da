package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/dopler/pkg/core"
	"github.com/leapstack-labs/dopler/pkg/stats"
	"github.com/spf13/cobra"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Reload a model whenever its file changes",
		Long: `Load a model, then reload it every time the file is written and print
its statistics or the error that stopped it from loading.

Runs until interrupted.`,
		Example: `  # Keep checking a spreadsheet export while editing it
  dopler watch car.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd, args[0], opts)
		},
	}

	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 100*time.Millisecond, "Wait this long after the last write before reloading")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, path string, opts *WatchOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	var mu sync.Mutex
	report := func(m *core.DecisionModel, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			r.Error(err.Error())
			return
		}
		stats.LogModelStatistics(cmdCtx.Logger, m)
		r.Success(fmt.Sprintf("%s: %d questions, %d rules", m.Name,
			stats.VariabilityElementCount(m), stats.ConstraintCount(m)))
	}

	w := &modelWatcher{
		path:     path,
		debounce: opts.Debounce,
		load:     cmdCtx.LoadModel,
		onReload: report,
		logger:   cmdCtx.Logger,
	}
	return w.Run(ctx)
}

// modelWatcher reloads a model file on change.
type modelWatcher struct {
	path     string
	debounce time.Duration
	load     func(string) (*core.DecisionModel, error)
	onReload func(*core.DecisionModel, error)
	logger   *slog.Logger
}

// Run loads the model once, then reloads it after each write until ctx is
// done. The parent directory is watched so editors that replace the file
// are noticed.
func (w *modelWatcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	w.onReload(w.load(w.path))

	// Debounce timer
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || filepath.Clean(event.Name) != abs {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				w.logger.Debug("file changed, reloading", "file", event.Name)
				w.onReload(w.load(w.path))
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}
