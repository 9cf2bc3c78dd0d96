package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"shuttercheck/pkg/ui"
)

var watchQuiet bool

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-run the timeline analysis whenever the folder changes",
	Args:  cobra.MaximumNArgs(1),
	Long: `Watch a folder and re-run the shutter-count timeline whenever image
files are added, changed, or removed.

Handy while copying sample shots off a seller's memory card: drop files
into the folder and the analysis refreshes on its own. The pipeline
stays read-only; nothing is persisted between re-runs.

Use --quiet to suppress the change notifications.`,
	RunE: runWatchTimeline,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Suppress change notifications")
	watchCmd.Flags().StringVarP(&timelineExpectedModel, "expected-model", "m", "", "Expected EXIF camera model (default from config)")
	watchCmd.Flags().BoolVar(&timelineNoFilter, "no-model-filter", false, "Do not filter images by model")
	watchCmd.Flags().StringVar(&timelineBackend, "backend", "", "Extraction backend (goexif, exiftool, auto)")
}

func runWatchTimeline(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	dir, err := targetDir(args)
	if err != nil {
		return err
	}
	topts := resolveTimelineOptions(cmd)

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if !watchQuiet {
		fmt.Println(ui.FormatMuted("Watching: " + dir))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	// First pass immediately, then once per settled burst of changes.
	if err := runTimelineAnalysis(ctx, dir, topts); err != nil {
		return err
	}

	debounceDuration := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	rerun := newDebouncer(debounceDuration, func() {
		if !watchQuiet {
			fmt.Println()
			fmt.Println(ui.FormatInfo("File changes detected, re-analyzing..."))
			fmt.Println()
		}
		if err := runTimelineAnalysis(ctx, dir, topts); err != nil {
			fmt.Println(ui.FormatError("Analysis failed: " + err.Error()))
		}
	})

	// Event loop
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !watchedExtension(event.Name, topts.Extensions) {
				continue
			}

			baseName := filepath.Base(event.Name)
			if strings.HasPrefix(baseName, ".") || strings.HasPrefix(baseName, "~") {
				continue
			}

			if event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) {
				rerun.Trigger()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watcher stopped"))
			}
			return nil
		}
	}
}

// debouncer coalesces a burst of triggers into one callback after a
// quiet period. The timer callback runs on its own goroutine, so the
// pending flag is guarded.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending bool
	fn      func()
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

// Trigger marks work pending and restarts the quiet-period timer.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.mu.Unlock()
	d.fn()
}

// watchedExtension mirrors the enumerator's allow-list semantics: an
// empty list means every file is interesting.
func watchedExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == e {
			return true
		}
	}
	return false
}
