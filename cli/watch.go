package cli

// This file contains watch mode: rebuild the current host platform whenever
// the entry point's directory changes.

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounceWindow coalesces the event bursts editors produce on save.
const debounceWindow = 300 * time.Millisecond

// watch runs an initial current-platform build and then rebuilds on every
// change under the entry point's directory. Build failures are reported and
// watching continues; the loop only ends with the process.
func (a *App) watch(logger zerolog.Logger, opts buildOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watchDir := filepath.Dir(opts.Entry)
	if err := watcher.Add(watchDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", watchDir, err)
	}

	logger.Info().Str("dir", watchDir).Msg("Watching for changes")

	if err := a.buildCurrent(logger, opts); err != nil {
		logger.Error().Err(err).Msg("Initial build failed")
	}

	var debounce *time.Timer
	rebuild := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Change detected")
			if debounce == nil {
				debounce = time.AfterFunc(debounceWindow, func() {
					rebuild <- struct{}{}
				})
			} else {
				debounce.Reset(debounceWindow)
			}
		case <-rebuild:
			debounce = nil
			if err := a.buildCurrent(logger, opts); err != nil {
				logger.Error().Err(err).Msg("Rebuild failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("Watcher error")
		}
	}
}
