// Package watch re-runs an action whenever files under a directory change.
package watch

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/templating/pkg/errors"
	"github.com/arthur-debert/templating/pkg/logging"
)

// DefaultDebounce is how long a directory must be quiet before the action runs
const DefaultDebounce = 200 * time.Millisecond

var fs = afero.NewOsFs()

// Watcher waits for bursts of filesystem events to settle, then runs an action
type Watcher struct {
	debounce time.Duration
	logger   zerolog.Logger
}

// New returns a Watcher. A non-positive debounce selects DefaultDebounce.
func New(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		debounce: debounce,
		logger:   logging.GetLogger("watch"),
	}
}

// Run watches dir and its subdirectories until ctx is cancelled, calling fn
// once per settled burst of changes. Calls never overlap. An error from fn
// is logged and watching continues.
func (w *Watcher) Run(ctx context.Context, dir string, fn func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrIO, "cannot create file watcher")
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			w.logger.Warn().Err(err).Msg("Failed to close file watcher")
		}
	}()

	if err := w.addTree(watcher, dir); err != nil {
		return err
	}
	w.logger.Info().Str("dir", dir).Dur("debounce", w.debounce).Msg("Watching for changes")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Msg("Watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.logger.Trace().Str("path", event.Name).Str("op", event.Op.String()).Msg("File event")

			// fsnotify is not recursive, new directories are added as they appear
			if event.Has(fsnotify.Create) {
				if info, err := fs.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(watcher, event.Name); err != nil {
						w.logger.Warn().Err(err).Str("path", event.Name).Msg("Failed to watch new directory")
					}
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher error")

		case <-timer.C:
			if err := fn(); err != nil {
				w.logger.Error().Err(err).Msg("Update failed, waiting for further changes")
			}
		}
	}
}

// addTree watches dir and every directory below it
func (w *Watcher) addTree(watcher *fsnotify.Watcher, dir string) error {
	return afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot walk '%s'", path).WithPath(path)
		}
		if !info.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot watch '%s'", path).WithPath(path)
		}
		return nil
	})
}
