// Package watch reloads the dataset when its source file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const DefaultDebounce = 500 * time.Millisecond

// Reloader is satisfied by app.QueryService.
type Reloader interface {
	Reload(ctx context.Context) (bool, error)
}

type FileWatcher struct {
	w        *fsnotify.Watcher
	path     string
	base     string
	target   Reloader
	debounce time.Duration
}

// New watches the directory holding path so atomic renames and re-creates
// of the file are seen too.
func New(path string, target Reloader, debounce time.Duration) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{w: w, path: abs, base: filepath.Base(abs), target: target, debounce: debounce}, nil
}

// Run blocks until ctx is done, reloading after each burst of changes settles.
func (fw *FileWatcher) Run(ctx context.Context) {
	defer fw.w.Close()
	log.Info().Str("path", fw.path).Msg("watching review source")

	timer := time.NewTimer(fw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if fw.relevant(ev) {
				log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("source changed")
				timer.Reset(fw.debounce)
			}

		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("watcher error")

		case <-timer.C:
			changed, err := fw.target.Reload(ctx)
			if err != nil {
				// keep serving the previous dataset
				log.Error().Err(err).Str("path", fw.path).Msg("reload failed")
				continue
			}
			log.Info().Bool("changed", changed).Str("path", fw.path).Msg("source reloaded")

		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

func (fw *FileWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != fw.base {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}
