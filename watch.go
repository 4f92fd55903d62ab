// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// watch.go — reloads a file-backed wrapper when the file is edited outside
// the process. The parent directory is watched so editors that save by
// rename are still seen; bursts of events are coalesced.

package persistent

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultWatchDebounce = 100 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	// Debounce is how long to wait after the last event before reloading.
	// Defaults to 100ms.
	Debounce time.Duration
	// OnReload, if set, is called after each reload attempt. err is nil
	// when the new contents were loaded.
	OnReload func(err error)
}

func (o *WatchOptions) defaults() {
	if o.Debounce <= 0 {
		o.Debounce = defaultWatchDebounce
	}
}

// Watch reloads g whenever its file changes on disk, until ctx is done.
// Changes whose bytes match what the wrapper last read or wrote are
// ignored. Only FilePath locations can be watched.
func Watch[T any](ctx context.Context, g *Guarded[T], opts WatchOptions) error {
	opts.defaults()

	var (
		loc    Location
		logger Logger
		name   string
	)
	g.Read(func(p *Persistent[T]) {
		loc, logger, name = p.location, p.logger, p.name
	})
	if loc.Kind != FilePath {
		return fmt.Errorf("%w: cannot watch %s location of %s", ErrConfig, loc.Kind, name)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", name, err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(loc.Path)); err != nil {
		return fmt.Errorf("watch %s: %w", name, err)
	}

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != loc.Path || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(opts.Debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "name", name, "err", err)
		case <-timer.C:
			var reloaded bool
			err := g.Write(func(p *Persistent[T]) error {
				var err error
				reloaded, err = p.reloadIfChanged()
				return err
			})
			if err != nil {
				logger.Error("failed to reload after external change", "name", name, "err", err)
			}
			if (reloaded || err != nil) && opts.OnReload != nil {
				opts.OnReload(err)
			}
		}
	}
}
