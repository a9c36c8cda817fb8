/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package watcher observes a source directory and triggers debounced
// rebuilds.
//
// Filesystem events arrive on the fsnotify channel and are drained by a
// single consumer goroutine, which applies debounce-by-timer-reset: every
// relevant event (re)arms the debounce timer, so a burst of events (an
// editor's multi-step save, a bulk copy) collapses into one rebuild after
// the window of quiet. A rebuild failure is logged and otherwise ignored;
// the previously published snapshot stays in service.
package watcher

import (
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"dirpx.dev/tabx/apis"
	"dirpx.dev/tabx/config"
)

// Rebuilder is the watcher's view of the registry: a single rebuild-and-
// publish entry point.
type Rebuilder interface {
	Rebuild() error
}

// Watcher watches one directory and drives a Rebuilder.
type Watcher struct {
	dir      string
	debounce time.Duration
	target   Rebuilder
	log      *slog.Logger

	fsw  *fsnotify.Watcher
	stop chan struct{}
	done chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce window. Non-positive values reset to the
// default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger used for rebuild and event diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// New constructs a Watcher for dir that triggers target after the debounce
// window. Call Start to begin watching and Close to stop.
func New(dir string, target Rebuilder, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	watcher := &Watcher{
		dir:      dir,
		debounce: config.DefaultDebounce,
		target:   target,
		log:      slog.New(slog.DiscardHandler),
		fsw:      fsw,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(watcher)
	}
	return watcher, nil
}

// Start registers the directory with the underlying fsnotify watcher and
// launches the consumer goroutine.
func (w *Watcher) Start() error {
	if err := w.fsw.Add(w.dir); err != nil {
		_ = w.fsw.Close()
		return err
	}
	go w.run()
	w.log.Info("change detection enabled", "dir", w.dir, "debounce", w.debounce)
	return nil
}

// Close stops the consumer goroutine and releases the fsnotify watcher.
// It blocks until the consumer has exited; a rebuild already in progress
// completes first.
func (w *Watcher) Close() error {
	close(w.stop)
	err := w.fsw.Close()
	<-w.done
	return err
}

// run is the single consumer draining events and applying the debounce.
func (w *Watcher) run() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
				continue
			}
			// Each new event resets the window rather than firing early.
			if !timer.Stop() {
				select {
				case <-fire:
				default:
				}
			}
			timer.Reset(w.debounce)

		case <-fire:
			timer = nil
			fire = nil
			if err := w.target.Rebuild(); err != nil {
				// Keep serving the previous snapshot.
				w.log.Error("rebuild failed, keeping previous snapshot", "error", err)
				continue
			}
			w.log.Info("snapshot rebuilt after change")

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("watch error", "error", err)

		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// relevant reports whether an event should arm the debounce timer: content
// level operations on files whose extension the registry supports.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	_, ok := apis.KindForPath(ev.Name)
	return ok
}
