// Package watch publishes filesystem change notifications into a
// herald.Registry.
//
// A Watcher monitors directories or files and broadcasts a Notification
// payload on its configured event name whenever a change is detected.
// Dispatch happens on the watcher's goroutine: listeners on the watch event
// are invoked there, so the embedding application must not mutate the
// registry concurrently while the watcher runs.
package watch

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/dshills/herald"
)

// DefaultEventName is the registry event broadcast on file changes.
const DefaultEventName = "file.changed"

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Notification is the broadcast payload for a file change.
type Notification struct {
	// Path is the path of the changed file.
	Path string

	// Op is the operation that triggered the notification.
	Op Operation
}

// Watcher bridges fsnotify events into a registry as broadcasts.
type Watcher struct {
	reg   *herald.Registry
	fsw   *fsnotify.Watcher
	event   string
	log     zerolog.Logger
	started bool
	done    chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithEventName sets the registry event name to broadcast on.
func WithEventName(name string) WatcherOption {
	return func(w *Watcher) {
		if name != "" {
			w.event = name
		}
	}
}

// WithLogger sets the diagnostic sink for watcher errors.
func WithLogger(logger zerolog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.log = logger
	}
}

// New creates a watcher publishing into the given registry.
func New(reg *herald.Registry, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		reg:   reg,
		fsw:   fsw,
		event: DefaultEventName,
		log:   zerolog.Nop(),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add starts watching the given file or directory.
func (w *Watcher) Add(path string) error {
	return w.fsw.Add(path)
}

// Start begins broadcasting notifications until the context is cancelled or
// the watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	if w.started {
		return
	}
	w.started = true
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				op, relevant := mapOp(evt.Op)
				if !relevant {
					continue
				}
				notification := Notification{Path: evt.Name, Op: op}
				if err := w.reg.Broadcast(ctx, w.event, notification); err != nil {
					w.log.Warn().
						Err(err).
						Str("path", evt.Name).
						Msg("listener failed on file notification")
				}
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				w.log.Warn().Err(err).Msg("watcher error")
			}
		}
	}()
}

// Close stops the watcher and waits for the broadcast loop to exit.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	if w.started {
		<-w.done
	}
	return err
}

// mapOp translates an fsnotify operation. Chmod-only events are dropped.
func mapOp(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	default:
		return 0, false
	}
}
