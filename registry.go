package herald

import (
	"context"

	"github.com/rs/zerolog"
)

// eventEntry is one named event and its ordered listener sequence.
// The byName index covers named listeners only; anonymous listeners appear
// in the ordered sequence alone.
type eventEntry struct {
	name      string
	listeners []*Listener
	byName    map[string]*Listener
}

// newEventEntry creates an empty event record.
func newEventEntry(name string) *eventEntry {
	return &eventEntry{
		name:   name,
		byName: make(map[string]*Listener),
	}
}

// append adds a listener at the end of the event's order.
func (e *eventEntry) append(l *Listener) {
	e.listeners = append(e.listeners, l)
	if l.name != "" {
		e.byName[l.name] = l
	}
}

// remove deletes exactly the given listener, preserving the relative order
// of the rest.
func (e *eventEntry) remove(target *Listener) {
	for i, l := range e.listeners {
		if l == target {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			break
		}
	}
	if target.name != "" {
		delete(e.byName, target.name)
	}
}

// Registry is an in-process publish/subscribe registry. Embed or compose it
// into any subject object; its lifetime is the subject's lifetime.
//
// A Registry is NOT safe for concurrent use. Serialize access externally if
// it is shared across goroutines.
type Registry struct {
	events []*eventEntry
	byName map[string]*eventEntry
	log    zerolog.Logger
	stats  Stats
}

// New creates a new registry with the given options.
func New(opts ...Option) *Registry {
	config := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &Registry{
		byName: make(map[string]*eventEntry),
		log:    config.logger,
	}
}

// Register attaches a callback to the named event, creating the event if it
// does not exist yet. Anonymous registrations (no WithName) always append.
// A named registration over an existing name is a conflict: without
// WithOverwrite the existing listener is kept, a warning is logged, and
// ErrDuplicateListener is returned; with WithOverwrite the existing listener
// is removed and the new one appended at the end of the event's order.
//
// The returned handle stays valid until the listener is destroyed.
func (r *Registry) Register(eventName string, cb Callback, opts ...ListenerOption) (*Listener, error) {
	if eventName == "" {
		return nil, ErrEmptyEventName
	}
	if cb == nil {
		return nil, ErrNilCallback
	}

	config := registrationConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	entry := r.byName[eventName]
	if entry == nil {
		entry = newEventEntry(eventName)
		r.events = append(r.events, entry)
		r.byName[eventName] = entry
	}

	l := newListener(eventName, cb, config)

	if l.name == "" {
		entry.append(l)
		r.stats.ListenersRegistered++
		return l, nil
	}

	existing := entry.byName[l.name]
	if existing == nil {
		entry.append(l)
		r.stats.ListenersRegistered++
		return l, nil
	}

	r.log.Warn().
		Str("event", eventName).
		Str("listener", l.name).
		Msg("listener already exists on event")

	if !config.overwrite {
		r.log.Warn().
			Str("event", eventName).
			Str("listener", l.name).
			Msg("rejecting new listener")
		r.stats.RegistrationsRejected++
		return nil, ErrDuplicateListener
	}

	r.log.Warn().
		Str("event", eventName).
		Str("listener", l.name).
		Msg("overwriting listener")
	entry.remove(existing)
	entry.append(l)
	r.stats.ListenersRegistered++
	return l, nil
}

// RegisterFunc is a convenience method for registering a function callback.
func (r *Registry) RegisterFunc(eventName string, fn CallbackFunc, opts ...ListenerOption) (*Listener, error) {
	return r.Register(eventName, fn, opts...)
}

// MuteListener suppresses delivery to the named listener. Returns false
// without side effects if the event or listener does not exist.
func (r *Registry) MuteListener(eventName, listenerName string) bool {
	l := r.findListener(eventName, listenerName)
	if l == nil {
		return false
	}
	l.muted = true
	return true
}

// UnmuteListener restores delivery to the named listener. Returns false
// without side effects if the event or listener does not exist.
func (r *Registry) UnmuteListener(eventName, listenerName string) bool {
	l := r.findListener(eventName, listenerName)
	if l == nil {
		return false
	}
	l.muted = false
	return true
}

// DestroyListener removes exactly the named listener from the event's
// sequence; remaining listeners keep their relative order. Returns false if
// the event or listener does not exist. The event remains even when its
// listener list becomes empty.
func (r *Registry) DestroyListener(eventName, listenerName string) bool {
	entry := r.byName[eventName]
	if entry == nil {
		return false
	}
	l := entry.byName[listenerName]
	if l == nil {
		return false
	}
	entry.remove(l)
	return true
}

// MuteEvent mutes every listener of the event, named and anonymous.
// Returns false if the event does not exist.
func (r *Registry) MuteEvent(eventName string) bool {
	return r.setEventMuted(eventName, true)
}

// UnmuteEvent unmutes every listener of the event, named and anonymous.
// Returns false if the event does not exist.
func (r *Registry) UnmuteEvent(eventName string) bool {
	return r.setEventMuted(eventName, false)
}

// DestroyEvent removes the event and all its listeners. A subsequent
// Register on the same name creates a fresh event with no memory of prior
// listeners. Returns false if the event does not exist.
func (r *Registry) DestroyEvent(eventName string) bool {
	entry := r.byName[eventName]
	if entry == nil {
		return false
	}
	for i, e := range r.events {
		if e == entry {
			r.events = append(r.events[:i], r.events[i+1:]...)
			break
		}
	}
	delete(r.byName, eventName)
	return true
}

// Whisper dispatches a payload to exactly one named listener, synchronously.
// It returns ErrEventNotFound, ErrListenerNotFound, or ErrListenerMuted when
// the target cannot receive the whisper; each case is also logged as a
// distinct warning. A callback error propagates to the caller unmodified.
func (r *Registry) Whisper(ctx context.Context, eventName, listenerName string, payload any) error {
	r.log.Debug().Str("event", eventName).Msg("event called as whisper")

	entry := r.byName[eventName]
	if entry == nil {
		r.log.Warn().
			Str("event", eventName).
			Str("listener", listenerName).
			Msg("event does not exist, cannot send whisper")
		return ErrEventNotFound
	}

	l := entry.byName[listenerName]
	if l == nil {
		r.log.Warn().
			Str("event", eventName).
			Str("listener", listenerName).
			Msg("listener does not exist for event, cannot send whisper")
		return ErrListenerNotFound
	}

	if l.muted {
		r.log.Warn().
			Str("event", eventName).
			Str("listener", listenerName).
			Msg("listener is muted, whisper was not received")
		return ErrListenerMuted
	}

	r.stats.Whispers++
	return r.invoke(ctx, l, payload)
}

// Broadcast dispatches a payload to every non-muted listener of the event,
// synchronously and in registration order. It is a silent no-op when the
// event does not exist. Muted listeners are skipped without warnings.
//
// Broadcast iterates a snapshot of the listener sequence: a callback that
// registers or destroys listeners on the same event mid-broadcast affects
// later broadcasts only. A callback error aborts delivery to the remaining
// listeners and is returned unmodified.
func (r *Registry) Broadcast(ctx context.Context, eventName string, payload any) error {
	r.log.Debug().Str("event", eventName).Msg("event called")

	entry := r.byName[eventName]
	if entry == nil {
		return nil
	}

	r.stats.Broadcasts++

	// Snapshot so callbacks can safely mutate the event mid-broadcast.
	snapshot := make([]*Listener, len(entry.listeners))
	copy(snapshot, entry.listeners)

	for _, l := range snapshot {
		if l.muted {
			continue
		}
		if err := r.invoke(ctx, l, payload); err != nil {
			return err
		}
	}
	return nil
}

// invoke runs one callback synchronously, tracing the dispatch.
func (r *Registry) invoke(ctx context.Context, l *Listener, payload any) error {
	r.log.Debug().
		Str("event", l.event).
		Str("listener", l.logName()).
		Msg("calling listener")

	r.stats.CallbacksInvoked++
	err := l.callback.Invoke(ctx, Message{
		Event:   l.event,
		Payload: payload,
		Args:    l.args,
	})
	if err != nil {
		r.stats.CallbackErrors++
	}
	return err
}

// findListener locates a named listener, or nil if event or listener is
// absent.
func (r *Registry) findListener(eventName, listenerName string) *Listener {
	entry := r.byName[eventName]
	if entry == nil {
		return nil
	}
	return entry.byName[listenerName]
}

// setEventMuted flips the muted flag on every listener of the event.
func (r *Registry) setEventMuted(eventName string, muted bool) bool {
	entry := r.byName[eventName]
	if entry == nil {
		return false
	}
	for _, l := range entry.listeners {
		l.muted = muted
	}
	return true
}

// HasEvent returns true if the event exists in the registry.
func (r *Registry) HasEvent(eventName string) bool {
	return r.byName[eventName] != nil
}

// Events returns event names in creation order.
func (r *Registry) Events() []string {
	if len(r.events) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.name)
	}
	return names
}

// CountEvents returns the number of events in the registry.
func (r *Registry) CountEvents() int {
	return len(r.events)
}

// CountListeners returns the number of listeners attached to the event,
// named and anonymous. Returns 0 if the event does not exist.
func (r *Registry) CountListeners(eventName string) int {
	entry := r.byName[eventName]
	if entry == nil {
		return 0
	}
	return len(entry.listeners)
}

// ListenerNames returns the names of the event's named listeners in stored
// order. Anonymous listeners are not included.
func (r *Registry) ListenerNames(eventName string) []string {
	entry := r.byName[eventName]
	if entry == nil {
		return nil
	}
	names := make([]string, 0, len(entry.byName))
	for _, l := range entry.listeners {
		if l.name != "" {
			names = append(names, l.name)
		}
	}
	return names
}

// Clear removes all events and listeners.
func (r *Registry) Clear() {
	r.events = nil
	r.byName = make(map[string]*eventEntry)
}

// Stats returns current dispatch statistics.
func (r *Registry) Stats() Stats {
	return r.stats
}
