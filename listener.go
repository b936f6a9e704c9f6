package herald

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Listener is a registered (callback, optional name, mute flag, bound
// arguments) record attached to one event. The handle returned by Register
// stays valid until the listener is destroyed; its mute methods work for
// anonymous listeners too, which cannot be targeted by name.
type Listener struct {
	id       string
	name     string
	event    string
	muted    bool
	callback Callback
	args     Args
}

// newListener creates a listener record from a registration config.
func newListener(event string, cb Callback, cfg registrationConfig) *Listener {
	return &Listener{
		id:       generateID(),
		name:     cfg.name,
		event:    event,
		callback: cb,
		args:     cfg.args,
	}
}

// ID returns the assigned listener identifier.
func (l *Listener) ID() string {
	return l.id
}

// Name returns the listener name, or "" for anonymous listeners.
func (l *Listener) Name() string {
	return l.name
}

// Event returns the name of the event the listener is attached to.
func (l *Listener) Event() string {
	return l.event
}

// IsAnonymous returns true if the listener was registered without a name.
func (l *Listener) IsAnonymous() bool {
	return l.name == ""
}

// IsMuted returns true if the listener is currently muted.
func (l *Listener) IsMuted() bool {
	return l.muted
}

// Mute suppresses delivery to this listener without removing it.
func (l *Listener) Mute() {
	l.muted = true
}

// Unmute restores delivery to this listener.
func (l *Listener) Unmute() {
	l.muted = false
}

// logName returns a stable identity for diagnostics: the listener name, or
// the assigned ID for anonymous listeners.
func (l *Listener) logName() string {
	if l.name != "" {
		return l.name
	}
	return l.id
}

// registrationConfig contains configuration for a registration.
type registrationConfig struct {
	name      string
	overwrite bool
	args      Args
}

// ListenerOption is a function that configures a registration.
type ListenerOption func(*registrationConfig)

// WithName assigns a name to the listener. Named listeners can be targeted
// by MuteListener, DestroyListener, and Whisper, and are unique per event.
func WithName(name string) ListenerOption {
	return func(c *registrationConfig) {
		c.name = name
	}
}

// WithOverwrite replaces an existing listener of the same name instead of
// rejecting the registration. The replacement is appended at the end of the
// event's order; the old position is not preserved.
func WithOverwrite() ListenerOption {
	return func(c *registrationConfig) {
		c.overwrite = true
	}
}

// WithArgs binds extra arguments that are forwarded on every dispatch to
// this listener.
func WithArgs(args Args) ListenerOption {
	return func(c *registrationConfig) {
		c.args = args
	}
}

// generateID generates a unique listener ID.
func generateID() string {
	b := make([]byte, 8)
	_, err := rand.Read(b)
	if err != nil {
		// Fallback to timestamp-based ID if crypto/rand fails
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b)
}
