package herald

import "errors"

// Sentinel errors for the registry.
var (
	// ErrEmptyEventName is returned when an event name is empty.
	ErrEmptyEventName = errors.New("event name cannot be empty")

	// ErrNilCallback is returned when a nil callback is registered.
	ErrNilCallback = errors.New("callback cannot be nil")

	// ErrDuplicateListener is returned when a named registration is rejected
	// because a listener with that name already exists on the event.
	ErrDuplicateListener = errors.New("listener already exists")

	// ErrEventNotFound is returned by Whisper when the event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrListenerNotFound is returned by Whisper when the named listener does
	// not exist on the event.
	ErrListenerNotFound = errors.New("listener not found")

	// ErrListenerMuted is returned by Whisper when the target listener is
	// muted.
	ErrListenerMuted = errors.New("listener is muted")
)
