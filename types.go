package herald

import "context"

// Args holds extra arguments bound to a listener at registration time.
// They are forwarded unchanged on every dispatch to that listener.
type Args map[string]any

// Message is the uniform container delivered to callbacks.
type Message struct {
	// Event is the name of the event being dispatched.
	Event string

	// Payload is the caller-supplied dispatch payload. It is type-erased;
	// publisher and listener agree on its shape out-of-band. May be nil.
	Payload any

	// Args are the arguments bound at registration time. May be nil.
	Args Args
}

// Callback is the interface for listener callbacks.
type Callback interface {
	// Invoke processes a dispatched message.
	Invoke(ctx context.Context, msg Message) error
}

// CallbackFunc is a function adapter for Callback.
type CallbackFunc func(ctx context.Context, msg Message) error

// Invoke implements the Callback interface.
func (f CallbackFunc) Invoke(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// Stats contains registry dispatch statistics.
type Stats struct {
	// ListenersRegistered is the total number of accepted registrations.
	ListenersRegistered uint64

	// RegistrationsRejected is the number of registrations rejected as
	// duplicates.
	RegistrationsRejected uint64

	// Broadcasts is the number of Broadcast calls that found their event.
	Broadcasts uint64

	// Whispers is the number of Whisper calls that reached a listener.
	Whispers uint64

	// CallbacksInvoked is the total number of callback invocations.
	CallbacksInvoked uint64

	// CallbackErrors is the number of callbacks that returned an error.
	CallbackErrors uint64
}
