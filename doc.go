// Package herald provides an in-process publish/subscribe registry.
//
// A Registry lets components ("listeners") attach named callbacks to named
// events on a subject, then dispatch payloads to those callbacks later. It is
// a data-model and dispatch-semantics component only: there is no I/O, no
// persistence, and no cross-process transport.
//
// # Architecture
//
//	┌───────────────────────────────────────────────┐
//	│                   Registry                     │
//	│  - ordered Event records, unique by name       │
//	│  - per-event ordered Listener sequences        │
//	│  - name → record indexes for O(1) lookup       │
//	└───────────────────────────────────────────────┘
//	         │                          │
//	         ▼                          ▼
//	┌─────────────────┐       ┌─────────────────┐
//	│    Broadcast     │       │     Whisper     │
//	│  all non-muted   │       │  exactly one    │
//	│  listeners, in   │       │  named listener │
//	│  stored order    │       │                 │
//	└─────────────────┘       └─────────────────┘
//
// # Events and Listeners
//
// Events are created implicitly the first time a listener registers against
// their name and removed only by DestroyEvent. An event may legally hold zero
// listeners. Listeners are either named or anonymous: within one event at
// most one listener may carry a given name, while anonymous listeners are
// unbounded and never collide. Only named listeners can be targeted by the
// name-based mute, destroy, and Whisper operations; anonymous listeners are
// controlled through the *Listener handle returned by Register.
//
// # Basic Usage
//
//	reg := herald.New(herald.WithLogger(logger))
//
//	_, err := reg.Register("ping", herald.CallbackFunc(
//		func(ctx context.Context, msg herald.Message) error {
//			fmt.Println(msg.Payload, msg.Args["tag"])
//			return nil
//		}),
//		herald.WithName("L1"),
//		herald.WithArgs(herald.Args{"tag": "x"}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Broadcast to every non-muted listener of "ping", in order.
//	reg.Broadcast(context.Background(), "ping", 5)
//
//	// Whisper to exactly one named listener.
//	reg.Whisper(context.Background(), "ping", "L1", 5)
//
// # Registration Conflicts
//
// Registering a named listener over an existing name is a conflict. Without
// WithOverwrite the registration is rejected: the existing listener is kept,
// a warning is logged, and Register returns ErrDuplicateListener. With
// WithOverwrite the existing listener is removed and the new one appended at
// the end of the event's order; its old position is not preserved.
//
// # Dispatch Semantics
//
// All dispatch is synchronous: callbacks run inline on the caller's stack
// before Broadcast or Whisper returns. Broadcast iterates a snapshot of the
// listener sequence, so a callback that mutates the same event mid-broadcast
// affects later dispatches only, never the one in flight. A callback error
// aborts delivery to the remaining listeners and is returned to the caller
// unmodified; the registry never recovers, wraps, or isolates callback
// failures.
//
// # Diagnostics
//
// The registry carries an injected zerolog.Logger. Dispatch tracing is logged
// at debug level and usage conflicts (duplicate names, whispers to missing or
// muted targets) at warn level. The stream carries no control semantics and
// defaults to a no-op logger.
//
// # Thread Safety
//
// A Registry is NOT safe for concurrent use. All methods, including those on
// the *Listener handle, must be called from a single goroutine or be
// serialized externally by the embedding application.
//
// # Subpackages
//
//   - script: expose a Registry to Lua code (gopher-lua)
//   - watch: publish filesystem change notifications into a Registry
package herald
