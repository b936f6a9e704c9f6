package script

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/herald"
)

// DefaultModuleName is the global table the host installs into the Lua state.
const DefaultModuleName = "herald"

// Host binds a herald.Registry into a Lua state.
type Host struct {
	reg    *herald.Registry
	L      *lua.LState
	module string
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithModuleName sets the name of the global module table.
func WithModuleName(name string) HostOption {
	return func(h *Host) {
		if name != "" {
			h.module = name
		}
	}
}

// NewHost creates a host for the given registry and Lua state.
func NewHost(reg *herald.Registry, L *lua.LState, opts ...HostOption) *Host {
	h := &Host{
		reg:    reg,
		L:      L,
		module: DefaultModuleName,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Install sets the module table as a global in the Lua state.
func (h *Host) Install() {
	mod := h.L.NewTable()

	h.L.SetField(mod, "on", h.L.NewFunction(h.luaOn))
	h.L.SetField(mod, "emit", h.L.NewFunction(h.luaEmit))
	h.L.SetField(mod, "whisper", h.L.NewFunction(h.luaWhisper))
	h.L.SetField(mod, "mute_listener", h.L.NewFunction(h.luaMuteListener))
	h.L.SetField(mod, "unmute_listener", h.L.NewFunction(h.luaUnmuteListener))
	h.L.SetField(mod, "destroy_listener", h.L.NewFunction(h.luaDestroyListener))
	h.L.SetField(mod, "mute_event", h.L.NewFunction(h.luaMuteEvent))
	h.L.SetField(mod, "unmute_event", h.L.NewFunction(h.luaUnmuteEvent))
	h.L.SetField(mod, "destroy_event", h.L.NewFunction(h.luaDestroyEvent))
	h.L.SetField(mod, "events", h.L.NewFunction(h.luaEvents))
	h.L.SetField(mod, "listeners", h.L.NewFunction(h.luaListeners))

	h.L.SetGlobal(h.module, mod)
}

// luaOn implements herald.on(event, fn [, opts]).
// opts is a table with optional fields: name (string), overwrite (bool),
// args (table of bound arguments).
// Returns true, or nil and an error message.
func (h *Host) luaOn(L *lua.LState) int {
	event := L.CheckString(1)
	fn := L.CheckFunction(2)
	opts := L.OptTable(3, nil)

	var lopts []herald.ListenerOption
	if opts != nil {
		if name, ok := opts.RawGetString("name").(lua.LString); ok {
			lopts = append(lopts, herald.WithName(string(name)))
		}
		if lua.LVAsBool(opts.RawGetString("overwrite")) {
			lopts = append(lopts, herald.WithOverwrite())
		}
		if args, ok := opts.RawGetString("args").(*lua.LTable); ok {
			lopts = append(lopts, herald.WithArgs(tableToArgs(args)))
		}
	}

	_, err := h.reg.Register(event, h.wrap(fn), lopts...)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// luaEmit implements herald.emit(event [, payload]).
// Returns true, or nil and an error message when a callback fails.
func (h *Host) luaEmit(L *lua.LState) int {
	event := L.CheckString(1)
	payload := toGo(L.Get(2))

	if err := h.reg.Broadcast(context.Background(), event, payload); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// luaWhisper implements herald.whisper(event, listener [, payload]).
// Returns true, or nil and an error message.
func (h *Host) luaWhisper(L *lua.LState) int {
	event := L.CheckString(1)
	listener := L.CheckString(2)
	payload := toGo(L.Get(3))

	if err := h.reg.Whisper(context.Background(), event, listener, payload); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func (h *Host) luaMuteListener(L *lua.LState) int {
	L.Push(lua.LBool(h.reg.MuteListener(L.CheckString(1), L.CheckString(2))))
	return 1
}

func (h *Host) luaUnmuteListener(L *lua.LState) int {
	L.Push(lua.LBool(h.reg.UnmuteListener(L.CheckString(1), L.CheckString(2))))
	return 1
}

func (h *Host) luaDestroyListener(L *lua.LState) int {
	L.Push(lua.LBool(h.reg.DestroyListener(L.CheckString(1), L.CheckString(2))))
	return 1
}

func (h *Host) luaMuteEvent(L *lua.LState) int {
	L.Push(lua.LBool(h.reg.MuteEvent(L.CheckString(1))))
	return 1
}

func (h *Host) luaUnmuteEvent(L *lua.LState) int {
	L.Push(lua.LBool(h.reg.UnmuteEvent(L.CheckString(1))))
	return 1
}

func (h *Host) luaDestroyEvent(L *lua.LState) int {
	L.Push(lua.LBool(h.reg.DestroyEvent(L.CheckString(1))))
	return 1
}

// luaEvents implements herald.events() -> array of event names.
func (h *Host) luaEvents(L *lua.LState) int {
	t := L.NewTable()
	for i, name := range h.reg.Events() {
		t.RawSetInt(i+1, lua.LString(name))
	}
	L.Push(t)
	return 1
}

// luaListeners implements herald.listeners(event) -> array of listener names.
func (h *Host) luaListeners(L *lua.LState) int {
	t := L.NewTable()
	for i, name := range h.reg.ListenerNames(L.CheckString(1)) {
		t.RawSetInt(i+1, lua.LString(name))
	}
	L.Push(t)
	return 1
}

// wrap adapts a Lua function into a registry callback. The callback invokes
// fn(payload, args) in protected mode; a Lua error becomes the callback's
// error return and propagates through dispatch unchanged.
func (h *Host) wrap(fn *lua.LFunction) herald.Callback {
	return herald.CallbackFunc(func(_ context.Context, msg herald.Message) error {
		args := h.L.NewTable()
		for k, v := range msg.Args {
			args.RawSetString(k, toLua(h.L, v))
		}
		return h.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		}, toLua(h.L, msg.Payload), args)
	})
}
