// Package script exposes a herald.Registry to Lua code.
//
// A Host installs a module table into a gopher-lua state with functions for
// registering listeners, emitting broadcasts, whispering, and muting or
// destroying listeners and events. Lua callbacks are invoked as
// fn(payload, args), mirroring the Go callback contract.
//
//	host := script.NewHost(reg, L)
//	host.Install()
//
//	-- in Lua
//	herald.on("ping", function(payload, args)
//	    print(payload, args.tag)
//	end, { name = "L1", args = { tag = "x" } })
//	herald.emit("ping", 5)
//
// The Lua state and the registry share the single-goroutine discipline:
// neither is safe for concurrent use, so all host calls and all dispatches
// that reach Lua callbacks must run on one goroutine.
package script
