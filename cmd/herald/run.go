package main

import (
	"github.com/spf13/cobra"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/herald"
	"github.com/dshills/herald/script"
)

func newRunCmd(logLevel *string) *cobra.Command {
	var emitEvent string
	var payload string

	cmd := &cobra.Command{
		Use:   "run <script.lua>",
		Short: "Run a Lua script with the herald module installed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := herald.New(herald.WithLogger(newLogger(*logLevel)))

			L := lua.NewState()
			defer L.Close()
			script.NewHost(reg, L).Install()

			if err := L.DoFile(args[0]); err != nil {
				return err
			}

			if emitEvent != "" {
				var p any
				if payload != "" {
					p = payload
				}
				return reg.Broadcast(cmd.Context(), emitEvent, p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&emitEvent, "emit", "", "Event to broadcast after the script loads")
	cmd.Flags().StringVar(&payload, "payload", "", "Payload string for --emit")
	return cmd
}
