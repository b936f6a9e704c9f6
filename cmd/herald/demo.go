package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/herald"
)

func newDemoCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through register, broadcast, whisper, mute, and destroy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), newLogger(*logLevel))
		},
	}
}

// runDemo recreates the classic sender/receiver walkthrough: a receiver
// registers a listener with bound arguments on a sender's registry, then the
// sender dispatches to it through every delivery path.
func runDemo(ctx context.Context, logger zerolog.Logger) error {
	reg := herald.New(herald.WithLogger(logger))

	_, err := reg.RegisterFunc("event1",
		func(ctx context.Context, msg herald.Message) error {
			fmt.Println("c0 callback triggered")
			for k, v := range msg.Args {
				fmt.Printf("  %s=%v\n", k, v)
			}
			if msg.Payload != nil {
				fmt.Printf("  received payload: %v\n", msg.Payload)
			}
			return nil
		},
		herald.WithName("listener1"),
		herald.WithArgs(herald.Args{
			"kwarg1": "This is kwarg1",
			"kwarg2": "This is kwarg2",
		}),
	)
	if err != nil {
		return err
	}

	fmt.Println("-- broadcast with payload 21")
	if err := reg.Broadcast(ctx, "event1", 21); err != nil {
		return err
	}

	fmt.Println("-- whisper to listener1")
	if err := reg.Whisper(ctx, "event1", "listener1", "a quiet word"); err != nil {
		return err
	}

	fmt.Println("-- muted broadcast (nothing delivered)")
	reg.MuteListener("event1", "listener1")
	if err := reg.Broadcast(ctx, "event1", 42); err != nil {
		return err
	}

	fmt.Println("-- unmuted broadcast")
	reg.UnmuteListener("event1", "listener1")
	if err := reg.Broadcast(ctx, "event1", 42); err != nil {
		return err
	}

	fmt.Println("-- destroyed event broadcast (no-op)")
	reg.DestroyEvent("event1")
	if err := reg.Broadcast(ctx, "event1", 99); err != nil {
		return err
	}

	stats := reg.Stats()
	fmt.Printf("stats: broadcasts=%d whispers=%d callbacks=%d\n",
		stats.Broadcasts, stats.Whispers, stats.CallbacksInvoked)
	return nil
}
