package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/herald"
	"github.com/dshills/herald/watch"
)

func newWatchCmd(logLevel *string) *cobra.Command {
	var eventName string

	cmd := &cobra.Command{
		Use:   "watch <path>...",
		Short: "Broadcast file changes through a registry and print them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(*logLevel)
			reg := herald.New(herald.WithLogger(logger))

			_, err := reg.RegisterFunc(eventName,
				func(ctx context.Context, msg herald.Message) error {
					if n, ok := msg.Payload.(watch.Notification); ok {
						fmt.Printf("%-6s %s\n", n.Op, n.Path)
					}
					return nil
				},
				herald.WithName("printer"),
			)
			if err != nil {
				return err
			}

			w, err := watch.New(reg,
				watch.WithEventName(eventName),
				watch.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			defer w.Close()

			for _, path := range args {
				if err := w.Add(path); err != nil {
					return fmt.Errorf("watch %s: %w", path, err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			w.Start(ctx)
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&eventName, "event", watch.DefaultEventName, "Registry event name for file changes")
	return cmd
}
