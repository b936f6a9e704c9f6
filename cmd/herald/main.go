// Command herald is a demo driver for the herald event registry. It walks
// the registry through its dispatch scenarios, runs Lua scripts against it,
// and streams file change notifications through it.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "herald:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "herald",
		Short:         "In-process publish/subscribe registry demo driver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"Log level: debug|info|warn|error")

	root.AddCommand(
		newDemoCmd(&logLevel),
		newRunCmd(&logLevel),
		newWatchCmd(&logLevel),
	)
	return root
}

// newLogger builds a console diagnostic sink at the requested level.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().
		Logger()
}
