// Package main is the entry point for the dice roller CLI and server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dice-roller/cmd/dice-roller/client"
	"github.com/KirkDiggler/dice-roller/internal/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage is the text shown for a failed command. Rejected roll input
// shows only its user-facing message; everything else keeps code and cause.
func errorMessage(err error) string {
	if errors.IsInvalidInput(err) {
		return errors.InvalidInputMessage
	}

	var e *errors.Error
	if errors.As(err, &e) && e.Code == errors.CodeInvalidArgument && e.Cause == nil {
		return e.Message
	}
	return err.Error()
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "dice-roller",
		Short: "Dice roll simulator",
		Long: `dice-roller simulates many rolls of identical dice, tallies the totals and
summarizes them, either locally or as a gRPC and HTTP service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(newRollCmd(&configPath))
	rootCmd.AddCommand(newServerCmd(&configPath))
	rootCmd.AddCommand(client.NewCommand())

	return rootCmd
}
