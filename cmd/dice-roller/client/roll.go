package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/handlers/api/v1alpha1"
)

func newRollCmd(opts *options) *cobra.Command {
	var sides, numDice, numRolls string

	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Simulate rolls on the server and replace the viewer's display",
		Long: `Roll dice on the server. Examples:

  client roll --sides 6 --dice 2 --rolls 1000
  client roll --viewer window-2 --sides 20 --dice 1 --rolls 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer, err := opts.writer()
			if err != nil {
				return err
			}

			client, cleanup, err := opts.createRollClient()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := opts.context(cmd)
			defer cancel()

			resp, err := client.Roll(ctx, v1alpha1.NewRollRequest(opts.viewerID, sides, numDice, numRolls))
			if err != nil {
				return fmt.Errorf("failed to roll dice: %w", errors.FromGRPCError(err))
			}

			d, err := v1alpha1.DecodeDisplay(resp)
			if err != nil {
				return err
			}
			return writer.Write(cmd.OutOrStdout(), d)
		},
	}

	cmd.Flags().StringVar(&sides, "sides", "6", "Number of sides per die")
	cmd.Flags().StringVar(&numDice, "dice", "1", "Number of dice per roll")
	cmd.Flags().StringVar(&numRolls, "rolls", "100", "Number of rolls to simulate")

	return cmd
}
