package client

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dice-roller/internal/display"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/handlers/api/v1alpha1"
)

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the viewer's current display",
		Args:  cobra.NoArgs,
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

			resp, err := client.GetDisplay(ctx, v1alpha1.NewViewerRequest(opts.viewerID))
			if err != nil {
				return fmt.Errorf("failed to get display: %w", errors.FromGRPCError(err))
			}

			d, err := v1alpha1.DecodeDisplay(resp)
			if err != nil {
				return err
			}
			return writer.Write(cmd.OutOrStdout(), d)
		},
	}
}

func newClearCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the viewer's display",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cleanup, err := opts.createRollClient()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := opts.context(cmd)
			defer cancel()

			resp, err := client.ClearDisplay(ctx, v1alpha1.NewViewerRequest(opts.viewerID))
			if err != nil {
				return fmt.Errorf("failed to clear display: %w", errors.FromGRPCError(err))
			}

			if v1alpha1.DecodeCleared(resp) {
				fmt.Fprintln(cmd.OutOrStdout(), "Display cleared")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clear")
			}
			return nil
		},
	}
}

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [total]",
		Short: "Print the tooltip for one histogram bar",
		Long: `Show the count and chance of a total in the viewer's current histogram. Example:

  client inspect 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.InvalidArgumentf("total must be an integer: %q", args[0])
			}

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

			resp, err := client.InspectBin(ctx, v1alpha1.NewInspectBinRequest(opts.viewerID, total))
			if err != nil {
				return fmt.Errorf("failed to inspect total %d: %w", total, errors.FromGRPCError(err))
			}

			bin, err := v1alpha1.DecodeInspectBin(resp)
			if err != nil {
				return err
			}
			return writer.WriteBin(cmd.OutOrStdout(), display.BinOutput{
				Total:    bin.Bin.Total,
				Count:    bin.Bin.Count,
				NumRolls: bin.NumRolls,
				Tooltip:  bin.Tooltip,
			})
		},
	}
}
