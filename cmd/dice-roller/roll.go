package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dice-roller/internal/config"
	"github.com/KirkDiggler/dice-roller/internal/display"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/logging"
	"github.com/KirkDiggler/dice-roller/internal/orchestrators/dice"
	"github.com/KirkDiggler/dice-roller/internal/pkg/random"
)

type rollOptions struct {
	sides    string
	numDice  string
	numRolls string
	seed     int64
	output   string
	inspect  int
	width    int
	noColor  bool
	verbose  bool
}

func newRollCmd(configPath *string) *cobra.Command {
	opts := &rollOptions{}

	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Simulate dice rolls locally and print the tally",
		Long: `Roll NumDice dice with Sides sides NumRolls times, then print the totals,
summary statistics and a histogram of every possible total. Examples:

  dice-roller roll --sides 6 --dice 2 --rolls 1000
  dice-roller roll --sides 20 --dice 1 --rolls 500 --seed 42 --inspect 20
  dice-roller roll --sides 6 --dice 3 --rolls 100 --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoll(cmd, *configPath, opts)
		},
	}

	cmd.Flags().StringVar(&opts.sides, "sides", "6", "Number of sides per die")
	cmd.Flags().StringVar(&opts.numDice, "dice", "1", "Number of dice per roll")
	cmd.Flags().StringVar(&opts.numRolls, "rolls", "100", "Number of rolls to simulate")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed for a reproducible simulation (default: random, logged with --verbose)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", display.OutputText, "Output format: text, json or yaml")
	cmd.Flags().IntVar(&opts.inspect, "inspect", 0, "Also print the tooltip for this total")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Histogram width (default: terminal width)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log at the configured level")

	return cmd
}

func runRoll(cmd *cobra.Command, configPath string, opts *rollOptions) error {
	v, err := config.NewViper(configPath)
	if err != nil {
		return err
	}
	// a local roll never needs shared storage
	v.Set("storage.backend", config.BackendMemory)

	cfg, err := config.LoadFromViper(v)
	if err != nil {
		return err
	}

	if opts.verbose {
		level, err := logging.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return err
		}
		slog.SetDefault(logging.New(level, cfg.Logging.Format, cmd.ErrOrStderr()))
	} else {
		slog.SetDefault(logging.NewNop())
	}

	writer, err := newDisplayWriter(opts)
	if err != nil {
		return err
	}

	seed := opts.seed
	if !cmd.Flags().Changed("seed") {
		if seed, err = random.NewSeed(); err != nil {
			return err
		}
	}
	// logged so an unseeded run can be replayed with --seed
	slog.Info("Rolling with seed", "seed", seed)

	appCfg := appConfig{Config: cfg, Seed: &seed}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, appCfg)
	if err != nil {
		return err
	}
	defer a.close()

	out, err := a.rollService.Roll(ctx, &dice.RollInput{
		Sides:    opts.sides,
		NumDice:  opts.numDice,
		NumRolls: opts.numRolls,
	})
	if err != nil {
		return err
	}

	if err := writer.Write(cmd.OutOrStdout(), out.Display); err != nil {
		return err
	}

	if !cmd.Flags().Changed("inspect") {
		return nil
	}

	bin, err := a.rollService.InspectBin(ctx, &dice.InspectBinInput{Total: opts.inspect})
	if err != nil {
		return errors.Wrapf(err, "cannot inspect total %d", opts.inspect)
	}

	return writer.WriteBin(cmd.OutOrStdout(), display.BinOutput{
		Total:    bin.Bin.Total,
		Count:    bin.Bin.Count,
		NumRolls: bin.NumRolls,
		Tooltip:  bin.Tooltip,
	})
}

func newDisplayWriter(opts *rollOptions) (*display.Writer, error) {
	profile := termenv.EnvColorProfile()
	if opts.noColor {
		profile = termenv.Ascii
	}

	width := opts.width
	if width < 1 {
		width = display.TerminalWidth(os.Stdout.Fd())
	}

	return display.NewWriter(display.WriterConfig{
		Format:  opts.output,
		Width:   width,
		Profile: profile,
	})
}
