// Package client provides commands that drive a running dice roller server over gRPC
package client

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/dice-roller/internal/display"
	"github.com/KirkDiggler/dice-roller/internal/handlers/api/v1alpha1"
)

// options are shared by every client subcommand
type options struct {
	serverAddr string
	timeout    time.Duration
	viewerID   string
	output     string
	width      int
	noColor    bool
}

// NewCommand builds the client command tree
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Drive a running dice roller server",
		Long:  `Client commands call the dice roller gRPC service of a running server.`,
	}

	cmd.PersistentFlags().StringVar(&opts.serverAddr, "server", "localhost:50051", "gRPC server address")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")
	cmd.PersistentFlags().StringVar(&opts.viewerID, "viewer", "", "Viewer whose display is used (default \"default\")")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", display.OutputText, "Output format: text, json or yaml")
	cmd.PersistentFlags().IntVar(&opts.width, "width", 0, "Histogram width (default: terminal width)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")

	cmd.AddCommand(newRollCmd(opts))
	cmd.AddCommand(newGetCmd(opts))
	cmd.AddCommand(newClearCmd(opts))
	cmd.AddCommand(newInspectCmd(opts))

	return cmd
}

// createConnection creates a gRPC connection to the server
func (o *options) createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(o.serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(v1alpha1.MaxMessageSize),
			grpc.MaxCallSendMsgSize(v1alpha1.MaxMessageSize),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createRollClient creates a roll service client
func (o *options) createRollClient() (v1alpha1.RollServiceClient, func(), error) {
	conn, err := o.createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewRollServiceClient(conn), cleanup, nil
}

func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, o.timeout)
}

func (o *options) writer() (*display.Writer, error) {
	profile := termenv.EnvColorProfile()
	if o.noColor {
		profile = termenv.Ascii
	}

	width := o.width
	if width < 1 {
		width = display.TerminalWidth(os.Stdout.Fd())
	}

	return display.NewWriter(display.WriterConfig{
		Format:  o.output,
		Width:   width,
		Profile: profile,
	})
}
