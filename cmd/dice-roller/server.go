package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/dice-roller/internal/config"
	"github.com/KirkDiggler/dice-roller/internal/handlers/api/v1alpha1"
	httphandler "github.com/KirkDiggler/dice-roller/internal/handlers/http"
	"github.com/KirkDiggler/dice-roller/internal/logging"
)

const readHeaderTimeout = 10 * time.Second

// serverFlags maps command line flags onto config keys
var serverFlags = map[string]string{
	"grpc-port":   "server.grpc_port",
	"http-port":   "server.http_port",
	"storage":     "storage.backend",
	"redis-addr":  "storage.redis_addr",
	"display-ttl": "storage.display_ttl",
	"log-level":   "logging.level",
	"log-format":  "logging.format",
}

func newServerCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the gRPC and HTTP servers",
		Long: `Start the dice roller gRPC service and, unless --http-port is 0, the JSON
HTTP API with prometheus metrics. Settings come from defaults, the --config
file, DICE_ROLLER_* environment variables and these flags, in increasing
priority.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.NewViper(*configPath)
			if err != nil {
				return err
			}
			if err := bindServerFlags(cmd, v); err != nil {
				return err
			}

			cfg, err := config.LoadFromViper(v)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().Int("grpc-port", 50051, "gRPC server port")
	cmd.Flags().Int("http-port", 8080, "HTTP server port, 0 disables it")
	cmd.Flags().String("storage", config.BackendMemory, "Display storage backend: memory or redis")
	cmd.Flags().String("redis-addr", "localhost:6379", "Redis address for the redis backend")
	cmd.Flags().Duration("display-ttl", 15*time.Minute, "How long an untouched display is kept")
	cmd.Flags().String("log-level", "info", "Log level: debug, info, warn or error")
	cmd.Flags().String("log-format", "text", "Log format: text or json")

	return cmd
}

func bindServerFlags(cmd *cobra.Command, v *viper.Viper) error {
	for flag, key := range serverFlags {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return nil
}

func runServer(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger := logging.New(level, cfg.Logging.Format, os.Stderr)
	slog.SetDefault(logger)

	a, err := newApp(ctx, appConfig{Config: cfg, Metrics: true})
	if err != nil {
		return err
	}
	defer a.close()

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.MaxRecvMsgSize(v1alpha1.MaxMessageSize),
		grpc.MaxSendMsgSize(v1alpha1.MaxMessageSize),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	rollHandler, err := v1alpha1.NewRollHandler(&v1alpha1.RollHandlerConfig{
		RollService: a.rollService,
	})
	if err != nil {
		return fmt.Errorf("failed to create roll handler: %w", err)
	}

	v1alpha1.RegisterRollServiceServer(srv, rollHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.RollServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "addr", lis.Addr().String())
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve grpc: %w", err)
		}
	}()

	var httpSrv *http.Server
	if cfg.Server.HTTPPort > 0 {
		handler, err := httphandler.NewHandler(&httphandler.HandlerConfig{
			RollService: a.rollService,
			Metrics:     a.metrics.Handler(),
		})
		if err != nil {
			srv.Stop()
			return fmt.Errorf("failed to create http handler: %w", err)
		}

		httpSrv = &http.Server{
			Addr:              cfg.Server.HTTPAddr(),
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			slog.Info("HTTP server starting", "addr", httpSrv.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- fmt.Errorf("failed to serve http: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal, gracefully stopping")
	case err := <-errChan:
		srv.Stop()
		if httpSrv != nil {
			_ = httpSrv.Close() // nolint:errcheck // already failing
		}
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if httpSrv != nil {
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("HTTP server shutdown failed", "error", err)
		}
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		slog.Info("Server stopped gracefully")
	}

	return nil
}

// interceptorLogger adapts slog to the go-grpc-middleware logging interface
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(level), msg, fields...)
	})
}
