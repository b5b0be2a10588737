package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/foreverwb/volquant/internal/telemetry"
)

var (
	monitorHost string
	monitorPort int
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Serve /healthz and /metrics for a long-lived engine process",
	Long: `Starts a local-only HTTP server exposing liveness and Prometheus
metrics (SPEC_FULL §5.8), for operators running volquant as a
long-lived process that polls task on a schedule. Never required for
the correctness of cmd/updated/task.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().StringVar(&monitorHost, "host", "127.0.0.1", "bind host")
	monitorCmd.Flags().IntVar(&monitorPort, "port", 8080, "bind port")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	health := func() telemetry.HealthStatus {
		breaker := "disabled"
		if eng.oracle != nil {
			breaker = eng.oracle.State()
		}
		lockBackend := "local"
		if eng.cfg.Lock.Addr != "" {
			lockBackend = "redis"
		}
		return telemetry.HealthStatus{Status: "ok", OracleBreaker: breaker, LockBackend: lockBackend}
	}

	server := telemetry.NewServer(telemetry.ServerConfig{Host: monitorHost, Port: monitorPort}, eng.metrics, health)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down monitor server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
