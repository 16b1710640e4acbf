package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge-arcade/internal/config"
	"github.com/vovakirdan/merge-arcade/internal/games/t2048"
	"github.com/vovakirdan/merge-arcade/internal/metrics"
	"github.com/vovakirdan/merge-arcade/internal/platform/tui"
)

var (
	flagServerConfig string
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
	flagMetricsAddr  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a board picker menu.
Scores are stored per-server (all users share the same leaderboard).

Settings are read from --server-config (YAML), then ARCADE_* environment
variables (ARCADE_SSH_ADDR, ARCADE_HOST_KEY, ARCADE_DB, ARCADE_IDLE_TIMEOUT,
ARCADE_METRICS_ADDR, ARCADE_LOG_LEVEL); flags given on the command line win.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --metrics :9100           # Also expose Prometheus metrics
  arcade serve --server-config ./server.yaml

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServerConfig, "server-config", "", "Path to server config YAML")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Address for the Prometheus /metrics endpoint (disabled if empty)")
}

// serverConfig loads the server settings and applies explicitly set flags.
func serverConfig(cmd *cobra.Command) (config.ServerConfig, error) {
	cfg, err := config.LoadServer(flagServerConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = minutes(flagIdleTimeout)
	}
	if flags.Changed("metrics") {
		cfg.MetricsAddr = flagMetricsAddr
	}
	if cmd.Root().PersistentFlags().Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if cmd.Root().PersistentFlags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := serverConfig(cmd)
	if err != nil {
		return err
	}

	flagLogLevel = cfg.LogLevel
	logger, closeLog, err := newLogger("arcade-ssh", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var collector *metrics.Collector
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		collector = metrics.New(reg)
		t2048.SetObserverFactory(collector.Observer)

		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, reg, logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	server, err := tui.NewSSHServer(cfg, collector, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting arcade SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// port returns the port part of a listen address for the connect hint.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil && p != "" {
		return p
	}
	return "23234"
}
