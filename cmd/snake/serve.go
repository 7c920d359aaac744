package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-snake/internal/api"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that allows users to connect and play, plus an
HTTP API serving the shared leaderboard.

Each SSH connection gets its own session with the variant menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

HTTP endpoints:
  GET /health
  GET /api/variants
  GET /api/scores/{variant}?limit=10
  GET /api/stats
  GET /api/stats/{variant}

Examples:
  snake serve                           # SSH on :23234, HTTP on :8080
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --http ""                 # SSH only
  snake serve --host-key ./my_host_key  # Use specific host key
  snake serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP API address (empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "snake-server")
	if err != nil {
		return err
	}

	cfg, preset, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	settings := tui.Settings{
		Config: cfg,
		Preset: preset,
		Seed:   flagSeed,
		Scores: store,
		Logger: logger,
	}

	sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}, settings)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sshServer.ListenAndServe(ctx)
	})
	if flagHTTPAddr != "" {
		apiServer := api.NewServer(store, logger)
		g.Go(func() error {
			return apiServer.ListenAndServe(ctx, flagHTTPAddr)
		})
	}

	fmt.Printf("Starting snake SSH server on %s\n", sshServer.Addr())
	if _, port, err := net.SplitHostPort(sshServer.Addr()); err == nil {
		fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	}
	fmt.Println("Press Ctrl+C to stop")

	return g.Wait()
}
