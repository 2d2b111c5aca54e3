package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-maze/internal/leaderboard"
	"github.com/vovakirdan/gravity-maze/internal/live"
	"github.com/vovakirdan/gravity-maze/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the maze SSH server and leaderboard API",
	Long: `Start an SSH server that lets users connect and play, plus an HTTP
leaderboard. Each SSH connection gets its own session with the level
picker; runs are recorded under the SSH user name and shared by everyone.

HTTP endpoints:
  GET /api/levels                    - Levels with their best times
  GET /api/levels/:level/times       - Fastest runs (?limit=1..100)
  GET /api/live                      - Websocket feed of finished runs

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.maze/host_key

Examples:
  maze serve
  maze serve --ssh :2222 --http :8080
  maze serve --http ""                    # SSH only

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", tui.DefaultSSHServerConfig().Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "Leaderboard HTTP address (empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	a := setup(logStderr)
	a.openStore(false)
	svc := a.services(false)
	defer a.close(svc)

	hub := live.NewHub()
	defer hub.Close()
	svc.Hub = hub

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sshServer, err := tui.NewSSHServer(sshConfig(), a.reg, svc)
	if err != nil {
		a.close(svc)
		fatalf("Error creating server: %v\n", err)
	}

	errc := make(chan error, 2)
	if flagHTTPAddr != "" {
		go func() { errc <- serveHTTP(ctx, a, hub) }()
	}
	go func() { errc <- sshServer.ListenAndServe(ctx) }()

	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(sshServer.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	// The first server to stop takes the other one down with it.
	err = <-errc
	stop()
	if flagHTTPAddr != "" {
		if err2 := <-errc; err == nil {
			err = err2
		}
	}
	if err != nil {
		a.close(svc)
		fatalf("Server error: %v\n", err)
	}
}

// sshConfig applies the serve flags over the default SSH server config.
func sshConfig() tui.SSHServerConfig {
	cfg := tui.DefaultSSHServerConfig()
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	cfg.HostKeyPath = flagHostKey
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg
}

func serveHTTP(ctx context.Context, a *app, hub *live.Hub) error {
	var times leaderboard.Times
	if a.store != nil {
		times = a.store
	}
	srv := &http.Server{
		Addr:              flagHTTPAddr,
		Handler:           leaderboard.NewServer(a.levels, times, hub, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("starting leaderboard", "address", flagHTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("leaderboard: %w", err)
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down leaderboard")
	// Websocket subscribers end when the hub closes; Shutdown does not
	// wait for hijacked connections.
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
