package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballpop/internal/platform/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve [game]",
	Short: "Start the ballpop SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own board. Rounds are stored in the server's
database. With --redis, the best score and a per-player leaderboard are
shared through Redis, so several servers can share one record.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.ballpop/host_key

Examples:
  ballpop serve                                  # Listen on :23234
  ballpop serve --addr :2222                     # Listen on port 2222
  ballpop serve --host-key ./my_host_key         # Use specific host key
  ballpop serve --redis redis://localhost:6379/0 # Shared leaderboard

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.MaximumNArgs(1),
	Run:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", ":23234", "SSH server address (host:port)")
	f.String("host-key", "", "Path to host key file (auto-generated if not specified)")
	f.Int("idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	//nolint:errcheck // Only fails on a nil flag set
	env.BindPFlags(f)
}

func runServe(_ *cobra.Command, args []string) {
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = env.GetString("addr")
	cfg.HostKeyPath = env.GetString("host-key")
	cfg.DBPath = s.DBPath
	cfg.RedisURL = s.RedisURL
	cfg.TickRate = s.FPS
	cfg.IdleTimeout = time.Duration(env.GetInt("idle-timeout")) * time.Minute
	cfg.Logger = newLogger(os.Stderr, s.LogLevel)
	if len(args) > 0 {
		cfg.GameID = args[0]
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting ballpop SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
