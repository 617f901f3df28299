// ballpop is a ball-popping puzzle for the terminal.
//
// Usage:
//
//	ballpop list              - List available games
//	ballpop play [game]       - Play (defaults to balls)
//	ballpop serve             - Start SSH server for remote play
//	ballpop scores [game]     - Show high scores
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.ballpop/scores.db)
//	--config <path>       - Custom balls.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--redis <url>         - Shared leaderboard (serve and scores)
//	--log-level <level>   - debug, info, warn, error
//
// Every flag can also be set from the environment as BALLPOP_<FLAG>, with
// dashes turned into underscores (BALLPOP_LOG_LEVEL=debug).
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/ballpop/internal/config"
	"github.com/vovakirdan/ballpop/internal/games/balls"
)

const defaultGame = "balls"

// settings is the resolved view of flags and BALLPOP_* variables.
type settings struct {
	FPS        int
	Seed       int64
	DBPath     string
	Config     string
	Difficulty config.DifficultyPreset
	RedisURL   string
	LogLevel   log.Level
}

var env = viper.New()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ballpop",
	Short: "Pop groups of same-colored balls in your terminal",
	Long: `ballpop fills the terminal with colored balls. Pick a ball to pop it
together with every touching ball of the same color. Groups of three or more
pop; bigger groups score exponentially more.

Available commands:
  list     - Show all available games
  play     - Play a game
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  ballpop play
  ballpop play --difficulty hard
  ballpop serve --addr :2222 --redis redis://localhost:6379/0
  ballpop scores --interactive`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int("fps", 60, "Tick rate (frames per second)")
	pf.Int64("seed", 0, "RNG seed (0 = random based on time)")
	pf.String("db", "~/.ballpop/scores.db", "Path to scores database")
	pf.String("config", "", "Path to custom balls.yaml")
	pf.String("difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.String("redis", "", "Redis URL for the shared leaderboard")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")

	env.SetEnvPrefix("BALLPOP")
	env.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	env.AutomaticEnv()
	//nolint:errcheck // Only fails on a nil flag set
	env.BindPFlags(pf)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadSettings resolves flags, falling back to the environment, and pushes
// the game options into the balls package before any game is created.
func loadSettings() (settings, error) {
	s := settings{
		FPS:      env.GetInt("fps"),
		Seed:     env.GetInt64("seed"),
		DBPath:   env.GetString("db"),
		Config:   env.GetString("config"),
		RedisURL: env.GetString("redis"),
	}
	if s.FPS <= 0 {
		return s, fmt.Errorf("invalid --fps %d", s.FPS)
	}

	preset, err := config.ParseDifficultyPreset(env.GetString("difficulty"))
	if err != nil {
		return s, err
	}
	s.Difficulty = preset

	level, err := log.ParseLevel(env.GetString("log-level"))
	if err != nil {
		return s, fmt.Errorf("invalid --log-level: %w", err)
	}
	s.LogLevel = level

	balls.SetConfigPath(s.Config)
	balls.SetDifficultyPreset(s.Difficulty)
	return s, nil
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "ballpop",
		Level:           level,
	})
}

// fileLogger logs to ~/.ballpop/ballpop.log so the full-screen UI stays clean.
// It falls back to discarding output when the file cannot be opened.
func fileLogger(level log.Level) (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard, level), func() {}
	}
	dir := filepath.Join(home, ".ballpop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, level), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "ballpop.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard, level), func() {}
	}
	//nolint:errcheck // Best-effort close on exit
	return newLogger(f, level), func() { f.Close() }
}
