package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ballpop/internal/core"
	"github.com/vovakirdan/ballpop/internal/platform/tui"
	"github.com/vovakirdan/ballpop/internal/registry"
	"github.com/vovakirdan/ballpop/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. Without an argument the balls game starts.

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Space/Enter       - Pop the group under the cursor
  Mouse click       - Pop the group under the pointer
  R or RESTART      - New board (the finished round is recorded)
  P/Esc             - Pause
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 4 colors
  normal - 5 colors
  hard   - 6 colors
  fixed  - Palette from the config file

Examples:
  ballpop play
  ballpop play --difficulty easy
  ballpop play --config ./my-balls.yaml
  BALLPOP_SEED=42 ballpop play`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameID := defaultGame
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'ballpop list' to see available games.")
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: s.FPS,
		Seed:     s.Seed,
	}

	logger, closeLog := fileLogger(s.LogLevel)
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	opts := tui.Options{Logger: logger}

	// Continue without storage - game still works
	store, err := storage.Open(s.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", s.DBPath, "err", err)
	} else {
		opts.Recorder = store
		opts.Best = store.BestScores(gameID)
	}

	runErr := tui.Run(game, cfg, opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
