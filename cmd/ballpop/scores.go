package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/ballpop/internal/platform/tui"
	"github.com/vovakirdan/ballpop/internal/registry"
	"github.com/vovakirdan/ballpop/internal/storage"
	"github.com/vovakirdan/ballpop/internal/storage/redisstore"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top rounds for a game. With --redis the shared per-player
leaderboard is listed too.

Examples:
  ballpop scores
  ballpop scores --limit 25
  ballpop scores --interactive
  ballpop scores --redis redis://localhost:6379/0`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	f := scoresCmd.Flags()
	f.Int("limit", 10, "Number of rows to show")
	f.BoolP("interactive", "i", false, "Browse scores in a full-screen table")
	//nolint:errcheck // Only fails on a nil flag set
	env.BindPFlags(f)
}

func runScores(cmd *cobra.Command, args []string) {
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(os.Stderr, s.LogLevel)

	gameID := defaultGame
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'ballpop list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(s.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var shared *redisstore.Store
	if s.RedisURL != "" {
		rcfg := redisstore.DefaultConfig()
		rcfg.URL = s.RedisURL
		shared, err = redisstore.New(rcfg)
		if err != nil {
			logger.Warn("shared leaderboard unavailable", "err", err)
		} else {
			defer shared.Close()
		}
	}

	if env.GetBool("interactive") {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		var players tui.LeaderboardSource
		if shared != nil {
			players = shared
		}
		if err := tui.RunScoreboard(gameID, store, players, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	limit := env.GetInt("limit")
	scores, err := store.TopScores(gameID, limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	p := message.NewPrinter(language.English)
	title := gameID
	if game, cerr := registry.Create(gameID); cerr == nil {
		title = game.Title()
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'ballpop play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10s  %s\n", i+1, p.Sprintf("%d", entry.Score), entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	if stats, serr := store.GetGameStats(gameID); serr == nil && stats.HighScore > 0 {
		fmt.Println()
		p.Printf("Best: %d  (%d rounds, avg %.0f)\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}

	if shared == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	board, err := shared.Leaderboard(ctx, gameID, limit)
	if err != nil {
		logger.Warn("cannot read shared leaderboard", "err", err)
		return
	}

	fmt.Println()
	fmt.Println("Players")
	fmt.Println()
	for i, e := range board {
		fmt.Printf("  %-4d  %-10s  %s\n", i+1, p.Sprintf("%d", e.Score), e.Player)
	}
}
