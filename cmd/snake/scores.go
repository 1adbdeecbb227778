package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded games",
	Long: `Display the best recorded games and overall statistics.
Games marked with * filled the whole board.

Examples:
  snake scores
  snake scores --limit 25
  snake scores --interactive
  snake scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the scoreboard screen")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded games")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Println("All recorded games deleted.")
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		return
	}

	games, err := store.TopGames(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Println("High Scores - Snake")
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-12s  %s\n", "Rank", "Score", "Length", "Board", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-12s  %s\n", "----", "-----", "------", "-----", "------", "----")

	for i, g := range games {
		score := fmt.Sprintf("%d", g.Score)
		if g.Won {
			score += "*"
		}
		player := g.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-6s  %-6d  %-7s  %-12s  %s\n",
			i+1, score, g.Length, fmt.Sprintf("%dx%d", g.Width, g.Height), player,
			g.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Wins: %d  Best: %d  Average: %.1f  Longest snake: %d\n",
			stats.Games, stats.Wins, stats.HighScore, stats.AvgScore, stats.MaxLength)
		if !stats.LastPlayed.IsZero() {
			fmt.Printf("Last played: %s\n", stats.LastPlayed.Local().Format(time.DateTime))
		}
	}
}
