package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/driver"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWidth      int
	flagHeight     int
	flagLength     int
	flagInterval   int
	flagMenu       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake",
	Long: `Start a game of snake in this terminal.

Controls:
  Arrows/WASD/HJKL  - Turn
  P/Esc/Space       - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Save a screenshot to ~/.snake/screenshots
  Q/Ctrl+C          - Quit

The snake cannot reverse onto itself; a turn into the opposite direction
is ignored. Leaving the board on one side re-enters on the other.

Difficulty options:
  easy   - Slower base pace, speeds up with score
  normal - Starts at 30% speed-up, progresses to max
  hard   - Starts at 70% speed-up with a longer snake
  fixed  - No progression, constant pace

Examples:
  snake play
  snake play --difficulty easy
  snake play --width 20 --height 10 --length 4
  snake play --interval 250
  snake play --menu
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width (0 = fit terminal)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height (0 = fit terminal)")
	playCmd.Flags().IntVar(&flagLength, "length", 0, "Initial snake length (0 = from config)")
	playCmd.Flags().IntVar(&flagInterval, "interval", 0, "Milliseconds between moves (0 = from config)")
	playCmd.Flags().BoolVar(&flagMenu, "menu", false, "Pick the difficulty from a menu before playing")
}

// addGameFlags registers the flags shared by every command that builds games.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// loadGameConfig loads the config file, applies the difficulty preset and
// any explicit flag overrides, and validates the result.
func loadGameConfig(cmd *cobra.Command) (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplySnakePreset(&cfg, preset)

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Board.Width = flagWidth
	}
	if flags.Changed("height") {
		cfg.Board.Height = flagHeight
	}
	if flags.Changed("length") {
		cfg.Snake.InitialLength = flagLength
	}
	if flags.Changed("interval") {
		cfg.Timing.MoveIntervalMS = flagInterval
		cfg.Timing.MinIntervalMS = min(cfg.Timing.MinIntervalMS, flagInterval)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runPlay(cmd *cobra.Command, _ []string) {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if flagMenu && flagDifficulty == "" {
		preset, ok, menuErr := tui.RunDifficultyMenu(width, height)
		if menuErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", menuErr)
			os.Exit(1)
		}
		// User quit the menu
		if !ok {
			return
		}
		flagDifficulty = string(preset)
	}

	cfg, err := loadGameConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("running without score storage", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	game := driver.New(cfg, logger)
	runErr := tui.Run(game, store, rc,
		tui.WithPlayer(playerName()),
		tui.WithDifficulty(flagDifficulty),
		tui.WithLogger(logger),
	)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}

// playerName returns the local user name stored with finished games.
func playerName() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
