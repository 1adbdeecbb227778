// Package driver runs a snake Arena on the platform's fixed-rate tick loop.
// It turns input frames into direction requests, decides when the snake
// moves, rebuilds the arena on restart and draws the state into a
// core.Screen. The arena itself never sees ticks, keys or screens.
package driver

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// hudHeight is the number of screen rows above the board.
const hudHeight = 2

// Summary describes a finished (or abandoned) session.
type Summary struct {
	Score    int
	Length   int
	Moves    uint64
	Width    int
	Height   int
	Won      bool
	Duration time.Duration
}

// Game drives one snake session at a time.
type Game struct {
	cfg        config.SnakeConfig
	difficulty *config.DifficultyManager
	logger     *log.Logger

	runtime core.RuntimeConfig
	rng     *rand.Rand
	arena   *snake.Arena
	started time.Time

	// Heading of the last move; turns are checked against it so several
	// turns queued between moves cannot fold the snake back onto its neck.
	movedHeading snake.Direction

	tick         uint64
	moveTicker   int // Counts ticks until next move
	ticksPerMove int

	// Board placement on screen, border included
	board core.Rect

	gameOver bool
	won      bool
	paused   bool
	tooSmall bool
}

// New creates a driver for the given configuration. A nil logger discards output.
func New(cfg config.SnakeConfig, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		logger:     logger,
	}
}

// ID returns the identifier used for score storage.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name shown in the HUD.
func (g *Game) Title() string {
	return "Snake"
}

// Reset discards the current arena and starts a new session sized to the screen.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if rc.TickRate <= 0 {
		rc.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = rc
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.moveTicker = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.tooSmall = false
	g.arena = nil
	g.started = time.Now()

	width, height := g.boardSize()
	if width+2 > rc.ScreenW || height+2+hudHeight > rc.ScreenH {
		g.tooSmall = true
		g.logger.Warn("screen too small for board",
			"screen", [2]int{rc.ScreenW, rc.ScreenH}, "board", [2]int{width, height})
		return
	}

	arena, err := snake.NewArena(width, height, g.cfg.Snake.InitialLength, snake.WithRand(g.rng))
	if err != nil {
		g.tooSmall = true
		if !errors.Is(err, snake.ErrSnakeTooLong) && !errors.Is(err, snake.ErrInvalidBounds) {
			g.logger.Error("cannot create arena", "error", err)
		} else {
			g.logger.Warn("board cannot hold snake", "error", err)
		}
		return
	}
	g.arena = arena
	g.movedHeading = arena.Heading()
	g.placeBoard()
	g.updateSpeed()

	g.logger.Info("session started",
		"board", [2]int{width, height}, "length", g.cfg.Snake.InitialLength, "seed", rc.Seed)
}

// Resize fits the current board to a new screen without restarting the
// session. A later restart sizes the new board to this screen.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	if g.arena != nil {
		g.placeBoard()
	}
}

// placeBoard centers the arena horizontally below the HUD.
func (g *Game) placeBoard() {
	w, h := g.arena.Width()+2, g.arena.Height()+2
	g.board = core.Rect{
		X: (g.runtime.ScreenW - w) / 2,
		Y: hudHeight,
		W: w,
		H: h,
	}
	g.tooSmall = w > g.runtime.ScreenW || h+hudHeight > g.runtime.ScreenH
}

// boardSize returns the configured board, filling the screen where the
// configuration leaves a dimension at zero.
func (g *Game) boardSize() (int, int) {
	width, height := g.cfg.Board.Width, g.cfg.Board.Height
	if width == 0 {
		width = g.runtime.ScreenW - 2
	}
	if height == 0 {
		height = g.runtime.ScreenH - hudHeight - 2
	}
	return width, height
}

// Step advances the driver by one platform tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && g.gameOver {
		rc := g.runtime
		rc.Seed = g.rng.Int63()
		g.Reset(rc)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall || g.arena == nil {
		return core.StepResult{State: g.State()}
	}

	moved := false
	for _, action := range in.Turns() {
		if g.gameOver {
			break
		}
		if g.turn(action) && g.cfg.Timing.StepOnTurn {
			g.move()
			moved = true
		}
	}

	if moved {
		return core.StepResult{State: g.State(), Moved: true}
	}

	g.moveTicker++
	if g.moveTicker >= g.ticksPerMove && !g.gameOver {
		g.move()
		moved = true
	}

	return core.StepResult{State: g.State(), Moved: moved}
}

// turn forwards a directional action to the arena and reports whether the
// heading actually changed. A turn back along the last move is ignored even
// when the requested heading has already moved on.
func (g *Game) turn(a core.Action) bool {
	var d snake.Direction
	switch a {
	case core.ActionUp:
		d = snake.DirUp
	case core.ActionDown:
		d = snake.DirDown
	case core.ActionLeft:
		d = snake.DirLeft
	case core.ActionRight:
		d = snake.DirRight
	default:
		return false
	}

	if d == g.movedHeading.Opposite() {
		return false
	}
	prev := g.arena.Heading()
	return g.arena.SetDirection(d) && d != prev
}

// move steps the arena once and resolves the session outcome.
func (g *Game) move() {
	g.moveTicker = 0
	g.movedHeading = g.arena.Heading()
	outcome := g.arena.Step()

	if g.logger.GetLevel() <= log.DebugLevel {
		g.logger.Debug("step", "outcome", outcome, "state", g.arena.DebugSnapshot())
	}

	switch {
	case outcome == snake.OutcomeTerminated:
		g.gameOver = true
		g.logger.Info("game over",
			"score", g.arena.Score(), "length", g.arena.Len(), "moves", g.arena.Ticks())
	case !g.hasFood():
		// Nothing left to eat: the snake covers the board.
		g.gameOver = true
		g.won = true
		g.logger.Info("board filled",
			"score", g.arena.Score(), "length", g.arena.Len(), "moves", g.arena.Ticks())
	default:
		g.updateSpeed()
	}
}

func (g *Game) hasFood() bool {
	_, ok := g.arena.FoodPosition()
	return ok
}

// updateSpeed recomputes the move cadence from the current score.
func (g *Game) updateSpeed() {
	interval := g.difficulty.MoveInterval(
		g.cfg.Timing.MoveInterval(), g.cfg.Timing.MinInterval(),
		g.arena.Score(), g.arena.Ticks(),
	)
	g.ticksPerMove = config.TicksPerMove(interval, g.runtime.TickRate)
}

// Speed returns the current speed relative to the base interval.
func (g *Game) Speed() float64 {
	if g.ticksPerMove == 0 {
		return 1
	}
	base := config.TicksPerMove(g.cfg.Timing.MoveInterval(), g.runtime.TickRate)
	return float64(base) / float64(g.ticksPerMove)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
	if g.arena != nil {
		st.Score = g.arena.Score()
		st.Length = g.arena.Len()
	}
	return st
}

// Summary describes the current session for persistence.
func (g *Game) Summary() Summary {
	s := Summary{
		Won:      g.won,
		Duration: time.Since(g.started),
	}
	if g.arena != nil {
		s.Score = g.arena.Score()
		s.Length = g.arena.Len()
		s.Moves = g.arena.Ticks()
		s.Width = g.arena.Width()
		s.Height = g.arena.Height()
	}
	return s
}

// DebugState returns the arena dump, or a note when no arena exists.
func (g *Game) DebugState() string {
	if g.arena == nil {
		return "no arena (screen too small)\n"
	}
	return g.arena.DebugSnapshot()
}
