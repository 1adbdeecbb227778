package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/driver"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// helpHeight is the number of rows below the game reserved for the help bar.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for a snake session.
type Model struct {
	game       *driver.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState

	player        string
	difficulty    string
	screenshotDir string

	quitting   bool
	scoreSaved bool // Whether the current game over has been recorded
	lastSaved  string
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPlayer sets the player name stored with finished games.
func WithPlayer(name string) ModelOption {
	return func(m *Model) {
		m.player = name
	}
}

// WithDifficulty sets the difficulty label stored with finished games.
func WithDifficulty(name string) ModelOption {
	return func(m *Model) {
		m.difficulty = name
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *log.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithScreenshotDir overrides where ctrl+s writes screenshots.
func WithScreenshotDir(dir string) ModelOption {
	return func(m *Model) {
		m.screenshotDir = dir
	}
}

// NewModel creates a new Bubble Tea model for the given game.
// cfg describes the whole terminal; the game gets everything above the help bar.
func NewModel(game *driver.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	for _, opt := range opts {
		opt(&m)
	}
	if m.screenshotDir == "" {
		m.screenshotDir = defaultScreenshotDir()
	}

	m.game.Reset(m.gameConfig())
	m.gameState = m.game.State()
	return m
}

func gameHeight(screenH int) int {
	return max(0, screenH-helpHeight)
}

// gameConfig returns the runtime config the driver sees.
func (m Model) gameConfig() core.RuntimeConfig {
	rc := m.config
	rc.ScreenH = gameHeight(rc.ScreenH)
	return rc
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		if !m.scoreSaved {
			m.logger.Info("session abandoned", "score", m.gameState.Score, "length", m.gameState.Length)
		}
		return m, tea.Quit
	case core.ActionNone:
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	// A board sized to the old window no longer fits, so start over. A
	// finished game keeps its board on screen until restart.
	if m.gameState.GameOver {
		rc := m.gameConfig()
		m.game.Resize(rc.ScreenW, rc.ScreenH)
	} else {
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.scoreSaved = false
	} else if !m.scoreSaved {
		m.saveGame()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveGame records the finished game. Storage errors are logged and the
// session continues.
func (m *Model) saveGame() {
	if m.store == nil {
		return
	}

	s := m.game.Summary()
	id, err := m.store.SaveGame(storage.Record{
		Player:     m.player,
		Score:      s.Score,
		Length:     s.Length,
		Moves:      s.Moves,
		Width:      s.Width,
		Height:     s.Height,
		Won:        s.Won,
		Difficulty: m.difficulty,
		Duration:   s.Duration,
	})
	if err != nil {
		m.logger.Warn("cannot save game", "error", err)
		return
	}
	m.lastSaved = id
	m.logger.Debug("game saved", "id", id, "score", s.Score)
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "snake-screenshots")
	}
	return filepath.Join(home, ".snake", "screenshots")
}

// saveScreenshot writes the current screen to a text file and returns its path.
func (m *Model) saveScreenshot() string {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return ""
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	var dump string
	if m.logger.GetLevel() <= log.DebugLevel {
		dump = "\n\n" + m.game.DebugState()
	}
	if err := os.WriteFile(path, []byte(m.screen.String()+dump), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return ""
	}

	m.logger.Info("screenshot saved", "path", path)
	return path
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with the given model.
func Run(game *driver.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
