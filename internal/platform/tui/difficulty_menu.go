package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// difficultyOption is one row of the difficulty menu.
type difficultyOption struct {
	preset config.DifficultyPreset
	label  string
	hint   string
}

var difficultyOptions = []difficultyOption{
	{config.DifficultyEasy, "Easy", "slower pace"},
	{config.DifficultyNormal, "Normal", "speeds up as you eat"},
	{config.DifficultyHard, "Hard", "fast start, longer snake"},
	{config.DifficultyFixed, "Fixed", "constant pace"},
}

// menuKeys are the bindings of the difficulty menu.
type menuKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultMenuKeys() menuKeys {
	return menuKeys{
		Up:     key.NewBinding(key.WithKeys("up", "w", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "s", "j")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// DifficultyModel lets users pick a difficulty preset before playing.
type DifficultyModel struct {
	cursor   int
	width    int
	height   int
	keys     menuKeys
	chosen   bool
	quitting bool
}

// NewDifficultyModel creates a difficulty menu with Normal preselected.
func NewDifficultyModel(width, height int) DifficultyModel {
	return DifficultyModel{
		cursor: 1,
		width:  width,
		height: height,
		keys:   defaultMenuKeys(),
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(difficultyOptions)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			m.chosen = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the menu.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("S N A K E", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-7s %s", cursor, opt.label, opt.hint), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Q/Esc: Quit", m.width))

	return b.String()
}

// Selected returns the chosen preset, or false if the user quit.
func (m DifficultyModel) Selected() (config.DifficultyPreset, bool) {
	if !m.chosen {
		return "", false
	}
	return difficultyOptions[m.cursor].preset, true
}

// RunDifficultyMenu shows the menu and returns the chosen preset.
// ok is false when the user quit without choosing.
func RunDifficultyMenu(width, height int) (preset config.DifficultyPreset, ok bool, err error) {
	p := tea.NewProgram(
		NewDifficultyModel(width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, isMenu := finalModel.(DifficultyModel)
	if !isMenu {
		return "", false, nil
	}
	preset, ok = m.Selected()
	return preset, ok, nil
}
