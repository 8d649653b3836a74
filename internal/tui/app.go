package tui

import (
	"promptboard/internal/board/store"
	boardview "promptboard/internal/tui/board"
	"promptboard/internal/tui/shared"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppModel is the root model wrapping the board view
type AppModel struct {
	boardView boardview.BoardModel
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model
func NewAppModel(st *store.Store) AppModel {
	return AppModel{
		boardView: boardview.NewBoardModel(st),
	}
}

// Run starts the interactive board and blocks until the user quits
func Run(st *store.Store) error {
	p := tea.NewProgram(NewAppModel(st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 2 // Reserve space for status bar
		m.boardView.SetSize(msg.Width, contentHeight)
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// While editing, filtering or confirming, the board gets every key
		if !m.boardView.IsModal() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.boardView, cmd = m.boardView.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup(boardview.HelpContent(), m.width, m.height)
	}

	statusText := "Prompt board | ?: help | q: quit"
	if m.boardView.IsModal() {
		statusText = "Prompt board | ctrl+c: quit"
	}

	statusBar := StatusBarStyle.Width(m.width).Render(
		HelpStyle.Render(statusText),
	)

	return lipgloss.JoinVertical(lipgloss.Left, m.boardView.View(), statusBar)
}
