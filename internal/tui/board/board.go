package board

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"promptboard/internal/board/editor"
	"promptboard/internal/board/fs"
	"promptboard/internal/board/models"
	"promptboard/internal/board/store"
	"promptboard/internal/logs"
	"promptboard/internal/tui/messages"
	"promptboard/internal/tui/shared"
)

type boardMode int

const (
	boardModeNormal boardMode = iota
	boardModeEdit
	boardModeConfirmDelete
	boardModeFilter
)

type BoardModel struct {
	store           *store.Store
	cards           []models.Card
	editors         map[string]*editor.Editor
	selected        int // index into the visible cards
	rowOffset       int // first visible grid row
	mode            boardMode
	width           int
	height          int
	err             error
	warning         string
	message         string
	statusSeq       int
	editingID       string
	textarea        textarea.Model
	confirm         *shared.ConfirmationModal
	filterInput     textinput.Model
	filterQuery     string
	filterActive    bool
	filteredIndices []int
}

func NewBoardModel(st *store.Store) BoardModel {
	m := BoardModel{
		store:   st,
		editors: make(map[string]*editor.Editor),
		mode:    boardModeNormal,
	}
	m.refresh()
	return m
}

// SetSize updates the view dimensions
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.mode == boardModeEdit {
		m.textarea.SetWidth(m.editorWidth())
		m.textarea.SetHeight(m.editorHeight())
	}
	m.adjustScrollPosition()
}

// IsModal returns true while editing, filtering or confirming
func (m BoardModel) IsModal() bool {
	return m.mode != boardModeNormal
}

// Editor returns the editor of the card with the given id
func (m BoardModel) Editor(id string) (*editor.Editor, bool) {
	ed, ok := m.editors[id]
	return ed, ok
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles board events as a child view
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.message = ""
			m.warning = ""
		}
		return m, nil

	case shared.ConfirmationResultMsg:
		if m.mode != boardModeConfirmDelete {
			return m, nil
		}
		m.mode = boardModeNormal
		m.confirm = nil
		if msg.Confirmed {
			return m.handleRemove()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case boardModeNormal:
			return m.updateNormal(msg)
		case boardModeEdit:
			return m.updateEdit(msg)
		case boardModeConfirmDelete:
			return m, m.confirm.Update(msg)
		case boardModeFilter:
			return m.updateFilter(msg)
		}
	}

	// Cursor blink and other ticks
	var cmd tea.Cmd
	switch m.mode {
	case boardModeEdit:
		m.textarea, cmd = m.textarea.Update(msg)
	case boardModeFilter:
		m.filterInput, cmd = m.filterInput.Update(msg)
	}
	return m, cmd
}

func (m BoardModel) updateNormal(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	m.warning = ""

	visibleCount := len(m.visibleCards())
	cols := m.columns()

	switch msg.String() {
	case "esc":
		if m.filterActive {
			m.clearFilter()
		}

	case "/":
		ti := textinput.New()
		ti.Placeholder = "filter..."
		ti.CharLimit = 100
		ti.Width = 40
		ti.SetValue(m.filterQuery)
		ti.Focus()
		m.filterInput = ti
		m.mode = boardModeFilter
		m.selected = 0
		m.adjustScrollPosition()
		return m, textinput.Blink

	case "h", "left":
		if m.selected > 0 {
			m.selected--
		}

	case "l", "right":
		if m.selected < visibleCount-1 {
			m.selected++
		}

	case "j", "down":
		if m.selected+cols < visibleCount {
			m.selected += cols
		} else if m.selected/cols < (visibleCount-1)/cols {
			// Last row is shorter; land on its final card
			m.selected = visibleCount - 1
		}

	case "k", "up":
		if m.selected-cols >= 0 {
			m.selected -= cols
		}

	case "g", "home":
		m.selected = 0

	case "G", "end":
		m.selected = max(0, visibleCount-1)

	case "n":
		return m.handleNew()

	case "enter", "i":
		if card, ok := m.selectedCard(); ok {
			return m.startEdit(card.ID)
		}

	case "ctrl+s":
		if card, ok := m.selectedCard(); ok {
			return m.handleSave(card.ID)
		}

	case "D":
		if card, ok := m.selectedCard(); ok {
			details := fs.ExtractPreview(card.Text, 44)
			if details == "" {
				details = "(empty prompt)"
			}
			m.confirm = shared.NewConfirmationModal("Remove this prompt?", details, 50)
			m.mode = boardModeConfirmDelete
		}

	case "S":
		return m.handleSaveAll()
	}

	m.adjustScrollPosition()
	return m, nil
}

func (m BoardModel) updateEdit(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopEdit()
		return m, nil
	case "ctrl+s":
		return m.handleSave(m.editingID)
	}

	ed, ok := m.editors[m.editingID]
	if !ok {
		m.stopEdit()
		return m, nil
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)

	if after := m.textarea.Value(); after != before {
		m.warning = ""
		err := ed.OnEdit(after)
		m.textarea.CharLimit = ed.InputCap()
		if ed.Draft() != after {
			m.textarea.SetValue(ed.Draft())
		}
		m.refresh()
		m.setError(err)
	}

	return m, cmd
}

func (m BoardModel) updateFilter(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Lock filter and return to normal mode
		m.filterQuery = m.filterInput.Value()
		if m.filterQuery != "" {
			m.filterActive = true
			m.recomputeFilter()
		} else {
			m.filterActive = false
			m.filteredIndices = nil
		}
		m.selected = 0
		m.mode = boardModeNormal
		m.adjustScrollPosition()
		return m, nil

	case "esc":
		// Clear filter entirely
		m.clearFilter()
		m.mode = boardModeNormal
		return m, nil

	default:
		// Forward to textinput
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		// Live recompute
		m.filterQuery = m.filterInput.Value()
		if m.filterQuery != "" {
			m.filterActive = true
			m.recomputeFilter()
		} else {
			m.filterActive = false
			m.filteredIndices = nil
		}
		m.clampSelection()
		m.adjustScrollPosition()
		return m, cmd
	}
}

// handleNew adds a card at the front and opens it for editing
func (m BoardModel) handleNew() (BoardModel, tea.Cmd) {
	card, err := m.store.AddCard()
	m.clearFilter()
	m.refresh()
	m.selected = 0
	m.adjustScrollPosition()
	m.setError(err)

	var cmd tea.Cmd
	m, cmd = m.startEdit(card.ID)
	if err != nil {
		return m, cmd
	}
	status := m.setStatus("New prompt added")
	return m, tea.Batch(cmd, status)
}

func (m BoardModel) handleSave(id string) (BoardModel, tea.Cmd) {
	ed, ok := m.editors[id]
	if !ok {
		return m, nil
	}

	err := ed.OnSaveRequested()
	switch {
	case errors.Is(err, editor.ErrOverLimit):
		m.warning = fmt.Sprintf("Not saved: %d over the limit", -ed.CharsLeft())
		return m, nil
	case errors.Is(err, editor.ErrBlank):
		m.warning = "Not saved: prompt is empty"
		return m, nil
	}

	m.refresh()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.setError(nil)
	status := m.setStatus("Prompt saved")
	return m, status
}

func (m BoardModel) handleSaveAll() (BoardModel, tea.Cmd) {
	if err := m.store.Flush(); err != nil {
		m.setError(err)
		return m, nil
	}
	m.setError(nil)
	status := m.setStatus(fmt.Sprintf("All %d prompts saved", m.store.Total()))
	return m, status
}

func (m BoardModel) handleRemove() (BoardModel, tea.Cmd) {
	card, ok := m.selectedCard()
	if !ok {
		return m, nil
	}

	ed := m.editors[card.ID]
	err := ed.OnRemoveRequested()
	delete(m.editors, card.ID)

	m.refresh()
	m.adjustScrollPosition()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.setError(nil)
	status := m.setStatus("Prompt removed")
	return m, status
}

func (m BoardModel) startEdit(id string) (BoardModel, tea.Cmd) {
	ed, ok := m.editors[id]
	if !ok {
		return m, nil
	}

	ta := textarea.New()
	ta.Placeholder = "Write your prompt here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = ed.InputCap()
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.SetWidth(m.editorWidth())
	ta.SetHeight(m.editorHeight())
	ta.SetValue(ed.Draft())
	cmd := ta.Focus()

	m.textarea = ta
	m.editingID = id
	m.mode = boardModeEdit
	return m, tea.Batch(cmd, textarea.Blink)
}

func (m *BoardModel) stopEdit() {
	m.textarea.Blur()
	m.editingID = ""
	m.mode = boardModeNormal
	m.clampSelection()
	m.adjustScrollPosition()
}

// refresh reloads cards from the store and keeps one editor per card.
// Editors of surviving cards pick up externally changed text via Sync.
func (m *BoardModel) refresh() {
	m.cards = m.store.Cards()

	live := make(map[string]bool, len(m.cards))
	for _, c := range m.cards {
		live[c.ID] = true
		if ed, ok := m.editors[c.ID]; ok {
			ed.Sync(c.Text)
		} else {
			m.editors[c.ID] = editor.New(c.ID, c.Text, m.store)
		}
	}
	for id := range m.editors {
		if !live[id] {
			delete(m.editors, id)
		}
	}

	if m.filterActive {
		m.recomputeFilter()
	}
	m.clampSelection()
}

// setStatus shows a transient message and schedules its removal
func (m *BoardModel) setStatus(text string) tea.Cmd {
	m.statusSeq++
	m.message = text
	m.warning = ""
	return messages.ClearStatusAfter(messages.StatusTimeout, m.statusSeq)
}

// setError records the outcome of the latest write. Errors stay on screen
// until a later write succeeds.
func (m *BoardModel) setError(err error) {
	if err != nil {
		logs.Logger.Warnw("board write failed", "error", err)
	}
	m.err = err
}

func (m *BoardModel) selectedCard() (models.Card, bool) {
	visible := m.visibleCards()
	if m.selected < 0 || m.selected >= len(visible) {
		return models.Card{}, false
	}
	return visible[m.selected], true
}

func (m *BoardModel) clampSelection() {
	visibleCount := len(m.visibleCards())
	if m.selected >= visibleCount {
		m.selected = max(0, visibleCount-1)
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// columns returns how many cards fit side by side
func (m *BoardModel) columns() int {
	return max(1, (m.width-2)/(cardWidth+cardGap))
}

// visibleRows returns how many grid rows fit under the header
func (m *BoardModel) visibleRows() int {
	return max(1, m.gridHeight()/cardOuterHeight)
}

func (m *BoardModel) gridHeight() int {
	return m.height - headerLines - footerLines
}

// adjustScrollPosition keeps the selected card's row on screen
func (m *BoardModel) adjustScrollPosition() {
	row := m.selected / m.columns()
	rows := m.visibleRows()

	if row < m.rowOffset {
		m.rowOffset = row
	}
	if row >= m.rowOffset+rows {
		m.rowOffset = row - rows + 1
	}

	totalRows := (len(m.visibleCards()) + m.columns() - 1) / m.columns()
	if m.rowOffset > max(0, totalRows-rows) {
		m.rowOffset = max(0, totalRows-rows)
	}
}

func (m *BoardModel) editorWidth() int {
	return max(20, m.width-6)
}

func (m *BoardModel) editorHeight() int {
	return max(5, m.height-headerLines-footerLines-4)
}
