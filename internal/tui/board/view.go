package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"promptboard/internal/board/editor"
	"promptboard/internal/board/fs"
	"promptboard/internal/board/models"
	"promptboard/internal/tui/shared"
	"promptboard/internal/tui/theme"
)

const (
	headerLines = 3 // title, stats, filter bar
	footerLines = 3 // scroll indicator, status, help
)

func (m BoardModel) View() string {
	if m.mode == boardModeConfirmDelete && m.confirm != nil {
		return m.confirm.View(m.width, m.height)
	}

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")

	if m.mode == boardModeEdit {
		s.WriteString(m.renderEditor())
	} else {
		s.WriteString(m.renderGrid())
	}
	s.WriteString("\n")

	// Status message or error
	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.warning != "":
		s.WriteString(warningStyle.Render(m.warning))
	case m.message != "":
		s.WriteString(successStyle.Render(m.message))
	}
	s.WriteString("\n")

	s.WriteString(helpStyle.Render(m.helpText()))

	return s.String()
}

func (m BoardModel) renderHeader() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Prompt Board"))
	s.WriteString(subtitleStyle.Render("A clean space to draft and save prompts"))
	s.WriteString("\n")

	s.WriteString(" ")
	s.WriteString(statLabel.Render("Total: "))
	s.WriteString(statTotal.Render(fmt.Sprint(m.store.Total())))
	s.WriteString("   ")
	s.WriteString(statLabel.Render("Filled: "))
	s.WriteString(statFilled.Render(fmt.Sprint(m.store.Filled())))
	s.WriteString("\n")

	// Filter bar
	if m.mode == boardModeFilter {
		s.WriteString(" / " + m.filterInput.View())
	} else if m.filterActive {
		s.WriteString(" " + filterIndicatorStyle.Render(
			fmt.Sprintf("Filter: %s (%d of %d)", m.filterQuery, len(m.visibleCards()), len(m.cards))))
	}

	return s.String()
}

func (m BoardModel) renderGrid() string {
	visible := m.visibleCards()
	gridHeight := max(cardOuterHeight, m.gridHeight())

	if len(visible) == 0 {
		text := "No prompts. Press n to add one."
		if m.filterActive {
			text = "No prompts match the filter."
		}
		return shared.CenterContent(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, placeholderStyle.Render(text)), gridHeight-1)
	}

	cols := m.columns()
	rows := m.visibleRows()
	start := m.rowOffset * cols
	end := min(len(visible), start+rows*cols)

	var rowViews []string
	for i := start; i < end; i += cols {
		var cardViews []string
		for j := i; j < min(i+cols, end); j++ {
			if j > i {
				cardViews = append(cardViews, strings.Repeat(" ", cardGap))
			}
			cardViews = append(cardViews, m.renderCard(j, visible[j]))
		}
		rowViews = append(rowViews, lipgloss.JoinHorizontal(lipgloss.Top, cardViews...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, rowViews...)
	grid = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, grid)

	// Scroll indicator
	var indicator string
	above := m.rowOffset * cols
	below := len(visible) - end
	switch {
	case above > 0 && below > 0:
		indicator = fmt.Sprintf("▲ +%d above  ▼ +%d below", above, below)
	case above > 0:
		indicator = fmt.Sprintf("▲ +%d above", above)
	case below > 0:
		indicator = fmt.Sprintf("▼ +%d below", below)
	}

	return grid + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, scrollIndicatorStyle.Render(indicator))
}

func (m BoardModel) renderCard(index int, card models.Card) string {
	ed := m.editors[card.ID]

	// Line 1: title, with the saved indicator on the right
	title := "Prompt"
	if card.IsFilled() {
		title = fs.ExtractTitle(card.Text)
	}
	badge := stateBadge(ed)
	title = clipWidth(title, cardInnerWidth-lipgloss.Width(badge)-1)
	gap := max(1, cardInnerWidth-lipgloss.Width(title)-lipgloss.Width(badge))
	lines := []string{cardTitleStyle.Render(title) + strings.Repeat(" ", gap) + badge}

	// Lines 2-4: preview
	var previewLines []string
	if card.IsFilled() {
		preview := fs.ExtractPreview(card.Text, cardInnerWidth*cardPreviewLines)
		wrapped := lipgloss.NewStyle().Width(cardInnerWidth).Render(preview)
		previewLines = strings.Split(wrapped, "\n")
		if len(previewLines) > cardPreviewLines {
			previewLines = previewLines[:cardPreviewLines]
		}
		for i, l := range previewLines {
			previewLines[i] = cardPreviewStyle.Render(l)
		}
	} else {
		previewLines = []string{placeholderStyle.Render("Write your prompt here...")}
	}
	for len(previewLines) < cardPreviewLines {
		previewLines = append(previewLines, "")
	}
	lines = append(lines, previewLines...)

	// Line 5: character budget
	lines = append(lines, charBudget(ed))

	overLimit := ed != nil && ed.OverLimit()
	style := cardStyle
	switch {
	case index == m.selected && overLimit:
		style = selectedCardStyle.BorderForeground(theme.Danger)
	case index == m.selected:
		style = selectedCardStyle
	case overLimit:
		style = overLimitCardStyle
	}

	return style.Render(strings.Join(lines, "\n"))
}

func (m BoardModel) renderEditor() string {
	ed, ok := m.editors[m.editingID]
	if !ok {
		return ""
	}

	header := cardTitleStyle.Render("Editing prompt") + "  " + stateBadge(ed)
	footer := charBudget(ed)

	box := editorBoxStyle
	if ed.OverLimit() {
		box = editorOverLimitBoxStyle
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, m.textarea.View(), footer)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box.Render(content))
}

func (m BoardModel) helpText() string {
	switch m.mode {
	case boardModeEdit:
		save := "ctrl+s: save prompt"
		if ed, ok := m.editors[m.editingID]; ok && !ed.CanSave() {
			save = disabledHintStyle.Render(save)
		}
		return save + " • esc: done editing"
	case boardModeFilter:
		return "type to filter • enter: lock filter • esc: cancel"
	}

	if m.filterActive {
		return "hjkl: navigate • enter: edit • D: remove • /: edit filter • esc: clear filter • ?: help"
	}
	return "hjkl: navigate • n: new box • enter: edit • ctrl+s: save • D: remove • S: save all • /: filter • ?: help • q: quit"
}

// stateBadge renders the saved indicator for a card
func stateBadge(ed *editor.Editor) string {
	if ed == nil {
		return ""
	}
	switch ed.State() {
	case editor.StateSaved:
		return savedStyle.Render("✓ Saved")
	case editor.StateDirty:
		return dirtyStyle.Render("●")
	}
	return ""
}

// charBudget renders "N characters left" or "N over the limit"
func charBudget(ed *editor.Editor) string {
	if ed == nil {
		return ""
	}
	if ed.OverLimit() {
		return overLimitStyle.Render(fmt.Sprintf("%d over the limit", -ed.CharsLeft()))
	}
	return charsLeftStyle.Render(fmt.Sprintf("%d characters left", ed.CharsLeft()))
}

// clipWidth shortens s to at most w cells, marking the cut with "..."
func clipWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	if len(runes) > w {
		runes = runes[:w]
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// HelpContent is the board's help popup: keybinds plus a legend of the
// markers drawn on each card
func HelpContent() shared.HelpContent {
	return shared.HelpContent{
		Title:    "Prompt Board",
		Sections: helpSections(),
		Legend: []shared.HelpLegendEntry{
			{Sample: savedStyle.Render("✓ Saved"), Desc: "Saved, no edits since"},
			{Sample: dirtyStyle.Render("●"), Desc: "Edited since the last save"},
			{Sample: charsLeftStyle.Render("120 characters left"), Desc: fmt.Sprintf("Room left under %d", editor.CharLimit)},
			{Sample: overLimitStyle.Render("15 over the limit"), Desc: "Save is disabled until trimmed"},
		},
		Note: "Every keystroke is written to storage; save marks a prompt as done.",
	}
}

func helpSections() []shared.HelpSection {
	return []shared.HelpSection{
		{
			Title: "Board",
			Binds: []shared.HelpBind{
				{Key: "h j k l", Desc: "Navigate cards"},
				{Key: "g / G", Desc: "First / last card"},
				{Key: "n", Desc: "New box (added at the front)"},
				{Key: "enter / i", Desc: "Edit prompt"},
				{Key: "ctrl+s", Desc: "Save prompt"},
				{Key: "D", Desc: "Remove prompt"},
				{Key: "S", Desc: "Save all"},
				{Key: "/", Desc: "Fuzzy filter"},
				{Key: "esc", Desc: "Clear filter"},
			},
		},
		{
			Title: "Editing",
			Binds: []shared.HelpBind{
				{Key: "ctrl+s", Desc: fmt.Sprintf("Save prompt (up to %d characters)", editor.CharLimit)},
				{Key: "esc", Desc: "Done editing"},
			},
		},
		{
			Title: "General",
			Binds: []shared.HelpBind{
				{Key: "?", Desc: "Show this help"},
				{Key: "q", Desc: "Quit"},
				{Key: "ctrl+c", Desc: "Force quit"},
			},
		},
	}
}
