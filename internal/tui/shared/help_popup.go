package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"promptboard/internal/tui/theme"
)

// HelpBind represents a single keybind entry
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection represents a group of related keybinds
type HelpSection struct {
	Title string
	Binds []HelpBind
}

// HelpLegendEntry explains one on-screen marker. Sample is shown as given,
// so callers render it in the style it has on screen.
type HelpLegendEntry struct {
	Sample string
	Desc   string
}

// HelpContent is everything the help popup shows
type HelpContent struct {
	Title    string
	Sections []HelpSection
	Legend   []HelpLegendEntry
	Note     string
}

var (
	helpTitleStyle   = theme.Title.MarginBottom(1)
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	helpKeyStyle     = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	helpDescStyle    = lipgloss.NewStyle().Foreground(theme.Text)
	helpBoxStyle     = theme.ModalBox
	helpDismissStyle = theme.Muted
)

const helpColumnGap = 4

// RenderHelpPopup renders the help content centered in width x height.
// Sections go side by side when the terminal is wide enough.
func RenderHelpPopup(content HelpContent, width, height int) string {
	keyWidth := 0
	for _, section := range content.Sections {
		for _, bind := range section.Binds {
			keyWidth = max(keyWidth, lipgloss.Width(bind.Key))
		}
	}
	keyWidth += 2

	blocks := make([]string, len(content.Sections))
	for i, section := range content.Sections {
		var b strings.Builder
		b.WriteString(helpSectionStyle.Render(section.Title))
		for _, bind := range section.Binds {
			b.WriteString("\n  ")
			b.WriteString(helpKeyStyle.Width(keyWidth).Render(bind.Key))
			b.WriteString(helpDescStyle.Render(bind.Desc))
		}
		blocks[i] = b.String()
	}

	var parts []string
	if content.Title != "" {
		parts = append(parts, helpTitleStyle.Render(content.Title))
	}
	parts = append(parts, layoutHelpBlocks(blocks, width))

	if len(content.Legend) > 0 {
		sampleWidth := 0
		for _, entry := range content.Legend {
			sampleWidth = max(sampleWidth, lipgloss.Width(entry.Sample))
		}

		var b strings.Builder
		b.WriteString(helpSectionStyle.Render("Legend"))
		for _, entry := range content.Legend {
			pad := strings.Repeat(" ", sampleWidth-lipgloss.Width(entry.Sample)+2)
			b.WriteString("\n  " + entry.Sample + pad + helpDescStyle.Render(entry.Desc))
		}
		parts = append(parts, "", b.String())
	}

	if content.Note != "" {
		parts = append(parts, "", helpDescStyle.Render(content.Note))
	}
	parts = append(parts, "", helpDismissStyle.Render("Press any key to close"))

	box := helpBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// layoutHelpBlocks puts the first block in a left column and stacks the rest
// on the right, falling back to one column on narrow terminals
func layoutHelpBlocks(blocks []string, width int) string {
	if len(blocks) < 2 {
		return strings.Join(blocks, "\n")
	}

	left := blocks[0]
	right := strings.Join(blocks[1:], "\n\n")
	// box border and padding take 6 columns
	if lipgloss.Width(left)+helpColumnGap+lipgloss.Width(right)+6 > width {
		return strings.Join(blocks, "\n\n")
	}
	gap := strings.Repeat(" ", helpColumnGap)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}
