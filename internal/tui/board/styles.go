package board

import (
	"github.com/charmbracelet/lipgloss"

	"promptboard/internal/tui/theme"
)

const (
	// Layout constants
	cardWidth             = 34
	cardGap               = 1
	cardPaddingHorizontal = 1
	cardBorderWidth       = 2
	cardPreviewLines      = 3
	cardContentLines      = cardPreviewLines + 2 // title + preview + footer
	cardOuterHeight       = cardContentLines + 2 // plus top and bottom border
	cardInnerWidth        = cardWidth - cardBorderWidth - 2*cardPaddingHorizontal
)

var (
	// Header styles
	titleStyle    = theme.Title.Padding(0, 1)
	subtitleStyle = theme.Muted
	statLabel     = theme.Muted
	statTotal     = theme.Bold.Foreground(theme.TextBright)
	statFilled    = theme.Ok

	// Card styles
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, cardPaddingHorizontal).
			Width(cardWidth - cardBorderWidth).
			Height(cardContentLines)

	selectedCardStyle = cardStyle.
				BorderForeground(theme.BorderFocused).
				Background(theme.Surface)

	overLimitCardStyle = cardStyle.
				BorderForeground(theme.Danger)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true)

	cardPreviewStyle = lipgloss.NewStyle().
				Foreground(theme.Text)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(theme.TextMuted).
				Italic(true)

	charsLeftStyle = theme.Muted
	overLimitStyle = theme.Error
	savedStyle     = theme.Ok
	dirtyStyle     = theme.Warn

	// Editor panel
	editorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderFocused).
			Padding(0, 1)

	editorOverLimitBoxStyle = editorBoxStyle.
				BorderForeground(theme.Danger)

	// Help styles
	helpStyle         = theme.HelpHint.Padding(0, 2)
	disabledHintStyle = theme.Muted.Strikethrough(true)

	// Message styles
	errorStyle   = theme.Error
	warningStyle = theme.Warn
	successStyle = theme.Ok

	// Filter indicator style
	filterIndicatorStyle = lipgloss.NewStyle().
				Foreground(theme.Warning).
				Bold(true)

	// Scroll indicator style
	scrollIndicatorStyle = lipgloss.NewStyle().
				Foreground(theme.Primary).
				Italic(true)
)
