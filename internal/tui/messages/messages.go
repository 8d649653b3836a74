package messages

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusTimeout is how long a transient status line stays visible
const StatusTimeout = 3 * time.Second

// ClearStatusMsg clears the status line set under the same sequence number.
// A newer status bumps the sequence so an older timer cannot clear it.
type ClearStatusMsg struct {
	Seq int
}

// ClearStatusAfter schedules a ClearStatusMsg for seq
func ClearStatusAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
