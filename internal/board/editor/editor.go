// Package editor tracks one card's in-progress draft, its character budget,
// and the session-local "saved" confirmation.
package editor

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// CharLimit is the most characters a prompt may have and still be saved
	CharLimit = 2000

	// InputSlack is how far past CharLimit typing is tolerated before truncation
	InputSlack = 500
)

var (
	// ErrOverLimit is returned when saving a draft longer than CharLimit
	ErrOverLimit = errors.New("prompt is over the character limit")

	// ErrBlank is returned when saving an empty or whitespace-only draft
	ErrBlank = errors.New("prompt is empty")
)

// State is the editor's position in the Clean -> Dirty -> Saved cycle
type State int

const (
	StateClean State = iota
	StateDirty
	StateSaved
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateSaved:
		return "saved"
	}
	return "unknown"
}

// Board is the part of the board store an editor reports to
type Board interface {
	UpdateCard(id, text string) error
	RemoveCard(id string) error
}

// Editor holds the draft for a single card
type Editor struct {
	id       string
	board    Board
	draft    string
	upstream string // last committed value seen or pushed
	baseline string // draft value considered clean/saved
	savedAt  time.Time
	now      func() time.Time
}

// New creates an editor for the card with the given id and committed text
func New(id, text string, board Board) *Editor {
	return &Editor{
		id:       id,
		board:    board,
		draft:    text,
		upstream: text,
		baseline: text,
		now:      time.Now,
	}
}

// SetClock overrides the time source used for the saved timestamp
func (e *Editor) SetClock(now func() time.Time) {
	e.now = now
}

// ID returns the id of the card being edited
func (e *Editor) ID() string {
	return e.id
}

// Draft returns the working text
func (e *Editor) Draft() string {
	return e.draft
}

// Sync re-initializes the draft when the committed value changed from
// somewhere other than this editor
func (e *Editor) Sync(committed string) {
	if committed == e.upstream {
		return
	}
	e.upstream = committed
	e.draft = committed
	e.baseline = committed
}

// OnEdit replaces the draft and pushes it straight to the board.
// The draft may not grow past InputCap; text already longer than that is
// kept but cannot be extended.
func (e *Editor) OnEdit(text string) error {
	e.draft = truncate(text, e.InputCap())
	e.upstream = e.draft
	return e.board.UpdateCard(e.id, e.draft)
}

// InputCap is the most characters the draft may hold after the next edit:
// CharLimit+InputSlack, or the current length when that is already larger
func (e *Editor) InputCap() int {
	return max(CharLimit+InputSlack, e.Length())
}

// OnSaveRequested commits the draft and records the save time. Over-limit or
// blank drafts are rejected without touching the board. A failed write is
// returned but the draft still counts as saved, since the board keeps it.
func (e *Editor) OnSaveRequested() error {
	if e.OverLimit() {
		return ErrOverLimit
	}
	if strings.TrimSpace(e.draft) == "" {
		return ErrBlank
	}

	e.upstream = e.draft
	err := e.board.UpdateCard(e.id, e.draft)
	e.baseline = e.draft
	e.savedAt = e.now()
	return err
}

// OnRemoveRequested deletes the card from the board. The editor should be
// discarded afterwards.
func (e *Editor) OnRemoveRequested() error {
	return e.board.RemoveCard(e.id)
}

// Length returns the draft length in characters
func (e *Editor) Length() int {
	return utf8.RuneCountInString(e.draft)
}

// CharsLeft returns CharLimit minus the draft length; negative when over
func (e *Editor) CharsLeft() int {
	return CharLimit - e.Length()
}

// OverLimit reports whether the draft is longer than CharLimit
func (e *Editor) OverLimit() bool {
	return e.CharsLeft() < 0
}

// CanSave reports whether the save control should be enabled
func (e *Editor) CanSave() bool {
	return !e.OverLimit() && strings.TrimSpace(e.draft) != ""
}

// SavedAt returns the time of the last save in this session
func (e *Editor) SavedAt() (time.Time, bool) {
	return e.savedAt, !e.savedAt.IsZero()
}

// State returns Clean, Dirty or Saved
func (e *Editor) State() State {
	if e.draft != e.baseline {
		return StateDirty
	}
	if !e.savedAt.IsZero() {
		return StateSaved
	}
	return StateClean
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
