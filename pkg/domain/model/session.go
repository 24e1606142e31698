package model

import (
	"time"

	"github.com/pantry-lab/pantrybot/pkg/domain/types"
)

// WorkingRow is one row of the snapshot shown to the user. The 1-based
// position inside Session.WorkingSet is the display index the user types;
// the ID is never exposed.
type WorkingRow struct {
	ID        int64
	Text      string
	CreatedAt time.Time
}

// PendingPhoto is a not-yet-confirmed batch of items recognized from a photo,
// awaiting an explicit confirm or cancel.
type PendingPhoto struct {
	Category types.Category
	Location types.Location
	Items    []string
}

// Session is the ephemeral per-user conversational context. It is mutated
// only by events of its own user and is never persisted.
type Session struct {
	Flow            types.FlowState
	Action          types.FlowAction
	Category        types.Category
	Location        types.Location
	MoveDestination types.Location
	EditField       types.EditField
	WorkingSet      []WorkingRow
	PendingPhoto    *PendingPhoto
}

// NewSession returns an idle session
func NewSession() *Session {
	return &Session{Flow: types.FlowIdle}
}

// Reset clears all flow state, returning the session to idle. Reset always
// succeeds and never blocks.
func (s *Session) Reset() {
	*s = Session{Flow: types.FlowIdle}
}

// SetWorkingSet snapshots the given items as the current working set.
// Display indices handed to the user are only meaningful against this
// snapshot; after any mutation it must be refreshed before being shown again.
func (s *Session) SetWorkingSet(items []*Item) {
	rows := make([]WorkingRow, len(items))
	for i, item := range items {
		rows[i] = WorkingRow{ID: item.ID, Text: item.Text, CreatedAt: item.CreatedAt}
	}
	s.WorkingSet = rows
}
