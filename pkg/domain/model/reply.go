package model

import "github.com/pantry-lab/pantrybot/pkg/domain/types"

// MenuKind identifies which set of menu actions accompanies a reply.
// The transport layer renders these into actual controls.
type MenuKind string

const (
	MenuNone            MenuKind = "none"
	MenuMain            MenuKind = "main"
	MenuCategory        MenuKind = "category"
	MenuLocation        MenuKind = "location"
	MenuMoveDestination MenuKind = "move_destination"
	MenuEditField       MenuKind = "edit_field"
	MenuPhotoCategory   MenuKind = "photo_category"
	MenuPhotoConfirm    MenuKind = "photo_confirm"
)

// Menu describes the next available actions after a reply. Action/Category/
// Exclude carry the context the rendered buttons must encode back.
type Menu struct {
	Kind     MenuKind
	Action   types.FlowAction
	Category types.Category
	Exclude  types.Location
}

// ListRow is one 1-based enumerated row of the current working set,
// as rendered to the user. Internal ids are never exposed.
type ListRow struct {
	Index   int
	Text    string
	AgeDays int
}

// Reply is the display payload every handler returns: body text, the next
// menu, and an optional enumerated listing of the current working set.
type Reply struct {
	Text string
	Menu Menu
	Rows []ListRow
}

// MainMenuReply is a convenience constructor for a text reply with the main menu
func MainMenuReply(text string) *Reply {
	return &Reply{Text: text, Menu: Menu{Kind: MenuMain}}
}
