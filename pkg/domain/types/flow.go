package types

// FlowState identifies which multi-step conversation flow is active for a
// session and which step it is waiting on.
type FlowState string

const (
	FlowIdle                    FlowState = "idle"
	FlowAwaitingCategory        FlowState = "awaiting_category"
	FlowAwaitingLocation        FlowState = "awaiting_location"
	FlowAwaitingFreeformAdd     FlowState = "awaiting_freeform_add"
	FlowAwaitingDeleteSelection FlowState = "awaiting_delete_selection"
	FlowAwaitingMoveDestination FlowState = "awaiting_move_destination"
	FlowAwaitingMoveSelection   FlowState = "awaiting_move_selection"
	FlowAwaitingEditField       FlowState = "awaiting_edit_field"
	FlowAwaitingEditValue       FlowState = "awaiting_edit_value"
	FlowAwaitingPhotoKind       FlowState = "awaiting_photo_kind"
	FlowAwaitingPhoto           FlowState = "awaiting_photo"
	FlowAwaitingPhotoConfirm    FlowState = "awaiting_photo_confirm"
)

// String returns the string representation of the flow state
func (s FlowState) String() string {
	return string(s)
}
