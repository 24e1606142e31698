package model

import "github.com/pantry-lab/pantrybot/pkg/domain/types"

// Command is a discrete menu selection decoded once at the transport
// boundary. The core routes on these closed variants and never parses raw
// callback payloads itself.
type Command interface {
	isCommand()
}

// NavTarget is the destination of a NavigateCommand
type NavTarget string

const (
	NavMain   NavTarget = "main"
	NavCancel NavTarget = "cancel"
)

// NavigateCommand returns to the main menu, optionally as an explicit cancel
type NavigateCommand struct {
	Target NavTarget
}

// StartFlowCommand enters one of the top-level flows
type StartFlowCommand struct {
	Action types.FlowAction
}

// BackToCategoryCommand steps back from location selection to category selection
type BackToCategoryCommand struct {
	Action types.FlowAction
}

// SelectCategoryCommand picks a category within a flow
type SelectCategoryCommand struct {
	Action   types.FlowAction
	Category types.Category
}

// SelectLocationCommand picks a location within a flow
type SelectLocationCommand struct {
	Action   types.FlowAction
	Category types.Category
	Location types.Location
}

// SelectMoveDestinationCommand picks the target location of a move flow
type SelectMoveDestinationCommand struct {
	Destination types.Location
}

// SelectEditFieldCommand picks which attribute the edit flow changes
type SelectEditFieldCommand struct {
	Field types.EditField
}

// SelectPhotoCategoryCommand picks the pre-selected category of the photo flow
type SelectPhotoCategoryCommand struct {
	Category types.Category
}

// ConfirmPhotoCommand commits the pending photo batch
type ConfirmPhotoCommand struct{}

// CancelPhotoCommand discards the pending photo batch
type CancelPhotoCommand struct{}

func (NavigateCommand) isCommand()              {}
func (StartFlowCommand) isCommand()             {}
func (BackToCategoryCommand) isCommand()        {}
func (SelectCategoryCommand) isCommand()        {}
func (SelectLocationCommand) isCommand()        {}
func (SelectMoveDestinationCommand) isCommand() {}
func (SelectEditFieldCommand) isCommand()       {}
func (SelectPhotoCategoryCommand) isCommand()   {}
func (ConfirmPhotoCommand) isCommand()          {}
func (CancelPhotoCommand) isCommand()           {}
