package usecase

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
)

// SlackActionID identifies a block action of an interactive message
type SlackActionID string

const (
	SlackActionNavigate        SlackActionID = "pb_nav"
	SlackActionStartFlow       SlackActionID = "pb_flow"
	SlackActionBackToCategory  SlackActionID = "pb_back_category"
	SlackActionSelectCategory  SlackActionID = "pb_category"
	SlackActionSelectLocation  SlackActionID = "pb_location"
	SlackActionMoveDestination SlackActionID = "pb_move_dest"
	SlackActionEditField       SlackActionID = "pb_edit_field"
	SlackActionPhotoCategory   SlackActionID = "pb_photo_category"
	SlackActionPhotoConfirm    SlackActionID = "pb_photo_confirm"
	SlackActionPhotoCancel     SlackActionID = "pb_photo_cancel"
)

// DecodeSlackAction converts a block action payload into a typed command.
// Action values carry colon-joined parameters encoded by the renderer; the
// decoder is the single place where those strings are taken apart.
func DecodeSlackAction(actionID SlackActionID, value string) (model.Command, error) {
	parts := strings.Split(value, ":")

	switch actionID {
	case SlackActionNavigate:
		switch model.NavTarget(value) {
		case model.NavMain, model.NavCancel:
			return model.NavigateCommand{Target: model.NavTarget(value)}, nil
		}
		return nil, goerr.New("unknown navigation target", goerr.V("value", value))

	case SlackActionStartFlow:
		action, err := types.ParseFlowAction(value)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid flow action", goerr.V("value", value))
		}
		return model.StartFlowCommand{Action: action}, nil

	case SlackActionBackToCategory:
		action, err := types.ParseFlowAction(value)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid flow action", goerr.V("value", value))
		}
		return model.BackToCategoryCommand{Action: action}, nil

	case SlackActionSelectCategory:
		if len(parts) != 2 {
			return nil, goerr.New("malformed category selection", goerr.V("value", value))
		}
		action, err := types.ParseFlowAction(parts[0])
		if err != nil {
			return nil, goerr.Wrap(err, "invalid flow action", goerr.V("value", value))
		}
		return model.SelectCategoryCommand{
			Action:   action,
			Category: types.CoerceCategory(parts[1]),
		}, nil

	case SlackActionSelectLocation:
		if len(parts) != 3 {
			return nil, goerr.New("malformed location selection", goerr.V("value", value))
		}
		action, err := types.ParseFlowAction(parts[0])
		if err != nil {
			return nil, goerr.Wrap(err, "invalid flow action", goerr.V("value", value))
		}
		return model.SelectLocationCommand{
			Action:   action,
			Category: types.CoerceCategory(parts[1]),
			Location: types.CoerceLocation(parts[2]),
		}, nil

	case SlackActionMoveDestination:
		return model.SelectMoveDestinationCommand{
			Destination: types.CoerceLocation(value),
		}, nil

	case SlackActionEditField:
		field, err := types.ParseEditField(value)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid edit field", goerr.V("value", value))
		}
		return model.SelectEditFieldCommand{Field: field}, nil

	case SlackActionPhotoCategory:
		return model.SelectPhotoCategoryCommand{
			Category: types.CoerceCategory(value),
		}, nil

	case SlackActionPhotoConfirm:
		return model.ConfirmPhotoCommand{}, nil

	case SlackActionPhotoCancel:
		return model.CancelPhotoCommand{}, nil
	}

	return nil, goerr.New("unknown action ID", goerr.V("action_id", actionID))
}

func encodeCategoryValue(action types.FlowAction, category types.Category) string {
	return string(action) + ":" + string(category)
}

func encodeLocationValue(action types.FlowAction, category types.Category, location types.Location) string {
	return string(action) + ":" + string(category) + ":" + string(location)
}
