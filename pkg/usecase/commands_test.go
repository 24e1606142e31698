package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
	"github.com/pantry-lab/pantrybot/pkg/usecase"
)

func TestDecodeSlackAction(t *testing.T) {
	cases := []struct {
		name     string
		actionID usecase.SlackActionID
		value    string
		expect   model.Command
	}{
		{
			name:     "navigate to main",
			actionID: usecase.SlackActionNavigate,
			value:    "main",
			expect:   model.NavigateCommand{Target: model.NavMain},
		},
		{
			name:     "navigate cancel",
			actionID: usecase.SlackActionNavigate,
			value:    "cancel",
			expect:   model.NavigateCommand{Target: model.NavCancel},
		},
		{
			name:     "start flow",
			actionID: usecase.SlackActionStartFlow,
			value:    "delete",
			expect:   model.StartFlowCommand{Action: types.FlowActionDelete},
		},
		{
			name:     "back to category",
			actionID: usecase.SlackActionBackToCategory,
			value:    "move",
			expect:   model.BackToCategoryCommand{Action: types.FlowActionMove},
		},
		{
			name:     "category selection",
			actionID: usecase.SlackActionSelectCategory,
			value:    "add:meal",
			expect: model.SelectCategoryCommand{
				Action:   types.FlowActionAdd,
				Category: types.CategoryMeal,
			},
		},
		{
			name:     "location selection",
			actionID: usecase.SlackActionSelectLocation,
			value:    "move:ingredient:freezer",
			expect: model.SelectLocationCommand{
				Action:   types.FlowActionMove,
				Category: types.CategoryIngredient,
				Location: types.LocationFreezer,
			},
		},
		{
			name:     "unknown enum values coerced to defaults",
			actionID: usecase.SlackActionSelectLocation,
			value:    "add:dessert:pantry",
			expect: model.SelectLocationCommand{
				Action:   types.FlowActionAdd,
				Category: types.CategoryIngredient,
				Location: types.LocationFridge,
			},
		},
		{
			name:     "move destination",
			actionID: usecase.SlackActionMoveDestination,
			value:    "kitchen",
			expect:   model.SelectMoveDestinationCommand{Destination: types.LocationKitchen},
		},
		{
			name:     "edit field",
			actionID: usecase.SlackActionEditField,
			value:    "date",
			expect:   model.SelectEditFieldCommand{Field: types.EditFieldDate},
		},
		{
			name:     "photo category",
			actionID: usecase.SlackActionPhotoCategory,
			value:    "meal",
			expect:   model.SelectPhotoCategoryCommand{Category: types.CategoryMeal},
		},
		{
			name:     "photo confirm",
			actionID: usecase.SlackActionPhotoConfirm,
			value:    "",
			expect:   model.ConfirmPhotoCommand{},
		},
		{
			name:     "photo cancel",
			actionID: usecase.SlackActionPhotoCancel,
			value:    "",
			expect:   model.CancelPhotoCommand{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := usecase.DecodeSlackAction(tc.actionID, tc.value)
			gt.NoError(t, err).Required()
			gt.Value(t, cmd).Equal(tc.expect)
		})
	}
}

func TestDecodeSlackActionRejectsMalformed(t *testing.T) {
	cases := []struct {
		name     string
		actionID usecase.SlackActionID
		value    string
	}{
		{"unknown action id", usecase.SlackActionID("pb_bogus"), "main"},
		{"bad navigation target", usecase.SlackActionNavigate, "teleport"},
		{"bad flow action", usecase.SlackActionStartFlow, "explode"},
		{"category value without action", usecase.SlackActionSelectCategory, "meal"},
		{"location value with too few parts", usecase.SlackActionSelectLocation, "add:meal"},
		{"bad edit field", usecase.SlackActionEditField, "color"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := usecase.DecodeSlackAction(tc.actionID, tc.value)
			gt.Error(t, err)
		})
	}
}
