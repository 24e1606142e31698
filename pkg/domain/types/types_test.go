package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
)

func TestCoerceCategory(t *testing.T) {
	gt.Value(t, types.CoerceCategory("meal")).Equal(types.CategoryMeal)
	gt.Value(t, types.CoerceCategory("ingredient")).Equal(types.CategoryIngredient)
	gt.Value(t, types.CoerceCategory("dessert")).Equal(types.CategoryIngredient)
	gt.Value(t, types.CoerceCategory("")).Equal(types.CategoryIngredient)
}

func TestCoerceLocation(t *testing.T) {
	gt.Value(t, types.CoerceLocation("freezer")).Equal(types.LocationFreezer)
	gt.Value(t, types.CoerceLocation("pantry")).Equal(types.LocationFridge)
	gt.Value(t, types.CoerceLocation("")).Equal(types.LocationFridge)
}

func TestCoerceIntentAction(t *testing.T) {
	gt.Value(t, types.CoerceIntentAction("add")).Equal(types.IntentActionAdd)
	gt.Value(t, types.CoerceIntentAction("delete")).Equal(types.IntentActionDelete)
	gt.Value(t, types.CoerceIntentAction("show")).Equal(types.IntentActionUnrecognized)
	gt.Value(t, types.CoerceIntentAction("")).Equal(types.IntentActionUnrecognized)
}

func TestParseFlowAction(t *testing.T) {
	action, err := types.ParseFlowAction("photo")
	gt.NoError(t, err).Required()
	gt.Value(t, action).Equal(types.FlowActionPhoto)

	_, err = types.ParseFlowAction("explode")
	gt.Error(t, err)
}
