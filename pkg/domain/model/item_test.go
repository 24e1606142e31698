package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
)

func TestItemValidate(t *testing.T) {
	valid := &model.Item{
		Category: types.CategoryMeal,
		Location: types.LocationFridge,
		Text:     "Суп",
	}
	gt.NoError(t, valid.Validate())

	t.Run("blank text", func(t *testing.T) {
		item := *valid
		item.Text = "   "
		gt.Error(t, item.Validate())
	})

	t.Run("invalid category", func(t *testing.T) {
		item := *valid
		item.Category = "dessert"
		gt.Error(t, item.Validate())
	})

	t.Run("invalid location", func(t *testing.T) {
		item := *valid
		item.Location = "pantry"
		gt.Error(t, item.Validate())
	})
}

func TestItemAgeDays(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		createdAt time.Time
		expect    int
	}{
		{"just created", now, 0},
		{"under a day", now.Add(-23 * time.Hour), 0},
		{"exactly one day", now.AddDate(0, 0, -1), 1},
		{"several days", now.AddDate(0, 0, -5), 5},
		{"future timestamp clamps to zero", now.Add(time.Hour), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := &model.Item{CreatedAt: tc.createdAt}
			gt.Value(t, item.AgeDays(now)).Equal(tc.expect)
		})
	}
}
