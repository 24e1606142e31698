package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
	"github.com/pantry-lab/pantrybot/pkg/repository/memory"
	"github.com/pantry-lab/pantrybot/pkg/usecase"
)

// stubResolver is a canned intent.Resolver for tests
type stubResolver struct {
	textFn  func(ctx context.Context, text string) (*model.Intent, error)
	photoFn func(ctx context.Context, category types.Category, image []byte) (*model.Intent, error)
}

func (s *stubResolver) ParseText(ctx context.Context, text string) (*model.Intent, error) {
	return s.textFn(ctx, text)
}

func (s *stubResolver) ParsePhoto(ctx context.Context, category types.Category, image []byte) (*model.Intent, error) {
	return s.photoFn(ctx, category, image)
}

const testUser = "U123"

func enterLocationFlow(t *testing.T, uc *usecase.UseCases, action types.FlowAction, category types.Category, location types.Location) {
	t.Helper()
	ctx := context.Background()

	_, err := uc.HandleCommand(ctx, testUser, model.StartFlowCommand{Action: action})
	gt.NoError(t, err).Required()
	_, err = uc.HandleCommand(ctx, testUser, model.SelectCategoryCommand{Action: action, Category: category})
	gt.NoError(t, err).Required()
	_, err = uc.HandleCommand(ctx, testUser, model.SelectLocationCommand{Action: action, Category: category, Location: location})
	gt.NoError(t, err).Required()
}

func TestAddFlowEndToEnd(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	enterLocationFlow(t, uc, types.FlowActionAdd, types.CategoryMeal, types.LocationFridge)

	reply, err := uc.HandleText(ctx, testUser, "Суп\nРагу")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "2")).True()
	gt.Value(t, reply.Menu.Kind).Equal(model.MenuMain)

	items, err := repo.Item().List(ctx, types.CategoryMeal, types.LocationFridge)
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(2)
	gt.Value(t, items[0].Text).Equal("Суп")
	gt.Value(t, items[1].Text).Equal("Рагу")

	// Session is idle again: plain text falls through to free-text handling
	reply, err = uc.HandleText(ctx, testUser, "что-то")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Не понял")).True()
}

func TestAddFlowEmptyMessageKeepsFlow(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	enterLocationFlow(t, uc, types.FlowActionAdd, types.CategoryIngredient, types.LocationKitchen)

	reply, err := uc.HandleText(ctx, testUser, "   \n  ")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Пусто")).True()

	// Flow is still active: the next message adds
	_, err = uc.HandleText(ctx, testUser, "Хлеб")
	gt.NoError(t, err).Required()

	items, err := repo.Item().List(ctx, types.CategoryIngredient, types.LocationKitchen)
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(1)
}

func TestDeleteByIndexPartialValid(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	for _, text := range []string{"Молоко", "Сыр", "Кефир"} {
		_, err := repo.Item().Create(ctx, &model.Item{
			Category: types.CategoryIngredient,
			Location: types.LocationFridge,
			Text:     text,
		})
		gt.NoError(t, err).Required()
	}

	enterLocationFlow(t, uc, types.FlowActionDelete, types.CategoryIngredient, types.LocationFridge)

	// Index 2 is deleted, index 9 is reported as out of range
	reply, err := uc.HandleText(ctx, testUser, "2 9")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Удалил ✅ 1 шт.")).True()
	gt.Bool(t, strings.Contains(reply.Text, "9")).True()

	items, err := repo.Item().List(ctx, types.CategoryIngredient, types.LocationFridge)
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(2)
	gt.Value(t, items[0].Text).Equal("Молоко")
	gt.Value(t, items[1].Text).Equal("Кефир")
}

func TestDeleteByIndexAllOutOfRange(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	for _, text := range []string{"Молоко", "Сыр", "Кефир"} {
		_, err := repo.Item().Create(ctx, &model.Item{
			Category: types.CategoryIngredient,
			Location: types.LocationFridge,
			Text:     text,
		})
		gt.NoError(t, err).Required()
	}

	enterLocationFlow(t, uc, types.FlowActionDelete, types.CategoryIngredient, types.LocationFridge)

	reply, err := uc.HandleText(ctx, testUser, "9")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "1..3")).True()

	items, err := repo.Item().List(ctx, types.CategoryIngredient, types.LocationFridge)
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(3)
}

func TestDeleteDescendingIndexOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	for _, text := range []string{"Первый", "Второй", "Третий"} {
		_, err := repo.Item().Create(ctx, &model.Item{
			Category: types.CategoryMeal,
			Location: types.LocationFreezer,
			Text:     text,
		})
		gt.NoError(t, err).Required()
	}

	enterLocationFlow(t, uc, types.FlowActionDelete, types.CategoryMeal, types.LocationFreezer)

	reply, err := uc.HandleText(ctx, testUser, "1 3")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Удалил ✅ 2 шт.")).True()

	items, err := repo.Item().List(ctx, types.CategoryMeal, types.LocationFreezer)
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(1)
	gt.Value(t, items[0].Text).Equal("Второй")
}

func TestFreeTextAddCoercesInvalidEnums(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	resolver := &stubResolver{
		textFn: func(ctx context.Context, text string) (*model.Intent, error) {
			return &model.Intent{
				Action:   "add",
				Category: "dessert",
				Location: "pantry",
				Items:    []string{"Торт"},
			}, nil
		},
	}
	uc := usecase.New(repo, usecase.WithIntentResolver(resolver))

	reply, err := uc.HandleText(ctx, testUser, "добавь торт")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Добавил 1 шт.")).True()

	items, err := repo.Item().List(ctx, types.CategoryIngredient, types.LocationFridge)
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(1)
	gt.Value(t, items[0].Text).Equal("Торт")
}

func TestFreeTextDeleteAmbiguityGating(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	resolver := &stubResolver{
		textFn: func(ctx context.Context, text string) (*model.Intent, error) {
			return &model.Intent{Action: "delete", Items: []string{"суп"}}, nil
		},
	}
	uc := usecase.New(repo, usecase.WithIntentResolver(resolver))

	for _, text := range []string{"Рыбный суп", "Мясной суп"} {
		_, err := repo.Item().Create(ctx, &model.Item{
			Category: types.CategoryMeal,
			Location: types.LocationFridge,
			Text:     text,
		})
		gt.NoError(t, err).Required()
	}

	reply, err := uc.HandleText(ctx, testUser, "удали суп")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Удалил 0 шт.")).True()
	gt.Bool(t, strings.Contains(reply.Text, "Рыбный суп")).True()
	gt.Bool(t, strings.Contains(reply.Text, "Мясной суп")).True()

	// Ambiguity gates the mutation: nothing is deleted
	items, err := repo.Item().List(ctx, types.CategoryMeal, types.LocationFridge)
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(2)
}

func TestFreeTextDeleteExactMatchWins(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	resolver := &stubResolver{
		textFn: func(ctx context.Context, text string) (*model.Intent, error) {
			return &model.Intent{Action: "delete", Items: []string{"суп"}}, nil
		},
	}
	uc := usecase.New(repo, usecase.WithIntentResolver(resolver))

	for _, text := range []string{"Суп", "Рыбный суп"} {
		_, err := repo.Item().Create(ctx, &model.Item{
			Category: types.CategoryMeal,
			Location: types.LocationFridge,
			Text:     text,
		})
		gt.NoError(t, err).Required()
	}

	reply, err := uc.HandleText(ctx, testUser, "удали суп")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Удалил 1 шт.")).True()

	items, err := repo.Item().List(ctx, types.CategoryMeal, types.LocationFridge)
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(1)
	gt.Value(t, items[0].Text).Equal("Рыбный суп")
}

func TestFreeTextDeleteNotFoundReported(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	resolver := &stubResolver{
		textFn: func(ctx context.Context, text string) (*model.Intent, error) {
			return &model.Intent{Action: "delete", Items: []string{"хлеб"}}, nil
		},
	}
	uc := usecase.New(repo, usecase.WithIntentResolver(resolver))

	reply, err := uc.HandleText(ctx, testUser, "удали хлеб")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Не нашёл")).True()
	gt.Bool(t, strings.Contains(reply.Text, "хлеб")).True()
}

func TestFreeTextDeleteLocationHintNarrowsPool(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	resolver := &stubResolver{
		textFn: func(ctx context.Context, text string) (*model.Intent, error) {
			return &model.Intent{Action: "delete", Location: "freezer", Items: []string{"суп"}}, nil
		},
	}
	uc := usecase.New(repo, usecase.WithIntentResolver(resolver))

	_, err := repo.Item().Create(ctx, &model.Item{
		Category: types.CategoryMeal,
		Location: types.LocationFridge,
		Text:     "Суп",
	})
	gt.NoError(t, err).Required()

	// Wrong location hint hides the fridge item from the matcher
	reply, err := uc.HandleText(ctx, testUser, "удали суп из морозилки")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Не нашёл")).True()

	items, err := repo.Item().List(ctx, types.CategoryMeal, types.LocationFridge)
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(1)
}

func TestFreeTextResolverFailureDegrades(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	t.Run("no resolver configured", func(t *testing.T) {
		uc := usecase.New(repo)
		reply, err := uc.HandleText(ctx, testUser, "добавь молоко")
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(reply.Text, "Не понял")).True()
	})

	t.Run("resolver returns unknown action", func(t *testing.T) {
		resolver := &stubResolver{
			textFn: func(ctx context.Context, text string) (*model.Intent, error) {
				return &model.Intent{Action: "explode"}, nil
			},
		}
		uc := usecase.New(repo, usecase.WithIntentResolver(resolver))
		reply, err := uc.HandleText(ctx, testUser, "бум")
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(reply.Text, "Не понял")).True()
	})
}

func TestMoveFlowEndToEnd(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	fixed := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	uc := usecase.New(repo, usecase.WithClock(func() time.Time { return fixed }))

	_, err := repo.Item().Create(ctx, &model.Item{
		Category:  types.CategoryMeal,
		Location:  types.LocationFridge,
		Text:      "Борщ",
		CreatedAt: fixed.Add(-72 * time.Hour),
	})
	gt.NoError(t, err).Required()

	enterLocationFlow(t, uc, types.FlowActionMove, types.CategoryMeal, types.LocationFridge)

	_, err = uc.HandleCommand(ctx, testUser, model.SelectMoveDestinationCommand{Destination: types.LocationFreezer})
	gt.NoError(t, err).Required()

	reply, err := uc.HandleText(ctx, testUser, "1")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Переместил ✅ 1 шт.")).True()

	moved, err := repo.Item().List(ctx, types.CategoryMeal, types.LocationFreezer)
	gt.NoError(t, err).Required()
	gt.Array(t, moved).Length(1)
	gt.Value(t, moved[0].Text).Equal("Борщ")
	// Moving refreshes the creation date
	gt.Bool(t, moved[0].CreatedAt.Equal(fixed)).True()
}

func TestEditFlowText(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	_, err := repo.Item().Create(ctx, &model.Item{
		Category: types.CategoryIngredient,
		Location: types.LocationFridge,
		Text:     "Малоко",
	})
	gt.NoError(t, err).Required()

	enterLocationFlow(t, uc, types.FlowActionEdit, types.CategoryIngredient, types.LocationFridge)

	_, err = uc.HandleCommand(ctx, testUser, model.SelectEditFieldCommand{Field: types.EditFieldText})
	gt.NoError(t, err).Required()

	reply, err := uc.HandleText(ctx, testUser, "1 Молоко")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Изменил ✅")).True()

	items, err := repo.Item().List(ctx, types.CategoryIngredient, types.LocationFridge)
	gt.NoError(t, err).Required()
	gt.Value(t, items[0].Text).Equal("Молоко")
}

func TestEditFlowDate(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	fixed := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	uc := usecase.New(repo, usecase.WithClock(func() time.Time { return fixed }))

	_, err := repo.Item().Create(ctx, &model.Item{
		Category: types.CategoryIngredient,
		Location: types.LocationFridge,
		Text:     "Сметана",
	})
	gt.NoError(t, err).Required()

	enterLocationFlow(t, uc, types.FlowActionEdit, types.CategoryIngredient, types.LocationFridge)

	_, err = uc.HandleCommand(ctx, testUser, model.SelectEditFieldCommand{Field: types.EditFieldDate})
	gt.NoError(t, err).Required()

	reply, err := uc.HandleText(ctx, testUser, "1 3")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "3 дн.")).True()

	items, err := repo.Item().ListRaw(ctx)
	gt.NoError(t, err).Required()
	gt.Bool(t, items[0].CreatedAt.Equal(fixed.AddDate(0, 0, -3))).True()
}

func TestPhotoFlowStrictGating(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	t.Run("photo outside photo flow is rejected", func(t *testing.T) {
		reply, err := uc.HandlePhoto(ctx, testUser, []byte{0xFF})
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(reply.Text, "Фото сейчас не принимаю")).True()
	})

	t.Run("text while waiting for photo is rejected", func(t *testing.T) {
		_, err := uc.HandleCommand(ctx, testUser, model.StartFlowCommand{Action: types.FlowActionPhoto})
		gt.NoError(t, err).Required()
		_, err = uc.HandleCommand(ctx, testUser, model.SelectPhotoCategoryCommand{Category: types.CategoryMeal})
		gt.NoError(t, err).Required()

		reply, err := uc.HandleText(ctx, testUser, "Суп")
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(reply.Text, "жду фото")).True()

		// Nothing was stored from the stray text
		items, err := repo.Item().ListRaw(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(0)
	})
}

func TestPhotoFlowMealTruncation(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	resolver := &stubResolver{
		photoFn: func(ctx context.Context, category types.Category, image []byte) (*model.Intent, error) {
			return &model.Intent{
				Action:   "add",
				Category: string(category),
				Items:    []string{"Борщ", "Плов", "Запеканка"},
			}, nil
		},
	}
	uc := usecase.New(repo, usecase.WithIntentResolver(resolver))

	_, err := uc.HandleCommand(ctx, testUser, model.StartFlowCommand{Action: types.FlowActionPhoto})
	gt.NoError(t, err).Required()
	_, err = uc.HandleCommand(ctx, testUser, model.SelectPhotoCategoryCommand{Category: types.CategoryMeal})
	gt.NoError(t, err).Required()

	reply, err := uc.HandlePhoto(ctx, testUser, []byte{0xFF})
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Борщ")).True()
	gt.Bool(t, strings.Contains(reply.Text, "Плов")).False()
	gt.Value(t, reply.Menu.Kind).Equal(model.MenuPhotoConfirm)

	// Confirm adds exactly the retained single dish, always into the fridge
	reply, err = uc.HandleCommand(ctx, testUser, model.ConfirmPhotoCommand{})
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Добавил ✅ 1 шт.")).True()

	items, err := repo.Item().List(ctx, types.CategoryMeal, types.LocationFridge)
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(1)
	gt.Value(t, items[0].Text).Equal("Борщ")
}

func TestPhotoFlowUnrecognizedKeepsWaiting(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	calls := 0
	resolver := &stubResolver{
		photoFn: func(ctx context.Context, category types.Category, image []byte) (*model.Intent, error) {
			calls++
			if calls == 1 {
				return &model.Intent{Action: "add", Items: nil}, nil
			}
			return &model.Intent{Action: "add", Items: []string{"Молоко"}}, nil
		},
	}
	uc := usecase.New(repo, usecase.WithIntentResolver(resolver))

	_, err := uc.HandleCommand(ctx, testUser, model.StartFlowCommand{Action: types.FlowActionPhoto})
	gt.NoError(t, err).Required()
	_, err = uc.HandleCommand(ctx, testUser, model.SelectPhotoCategoryCommand{Category: types.CategoryIngredient})
	gt.NoError(t, err).Required()

	reply, err := uc.HandlePhoto(ctx, testUser, []byte{0x01})
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "не смог уверенно распознать")).True()

	// Still waiting: a better photo goes through
	reply, err = uc.HandlePhoto(ctx, testUser, []byte{0x02})
	gt.NoError(t, err).Required()
	gt.Value(t, reply.Menu.Kind).Equal(model.MenuPhotoConfirm)
}

func TestPhotoConfirmWithoutPending(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	reply, err := uc.HandleCommand(ctx, testUser, model.ConfirmPhotoCommand{})
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Нечего подтверждать")).True()
}

func TestCancelResetsAnyFlow(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	enterLocationFlow(t, uc, types.FlowActionAdd, types.CategoryMeal, types.LocationFridge)

	reply, err := uc.HandleText(ctx, testUser, "/cancel")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "отмена")).True()

	// The add flow is gone: plain text is free-text now
	reply, err = uc.HandleText(ctx, testUser, "Суп")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Не понял")).True()

	items, err := repo.Item().ListRaw(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(0)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	enterLocationFlow(t, uc, types.FlowActionAdd, types.CategoryMeal, types.LocationFridge)

	// Another user's message does not land in the first user's flow
	reply, err := uc.HandleText(ctx, "U999", "Суп")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Не понял")).True()

	// First user's flow is intact
	reply, err = uc.HandleText(ctx, testUser, "Суп")
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(reply.Text, "Добавил ✅ 1 шт.")).True()
}
