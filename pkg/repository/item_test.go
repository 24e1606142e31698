package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/pantry-lab/pantrybot/pkg/domain/interfaces"
	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
	"github.com/pantry-lab/pantrybot/pkg/repository/firestore"
	"github.com/pantry-lab/pantrybot/pkg/repository/memory"
)

func runItemRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns auto-increment IDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created1, err := repo.Item().Create(ctx, &model.Item{
			Category: types.CategoryIngredient,
			Location: types.LocationFridge,
			Text:     "Молоко",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created1.ID).NotEqual(int64(0))
		gt.Value(t, created1.Text).Equal("Молоко")
		gt.Value(t, created1.Category).Equal(types.CategoryIngredient)
		gt.Value(t, created1.Location).Equal(types.LocationFridge)
		gt.Bool(t, created1.CreatedAt.IsZero()).False()

		created2, err := repo.Item().Create(ctx, &model.Item{
			Category: types.CategoryIngredient,
			Location: types.LocationFridge,
			Text:     "Сыр",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created2.ID).NotEqual(created1.ID)
	})

	t.Run("Create coerces invalid category and location", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Item().Create(ctx, &model.Item{
			Category: types.Category("dessert"),
			Location: types.Location("pantry"),
			Text:     "Торт",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.Category).Equal(types.CategoryIngredient)
		gt.Value(t, created.Location).Equal(types.LocationFridge)
	})

	t.Run("Create rejects empty text", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Item().Create(ctx, &model.Item{
			Category: types.CategoryIngredient,
			Location: types.LocationFridge,
			Text:     "   ",
		})
		gt.Value(t, err).NotNil()
	})

	t.Run("List filters by category and location", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, item := range []*model.Item{
			{Category: types.CategoryIngredient, Location: types.LocationFridge, Text: "Молоко"},
			{Category: types.CategoryIngredient, Location: types.LocationKitchen, Text: "Хлеб"},
			{Category: types.CategoryMeal, Location: types.LocationFridge, Text: "Суп"},
		} {
			_, err := repo.Item().Create(ctx, item)
			gt.NoError(t, err).Required()
		}

		items, err := repo.Item().List(ctx, types.CategoryIngredient, types.LocationFridge)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(1)
		gt.Value(t, items[0].Text).Equal("Молоко")
	})

	t.Run("List keeps insertion order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-time.Hour)
		for i, text := range []string{"Первый", "Второй", "Третий"} {
			_, err := repo.Item().Create(ctx, &model.Item{
				Category:  types.CategoryIngredient,
				Location:  types.LocationFridge,
				Text:      text,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			})
			gt.NoError(t, err).Required()
		}

		items, err := repo.Item().List(ctx, types.CategoryIngredient, types.LocationFridge)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(3)
		gt.Value(t, items[0].Text).Equal("Первый")
		gt.Value(t, items[1].Text).Equal("Второй")
		gt.Value(t, items[2].Text).Equal("Третий")
	})

	t.Run("ListAll groups by location", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, item := range []*model.Item{
			{Category: types.CategoryMeal, Location: types.LocationFridge, Text: "Суп"},
			{Category: types.CategoryMeal, Location: types.LocationFreezer, Text: "Пельмени"},
			{Category: types.CategoryIngredient, Location: types.LocationFridge, Text: "Молоко"},
		} {
			_, err := repo.Item().Create(ctx, item)
			gt.NoError(t, err).Required()
		}

		grouped, err := repo.Item().ListAll(ctx, types.CategoryMeal)
		gt.NoError(t, err).Required()

		gt.Array(t, grouped[types.LocationFridge]).Length(1)
		gt.Value(t, grouped[types.LocationFridge][0].Text).Equal("Суп")
		gt.Array(t, grouped[types.LocationFreezer]).Length(1)
		gt.Value(t, grouped[types.LocationFreezer][0].Text).Equal("Пельмени")
		gt.Array(t, grouped[types.LocationKitchen]).Length(0)
	})

	t.Run("Delete reports whether the item existed", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Item().Create(ctx, &model.Item{
			Category: types.CategoryIngredient,
			Location: types.LocationFridge,
			Text:     "Кефир",
		})
		gt.NoError(t, err).Required()

		deleted, err := repo.Item().Delete(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, deleted).True()

		deleted, err = repo.Item().Delete(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, deleted).False()
	})

	t.Run("UpdateText replaces the text", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Item().Create(ctx, &model.Item{
			Category: types.CategoryIngredient,
			Location: types.LocationFridge,
			Text:     "Малоко",
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Item().UpdateText(ctx, created.ID, "Молоко")).Required()

		items, err := repo.Item().List(ctx, types.CategoryIngredient, types.LocationFridge)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(1)
		gt.Value(t, items[0].Text).Equal("Молоко")
	})

	t.Run("UpdateText rejects missing item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Item().UpdateText(ctx, time.Now().UnixNano(), "Молоко")
		gt.Value(t, err).NotNil()
	})

	t.Run("UpdateLocationAndDate moves the item and refreshes the date", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Item().Create(ctx, &model.Item{
			Category:  types.CategoryMeal,
			Location:  types.LocationFridge,
			Text:      "Борщ",
			CreatedAt: time.Now().UTC().Add(-72 * time.Hour),
		})
		gt.NoError(t, err).Required()

		movedAt := time.Now().UTC().Truncate(time.Second)
		gt.NoError(t, repo.Item().UpdateLocationAndDate(ctx, created.ID, types.LocationFreezer, movedAt)).Required()

		items, err := repo.Item().List(ctx, types.CategoryMeal, types.LocationFreezer)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(1)
		gt.Value(t, items[0].ID).Equal(created.ID)
		gt.Bool(t, items[0].CreatedAt.Equal(movedAt)).True()
	})

	t.Run("UpdateCreatedAt backdates the item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Item().Create(ctx, &model.Item{
			Category: types.CategoryIngredient,
			Location: types.LocationFridge,
			Text:     "Сметана",
		})
		gt.NoError(t, err).Required()

		backdated := time.Now().UTC().Add(-5 * 24 * time.Hour).Truncate(time.Second)
		gt.NoError(t, repo.Item().UpdateCreatedAt(ctx, created.ID, backdated)).Required()

		items, err := repo.Item().ListRaw(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(1)
		gt.Bool(t, items[0].CreatedAt.Equal(backdated)).True()
	})

	t.Run("ListRaw returns everything", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			_, err := repo.Item().Create(ctx, &model.Item{
				Category: types.CategoryIngredient,
				Location: types.LocationKitchen,
				Text:     fmt.Sprintf("Позиция %d", i+1),
			})
			gt.NoError(t, err).Required()
		}

		items, err := repo.Item().ListRaw(ctx)
		gt.NoError(t, err).Required()
		gt.Number(t, len(items)).GreaterOrEqual(3)
	})

	t.Run("Mutating returned items does not affect the store", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Item().Create(ctx, &model.Item{
			Category: types.CategoryIngredient,
			Location: types.LocationFridge,
			Text:     "Огурцы",
		})
		gt.NoError(t, err).Required()

		created.Text = "mutated"

		items, err := repo.Item().List(ctx, types.CategoryIngredient, types.LocationFridge)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(1)
		gt.Value(t, items[0].Text).Equal("Огурцы")
	})
}

func TestItemRepository_Memory(t *testing.T) {
	runItemRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestItemRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runItemRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
		repo, err := firestore.New(context.Background(), projectID, "(default)", firestore.WithCollectionPrefix(prefix))
		gt.NoError(t, err).Required()
		return repo
	})
}
