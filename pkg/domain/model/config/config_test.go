package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pantry-lab/pantrybot/pkg/domain/model/config"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	gt.Value(t, cfg.UI.CategoryLabel(types.CategoryMeal)).Equal("Готовые блюда")
	gt.Value(t, cfg.UI.LocationLabel(types.LocationFreezer)).Equal("Морозилка")
	gt.Value(t, cfg.Digest.StaleAfterDays).Equal(3)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[ui.category_labels]
meal = "Meals"

[digest]
stale_after_days = 5
`
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()

	cfg, err := config.Load(path)
	gt.NoError(t, err).Required()

	gt.Value(t, cfg.UI.CategoryLabel(types.CategoryMeal)).Equal("Meals")
	// Untouched keys keep their defaults
	gt.Value(t, cfg.UI.CategoryLabel(types.CategoryIngredient)).Equal("Ингредиенты")
	gt.Value(t, cfg.Digest.StaleAfterDays).Equal(5)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	gt.NoError(t, err).Required()
	gt.Value(t, cfg.Digest.StaleAfterDays).Equal(3)
}

func TestLoadInvalidStaleDaysFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	gt.NoError(t, os.WriteFile(path, []byte("[digest]\nstale_after_days = -1\n"), 0600)).Required()

	cfg, err := config.Load(path)
	gt.NoError(t, err).Required()
	gt.Value(t, cfg.Digest.StaleAfterDays).Equal(3)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
		gt.Error(t, err)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		gt.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0600)).Required()

		_, err := config.Load(path)
		gt.Error(t, err)
	})
}

func TestLabelFallback(t *testing.T) {
	cfg := config.Default()
	delete(cfg.UI.CategoryLabels, types.CategoryMeal)

	gt.Value(t, cfg.UI.CategoryLabel(types.CategoryMeal)).Equal("meal")
}
