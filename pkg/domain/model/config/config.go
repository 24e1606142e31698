// Package config defines the application-level configuration loaded from a
// TOML file: user-facing labels and digest tuning.
package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
)

// UI holds the user-facing labels for category and location values.
// Labels default to Russian, matching the rest of the bot copy.
type UI struct {
	CategoryLabels map[types.Category]string `toml:"category_labels"`
	LocationLabels map[types.Location]string `toml:"location_labels"`
}

// Digest holds the stale-item digest tuning
type Digest struct {
	StaleAfterDays int `toml:"stale_after_days"`
}

// Config is the full application configuration
type Config struct {
	UI     UI     `toml:"ui"`
	Digest Digest `toml:"digest"`
}

// Default returns the built-in configuration used when no file is given
func Default() *Config {
	return &Config{
		UI: UI{
			CategoryLabels: map[types.Category]string{
				types.CategoryMeal:       "Готовые блюда",
				types.CategoryIngredient: "Ингредиенты",
			},
			LocationLabels: map[types.Location]string{
				types.LocationFridge:  "Холодильник",
				types.LocationKitchen: "Кухня",
				types.LocationFreezer: "Морозилка",
			},
		},
		Digest: Digest{
			StaleAfterDays: 3,
		},
	}
}

// Load reads a TOML configuration file and overlays it on the defaults.
// Only keys present in the file override the built-ins.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	if cfg.Digest.StaleAfterDays <= 0 {
		cfg.Digest.StaleAfterDays = 3
	}
	return cfg, nil
}

// CategoryLabel returns the display label of a category, falling back to the
// raw value when no label is configured.
func (u *UI) CategoryLabel(c types.Category) string {
	if label, ok := u.CategoryLabels[c]; ok {
		return label
	}
	return c.String()
}

// LocationLabel returns the display label of a location, falling back to the
// raw value when no label is configured.
func (u *UI) LocationLabel(l types.Location) string {
	if label, ok := u.LocationLabels[l]; ok {
		return label
	}
	return l.String()
}
