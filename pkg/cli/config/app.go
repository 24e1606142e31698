package config

import (
	appconfig "github.com/pantry-lab/pantrybot/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// App holds the path to the optional application configuration file
type App struct {
	path string
}

// Flags returns CLI flags for application configuration
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "app-config",
			Usage:       "Path to TOML file with labels and digest settings (built-in defaults when empty)",
			Sources:     cli.EnvVars("PANTRYBOT_APP_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads the application configuration, falling back to defaults
func (a *App) Configure() (*appconfig.Config, error) {
	return appconfig.Load(a.path)
}
