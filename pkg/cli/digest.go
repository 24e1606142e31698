package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/pantry-lab/pantrybot/pkg/cli/config"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
	"github.com/pantry-lab/pantrybot/pkg/usecase"
	"github.com/pantry-lab/pantrybot/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdDigest() *cli.Command {
	var appCfg config.App
	var repoCfg config.Repository

	flags := appCfg.Flags()
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "digest",
		Aliases: []string{"d"},
		Usage:   "Print the fridge staleness digest to stdout",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, usecase.WithConfig(cfg))

			bold := color.New(color.Bold)
			stale := color.New(color.FgRed)

			for _, category := range types.AllCategories() {
				rows, err := uc.FridgeDigest(ctx, category, cfg.Digest.StaleAfterDays)
				if err != nil {
					return goerr.Wrap(err, "failed to build digest", goerr.V("category", category))
				}

				bold.Println(cfg.UI.CategoryLabel(category))
				if len(rows) == 0 {
					fmt.Println("  (пусто)")
					continue
				}
				for _, row := range rows {
					line := fmt.Sprintf("  %s — %d дн.", row.Text, row.AgeDays)
					if row.Stale {
						stale.Println(line)
					} else {
						fmt.Println(line)
					}
				}
			}

			return nil
		},
	}
}
