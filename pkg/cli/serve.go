package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/pantry-lab/pantrybot/pkg/cli/config"
	httpctrl "github.com/pantry-lab/pantrybot/pkg/controller/http"
	"github.com/pantry-lab/pantrybot/pkg/service/intent"
	"github.com/pantry-lab/pantrybot/pkg/service/slack"
	"github.com/pantry-lab/pantrybot/pkg/service/worker"
	"github.com/pantry-lab/pantrybot/pkg/usecase"
	"github.com/pantry-lab/pantrybot/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var digestChannel string
	var digestInterval time.Duration
	var appCfg config.App
	var repoCfg config.Repository
	var slackCfg config.Slack
	var geminiCfg config.Gemini
	var openaiCfg config.OpenAI

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("PANTRYBOT_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "digest-channel",
			Usage:       "Slack channel ID for the periodic fridge digest (disabled when empty)",
			Sources:     cli.EnvVars("PANTRYBOT_DIGEST_CHANNEL"),
			Destination: &digestChannel,
		},
		&cli.DurationFlag{
			Name:        "digest-interval",
			Usage:       "Interval between fridge digests",
			Value:       24 * time.Hour,
			Sources:     cli.EnvVars("PANTRYBOT_DIGEST_INTERVAL"),
			Destination: &digestInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, openaiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
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

			if !slackCfg.IsConfigured() {
				return goerr.New("slack-bot-token and slack-signing-secret are required")
			}
			slackSvc := slack.New(slackCfg.BotToken())

			ucOpts := []usecase.Option{
				usecase.WithConfig(cfg),
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}
			visionClient := openaiCfg.Configure()

			if llmClient != nil || visionClient != nil {
				ucOpts = append(ucOpts, usecase.WithIntentResolver(intent.New(llmClient, visionClient)))
				logging.Default().Info("intent resolver enabled",
					"text", llmClient != nil,
					"photo", visionClient != nil)
			} else {
				logging.Default().Info("no LLM credentials configured, free-text and photo understanding disabled")
			}

			uc := usecase.New(repo, ucOpts...)

			var digestWorker *worker.DigestWorker
			if digestChannel != "" {
				digestWorker = worker.NewDigestWorker(uc, slackSvc, digestChannel, digestInterval)
				if err := digestWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start digest worker")
				}
			}

			webhookHandler := httpctrl.NewSlackWebhookHandler(uc, slackSvc)
			interactionHandler := httpctrl.NewSlackInteractionHandler(uc, slackSvc)
			httpHandler := httpctrl.New(
				httpctrl.WithSlackWebhook(webhookHandler, interactionHandler, slackCfg.SigningSecret()),
			)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if digestWorker != nil {
					digestWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
