// Package worker holds background jobs that run alongside the server.
package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
	"github.com/pantry-lab/pantrybot/pkg/service/slack"
	"github.com/pantry-lab/pantrybot/pkg/usecase"
	"github.com/pantry-lab/pantrybot/pkg/utils/logging"
)

// DigestWorker periodically posts a staleness digest of the fridge to a
// Slack channel.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type DigestWorker struct {
	uc        *usecase.UseCases
	slackSvc  slack.Service
	channelID string
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewDigestWorker creates a digest worker posting to the given channel
func NewDigestWorker(uc *usecase.UseCases, slackSvc slack.Service, channelID string, interval time.Duration) *DigestWorker {
	return &DigestWorker{
		uc:        uc,
		slackSvc:  slackSvc,
		channelID: channelID,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background digest loop. It does not block server startup.
func (w *DigestWorker) Start(ctx context.Context) error {
	logging.Default().Info("digest worker starting",
		"channel_id", w.channelID,
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *DigestWorker) Stop() {
	logging.Default().Info("digest worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("digest worker stopped")
}

func (w *DigestWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.post(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("digest post failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("digest worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("digest worker context cancelled")
			return
		}
	}
}

func (w *DigestWorker) post(ctx context.Context) error {
	text, err := w.Compose(ctx)
	if err != nil {
		return err
	}

	if _, err := w.slackSvc.PostMessage(ctx, w.channelID, nil, text); err != nil {
		return goerr.Wrap(err, "failed to post digest", goerr.V("channel_id", w.channelID))
	}
	return nil
}

// Compose builds the digest message for all categories
func (w *DigestWorker) Compose(ctx context.Context) (string, error) {
	staleAfter := w.uc.StaleAfter()
	cfg := w.uc.Config()

	lines := []string{"🧊 Сводка по холодильнику:"}
	for _, category := range types.AllCategories() {
		rows, err := w.uc.FridgeDigest(ctx, category, staleAfter)
		if err != nil {
			return "", goerr.Wrap(err, "failed to build digest", goerr.V("category", category))
		}

		lines = append(lines, "", fmt.Sprintf("*%s*", cfg.UI.CategoryLabel(category)))
		if len(rows) == 0 {
			lines = append(lines, "— пусто")
			continue
		}
		for _, row := range rows {
			line := fmt.Sprintf("• %s — %d дн.", row.Text, row.AgeDays)
			if row.Stale {
				line += " ⚠️"
			}
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n"), nil
}
