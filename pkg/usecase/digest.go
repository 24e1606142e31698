package usecase

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
)

// DigestRow is one line of the stale-item digest
type DigestRow struct {
	Text    string
	AgeDays int
	Stale   bool
}

// FridgeDigest returns fridge items of one category ranked by staleness:
// oldest first, ties broken alphabetically. Items present for at least
// staleAfterDays days are flagged stale.
func (uc *UseCases) FridgeDigest(ctx context.Context, category types.Category, staleAfterDays int) ([]DigestRow, error) {
	items, err := uc.repo.Item().List(ctx, category, types.LocationFridge)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list fridge items", goerr.V("category", category))
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].Text < items[j].Text
	})

	now := uc.now()
	rows := make([]DigestRow, len(items))
	for i, item := range items {
		age := item.AgeDays(now)
		rows[i] = DigestRow{
			Text:    item.Text,
			AgeDays: age,
			Stale:   age >= staleAfterDays,
		}
	}
	return rows, nil
}

// StaleAfter returns the configured staleness threshold
func (uc *UseCases) StaleAfter() int {
	return uc.cfg.Digest.StaleAfterDays
}
