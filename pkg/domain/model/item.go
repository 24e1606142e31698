package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
)

// Item is a stored inventory record. IDs are assigned by the store and are
// stable across mutations; deletion is immediate and irreversible.
type Item struct {
	ID        int64          `firestore:"id" json:"id"`
	Category  types.Category `firestore:"category" json:"category"`
	Location  types.Location `firestore:"location" json:"location"`
	Text      string         `firestore:"text" json:"text"`
	CreatedAt time.Time      `firestore:"created_at" json:"created_at"`
}

// Validate checks the item invariants: non-empty trimmed text and valid enums.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Text) == "" {
		return goerr.New("item text cannot be empty")
	}
	if !i.Category.IsValid() {
		return goerr.New("invalid item category", goerr.V("category", i.Category))
	}
	if !i.Location.IsValid() {
		return goerr.New("invalid item location", goerr.V("location", i.Location))
	}
	return nil
}

// AgeDays returns how many whole days have passed since the item was created.
func (i *Item) AgeDays(now time.Time) int {
	if now.Before(i.CreatedAt) {
		return 0
	}
	return int(now.Sub(i.CreatedAt).Hours() / 24)
}
