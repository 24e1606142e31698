// Package memory provides an in-memory implementation of the repository
// interfaces, used for local development and tests.
package memory

import (
	"github.com/pantry-lab/pantrybot/pkg/domain/interfaces"
)

// Repository is an in-memory repository
type Repository struct {
	item *ItemRepository
}

var _ interfaces.Repository = (*Repository)(nil)

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		item: newItemRepository(),
	}
}

// Item returns the item repository
func (r *Repository) Item() interfaces.ItemRepository {
	return r.item
}

// Close releases resources (no-op for memory)
func (r *Repository) Close() error {
	return nil
}
