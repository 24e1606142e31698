package interfaces

import (
	"context"
	"time"

	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
)

// Repository provides access to persistent storage
type Repository interface {
	Item() ItemRepository
	Close() error
}

// ItemRepository manages inventory items. Listing orders are stable: items
// come back ordered by creation time, then by id.
type ItemRepository interface {
	// Create stores a new item and returns it with its assigned ID.
	// Category and location are coerced to their defaults when invalid;
	// empty text is rejected.
	Create(ctx context.Context, item *model.Item) (*model.Item, error)

	// List returns items of one category in one location
	List(ctx context.Context, category types.Category, location types.Location) ([]*model.Item, error)

	// ListAll returns items of one category grouped by location
	ListAll(ctx context.Context, category types.Category) (map[types.Location][]*model.Item, error)

	// ListRaw returns every stored item
	ListRaw(ctx context.Context) ([]*model.Item, error)

	// Delete removes an item. It returns false when no such item exists.
	Delete(ctx context.Context, id int64) (bool, error)

	// UpdateText replaces an item's text
	UpdateText(ctx context.Context, id int64, text string) error

	// UpdateLocationAndDate moves an item and refreshes its creation time
	UpdateLocationAndDate(ctx context.Context, id int64, location types.Location, ts time.Time) error

	// UpdateCreatedAt sets an item's creation time
	UpdateCreatedAt(ctx context.Context, id int64, ts time.Time) error
}
