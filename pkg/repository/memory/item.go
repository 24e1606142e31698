package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pantry-lab/pantrybot/pkg/domain/interfaces"
	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
)

// ErrItemNotFound is returned when the referenced item does not exist
var ErrItemNotFound = goerr.New("item not found")

// ItemRepository is an in-memory item store
type ItemRepository struct {
	mu     sync.RWMutex
	items  map[int64]*model.Item
	nextID int64
}

var _ interfaces.ItemRepository = (*ItemRepository)(nil)

func newItemRepository() *ItemRepository {
	return &ItemRepository{
		items:  make(map[int64]*model.Item),
		nextID: 1,
	}
}

// Create stores a new item with a monotonically assigned ID
func (r *ItemRepository) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	stored := &model.Item{
		Category:  types.CoerceCategory(string(item.Category)),
		Location:  types.CoerceLocation(string(item.Location)),
		Text:      strings.TrimSpace(item.Text),
		CreatedAt: item.CreatedAt,
	}
	if stored.Text == "" {
		return nil, goerr.New("item text cannot be empty")
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored.ID = r.nextID
	r.nextID++
	r.items[stored.ID] = stored

	copied := *stored
	return &copied, nil
}

// List returns items of one category in one location, ordered by creation
// time then id.
func (r *ItemRepository) List(ctx context.Context, category types.Category, location types.Location) ([]*model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Item
	for _, item := range r.items {
		if item.Category == category && item.Location == location {
			copied := *item
			result = append(result, &copied)
		}
	}
	sortItems(result)
	return result, nil
}

// ListAll returns items of one category grouped by location
func (r *ItemRepository) ListAll(ctx context.Context, category types.Category) (map[types.Location][]*model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[types.Location][]*model.Item)
	for _, item := range r.items {
		if item.Category == category {
			copied := *item
			result[item.Location] = append(result[item.Location], &copied)
		}
	}
	for _, items := range result {
		sortItems(items)
	}
	return result, nil
}

// ListRaw returns every stored item
func (r *ItemRepository) ListRaw(ctx context.Context) ([]*model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Item, 0, len(r.items))
	for _, item := range r.items {
		copied := *item
		result = append(result, &copied)
	}
	sortItems(result)
	return result, nil
}

// Delete removes an item, reporting whether it existed
func (r *ItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// UpdateText replaces an item's text
func (r *ItemRepository) UpdateText(ctx context.Context, id int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return goerr.New("item text cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return goerr.Wrap(ErrItemNotFound, "failed to update text", goerr.V("id", id))
	}
	item.Text = text
	return nil
}

// UpdateLocationAndDate moves an item and refreshes its creation time
func (r *ItemRepository) UpdateLocationAndDate(ctx context.Context, id int64, location types.Location, ts time.Time) error {
	if !location.IsValid() {
		return goerr.New("invalid location", goerr.V("location", location))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return goerr.Wrap(ErrItemNotFound, "failed to update location", goerr.V("id", id))
	}
	item.Location = location
	item.CreatedAt = ts
	return nil
}

// UpdateCreatedAt sets an item's creation time
func (r *ItemRepository) UpdateCreatedAt(ctx context.Context, id int64, ts time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return goerr.Wrap(ErrItemNotFound, "failed to update created_at", goerr.V("id", id))
	}
	item.CreatedAt = ts
	return nil
}

func sortItems(items []*model.Item) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
