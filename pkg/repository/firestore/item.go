package firestore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type itemRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newItemRepository(client *firestore.Client) *itemRepository {
	return &itemRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *itemRepository) itemsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_items"
	}
	return "items"
}

func (r *itemRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *itemRepository) itemCounterDoc() string {
	return "item_counter"
}

func (r *itemRepository) getNextID(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc(r.itemCounterDoc())

	var nextID int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := currentValue.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", currentValue))
		}
		nextID = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID")
	}

	return nextID, nil
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	text := strings.TrimSpace(item.Text)
	if text == "" {
		return nil, goerr.New("item text cannot be empty")
	}

	nextID, err := r.getNextID(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next ID")
	}

	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	created := &model.Item{
		ID:        nextID,
		Category:  types.CoerceCategory(string(item.Category)),
		Location:  types.CoerceLocation(string(item.Location)),
		Text:      text,
		CreatedAt: createdAt,
	}

	docID := fmt.Sprintf("%d", created.ID)
	_, err = r.client.Collection(r.itemsCollection()).Doc(docID).Set(ctx, created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create item", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *itemRepository) List(ctx context.Context, category types.Category, location types.Location) ([]*model.Item, error) {
	iter := r.client.Collection(r.itemsCollection()).
		Where("category", "==", string(category)).
		Where("location", "==", string(location)).
		Documents(ctx)
	defer iter.Stop()

	items, err := collectItems(iter)
	if err != nil {
		return nil, err
	}
	sortItems(items)
	return items, nil
}

func (r *itemRepository) ListAll(ctx context.Context, category types.Category) (map[types.Location][]*model.Item, error) {
	iter := r.client.Collection(r.itemsCollection()).
		Where("category", "==", string(category)).
		Documents(ctx)
	defer iter.Stop()

	items, err := collectItems(iter)
	if err != nil {
		return nil, err
	}

	result := make(map[types.Location][]*model.Item)
	for _, item := range items {
		result[item.Location] = append(result[item.Location], item)
	}
	for _, grouped := range result {
		sortItems(grouped)
	}
	return result, nil
}

func (r *itemRepository) ListRaw(ctx context.Context) ([]*model.Item, error) {
	iter := r.client.Collection(r.itemsCollection()).Documents(ctx)
	defer iter.Stop()

	items, err := collectItems(iter)
	if err != nil {
		return nil, err
	}
	sortItems(items)
	return items, nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.itemsCollection()).Doc(docID)

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to check item existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return false, goerr.Wrap(err, "failed to delete item", goerr.V("id", id))
	}

	return true, nil
}

func (r *itemRepository) UpdateText(ctx context.Context, id int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return goerr.New("item text cannot be empty")
	}

	return r.update(ctx, id, []firestore.Update{
		{Path: "text", Value: text},
	})
}

func (r *itemRepository) UpdateLocationAndDate(ctx context.Context, id int64, location types.Location, ts time.Time) error {
	if !location.IsValid() {
		return goerr.New("invalid location", goerr.V("location", location))
	}

	return r.update(ctx, id, []firestore.Update{
		{Path: "location", Value: string(location)},
		{Path: "created_at", Value: ts},
	})
}

func (r *itemRepository) UpdateCreatedAt(ctx context.Context, id int64, ts time.Time) error {
	return r.update(ctx, id, []firestore.Update{
		{Path: "created_at", Value: ts},
	})
}

func (r *itemRepository) update(ctx context.Context, id int64, updates []firestore.Update) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.itemsCollection()).Doc(docID)

	if _, err := docRef.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "item not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to update item", goerr.V("id", id))
	}
	return nil
}

func collectItems(iter *firestore.DocumentIterator) ([]*model.Item, error) {
	var items []*model.Item
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate items")
		}

		var item model.Item
		if err := docSnap.DataTo(&item); err != nil {
			return nil, goerr.Wrap(err, "failed to decode item", goerr.V("doc_id", docSnap.Ref.ID))
		}

		items = append(items, &item)
	}
	return items, nil
}

func sortItems(items []*model.Item) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
