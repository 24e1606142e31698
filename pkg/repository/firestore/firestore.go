// Package firestore provides a Firestore-backed implementation of the
// repository interfaces.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pantry-lab/pantrybot/pkg/domain/interfaces"
)

// ErrNotFound is returned when the referenced document does not exist
var ErrNotFound = goerr.New("not found")

type Firestore struct {
	client *firestore.Client
	item   *itemRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes all collection names, to isolate test data
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.item.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client: client,
		item:   newItemRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Item() interfaces.ItemRepository {
	return f.item
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
