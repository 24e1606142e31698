package intent

import (
	"context"

	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
)

// Resolver turns free text or a photo into a structured intent guess.
// The result is untrusted: callers must validate every field before acting.
type Resolver interface {
	// ParseText interprets a free-text message
	ParseText(ctx context.Context, text string) (*model.Intent, error)

	// ParsePhoto recognizes food items on a photo. The category is
	// pre-selected by the user and steers the recognition prompt.
	ParsePhoto(ctx context.Context, category types.Category, image []byte) (*model.Intent, error)
}
