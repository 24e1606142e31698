package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
	"github.com/pantry-lab/pantrybot/pkg/utils/logging"
)

const photoPreviewLimit = 30

// HandlePhoto processes an incoming photo. Photos are accepted only while
// the photo flow is waiting for one; anywhere else they are rejected
// outright instead of being guessed at.
func (uc *UseCases) HandlePhoto(ctx context.Context, userID string, image []byte) (*model.Reply, error) {
	session, release := uc.sessions.Acquire(userID)
	defer release()

	if session.Flow != types.FlowAwaitingPhoto {
		return model.MainMenuReply(msgPhotoNotExpected), nil
	}

	category := types.CoerceCategory(string(session.Category))

	if uc.resolver == nil {
		return model.MainMenuReply(msgPhotoNotConfident), nil
	}

	resolved, err := uc.resolver.ParsePhoto(ctx, category, image)
	if err != nil {
		// Recognition failure keeps the flow waiting for another photo
		logging.From(ctx).Warn("photo intent resolution failed", "error", err)
		return model.MainMenuReply(msgPhotoNotConfident), nil
	}

	items := trimItems(resolved.Items)
	if category == types.CategoryMeal && len(items) > 1 {
		items = items[:1]
	}
	if len(items) == 0 {
		return model.MainMenuReply(msgPhotoNotConfident), nil
	}

	// Photo additions always land in the fridge
	session.PendingPhoto = &model.PendingPhoto{
		Category: category,
		Location: types.LocationFridge,
		Items:    items,
	}
	session.Flow = types.FlowAwaitingPhotoConfirm

	preview := items
	if len(preview) > photoPreviewLimit {
		preview = preview[:photoPreviewLimit]
	}
	lines := make([]string, len(preview))
	for i, item := range preview {
		lines[i] = "• " + item
	}

	text := fmt.Sprintf("Я предлагаю добавить:\n\n*%s* → *%s*\n\n%s\n\nПодтвердить?",
		uc.cfg.UI.CategoryLabel(category),
		uc.cfg.UI.LocationLabel(types.LocationFridge),
		strings.Join(lines, "\n"))
	return &model.Reply{
		Text: text,
		Menu: model.Menu{Kind: model.MenuPhotoConfirm},
	}, nil
}
