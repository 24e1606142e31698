package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
)

// HandleCommand applies a decoded menu selection to the user's session and
// returns the next display payload. Navigation and cancel always succeed;
// store-backed steps return an error with the session left as it was.
func (uc *UseCases) HandleCommand(ctx context.Context, userID string, cmd model.Command) (*model.Reply, error) {
	session, release := uc.sessions.Acquire(userID)
	defer release()

	switch c := cmd.(type) {
	case model.NavigateCommand:
		session.Reset()
		if c.Target == model.NavCancel {
			return model.MainMenuReply(msgCancelled), nil
		}
		return model.MainMenuReply(msgMainMenu), nil

	case model.StartFlowCommand:
		return uc.startFlow(session, c.Action)

	case model.BackToCategoryCommand:
		session.Flow = types.FlowAwaitingCategory
		session.Action = c.Action
		return &model.Reply{
			Text: msgChooseCategory,
			Menu: model.Menu{Kind: model.MenuCategory, Action: c.Action},
		}, nil

	case model.SelectCategoryCommand:
		return uc.selectCategory(ctx, session, c)

	case model.SelectLocationCommand:
		return uc.selectLocation(ctx, session, c)

	case model.SelectMoveDestinationCommand:
		return uc.selectMoveDestination(session, c)

	case model.SelectEditFieldCommand:
		return uc.selectEditField(session, c)

	case model.SelectPhotoCategoryCommand:
		session.Reset()
		session.Flow = types.FlowAwaitingPhoto
		session.Category = types.CoerceCategory(string(c.Category))
		text := fmt.Sprintf("Ок. Тип: %s\n\nТеперь пришли фото одним сообщением.",
			uc.cfg.UI.CategoryLabel(session.Category))
		return model.MainMenuReply(text), nil

	case model.ConfirmPhotoCommand:
		return uc.confirmPhoto(ctx, session)

	case model.CancelPhotoCommand:
		session.Reset()
		return model.MainMenuReply(msgPhotoCancelled), nil
	}

	session.Reset()
	return model.MainMenuReply(msgButtonUnknown), nil
}

func (uc *UseCases) startFlow(session *model.Session, action types.FlowAction) (*model.Reply, error) {
	session.Reset()

	if action == types.FlowActionPhoto {
		session.Flow = types.FlowAwaitingPhotoKind
		return &model.Reply{
			Text: msgPhotoChooseKind,
			Menu: model.Menu{Kind: model.MenuPhotoCategory},
		}, nil
	}

	session.Flow = types.FlowAwaitingCategory
	session.Action = action
	return &model.Reply{
		Text: msgChooseCategory,
		Menu: model.Menu{Kind: model.MenuCategory, Action: action},
	}, nil
}

func (uc *UseCases) selectCategory(ctx context.Context, session *model.Session, cmd model.SelectCategoryCommand) (*model.Reply, error) {
	session.Action = cmd.Action
	session.Category = types.CoerceCategory(string(cmd.Category))

	if cmd.Action == types.FlowActionShow {
		return uc.showInventory(ctx, session)
	}

	session.Flow = types.FlowAwaitingLocation
	return &model.Reply{
		Text: msgChooseLocation,
		Menu: model.Menu{Kind: model.MenuLocation, Action: cmd.Action, Category: session.Category},
	}, nil
}

func (uc *UseCases) showInventory(ctx context.Context, session *model.Session) (*model.Reply, error) {
	grouped, err := uc.repo.Item().ListAll(ctx, session.Category)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list inventory", goerr.V("category", session.Category))
	}

	now := uc.now()
	var blocks []string
	for _, location := range types.AllLocations() {
		blocks = append(blocks, fmt.Sprintf("*%s*\n%s",
			uc.cfg.UI.LocationLabel(location), uc.formatRows(grouped[location], now)))
	}

	category := session.Category
	session.Reset()
	return model.MainMenuReply(fmt.Sprintf("Остатки: *%s*\n\n%s",
		uc.cfg.UI.CategoryLabel(category), strings.Join(blocks, "\n\n"))), nil
}

func (uc *UseCases) selectLocation(ctx context.Context, session *model.Session, cmd model.SelectLocationCommand) (*model.Reply, error) {
	session.Action = cmd.Action
	session.Category = types.CoerceCategory(string(cmd.Category))
	session.Location = types.CoerceLocation(string(cmd.Location))

	if cmd.Action == types.FlowActionAdd {
		session.Flow = types.FlowAwaitingFreeformAdd
		text := fmt.Sprintf("Добавление: *%s* → *%s*\n\nНапиши названия одним сообщением.\nМожно несколько строк:\nСуп\nРагу",
			uc.cfg.UI.CategoryLabel(session.Category), uc.cfg.UI.LocationLabel(session.Location))
		return model.MainMenuReply(text), nil
	}

	items, err := uc.repo.Item().List(ctx, session.Category, session.Location)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list items",
			goerr.V("category", session.Category), goerr.V("location", session.Location))
	}

	if len(items) == 0 {
		session.Reset()
		return model.MainMenuReply(fmt.Sprintf("Пусто: %s → %s.",
			uc.cfg.UI.CategoryLabel(types.CoerceCategory(string(cmd.Category))),
			uc.cfg.UI.LocationLabel(types.CoerceLocation(string(cmd.Location))))), nil
	}

	session.SetWorkingSet(items)
	rows := uc.workingSetRows(session)

	switch cmd.Action {
	case types.FlowActionDelete:
		session.Flow = types.FlowAwaitingDeleteSelection
		return &model.Reply{
			Text: fmt.Sprintf("Удаление: *%s* → *%s*\n\n%s",
				uc.cfg.UI.CategoryLabel(session.Category), uc.cfg.UI.LocationLabel(session.Location), msgDeletePrompt),
			Menu: model.Menu{Kind: model.MenuMain},
			Rows: rows,
		}, nil

	case types.FlowActionMove:
		session.Flow = types.FlowAwaitingMoveDestination
		return &model.Reply{
			Text: msgChooseMoveDestination,
			Menu: model.Menu{Kind: model.MenuMoveDestination, Exclude: session.Location},
			Rows: rows,
		}, nil

	case types.FlowActionEdit:
		session.Flow = types.FlowAwaitingEditField
		return &model.Reply{
			Text: msgChooseEditField,
			Menu: model.Menu{Kind: model.MenuEditField},
			Rows: rows,
		}, nil
	}

	session.Reset()
	return model.MainMenuReply(msgButtonUnknown), nil
}

func (uc *UseCases) selectMoveDestination(session *model.Session, cmd model.SelectMoveDestinationCommand) (*model.Reply, error) {
	if session.Flow != types.FlowAwaitingMoveDestination {
		session.Reset()
		return model.MainMenuReply(msgButtonUnknown), nil
	}

	destination := types.CoerceLocation(string(cmd.Destination))
	if destination == session.Location {
		return &model.Reply{
			Text: "Позиции уже там. Выбери другое место:",
			Menu: model.Menu{Kind: model.MenuMoveDestination, Exclude: session.Location},
		}, nil
	}

	session.MoveDestination = destination
	session.Flow = types.FlowAwaitingMoveSelection
	return &model.Reply{
		Text: fmt.Sprintf("Перемещение → *%s*\n\n%s", uc.cfg.UI.LocationLabel(destination), msgMovePrompt),
		Menu: model.Menu{Kind: model.MenuMain},
		Rows: uc.workingSetRows(session),
	}, nil
}

func (uc *UseCases) selectEditField(session *model.Session, cmd model.SelectEditFieldCommand) (*model.Reply, error) {
	if session.Flow != types.FlowAwaitingEditField {
		session.Reset()
		return model.MainMenuReply(msgButtonUnknown), nil
	}

	session.EditField = cmd.Field
	session.Flow = types.FlowAwaitingEditValue

	prompt := msgEditTextPrompt
	if cmd.Field == types.EditFieldDate {
		prompt = msgEditDatePrompt
	}
	return &model.Reply{
		Text: prompt,
		Menu: model.Menu{Kind: model.MenuMain},
		Rows: uc.workingSetRows(session),
	}, nil
}

func (uc *UseCases) confirmPhoto(ctx context.Context, session *model.Session) (*model.Reply, error) {
	pending := session.PendingPhoto
	if session.Flow != types.FlowAwaitingPhotoConfirm || pending == nil {
		session.Reset()
		return model.MainMenuReply(msgPhotoNothing), nil
	}

	added := 0
	for _, text := range pending.Items {
		if strings.TrimSpace(text) == "" {
			continue
		}
		if _, err := uc.repo.Item().Create(ctx, &model.Item{
			Category: pending.Category,
			Location: pending.Location,
			Text:     text,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to add item from photo", goerr.V("text", text))
		}
		added++
	}

	text := fmt.Sprintf("Добавил ✅ %d шт. (%s → %s)", added,
		uc.cfg.UI.CategoryLabel(pending.Category), uc.cfg.UI.LocationLabel(pending.Location))
	session.Reset()
	return model.MainMenuReply(text), nil
}

// workingSetRows renders the session's working set with 1-based indices
func (uc *UseCases) workingSetRows(session *model.Session) []model.ListRow {
	now := uc.now()
	rows := make([]model.ListRow, len(session.WorkingSet))
	for i, row := range session.WorkingSet {
		item := model.Item{CreatedAt: row.CreatedAt}
		rows[i] = model.ListRow{Index: i + 1, Text: row.Text, AgeDays: item.AgeDays(now)}
	}
	return rows
}

// formatRows renders items as numbered lines with their age in days
func (uc *UseCases) formatRows(items []*model.Item, now time.Time) string {
	if len(items) == 0 {
		return "— пусто"
	}

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d) %s — %d дн.", i+1, item.Text, item.AgeDays(now))
	}
	return strings.Join(lines, "\n")
}
