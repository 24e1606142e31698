package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
	"github.com/pantry-lab/pantrybot/pkg/utils/logging"
)

// HandleText routes a plain text message according to the current flow
// state. Outside of any flow the message goes through the intent resolver.
func (uc *UseCases) HandleText(ctx context.Context, userID, text string) (*model.Reply, error) {
	session, release := uc.sessions.Acquire(userID)
	defer release()

	trimmed := strings.TrimSpace(text)

	switch trimmed {
	case "/start":
		session.Reset()
		return model.MainMenuReply(msgMainMenu), nil
	case "/cancel":
		session.Reset()
		return model.MainMenuReply(msgCancelled), nil
	}

	switch session.Flow {
	case types.FlowAwaitingPhoto:
		// Strict gating: text never substitutes for the expected photo
		return model.MainMenuReply(fmt.Sprintf(
			"Сейчас жду фото для: %s.\nПришли фото одним сообщением или нажми Отмена.",
			uc.cfg.UI.CategoryLabel(session.Category))), nil

	case types.FlowAwaitingFreeformAdd:
		return uc.freeformAdd(ctx, session, text)

	case types.FlowAwaitingDeleteSelection:
		return uc.deleteBySelection(ctx, session, trimmed)

	case types.FlowAwaitingMoveSelection:
		return uc.moveBySelection(ctx, session, trimmed)

	case types.FlowAwaitingEditValue:
		return uc.applyEdit(ctx, session, trimmed)
	}

	return uc.handleFreeText(ctx, session, trimmed)
}

func (uc *UseCases) freeformAdd(ctx context.Context, session *model.Session, text string) (*model.Reply, error) {
	items := parseAddLines(text)
	if len(items) == 0 {
		return &model.Reply{Text: msgAddEmpty, Menu: model.Menu{Kind: model.MenuMain}}, nil
	}

	for _, item := range items {
		if _, err := uc.repo.Item().Create(ctx, &model.Item{
			Category: session.Category,
			Location: session.Location,
			Text:     item,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to add item", goerr.V("text", item))
		}
	}

	count := len(items)
	session.Reset()
	return model.MainMenuReply(fmt.Sprintf("Добавил ✅ %d шт.", count)), nil
}

func (uc *UseCases) deleteBySelection(ctx context.Context, session *model.Session, text string) (*model.Reply, error) {
	nums := parseIndexSelection(text)
	if len(nums) == 0 {
		return &model.Reply{Text: msgDeletePrompt, Menu: model.Menu{Kind: model.MenuMain}}, nil
	}

	valid, outOfRange := splitSelection(nums, len(session.WorkingSet))
	if len(valid) == 0 {
		return model.MainMenuReply(fmt.Sprintf("Сейчас доступно 1..%d. Попробуй снова.", len(session.WorkingSet))), nil
	}

	// Resolve ids against the snapshot first, then delete in descending
	// index order so positions inside the batch do not shift.
	sort.Sort(sort.Reverse(sort.IntSlice(valid)))
	for _, n := range valid {
		id := session.WorkingSet[n-1].ID
		if _, err := uc.repo.Item().Delete(ctx, id); err != nil {
			return nil, goerr.Wrap(err, "failed to delete item", goerr.V("id", id))
		}
	}

	text = fmt.Sprintf("Удалил ✅ %d шт.", len(valid))
	if len(outOfRange) > 0 {
		text += fmt.Sprintf("\nВне диапазона: %s (доступно 1..%d).",
			joinInts(outOfRange), len(session.WorkingSet))
	}
	session.Reset()
	return model.MainMenuReply(text), nil
}

func (uc *UseCases) moveBySelection(ctx context.Context, session *model.Session, text string) (*model.Reply, error) {
	nums := parseIndexSelection(text)
	if len(nums) == 0 {
		return &model.Reply{Text: msgMovePrompt, Menu: model.Menu{Kind: model.MenuMain}}, nil
	}

	valid, outOfRange := splitSelection(nums, len(session.WorkingSet))
	if len(valid) == 0 {
		return model.MainMenuReply(fmt.Sprintf("Сейчас доступно 1..%d. Попробуй снова.", len(session.WorkingSet))), nil
	}

	now := uc.now()
	for _, n := range valid {
		id := session.WorkingSet[n-1].ID
		if err := uc.repo.Item().UpdateLocationAndDate(ctx, id, session.MoveDestination, now); err != nil {
			return nil, goerr.Wrap(err, "failed to move item", goerr.V("id", id))
		}
	}

	text = fmt.Sprintf("Переместил ✅ %d шт. → %s.", len(valid), uc.cfg.UI.LocationLabel(session.MoveDestination))
	if len(outOfRange) > 0 {
		text += fmt.Sprintf("\nВне диапазона: %s (доступно 1..%d).",
			joinInts(outOfRange), len(session.WorkingSet))
	}
	session.Reset()
	return model.MainMenuReply(text), nil
}

func (uc *UseCases) applyEdit(ctx context.Context, session *model.Session, text string) (*model.Reply, error) {
	prompt := msgEditTextPrompt
	if session.EditField == types.EditFieldDate {
		prompt = msgEditDatePrompt
	}

	index, value, ok := splitEditValue(text)
	if !ok {
		return &model.Reply{Text: prompt, Menu: model.Menu{Kind: model.MenuMain}}, nil
	}
	if index < 1 || index > len(session.WorkingSet) {
		return model.MainMenuReply(fmt.Sprintf("Сейчас доступно 1..%d. Попробуй снова.", len(session.WorkingSet))), nil
	}

	id := session.WorkingSet[index-1].ID

	switch session.EditField {
	case types.EditFieldDate:
		days, err := strconv.Atoi(value)
		if err != nil || days < 0 {
			return &model.Reply{Text: prompt, Menu: model.Menu{Kind: model.MenuMain}}, nil
		}
		ts := uc.now().AddDate(0, 0, -days)
		if err := uc.repo.Item().UpdateCreatedAt(ctx, id, ts); err != nil {
			return nil, goerr.Wrap(err, "failed to update item date", goerr.V("id", id))
		}
		session.Reset()
		return model.MainMenuReply(fmt.Sprintf("Изменил ✅ дату: %d дн. назад.", days)), nil

	default:
		if err := uc.repo.Item().UpdateText(ctx, id, value); err != nil {
			return nil, goerr.Wrap(err, "failed to update item text", goerr.V("id", id))
		}
		session.Reset()
		return model.MainMenuReply(fmt.Sprintf("Изменил ✅ название: %s.", strings.TrimSpace(value))), nil
	}
}

// splitEditValue parses "<index> <value>" messages of the edit flow
func splitEditValue(text string) (int, string, bool) {
	parts := strings.SplitN(strings.TrimSpace(text), " ", 2)
	if len(parts) != 2 {
		return 0, "", false
	}
	index, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", false
	}
	value := strings.TrimSpace(parts[1])
	if value == "" {
		return 0, "", false
	}
	return index, value, true
}

func (uc *UseCases) handleFreeText(ctx context.Context, session *model.Session, text string) (*model.Reply, error) {
	if uc.resolver == nil || text == "" {
		return model.MainMenuReply(msgUnrecognized), nil
	}

	resolved, err := uc.resolver.ParseText(ctx, text)
	if err != nil {
		// Resolver failure degrades to "unrecognized", never aborts the turn
		logging.From(ctx).Warn("intent resolution failed", "error", err)
		return model.MainMenuReply(msgUnrecognized), nil
	}

	switch types.CoerceIntentAction(resolved.Action) {
	case types.IntentActionAdd:
		return uc.intentAdd(ctx, session, resolved)
	case types.IntentActionDelete:
		return uc.intentDelete(ctx, session, resolved)
	}

	return model.MainMenuReply(msgUnrecognized), nil
}

func (uc *UseCases) intentAdd(ctx context.Context, session *model.Session, resolved *model.Intent) (*model.Reply, error) {
	items := trimItems(resolved.Items)
	if len(items) == 0 {
		return model.MainMenuReply(msgAddNotUnderstood), nil
	}

	category := types.CoerceCategory(resolved.Category)
	location := types.CoerceLocation(resolved.Location)

	added := 0
	for _, item := range items {
		if _, err := uc.repo.Item().Create(ctx, &model.Item{
			Category: category,
			Location: location,
			Text:     item,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to add item", goerr.V("text", item))
		}
		added++
	}

	session.Reset()
	return model.MainMenuReply(fmt.Sprintf("🤖 Добавил %d шт.\n%s → %s",
		added, uc.cfg.UI.CategoryLabel(category), uc.cfg.UI.LocationLabel(location))), nil
}

func (uc *UseCases) intentDelete(ctx context.Context, session *model.Session, resolved *model.Intent) (*model.Reply, error) {
	phrases := trimItems(resolved.Items)
	if len(phrases) == 0 {
		return model.MainMenuReply(msgDelNotUnderstood), nil
	}

	pool, err := uc.repo.Item().ListRaw(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list items")
	}

	// Valid category/location hints narrow the candidate pool before
	// matching; invalid hints are ignored rather than trusted.
	if category := types.Category(resolved.Category); category.IsValid() {
		pool = filterItems(pool, func(i *model.Item) bool { return i.Category == category })
	}
	if location := types.Location(resolved.Location); location.IsValid() {
		pool = filterItems(pool, func(i *model.Item) bool { return i.Location == location })
	}

	deleted := 0
	var ambiguous []string
	var notFound []string

	for _, phrase := range phrases {
		matches := findMatches(pool, phrase)
		switch {
		case len(matches) == 1:
			if _, err := uc.repo.Item().Delete(ctx, matches[0].ID); err != nil {
				return nil, goerr.Wrap(err, "failed to delete item", goerr.V("id", matches[0].ID))
			}
			deleted++
		case len(matches) > 1:
			block := []string{fmt.Sprintf("• «%s» подходит к нескольким:", phrase)}
			for i, m := range matches {
				if i >= 10 {
					break
				}
				block = append(block, fmt.Sprintf("  %d) %s", i+1, m.Text))
			}
			ambiguous = append(ambiguous, strings.Join(block, "\n"))
		default:
			notFound = append(notFound, fmt.Sprintf("«%s»", phrase))
		}
	}

	lines := []string{fmt.Sprintf("🤖 Удалил %d шт.", deleted)}
	if len(ambiguous) > 0 {
		lines = append(lines, "", msgAmbiguousHeader)
		lines = append(lines, ambiguous...)
		lines = append(lines, "", msgAmbiguousFooter)
	}
	if len(notFound) > 0 {
		lines = append(lines, "", "Не нашёл: "+strings.Join(notFound, ", ")+".")
	}

	session.Reset()
	return model.MainMenuReply(strings.Join(lines, "\n")), nil
}

func trimItems(items []string) []string {
	var trimmed []string
	for _, item := range items {
		if t := strings.TrimSpace(item); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return trimmed
}

func filterItems(items []*model.Item, keep func(*model.Item) bool) []*model.Item {
	var filtered []*model.Item
	for _, item := range items {
		if keep(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
