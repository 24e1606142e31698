package usecase

import (
	"fmt"
	"strings"

	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
	goslack "github.com/slack-go/slack"
)

// RenderReply converts a display payload into Slack Block Kit blocks plus a
// plain-text fallback.
func (uc *UseCases) RenderReply(reply *model.Reply) ([]goslack.Block, string) {
	var blocks []goslack.Block

	text := reply.Text
	if len(reply.Rows) > 0 {
		lines := make([]string, len(reply.Rows))
		for i, row := range reply.Rows {
			lines[i] = fmt.Sprintf("%d) %s — %d дн.", row.Index, row.Text, row.AgeDays)
		}
		text += "\n\n" + strings.Join(lines, "\n")
	}

	blocks = append(blocks, goslack.NewSectionBlock(
		goslack.NewTextBlockObject(goslack.MarkdownType, text, false, false), nil, nil))

	blocks = append(blocks, uc.menuBlocks(reply.Menu)...)
	return blocks, reply.Text
}

func (uc *UseCases) menuBlocks(menu model.Menu) []goslack.Block {
	switch menu.Kind {
	case model.MenuMain:
		return []goslack.Block{
			goslack.NewActionBlock("pb_main_1",
				button(SlackActionStartFlow, string(types.FlowActionAdd), "➕ Добавить"),
				button(SlackActionStartFlow, string(types.FlowActionDelete), "➖ Удалить"),
				button(SlackActionStartFlow, string(types.FlowActionShow), "❓ Что осталось?"),
			),
			goslack.NewActionBlock("pb_main_2",
				button(SlackActionStartFlow, string(types.FlowActionPhoto), "📷 Добавить по фото"),
				button(SlackActionStartFlow, string(types.FlowActionMove), "📦 Переместить"),
				button(SlackActionStartFlow, string(types.FlowActionEdit), "✏️ Изменить"),
			),
		}

	case model.MenuCategory:
		var buttons []goslack.BlockElement
		for _, category := range types.AllCategories() {
			buttons = append(buttons, button(SlackActionSelectCategory,
				encodeCategoryValue(menu.Action, category), uc.cfg.UI.CategoryLabel(category)))
		}
		return []goslack.Block{
			goslack.NewActionBlock("pb_category_choice", buttons...),
			navBlock(),
		}

	case model.MenuLocation:
		var buttons []goslack.BlockElement
		for _, location := range types.AllLocations() {
			buttons = append(buttons, button(SlackActionSelectLocation,
				encodeLocationValue(menu.Action, menu.Category, location), uc.cfg.UI.LocationLabel(location)))
		}
		return []goslack.Block{
			goslack.NewActionBlock("pb_location_choice", buttons...),
			goslack.NewActionBlock("pb_location_nav",
				button(SlackActionBackToCategory, string(menu.Action), "⬅️ Назад"),
				button(SlackActionNavigate, string(model.NavCancel), "✖️ Отмена"),
			),
		}

	case model.MenuMoveDestination:
		var buttons []goslack.BlockElement
		for _, location := range types.AllLocations() {
			if location == menu.Exclude {
				continue
			}
			buttons = append(buttons, button(SlackActionMoveDestination,
				string(location), uc.cfg.UI.LocationLabel(location)))
		}
		return []goslack.Block{
			goslack.NewActionBlock("pb_move_dest_choice", buttons...),
			navBlock(),
		}

	case model.MenuEditField:
		return []goslack.Block{
			goslack.NewActionBlock("pb_edit_field_choice",
				button(SlackActionEditField, string(types.EditFieldText), "Название"),
				button(SlackActionEditField, string(types.EditFieldDate), "Дата"),
			),
			navBlock(),
		}

	case model.MenuPhotoCategory:
		var buttons []goslack.BlockElement
		for _, category := range types.AllCategories() {
			buttons = append(buttons, button(SlackActionPhotoCategory,
				string(category), uc.cfg.UI.CategoryLabel(category)))
		}
		return []goslack.Block{
			goslack.NewActionBlock("pb_photo_category_choice", buttons...),
			navBlock(),
		}

	case model.MenuPhotoConfirm:
		return []goslack.Block{
			goslack.NewActionBlock("pb_photo_confirm_choice",
				button(SlackActionPhotoConfirm, "confirm", "✅ Подтвердить"),
				button(SlackActionPhotoCancel, "cancel", "❌ Отмена"),
			),
		}
	}

	return nil
}

func button(actionID SlackActionID, value, label string) *goslack.ButtonBlockElement {
	return goslack.NewButtonBlockElement(string(actionID), value,
		goslack.NewTextBlockObject(goslack.PlainTextType, label, true, false))
}

func navBlock() *goslack.ActionBlock {
	return goslack.NewActionBlock("pb_nav_block",
		button(SlackActionNavigate, string(model.NavMain), "🏠 Меню"),
		button(SlackActionNavigate, string(model.NavCancel), "✖️ Отмена"),
	)
}
