package usecase

// User-facing copy. The bot speaks Russian, matching its original audience;
// category and location labels come from the configuration instead.
const (
	msgMainMenu       = "Главное меню:"
	msgCancelled      = "Ок, отмена. Главное меню:"
	msgButtonUnknown  = "Не понял кнопку. Главное меню:"
	msgChooseCategory = "Выбери категорию:"
	msgChooseLocation = "Выбери место:"

	msgAddEmpty = "Пусто. Напиши хотя бы одну строку или /cancel."

	msgDeletePrompt = "Отправь номер(а) строк для удаления.\nПримеры: 2 или 1 4 или 1, 4\n/cancel — отмена."
	msgMovePrompt   = "Отправь номер(а) строк для перемещения.\nПримеры: 2 или 1 4 или 1, 4\n/cancel — отмена."

	msgChooseMoveDestination = "Куда переместить?"
	msgChooseEditField       = "Что изменить?"
	msgEditTextPrompt        = "Отправь: <номер> <новое название>\nНапример: 2 Куриный суп\n/cancel — отмена."
	msgEditDatePrompt        = "Отправь: <номер> <дней назад>\nНапример: 2 3 — позиция 2 лежит 3 дня.\n/cancel — отмена."

	msgUnrecognized      = "Не понял. Используй кнопки 👇"
	msgAddNotUnderstood  = "Не понял, что добавить. Используй кнопки 👇"
	msgDelNotUnderstood  = "Не понял, что удалить. Используй кнопки 👇"
	msgAmbiguousHeader   = "Часть позиций не удалил — нужно уточнить:"
	msgAmbiguousFooter   = "Напиши точнее (например: «удали рыбный суп»)."
	msgPhotoChooseKind   = "Фото-распознавание: выбери тип:"
	msgPhotoNotExpected  = "Фото сейчас не принимаю.\nНажми «📷 Добавить по фото» и следуй шагам."
	msgPhotoNotConfident = "По фото не смог уверенно распознать.\nПопробуй другое фото (крупнее/светлее) или добавь текстом."
	msgPhotoNothing      = "Нечего подтверждать. Главное меню:"
	msgPhotoCancelled    = "Ок, отменил. Главное меню:"
)
