package catalog

// Change помечает род изменения, произведенного мутацией каталога.
// Каталог сам не обновляет производные представления: он возвращает
// тег, а диспетчер представлений по тегу решает, что пересчитывать.
type Change int

const (
	// ChangeNone ничего не изменилось (например, удаление отсутствующей записи)
	ChangeNone Change = iota
	// ChangeRecordAdded добавлена новая запись
	ChangeRecordAdded
	// ChangeRecordEdited изменены поля существующей записи
	ChangeRecordEdited
	// ChangeRecordRemoved запись удалена
	ChangeRecordRemoved
	// ChangeRatingChanged изменен только рейтинг
	ChangeRatingChanged
	// ChangeBadgesChanged изменен набор бейджей
	ChangeBadgesChanged
)

func (c Change) String() string {
	switch c {
	case ChangeNone:
		return "none"
	case ChangeRecordAdded:
		return "record_added"
	case ChangeRecordEdited:
		return "record_edited"
	case ChangeRecordRemoved:
		return "record_removed"
	case ChangeRatingChanged:
		return "rating_changed"
	case ChangeBadgesChanged:
		return "badges_changed"
	default:
		return "unknown"
	}
}
