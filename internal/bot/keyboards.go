package bot

import (
	"NotePadBot/internal/database/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// digitPad собирает цифровую клавиатуру; tag задает пространство callback-тегов
// (digit для первичной настройки, changePatternDigit для смены кода).
func digitPad(tag string) [][]tgbotapi.InlineKeyboardButton {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, line := range []string{"123", "456", "789", "0"} {
		row := []tgbotapi.InlineKeyboardButton{}
		for i := 0; i < len(line); i++ {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				string(line[i]), digitCallback(tag, line[i])))
		}
		rows = append(rows, row)
	}
	return rows
}

func CreatePatternSetupKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := digitPad(tagDigit)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔒 Set Pattern", tagCommitPattern),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func CreatePatternChangeKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := digitPad(tagChangePatternDigit)
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔒 Set New Pattern", tagCommitNewPattern),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", tagBackToMenu),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func CreateMainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 New Note", tagNewNote),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 My Notes", tagListNotes),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", tagOpenSettings),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔒 Lock", tagLockDevice),
		),
	)
}

// CreateLockKeyboard показывает ссылку на мини-приложение с жестом разблокировки.
// Завершение жеста подтверждается кнопкой Done — бот сам жест не проверяет.
func CreateLockKeyboard(webAppURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("👆 Swipe to Unlock", webAppURL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔓 Done", tagUnlockCompleted),
		),
	)
}

func CreateCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", tagBackToMenu),
		),
	)
}

func CreateBackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", tagBackToMenu),
		),
	)
}

func CreateNotesKeyboard(notes []models.Note) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, note := range notes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 "+note.Title, noteCallback(tagViewNote, note.ID)),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit", noteCallback(tagEditNote, note.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete", noteCallback(tagDeleteNote, note.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Back", tagBackToMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func CreateNoteDetailKeyboard(noteID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit", noteCallback(tagEditNote, noteID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete", noteCallback(tagDeleteNote, noteID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", tagListNotes),
		),
	)
}

func CreateDeleteConfirmKeyboard(noteID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, Delete", noteCallback(tagConfirmDelete, noteID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", noteCallback(tagViewNote, noteID)),
		),
	)
}
