package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"NotePadBot/internal/database"
	"NotePadBot/internal/database/models"
	"NotePadBot/internal/dialog"
	"NotePadBot/internal/pattern"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Render — инструкция отрисовки для транспорта: либо текст с клавиатурой,
// либо только Notice (короткий ответ на callback без перерисовки экрана).
type Render struct {
	Text     string
	Keyboard *tgbotapi.InlineKeyboardMarkup
	Notice   string
}

// errMalformedNote возвращается, когда текст заметки не содержит меток Title/Content.
var errMalformedNote = errors.New("note text is missing Title/Content labels")

// Engine — единственная точка, которая по (пользователь, состояние, событие)
// вычисляет новое состояние диалога и инструкцию отрисовки.
type Engine struct {
	store     *database.Store
	states    *dialog.Store
	webAppURL string
}

func NewEngine(store *database.Store, states *dialog.Store, webAppURL string) *Engine {
	return &Engine{store: store, states: states, webAppURL: webAppURL}
}

// States открывает хранилище диалогов для мониторинга.
func (e *Engine) States() *dialog.Store {
	return e.states
}

// Start обрабатывает команду /start: маршрутизация зависит от того,
// настроен ли код блокировки и заблокирован ли пользователь.
func (e *Engine) Start(ctx context.Context, user *models.User) Render {
	var r Render
	e.states.Do(user.ID, func(st dialog.State) dialog.State {
		switch {
		case !user.HasPattern():
			r = e.renderPatternSetup("")
			return dialog.State{Kind: dialog.SettingPattern}
		case user.IsLocked:
			r = e.renderLockScreen()
			return dialog.State{Kind: dialog.Unlocking}
		default:
			r = e.renderMainMenu(user)
			return dialog.State{Kind: dialog.MainMenu}
		}
	})
	return r
}

// HandleAction обрабатывает нажатие кнопки.
func (e *Engine) HandleAction(ctx context.Context, user *models.User, action Action) Render {
	var r Render
	e.states.Do(user.ID, func(st dialog.State) dialog.State {
		render, next := e.transition(ctx, user, st, action)
		r = render
		return next
	})
	return r
}

// transition — таблица переходов машины состояний. Возвращает прежнее
// состояние при любой ошибке, чтобы сбой хранилища не ломал диалог.
func (e *Engine) transition(ctx context.Context, user *models.User, st dialog.State, action Action) (Render, dialog.State) {
	switch action.Kind {
	case ActionUnknown:
		return Render{Notice: "❌ Unknown action!"}, st
	case ActionBackToMenu:
		// Сбрасывает любые промежуточные буферы
		return e.renderMainMenu(user), dialog.State{Kind: dialog.MainMenu}
	}

	switch st.Kind {
	case dialog.SettingPattern:
		switch action.Kind {
		case ActionDigit:
			pending := pattern.AppendDigit(st.PendingDigits, action.Digit)
			if pending == st.PendingDigits {
				// Повторная цифра — тихий no-op
				return Render{}, st
			}
			return e.renderPatternSetup(pending), dialog.State{Kind: dialog.SettingPattern, PendingDigits: pending}

		case ActionCommitPattern:
			code, err := pattern.Commit(st.PendingDigits)
			if err != nil {
				return Render{Notice: "❌ Pattern must be at least 4 digits!"}, st
			}
			if err := e.store.SetPattern(ctx, user.ID, code); err != nil {
				return e.renderError(err), st
			}
			user.PatternCode = code
			user.IsLocked = false
			r := e.renderMainMenu(user)
			r.Text = "✅ Pattern lock set successfully!\n\n" + r.Text
			return r, dialog.State{Kind: dialog.MainMenu}
		}

	case dialog.Unlocking:
		if action.Kind == ActionUnlockCompleted {
			// Жест проверяет внешнее мини-приложение, бот доверяет сигналу
			if err := e.store.SetLocked(ctx, user.ID, false); err != nil {
				return e.renderError(err), st
			}
			user.IsLocked = false
			return e.renderMainMenu(user), dialog.State{Kind: dialog.MainMenu}
		}

	case dialog.ChangingPattern:
		switch action.Kind {
		case ActionChangePatternDigit:
			pending := pattern.AppendDigit(st.PendingDigits, action.Digit)
			if pending == st.PendingDigits {
				return Render{}, st
			}
			return e.renderPatternChange(pending), dialog.State{Kind: dialog.ChangingPattern, PendingDigits: pending}

		case ActionCommitNewPattern:
			code, err := pattern.Commit(st.PendingDigits)
			if err != nil {
				return Render{Notice: "❌ Pattern must be at least 4 digits!"}, st
			}
			if err := e.store.SetPattern(ctx, user.ID, code); err != nil {
				return e.renderError(err), st
			}
			user.PatternCode = code
			r := e.renderMainMenu(user)
			r.Text = "✅ Pattern lock updated!\n\n" + r.Text
			return r, dialog.State{Kind: dialog.MainMenu}
		}

	case dialog.MainMenu:
		switch action.Kind {
		case ActionNewNote:
			return e.renderNoteForm(), dialog.State{Kind: dialog.CreatingNote}

		case ActionListNotes:
			r, err := e.renderNotesList(ctx, user)
			if err != nil {
				return e.renderError(err), st
			}
			return r, st

		case ActionOpenSettings:
			return e.renderPatternChange(""), dialog.State{Kind: dialog.ChangingPattern}

		case ActionLockDevice:
			if err := e.store.SetLocked(ctx, user.ID, true); err != nil {
				return e.renderError(err), st
			}
			user.IsLocked = true
			return e.renderLockScreen(), dialog.State{Kind: dialog.Unlocking}

		case ActionViewNote:
			note, err := e.store.NoteByID(ctx, action.NoteID, user.ID)
			if err != nil {
				return e.renderError(err), st
			}
			return e.renderNoteDetail(note), st

		case ActionEditNote:
			note, err := e.store.NoteByID(ctx, action.NoteID, user.ID)
			if err != nil {
				return e.renderError(err), st
			}
			return e.renderEditForm(note), dialog.State{Kind: dialog.EditingNote, NoteID: note.ID}

		case ActionDeleteNote:
			note, err := e.store.NoteByID(ctx, action.NoteID, user.ID)
			if err != nil {
				return e.renderError(err), st
			}
			return e.renderDeleteConfirm(note), st

		case ActionConfirmDelete:
			deleted, err := e.store.DeleteNote(ctx, action.NoteID, user.ID)
			if err != nil {
				return e.renderError(err), st
			}
			if !deleted {
				return Render{Notice: "❌ Note not found!"}, st
			}
			r, err := e.renderNotesList(ctx, user)
			if err != nil {
				return e.renderError(err), st
			}
			r.Text = "🗑️ Note deleted.\n\n" + r.Text
			return r, st
		}
	}

	log.Printf("Action %d ignored in dialog state %s (user %d)", action.Kind, st.Kind, user.ID)
	return Render{Notice: "⚠️ That action is not available right now. Use /start."}, st
}

// HandleText обрабатывает свободный текст. Вне режимов создания и
// редактирования заметки текст игнорируется (handled=false).
func (e *Engine) HandleText(ctx context.Context, user *models.User, text string) (Render, bool) {
	var r Render
	handled := true

	e.states.Do(user.ID, func(st dialog.State) dialog.State {
		switch st.Kind {
		case dialog.CreatingNote:
			if strings.EqualFold(strings.TrimSpace(text), "cancel") {
				r = e.renderMainMenu(user)
				r.Text = "❌ Note creation cancelled.\n\n" + r.Text
				return dialog.State{Kind: dialog.MainMenu}
			}

			title, content, err := parseNoteBody(text)
			if err != nil {
				r = Render{Text: "❌ Invalid format. Please use:\nTitle: [title]\nContent: [content]"}
				return st
			}

			note, err := e.store.CreateNote(ctx, user.ID, title, content)
			if errors.Is(err, database.ErrValidation) {
				r = Render{Text: "❌ Please provide both title and content."}
				return st
			}
			if err != nil {
				r = e.renderError(err)
				return st
			}

			r = e.renderMainMenu(user)
			r.Text = fmt.Sprintf("✅ Note created successfully!\n\n📝 Title: %s\n📄 Content: %s\n\n%s",
				note.Title, snippet(note.Content, 100), r.Text)
			return dialog.State{Kind: dialog.MainMenu}

		case dialog.EditingNote:
			if strings.EqualFold(strings.TrimSpace(text), "cancel") {
				r = e.renderMainMenu(user)
				r.Text = "❌ Edit cancelled.\n\n" + r.Text
				return dialog.State{Kind: dialog.MainMenu}
			}

			title, content, err := parseNoteBody(text)
			if err != nil {
				r = Render{Text: "❌ Invalid format. Please use:\nTitle: [title]\nContent: [content]"}
				return st
			}

			note, err := e.store.UpdateNote(ctx, st.NoteID, user.ID, title, content)
			if errors.Is(err, database.ErrValidation) {
				r = Render{Text: "❌ Please provide both title and content."}
				return st
			}
			if err != nil {
				r = e.renderError(err)
				return st
			}

			r = e.renderMainMenu(user)
			r.Text = fmt.Sprintf("✅ Note updated!\n\n📝 Title: %s\n\n%s", note.Title, r.Text)
			return dialog.State{Kind: dialog.MainMenu}

		default:
			handled = false
			return st
		}
	})

	return r, handled
}

// UserList — админская выборка всех пользователей; не-администраторам отказ.
func (e *Engine) UserList(ctx context.Context, user *models.User) Render {
	if !user.IsAdmin {
		return Render{Text: "You are not admin."}
	}

	users, err := e.store.AllUsers(ctx)
	if err != nil {
		return e.renderError(err)
	}

	var b strings.Builder
	b.WriteString("Registered Users:\n")
	for _, u := range users {
		fmt.Fprintf(&b, "%d: %s (Admin: %t)\n", u.ID, u.UserName, u.IsAdmin)
	}
	return Render{Text: b.String()}
}

// renderError переводит ошибку хранилища в безопасный для диалога ответ:
// состояние не продвигается, пользователю уходит короткое уведомление.
func (e *Engine) renderError(err error) Render {
	if errors.Is(err, database.ErrNotFound) {
		return Render{Notice: "❌ Note not found!"}
	}
	log.Printf("Storage error: %v", err)
	return Render{Notice: "⚠️ Something went wrong. Please try again."}
}

func (e *Engine) renderPatternSetup(pending string) Render {
	kb := CreatePatternSetupKeyboard()
	return Render{
		Text: "📱 Welcome to NotePad!\n\n" +
			"🔐 First, set your pattern lock:\n" +
			"• Tap the numbers in your desired pattern\n" +
			"• Then tap 'Set Pattern' to confirm\n\n" +
			"Current pattern: " + pending,
		Keyboard: &kb,
	}
}

func (e *Engine) renderPatternChange(pending string) Render {
	kb := CreatePatternChangeKeyboard()
	return Render{
		Text: "🔐 Change Pattern Lock\n\n" +
			"Enter your new pattern:\n\n" +
			"Current pattern: " + pending,
		Keyboard: &kb,
	}
}

func (e *Engine) renderLockScreen() Render {
	kb := CreateLockKeyboard(e.webAppURL)
	return Render{
		Text: "📱 NotePad is locked\n\n" +
			"🔐 Use 'Swipe to Unlock' to draw your pattern,\n" +
			"then press Done.",
		Keyboard: &kb,
	}
}

func (e *Engine) renderMainMenu(user *models.User) Render {
	kb := CreateMainMenuKeyboard()
	return Render{
		Text: "📱 NotePad - Main Menu\n\n" +
			"Welcome back, " + user.UserName + "!\n" +
			"What would you like to do?",
		Keyboard: &kb,
	}
}

func (e *Engine) renderNoteForm() Render {
	kb := CreateCancelKeyboard()
	return Render{
		Text: "📝 Create New Note\n\n" +
			"Please send your note in this format:\n" +
			"Title: [Your title here]\n" +
			"Content: [Your note content here]\n\n" +
			"Or send 'cancel' to go back.",
		Keyboard: &kb,
	}
}

func (e *Engine) renderNotesList(ctx context.Context, user *models.User) (Render, error) {
	notes, err := e.store.NotesByOwner(ctx, user.ID)
	if err != nil {
		return Render{}, err
	}

	if len(notes) == 0 {
		kb := CreateBackKeyboard()
		return Render{
			Text: "📚 My Notes\n\n" +
				"You don't have any notes yet.\n" +
				"Create your first note!",
			Keyboard: &kb,
		}, nil
	}

	var b strings.Builder
	b.WriteString("📚 My Notes:\n\n")
	for _, note := range notes {
		fmt.Fprintf(&b, "📝 %s\n   %s\n   📅 %s\n\n",
			note.Title, snippet(note.Content, 50), note.UpdatedAt.Format("2006-01-02 15:04"))
	}

	kb := CreateNotesKeyboard(notes)
	return Render{Text: b.String(), Keyboard: &kb}, nil
}

func (e *Engine) renderNoteDetail(note *models.Note) Render {
	kb := CreateNoteDetailKeyboard(note.ID)
	return Render{
		Text: fmt.Sprintf("📖 %s\n\n📄 %s\n\n📅 Created: %s\n📅 Updated: %s",
			note.Title, note.Content,
			note.CreatedAt.Format("2006-01-02 15:04"),
			note.UpdatedAt.Format("2006-01-02 15:04")),
		Keyboard: &kb,
	}
}

func (e *Engine) renderEditForm(note *models.Note) Render {
	kb := CreateCancelKeyboard()
	return Render{
		Text: fmt.Sprintf("✏️ Edit Note: %s\n\nCurrent content:\n%s\n\n"+
			"Send the new version as:\nTitle: [title]\nContent: [content]\n\n"+
			"Or send 'cancel' to go back.", note.Title, note.Content),
		Keyboard: &kb,
	}
}

func (e *Engine) renderDeleteConfirm(note *models.Note) Render {
	kb := CreateDeleteConfirmKeyboard(note.ID)
	return Render{
		Text: fmt.Sprintf("🗑️ Delete Note\n\nAre you sure you want to delete:\n📝 %s\n\n"+
			"This action cannot be undone!", note.Title),
		Keyboard: &kb,
	}
}

// parseNoteBody разбирает текст формата "Title: ... Content: ...".
// Метки нечувствительны к регистру; без любой из них — errMalformedNote.
func parseNoteBody(text string) (title, content string, err error) {
	lower := strings.ToLower(text)
	titleIdx := strings.Index(lower, "title:")
	contentIdx := strings.Index(lower, "content:")

	if titleIdx < 0 || contentIdx < 0 || contentIdx < titleIdx {
		return "", "", errMalformedNote
	}

	title = strings.TrimSpace(text[titleIdx+len("title:") : contentIdx])
	content = strings.TrimSpace(text[contentIdx+len("content:"):])
	return title, content, nil
}

func snippet(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
