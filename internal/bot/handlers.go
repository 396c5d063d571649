package bot

import (
	"context"
	"errors"
	"log"

	"NotePadBot/internal/database"
	"NotePadBot/internal/database/models"
	"NotePadBot/internal/dialog"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UpdateHandler принимает обновления Telegram, классифицирует их
// (команда, кнопка, свободный текст) и передает в Engine.
type UpdateHandler struct {
	bot    *tgbotapi.BotAPI
	store  *database.Store
	engine *Engine
}

func NewUpdateHandler(bot *tgbotapi.BotAPI, store *database.Store, states *dialog.Store, webAppURL string) *UpdateHandler {
	return &UpdateHandler{
		bot:    bot,
		store:  store,
		engine: NewEngine(store, states, webAppURL),
	}
}

// HandleUpdates разбирает поток обновлений; каждое событие обрабатывается
// в своей горутине, сериализация по пользователю — внутри dialog.Store.
func (h *UpdateHandler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		go h.handleUpdate(update)
	}
}

func (h *UpdateHandler) handleUpdate(update tgbotapi.Update) {
	ctx := context.Background()

	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil && !update.Message.From.IsBot:
		h.handleMessage(ctx, update.Message)
	}
}

// resolveUser находит пользователя по Telegram ID или регистрирует нового.
func (h *UpdateHandler) resolveUser(ctx context.Context, from *tgbotapi.User) (*models.User, error) {
	user, err := h.store.UserByTelegramID(ctx, from.ID)
	if errors.Is(err, database.ErrNotFound) {
		created, createErr := h.store.CreateUser(ctx, from.ID, from.UserName)
		if createErr != nil {
			// Два первых сообщения подряд: запись мог успеть создать
			// параллельный апдейт, тогда вставка падает на уникальном индексе
			if user, lookupErr := h.store.UserByTelegramID(ctx, from.ID); lookupErr == nil {
				return user, nil
			}
			return nil, createErr
		}
		return created, nil
	}
	return user, err
}

func (h *UpdateHandler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	log.Printf("[%d]: %s", chatID, msg.Text)

	user, err := h.resolveUser(ctx, msg.From)
	if err != nil {
		log.Printf("Error resolving user %d: %v", msg.From.ID, err)
		h.sendText(chatID, "⚠️ Something went wrong. Please try again.")
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			h.send(chatID, h.engine.Start(ctx, user))
		case "users":
			h.sendUserList(ctx, chatID, user)
		default:
			h.sendText(chatID, "Unknown command. Use /start.")
		}
		return
	}

	// Свободный текст значим только при создании или правке заметки
	if render, handled := h.engine.HandleText(ctx, user, msg.Text); handled {
		h.send(chatID, render)
	}
}

func (h *UpdateHandler) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	log.Printf("[%d] callback: %s", query.From.ID, query.Data)

	user, err := h.resolveUser(ctx, query.From)
	if err != nil {
		log.Printf("Error resolving user %d: %v", query.From.ID, err)
		h.answerCallback(query.ID, "⚠️ Something went wrong. Please try again.")
		return
	}

	render := h.engine.HandleAction(ctx, user, ParseAction(query.Data))

	h.answerCallback(query.ID, render.Notice)

	if render.Text == "" || query.Message == nil {
		return
	}

	// Экран перерисовывается на месте исходного сообщения
	var edit tgbotapi.Chattable
	if render.Keyboard != nil {
		e := tgbotapi.NewEditMessageTextAndMarkup(query.Message.Chat.ID, query.Message.MessageID, render.Text, *render.Keyboard)
		edit = e
	} else {
		edit = tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, render.Text)
	}
	if _, err := h.bot.Request(edit); err != nil {
		log.Printf("Error editing message for chat %d: %v", query.Message.Chat.ID, err)
	}
}

func (h *UpdateHandler) answerCallback(queryID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(queryID, text)); err != nil {
		log.Printf("Error answering callback: %v", err)
	}
}

func (h *UpdateHandler) send(chatID int64, render Render) {
	text := render.Text
	if text == "" {
		text = render.Notice
	}
	if text == "" {
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if render.Keyboard != nil {
		msg.ReplyMarkup = *render.Keyboard
	}
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Error sending message to chat %d: %v", chatID, err)
	}
}

func (h *UpdateHandler) sendText(chatID int64, text string) {
	h.send(chatID, Render{Text: text})
}

// sendUserList — админская команда со списком всех пользователей.
func (h *UpdateHandler) sendUserList(ctx context.Context, chatID int64, user *models.User) {
	h.send(chatID, h.engine.UserList(ctx, user))
}
