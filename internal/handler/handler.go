// Package handler answers Telegram bot commands about team leaves.
package handler

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"leavely/internal/service"
	"leavely/internal/store"
	"leavely/pkg/telegram"
)

const (
	confirmDeletePrefix = "confirm_delete_"
	cancelDelete        = "cancel_delete"
)

type Handler struct {
	sender   telegram.Sender
	store    *store.Store
	leaves   *service.LeaveService
	holidays *service.HolidayService
}

func NewHandler(
	sender telegram.Sender,
	leaves *service.LeaveService,
	holidays *service.HolidayService,
) *Handler {
	return &Handler{
		sender:   sender,
		store:    store.New(leaves),
		leaves:   leaves,
		holidays: holidays,
	}
}

// HandleUpdates processes updates until the channel closes or ctx ends.
func (h *Handler) HandleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}
	h.handleMessage(ctx, update.Message)
}

// handleCallbackQuery handles the inline delete confirmation buttons.
func (h *Handler) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	editMsg := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	if _, err := h.sender.Request(editMsg); err != nil {
		logrus.WithError(err).Debug("Failed to remove keyboard")
	}

	switch {
	case strings.HasPrefix(data, confirmDeletePrefix):
		id := strings.TrimPrefix(data, confirmDeletePrefix)
		h.send(chatID, h.confirmDelete(ctx, id))
	case data == cancelDelete:
		h.send(chatID, reply{text: "❌ Deletion cancelled."})
	}

	if _, err := h.sender.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		logrus.WithError(err).Debug("Failed to answer callback")
	}
}

func (h *Handler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	user := ""
	if message.From != nil {
		user = message.From.UserName
	}
	logrus.Infof("[%s] %s", user, message.Text)

	if !message.IsCommand() {
		h.send(message.Chat.ID, reply{text: "Send /help to see what I can do."})
		return
	}

	h.send(message.Chat.ID, h.respond(ctx, message.Command(), message.CommandArguments()))
}

func (h *Handler) send(chatID int64, r reply) {
	msg := tgbotapi.NewMessage(chatID, r.text)
	if r.keyboard != nil {
		msg.ReplyMarkup = *r.keyboard
	}
	if _, err := h.sender.Send(msg); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}
