package telegram

import (
	"github.com/VladPetriv/currency_converter/internal/service"
	"github.com/mymmrac/telego"
)

// Update represents the update received from the Telegram.
type Update struct {
	update telego.Update
}

var _ service.Message = (*Update)(nil)

// GetUpdateID returns the ID of the update.
func (t *Update) GetUpdateID() int {
	return t.update.UpdateID
}

// GetChatID returns the ID of the chat the message was sent to.
func (t *Update) GetChatID() int {
	var chatID int

	if t.update.Message != nil {
		chatID = int(t.update.Message.Chat.ID)
	}
	if t.update.CallbackQuery != nil && t.update.CallbackQuery.Message != nil {
		chatID = int(t.update.CallbackQuery.Message.Chat.ID)
	}

	return chatID
}

// GetText returns the text content of the message or callback data.
func (t *Update) GetText() string {
	var text string

	if t.update.Message != nil {
		text = t.update.Message.Text
	}
	if t.update.CallbackQuery != nil {
		text = t.update.CallbackQuery.Data
	}

	return text
}

// GetCallbackID returns the ID of the callback query.
func (t *Update) GetCallbackID() string {
	if t.update.CallbackQuery != nil {
		return t.update.CallbackQuery.ID
	}

	return ""
}

// GetSenderName returns the name of the user who sent the message.
func (t *Update) GetSenderName() string {
	var senderName string

	if t.update.Message != nil && t.update.Message.From != nil {
		senderName = t.update.Message.From.Username
	}
	if t.update.CallbackQuery != nil {
		senderName = t.update.CallbackQuery.From.Username
	}

	return senderName
}
