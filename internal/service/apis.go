package service

import (
	"context"

	"github.com/VladPetriv/currency_converter/internal/models"
)

// APIs contains all external collaborators.
type APIs struct {
	Messenger    Messenger
	RateProvider RateProvider
}

// RateProvider provides exchange rates from an external service.
//
//go:generate mockery --dir . --name RateProvider --output ./mocks
type RateProvider interface {
	// GetRates returns the latest rate table for the base currency.
	GetRates(ctx context.Context, baseCurrency string) (*models.RateSnapshot, error)
}

// Messenger handles messaging operations between the application and messaging platform.
type Messenger interface {
	// ReadUpdates retrieves new incoming updates/messages from the messaging platform.
	ReadUpdates(result chan Message, errors chan error)
	// SendMessage sends a text message to the specified chat.
	SendMessage(chatID int, text string) error
	// SendWithKeyboard sends a message with an attached inline keyboard and returns its id.
	SendWithKeyboard(opts SendWithKeyboardOptions) (int, error)
	// EditWithKeyboard replaces text and inline keyboard of an already sent message.
	EditWithKeyboard(opts EditWithKeyboardOptions) error
	// AnswerCallback acknowledges a pressed inline button.
	AnswerCallback(callbackID string) error

	// Close closes the underlying connection to the messaging platform.
	Close() error
}

// SendWithKeyboardOptions represents options for sending a message with a keyboard.
type SendWithKeyboardOptions struct {
	ChatID         int
	Message        string
	InlineKeyboard []InlineKeyboardRow
}

// EditWithKeyboardOptions represents options for editing a message with a keyboard.
type EditWithKeyboardOptions struct {
	ChatID         int
	MessageID      int
	Message        string
	InlineKeyboard []InlineKeyboardRow
}

// InlineKeyboardRow represents inline keyboard row with buttons.
type InlineKeyboardRow struct {
	Buttons []InlineKeyboardButton
}

// InlineKeyboardButton represents an inline keyboard button with text and data.
type InlineKeyboardButton struct {
	Text string
	Data string
}

// Message represents a message that was received from the messaging platform.
type Message interface {
	// GetUpdateID returns the unique ID of the update.
	GetUpdateID() int
	// GetChatID returns the ID of the chat the message was sent to.
	GetChatID() int
	// GetText returns the text content of the message or the data of pressed button.
	GetText() string
	// GetCallbackID returns the ID of the callback query, empty for plain messages.
	GetCallbackID() string
	// GetSenderName returns the name of the user who sent the message.
	GetSenderName() string
}
