package telegram

import (
	"fmt"
	"sync"

	"github.com/VladPetriv/currency_converter/internal/service"
	"github.com/fasthttp/router"
	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoutil"
	"github.com/valyala/fasthttp"
)

// Available ways to receive updates.
const (
	UpdatesTypeWebhook = "webhook"
	UpdatesTypePolling = "polling"
)

const webhookPath = "/bot"

type telegramMessenger struct {
	api         *telego.Bot
	updatesType string
	srvAddr     string

	done      chan struct{}
	closeOnce sync.Once
}

var _ service.Messenger = (*telegramMessenger)(nil)

// Options represents options that required for creating new instance of telegram API.
type Options struct {
	// Token represents telegram bot token.
	Token string
	// UpdatesType represents a way we'll receive updates from Telegram. (webhook | polling)
	UpdatesType string

	// ServerAddress represents an address on which we'll start a server. (Required for webhook updates type)
	ServerAddress string
	// WebhookURL represents an url to which telegram will send updates. (Required for webhook updates type)
	WebhookURL string
}

// New creates a new instance of telegram API.
func New(opts Options) (*telegramMessenger, error) {
	bot, err := telego.NewBot(opts.Token, telego.WithDefaultLogger(false, true))
	if err != nil {
		return nil, fmt.Errorf("init bot instance: %w", err)
	}

	if opts.UpdatesType == UpdatesTypeWebhook {
		err := bot.SetWebhook(&telego.SetWebhookParams{
			URL: opts.WebhookURL + webhookPath,
		})
		if err != nil {
			return nil, fmt.Errorf("set webhook url: %w", err)
		}
	}

	return &telegramMessenger{
		api:         bot,
		updatesType: opts.UpdatesType,
		srvAddr:     opts.ServerAddress,
		done:        make(chan struct{}),
	}, nil
}

func (t *telegramMessenger) ReadUpdates(result chan service.Message, errors chan error) {
	var (
		updates <-chan telego.Update
		err     error
	)

	switch t.updatesType {
	case UpdatesTypeWebhook:
		updates, err = t.api.UpdatesViaWebhook(webhookPath,
			telego.WithWebhookServer(telego.FastHTTPWebhookServer{
				Logger: t.api.Logger(),
				Server: &fasthttp.Server{},
				Router: router.New(),
			}),
		)
		if err != nil {
			errors <- fmt.Errorf("register webhook telegram updates receiver: %w", err)

			return
		}

		go func() {
			err := t.api.StartWebhook(t.srvAddr)
			if err != nil {
				errors <- fmt.Errorf("start webhook: %w", err)
			}
		}()
	case UpdatesTypePolling:
		updates, err = t.api.UpdatesViaLongPolling(nil)
		if err != nil {
			errors <- fmt.Errorf("register long polling telegram updates receiver: %w", err)

			return
		}

	default:
		errors <- fmt.Errorf("unknown updates type: %s", t.updatesType)

		return
	}

	t.forwardUpdates(updates, result)
}

// forwardUpdates passes message and callback updates to result until updates is closed or messenger is closed.
func (t *telegramMessenger) forwardUpdates(updates <-chan telego.Update, result chan service.Message) {
	for {
		select {
		case <-t.done:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil && update.CallbackQuery == nil {
				continue
			}

			select {
			case result <- &Update{update: update}:
			case <-t.done:
				return
			}
		}
	}
}

func (t *telegramMessenger) Close() error {
	t.closeOnce.Do(func() { close(t.done) })

	if t.updatesType == UpdatesTypeWebhook {
		return t.api.StopWebhook()
	}

	t.api.StopLongPolling()
	return nil
}

func (t *telegramMessenger) SendMessage(chatID int, text string) error {
	_, err := t.api.SendMessage(telegoutil.Message(telegoutil.ID(int64(chatID)), text))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func (t *telegramMessenger) SendWithKeyboard(opts service.SendWithKeyboardOptions) (int, error) {
	message := telegoutil.Message(telegoutil.ID(int64(opts.ChatID)), opts.Message)

	if len(opts.InlineKeyboard) != 0 {
		message = message.WithReplyMarkup(createInlineKeyboard(opts.InlineKeyboard))
	}

	sentMessage, err := t.api.SendMessage(message)
	if err != nil {
		return 0, fmt.Errorf("send message with keyboard: %w", err)
	}

	return sentMessage.MessageID, nil
}

func (t *telegramMessenger) EditWithKeyboard(opts service.EditWithKeyboardOptions) error {
	params := &telego.EditMessageTextParams{
		ChatID:    telegoutil.ID(int64(opts.ChatID)),
		MessageID: opts.MessageID,
		Text:      opts.Message,
	}

	if len(opts.InlineKeyboard) != 0 {
		params.ReplyMarkup = createInlineKeyboard(opts.InlineKeyboard)
	}

	_, err := t.api.EditMessageText(params)
	if err != nil {
		return fmt.Errorf("edit message with keyboard: %w", err)
	}

	return nil
}

func (t *telegramMessenger) AnswerCallback(callbackID string) error {
	err := t.api.AnswerCallbackQuery(&telego.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
	})
	if err != nil {
		return fmt.Errorf("answer callback query: %w", err)
	}

	return nil
}
