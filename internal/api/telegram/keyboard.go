package telegram

import (
	"github.com/VladPetriv/currency_converter/internal/service"
	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoutil"
)

func createInlineKeyboard(rows []service.InlineKeyboardRow) *telego.InlineKeyboardMarkup {
	convertedRows := make([][]telego.InlineKeyboardButton, 0, len(rows))

	for _, r := range rows {
		buttons := make([]telego.InlineKeyboardButton, 0, len(r.Buttons))

		for _, b := range r.Buttons {
			inlineKeyboardButton := telegoutil.
				InlineKeyboardButton(b.Text).
				WithCallbackData(b.Text)

			if b.Data != "" {
				inlineKeyboardButton = inlineKeyboardButton.WithCallbackData(b.Data)
			}

			buttons = append(buttons, inlineKeyboardButton)
		}

		convertedRows = append(convertedRows, buttons)
	}

	return telegoutil.InlineKeyboard(convertedRows...)
}
