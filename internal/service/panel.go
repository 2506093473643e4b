package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/VladPetriv/currency_converter/internal/models"
)

type pickerKind string

const (
	pickerNone   pickerKind = ""
	pickerSource pickerKind = "from"
	pickerTarget pickerKind = "to"
)

// Callback data of the panel buttons.
const (
	callbackPickSource = "pick:from"
	callbackPickTarget = "pick:to"
	callbackSwap       = "swap"
	callbackRetry      = "retry"
	callbackBack       = "back"

	callbackSourcePrefix = "from:"
	callbackTargetPrefix = "to:"
)

// Commands that we can receive from messenger.
const (
	botStartCommand = "/start"
	botStopCommand  = "/stop"
)

const (
	currenciesPerKeyboardRow = 5
	ratePlaces               = 6
	updatedAtLayout          = "02 Jan 2006 15:04 MST"
)

const (
	panelTitle     = "Currency Converter"
	loadingMessage = "Fetching exchange rate..."
	startMessage   = "Send an amount to convert, use the buttons below to change currencies."
)

// renderPanel returns text and keyboard of the converter panel.
func renderPanel(snapshot ControllerSnapshot, picker pickerKind) (string, []InlineKeyboardRow) {
	var text strings.Builder

	fmt.Fprintf(&text, "%s\n\n", panelTitle)
	fmt.Fprintf(&text, "Amount: %s %s\n", snapshot.Amount.String(), snapshot.Source)
	fmt.Fprintf(&text, "From %s to %s\n\n", snapshot.Source, snapshot.Target)

	switch snapshot.State {
	case models.RequestStateIdle:
		fmt.Fprintf(&text, "Select an amount to convert from %s to %s.", snapshot.Source, snapshot.Target)
	case models.RequestStateLoading:
		text.WriteString(loadingMessage)
	case models.RequestStateError:
		fmt.Fprintf(&text, "Error: %s", snapshot.ErrorMessage)
	case models.RequestStateSuccess:
		text.WriteString(renderResult(snapshot))
	}

	switch picker {
	case pickerSource:
		return text.String(), currencyKeyboard(callbackSourcePrefix, snapshot.Source)
	case pickerTarget:
		return text.String(), currencyKeyboard(callbackTargetPrefix, snapshot.Target)
	default:
		return text.String(), panelKeyboard(snapshot)
	}
}

func renderResult(snapshot ControllerSnapshot) string {
	if snapshot.Result == nil {
		return ""
	}

	lines := []string{
		"Converted Amount",
		fmt.Sprintf("%s %s", snapshot.Result.ConvertedAmount.StringFixed(), snapshot.Target),
		fmt.Sprintf("1 %s = %s %s", snapshot.Source, snapshot.Result.RateUsed.StringFixedPlaces(ratePlaces), snapshot.Target),
	}
	if !snapshot.Result.UpdatedAt.IsZero() {
		lines = append(lines, "Last updated: "+snapshot.Result.UpdatedAt.In(time.UTC).Format(updatedAtLayout))
	}

	return strings.Join(lines, "\n")
}

func panelKeyboard(snapshot ControllerSnapshot) []InlineKeyboardRow {
	rows := []InlineKeyboardRow{
		{
			Buttons: []InlineKeyboardButton{
				{Text: "From: " + snapshot.Source, Data: callbackPickSource},
				{Text: "Swap", Data: callbackSwap},
				{Text: "To: " + snapshot.Target, Data: callbackPickTarget},
			},
		},
	}

	if snapshot.State == models.RequestStateError {
		rows = append(rows, InlineKeyboardRow{
			Buttons: []InlineKeyboardButton{{Text: "Retry", Data: callbackRetry}},
		})
	}

	return rows
}

func currencyKeyboard(callbackPrefix, selected string) []InlineKeyboardRow {
	rows := getInlineKeyboardRows(models.SupportedCurrencies, currenciesPerKeyboardRow)

	for i := range rows {
		for j := range rows[i].Buttons {
			button := &rows[i].Buttons[j]
			button.Data = callbackPrefix + button.Data
			if strings.TrimPrefix(button.Data, callbackPrefix) == selected {
				button.Text = "* " + button.Text
			}
		}
	}

	return append(rows, InlineKeyboardRow{
		Buttons: []InlineKeyboardButton{{Text: "Back", Data: callbackBack}},
	})
}

type identifiable interface {
	GetID() string
	GetName() string
}

func getInlineKeyboardRows[T identifiable](data []T, elementLimitPerRow int) []InlineKeyboardRow {
	inlineKeyboardRows := make([]InlineKeyboardRow, 0)

	var currentRow InlineKeyboardRow
	for i, entry := range data {
		currentRow.Buttons = append(currentRow.Buttons, InlineKeyboardButton{
			Text: entry.GetName(),
			Data: entry.GetID(),
		})

		// When row is full or we're at the last data item, append row
		if len(currentRow.Buttons) == elementLimitPerRow || i == len(data)-1 {
			inlineKeyboardRows = append(inlineKeyboardRows, currentRow)
			currentRow = InlineKeyboardRow{} // Reset current row
		}
	}

	return inlineKeyboardRows
}
