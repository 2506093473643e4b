package exchangerate

import "encoding/json"

// latestRatesResponse covers both the open (v4) and the keyed (v6) response shapes.
type latestRatesResponse struct {
	// Result is only present in keyed responses: "success" or "error".
	Result    string `json:"result"`
	ErrorType string `json:"error-type"`

	Base     string `json:"base"`
	BaseCode string `json:"base_code"`

	Rates           map[string]json.Number `json:"rates"`
	ConversionRates map[string]json.Number `json:"conversion_rates"`

	TimeLastUpdated    int64 `json:"time_last_updated"`
	TimeLastUpdateUnix int64 `json:"time_last_update_unix"`
}

func (r latestRatesResponse) rateTable() map[string]json.Number {
	if len(r.Rates) != 0 {
		return r.Rates
	}

	return r.ConversionRates
}

func (r latestRatesResponse) baseCurrency(requested string) string {
	switch {
	case r.BaseCode != "":
		return r.BaseCode
	case r.Base != "":
		return r.Base
	default:
		return requested
	}
}

func (r latestRatesResponse) updatedAtUnix() int64 {
	if r.TimeLastUpdateUnix != 0 {
		return r.TimeLastUpdateUnix
	}

	return r.TimeLastUpdated
}
