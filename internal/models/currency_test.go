package models_test

import (
	"testing"

	"github.com/VladPetriv/currency_converter/internal/models"
	"github.com/VladPetriv/currency_converter/pkg/money"
	"github.com/stretchr/testify/assert"
)

func TestGetCurrency(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		desc     string
		code     string
		expected bool
	}{
		{
			desc:     "positive: supported currency",
			code:     "USD",
			expected: true,
		},
		{
			desc:     "negative: lower case code",
			code:     "usd",
			expected: false,
		},
		{
			desc:     "negative: valid ISO code outside of supported set",
			code:     "UAH",
			expected: false,
		},
		{
			desc:     "negative: not an ISO code",
			code:     "ABCD",
			expected: false,
		},
		{
			desc:     "negative: empty code",
			code:     "",
			expected: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			actual, ok := models.GetCurrency(tc.code)
			assert.Equal(t, tc.expected, ok)
			if tc.expected {
				assert.Equal(t, tc.code, actual.Code)
			}
		})
	}
}

func TestSupportedCurrencies_AreValidISOCodes(t *testing.T) {
	t.Parallel()

	for _, c := range models.SupportedCurrencies {
		assert.True(t, models.IsSupportedCurrency(c.Code), c.Code)
	}
}

func TestRateSnapshot_Rate(t *testing.T) {
	t.Parallel()

	snapshot := &models.RateSnapshot{
		Base:  "USD",
		Rates: map[string]money.Money{"EUR": money.NewFromFloat(0.92)},
	}

	rate, ok := snapshot.Rate("EUR")
	assert.True(t, ok)
	assert.Equal(t, "0.92", rate.String())

	_, ok = snapshot.Rate("GBP")
	assert.False(t, ok)

	var empty *models.RateSnapshot
	_, ok = empty.Rate("EUR")
	assert.False(t, ok)
}

func TestRequestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", models.RequestStateIdle.String())
	assert.Equal(t, "loading", models.RequestStateLoading.String())
	assert.Equal(t, "success", models.RequestStateSuccess.String())
	assert.Equal(t, "error", models.RequestStateError.String())
	assert.Equal(t, "unknown", models.RequestState(42).String())
}
