package migrate

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/SkouffyBates/BatesTrading-Vision/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func rawJSON(t *testing.T, s string) Raw {
	t.Helper()

	var v map[string]any
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&v))
	return Raw(v)
}

func TestNormalizeAccount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want journal.Account
	}{
		{
			name: "canonical",
			raw:  `{"id": "acc_1", "name": "FTMO Challenge 120k", "balance": 120000, "currency": "$"}`,
			want: journal.Account{ID: "acc_1", Name: "FTMO Challenge 120k", Balance: 120000, Currency: "$"},
		},
		{
			name: "legacy aliases",
			raw:  `{"_id": "mongo-1", "label": "Personal", "amount": "5000.50", "currency_code": "€"}`,
			want: journal.Account{ID: "mongo-1", Name: "Personal", Balance: 5000.5, Currency: "€"},
		},
		{
			name: "uuid and numeric id",
			raw:  `{"uuid": "u-1", "balance": "n/a"}`,
			want: journal.Account{ID: "u-1", Name: DefaultAccountName, Balance: 0, Currency: DefaultCurrency},
		},
		{
			name: "numeric id",
			raw:  `{"id": 17, "name": "Seventeen"}`,
			want: journal.Account{ID: "17", Name: "Seventeen", Currency: DefaultCurrency},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAccount(rawJSON(t, tt.raw)))
		})
	}
}

func TestNormalizeAccountGeneratesID(t *testing.T) {
	t.Parallel()

	a := NormalizeAccount(Raw{"name": "No identity"})
	b := NormalizeAccount(Raw{})

	assert.True(t, strings.HasPrefix(a.ID, "acc_"), a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, DefaultAccountName, b.Name)
}

func TestNormalizeTradeAliases(t *testing.T) {
	t.Parallel()

	got := NormalizeTrade(rawJSON(t, `{
		"id": 1,
		"account_id": "acc_1",
		"open_date": "2025-01-15",
		"closed_at": "2025-01-16",
		"symbol": "EURUSD",
		"side": "Long",
		"position_size_text": "1.5 Lots",
		"strategy": "Breakout",
		"risk": "700",
		"pnl": 1500,
		"r": 2.1,
		"note": "Good entry on the retest",
		"psychology": "Calm",
		"screenshot": "https://example.com/before.png",
		"screenshotAfter": "https://example.com/after.png"
	}`))

	want := journal.Trade{
		ID:               ptr(int64(1)),
		AccountID:        "acc_1",
		OpenDate:         "2025-01-15",
		CloseDate:        "2025-01-16",
		Pair:             "EURUSD",
		Direction:        "Long",
		PositionSize:     "1.5 Lots",
		Setup:            "Breakout",
		Risk:             ptr(700.0),
		PnL:              1500,
		R:                ptr(2.1),
		Notes:            "Good entry on the retest",
		Psychology:       "Calm",
		ScreenshotBefore: "https://example.com/before.png",
		ScreenshotAfter:  "https://example.com/after.png",
	}
	assert.Equal(t, want, got)
}

func TestNormalizeTradeCamelCase(t *testing.T) {
	t.Parallel()

	got := NormalizeTrade(rawJSON(t, `{"accountId": "acc_2", "openDate": "2025-02-01", "closeDate": "2025-02-03", "pair": "GBPUSD", "direction": "Short", "positionSize": "0.5"}`))

	assert.Equal(t, "acc_2", got.AccountID)
	assert.Equal(t, "2025-02-01", got.OpenDate)
	assert.Equal(t, "2025-02-03", got.CloseDate)
	assert.Equal(t, "Short", got.Direction)
	assert.Equal(t, "0.5", got.PositionSize)
}

func TestNormalizeTradeDefaults(t *testing.T) {
	t.Parallel()

	got := NormalizeTrade(Raw{})

	assert.Nil(t, got.ID)
	assert.Equal(t, UnknownAccountID, got.AccountID)
	assert.Equal(t, DefaultDirection, got.Direction)
	assert.Equal(t, "", got.OpenDate)
	assert.Equal(t, "", got.Pair)
	assert.Equal(t, 0.0, got.PnL, "missing pnl is zero")
	assert.Nil(t, got.Risk, "missing risk stays unknown")
	assert.Nil(t, got.R)
}

func TestNormalizeTradeRiskVersusPnL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		wantRisk *float64
		wantPnL  float64
		wantR    *float64
	}{
		{name: "no risk no pnl", raw: `{}`, wantRisk: nil, wantPnL: 0, wantR: nil},
		{name: "zero risk is kept", raw: `{"risk": 0, "pnl": 50}`, wantRisk: ptr(0.0), wantPnL: 50, wantR: nil},
		{name: "r derived from risk", raw: `{"risk": 200, "pnl": 500}`, wantRisk: ptr(200.0), wantPnL: 500, wantR: ptr(2.5)},
		{name: "explicit r wins", raw: `{"risk": 200, "pnl": 500, "r": 3}`, wantRisk: ptr(200.0), wantPnL: 500, wantR: ptr(3.0)},
		{name: "unparseable pnl", raw: `{"pnl": "lots"}`, wantRisk: nil, wantPnL: 0, wantR: nil},
		{name: "unparseable risk", raw: `{"risk": "?", "pnl": 10}`, wantRisk: nil, wantPnL: 10, wantR: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTrade(rawJSON(t, tt.raw))
			assert.Equal(t, tt.wantRisk, got.Risk)
			assert.Equal(t, tt.wantPnL, got.PnL)
			assert.Equal(t, tt.wantR, got.R)
		})
	}
}

func TestNormalizeMacroEvent(t *testing.T) {
	t.Parallel()

	got := NormalizeMacroEvent(rawJSON(t, `{"id": 2, "date": "2025-01-15", "event": "Non-Farm Employment Change (NFP)", "category": "Employment", "actual": 245000, "forecast": "200000", "previous": 227000, "impact": "High"}`))
	assert.Equal(t, journal.MacroEvent{
		ID:       ptr(int64(2)),
		Date:     "2025-01-15",
		Event:    "Non-Farm Employment Change (NFP)",
		Category: journal.CategoryEmployment,
		Actual:   245000,
		Forecast: 200000,
		Previous: ptr(227000.0),
		Impact:   journal.ImpactHigh,
	}, got)
}

func TestNormalizeMacroEventDefaults(t *testing.T) {
	t.Parallel()

	got := NormalizeMacroEvent(rawJSON(t, `{"event_date": "2025-03-01", "title": "PMI", "actual": "n/a"}`))

	assert.Nil(t, got.ID)
	assert.Equal(t, "2025-03-01", got.Date)
	assert.Equal(t, "PMI", got.Event)
	assert.Equal(t, journal.CategoryOther, got.Category)
	assert.Equal(t, 0.0, got.Actual)
	assert.Equal(t, 0.0, got.Forecast)
	assert.Nil(t, got.Previous)
	assert.Equal(t, journal.ImpactMedium, got.Impact)
}

func TestParseCategoryAndImpact(t *testing.T) {
	t.Parallel()

	assert.Equal(t, journal.CategoryCentralBank, parseCategory("Central Bank"))
	assert.Equal(t, journal.CategoryCentralBank, parseCategory("central_bank"))
	assert.Equal(t, journal.CategoryInflation, parseCategory("INFLATION"))
	assert.Equal(t, journal.CategoryOther, parseCategory("Weather"))
	assert.Equal(t, journal.CategoryOther, parseCategory(""))

	assert.Equal(t, journal.ImpactLow, parseImpact("low"))
	assert.Equal(t, journal.ImpactMedium, parseImpact("Extreme"))
}

func TestNormalizePlan(t *testing.T) {
	t.Parallel()

	got := NormalizePlan(rawJSON(t, `{
		"dailyRoutine": [
			{"id": 1, "text": "Check the economic calendar", "done": false},
			{"id": 2, "text": "Review open positions", "done": true},
			"Scan the majors (H4/D1)",
			{"text": ""}
		],
		"rules": ["Max risk per trade: 1%", "", null, "Minimum R:R of 1:2"],
		"goals": "5% monthly growth"
	}`))

	assert.Equal(t, journal.Plan{
		DailyRoutine: []journal.RoutineItem{
			{ID: 1, Text: "Check the economic calendar"},
			{ID: 2, Text: "Review open positions", Done: true},
			{ID: 3, Text: "Scan the majors (H4/D1)"},
		},
		Rules: []string{"Max risk per trade: 1%", "Minimum R:R of 1:2"},
		Goals: "5% monthly growth",
	}, got)
}

func TestNormalizePlanSerializedColumns(t *testing.T) {
	t.Parallel()

	got := NormalizePlan(rawJSON(t, `{
		"daily_routine": "[{\"id\":7,\"text\":\"Journal\",\"done\":true}]",
		"rules": "[\"No FOMO after a loss\"]"
	}`))

	assert.Equal(t, []journal.RoutineItem{{ID: 7, Text: "Journal", Done: true}}, got.DailyRoutine)
	assert.Equal(t, []string{"No FOMO after a loss"}, got.Rules)
	assert.Equal(t, "", got.Goals)
}

func TestNormalizePlanEmpty(t *testing.T) {
	t.Parallel()

	got := NormalizePlan(Raw{})
	assert.NotNil(t, got.DailyRoutine)
	assert.NotNil(t, got.Rules)
	assert.Empty(t, got.DailyRoutine)
	assert.Empty(t, got.Rules)
}
