package journal

// Collection names one of the tables the migration engine writes to.
type Collection string

const (
	Accounts    Collection = "accounts"
	Trades      Collection = "trades"
	MacroEvents Collection = "macro_events"
	TradingPlan Collection = "trading_plan"
)

// Account is a trading account. ID is always set once a record reaches the store.
type Account struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// Trade is one journaled trade. A nil ID lets SQLite assign the rowid.
// Empty optional strings are stored as NULL.
type Trade struct {
	ID               *int64   `json:"id"`
	AccountID        string   `json:"accountId"`
	OpenDate         string   `json:"openDate"`
	CloseDate        string   `json:"closeDate,omitempty"`
	Pair             string   `json:"pair"`
	Direction        string   `json:"direction"`
	PositionSize     string   `json:"positionSize,omitempty"`
	Setup            string   `json:"setup,omitempty"`
	Risk             *float64 `json:"risk"`
	PnL              float64  `json:"pnl"`
	R                *float64 `json:"r"`
	Notes            string   `json:"notes,omitempty"`
	Psychology       string   `json:"psychology,omitempty"`
	ScreenshotBefore string   `json:"screenshotBefore,omitempty"`
	ScreenshotAfter  string   `json:"screenshotAfter,omitempty"`
}

type Category string

const (
	CategoryInflation   Category = "Inflation"
	CategoryEmployment  Category = "Employment"
	CategoryGrowth      Category = "Growth"
	CategoryConfidence  Category = "Confidence"
	CategoryCentralBank Category = "CentralBank"
	CategoryOther       Category = "Other"
)

// Categories lists every known macro-event category.
var Categories = []Category{
	CategoryInflation,
	CategoryEmployment,
	CategoryGrowth,
	CategoryConfidence,
	CategoryCentralBank,
	CategoryOther,
}

type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

var Impacts = []Impact{ImpactHigh, ImpactMedium, ImpactLow}

// MacroEvent is a released economic indicator reading.
type MacroEvent struct {
	ID       *int64   `json:"id"`
	Date     string   `json:"date"`
	Event    string   `json:"event"`
	Category Category `json:"category"`
	Actual   float64  `json:"actual"`
	Forecast float64  `json:"forecast"`
	Previous *float64 `json:"previous"`
	Impact   Impact   `json:"impact"`
}

type RoutineItem struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Plan is the singleton trading plan.
type Plan struct {
	DailyRoutine []RoutineItem `json:"dailyRoutine"`
	Rules        []string      `json:"rules"`
	Goals        string        `json:"goals"`
}

// Field is one column/value pair of a Signature.
type Field struct {
	Column string
	Value  any
}

// Signature is an ordered set of columns used as a fallback uniqueness key
// for records without an identity.
type Signature []Field

// TradeSignature returns the (account_id, open_date, pair, direction) key of t.
func TradeSignature(t Trade) Signature {
	return Signature{
		{"account_id", t.AccountID},
		{"open_date", t.OpenDate},
		{"pair", t.Pair},
		{"direction", t.Direction},
	}
}

// MacroEventSignature returns the (date, event) key of m.
func MacroEventSignature(m MacroEvent) Signature {
	return Signature{
		{"date", m.Date},
		{"event", m.Event},
	}
}

// signatureColumns restricts which columns may appear in a Signature
// since column names are interpolated into SQL.
var signatureColumns = map[Collection]map[string]bool{
	Trades: {
		"account_id": true,
		"open_date":  true,
		"pair":       true,
		"direction":  true,
	},
	MacroEvents: {
		"date":  true,
		"event": true,
	},
}
