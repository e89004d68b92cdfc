package migrate

import (
	"strings"

	"github.com/SkouffyBates/BatesTrading-Vision/journal"
	"github.com/SkouffyBates/BatesTrading-Vision/pkg/id"
)

const (
	DefaultAccountName = "Account"
	DefaultCurrency    = "$"
	DefaultDirection   = "LONG"
	UnknownAccountID   = "unknown"
)

// newAccountID is swapped out in tests.
var newAccountID = func() string { return id.Prefixed("acc_") }

// NormalizeAccount maps a legacy account onto the canonical shape. It never
// fails: missing or unparseable fields take their defaults.
func NormalizeAccount(raw Raw) journal.Account {
	acctID := raw.str("", "id", "_id", "uuid")
	if acctID == "" {
		acctID = newAccountID()
	}
	return journal.Account{
		ID:       acctID,
		Name:     raw.str(DefaultAccountName, "name", "label"),
		Balance:  raw.floatOr(0, "balance", "amount"),
		Currency: raw.str(DefaultCurrency, "currency", "currency_code"),
	}
}

// NormalizeTrade maps a legacy trade onto the canonical shape. pnl defaults
// to zero while risk and r stay nil when absent, so that "no risk recorded"
// is not confused with "zero risk".
func NormalizeTrade(raw Raw) journal.Trade {
	t := journal.Trade{
		ID:               raw.idOrNil("id"),
		AccountID:        raw.str(UnknownAccountID, "account_id", "accountId", "account"),
		OpenDate:         raw.str("", "open_date", "openDate", "date"),
		CloseDate:        raw.str("", "close_date", "closeDate", "closed_at"),
		Pair:             raw.str("", "pair", "symbol"),
		Direction:        raw.str(DefaultDirection, "direction", "side"),
		PositionSize:     raw.str("", "position_size", "positionSize", "position_size_text"),
		Setup:            raw.str("", "setup", "strategy"),
		Risk:             raw.floatOrNil("risk"),
		PnL:              raw.floatOr(0, "pnl"),
		R:                raw.floatOrNil("r"),
		Notes:            raw.str("", "notes", "note"),
		Psychology:       raw.str("", "psychology"),
		ScreenshotBefore: raw.str("", "screenshot_before", "screenshotBefore", "screenshot"),
		ScreenshotAfter:  raw.str("", "screenshot_after", "screenshotAfter"),
	}

	if t.R == nil && t.Risk != nil && *t.Risk > 0 {
		r := t.PnL / *t.Risk
		t.R = &r
	}
	return t
}

// NormalizeMacroEvent maps a legacy macro event onto the canonical shape.
// actual and forecast default to zero, previous stays nil when absent.
func NormalizeMacroEvent(raw Raw) journal.MacroEvent {
	return journal.MacroEvent{
		ID:       raw.idOrNil("id"),
		Date:     raw.str("", "date", "event_date"),
		Event:    raw.str("", "event", "title"),
		Category: parseCategory(raw.str("", "category", "type")),
		Actual:   raw.floatOr(0, "actual"),
		Forecast: raw.floatOr(0, "forecast"),
		Previous: raw.floatOrNil("previous"),
		Impact:   parseImpact(raw.str("", "impact")),
	}
}

// NormalizePlan maps a legacy trading plan onto the canonical shape.
// Routine entries may be objects or bare strings; list fields may also
// arrive as JSON text.
func NormalizePlan(raw Raw) journal.Plan {
	p := journal.Plan{
		DailyRoutine: []journal.RoutineItem{},
		Rules:        []string{},
		Goals:        raw.str("", "goals", "goal"),
	}

	if v, ok := raw.lookup("dailyRoutine", "daily_routine", "routine"); ok {
		for i, item := range toList(v) {
			next := int64(i + 1)
			switch x := item.(type) {
			case map[string]any:
				r := Raw(x)
				text := r.str("", "text", "label", "title")
				if text == "" {
					continue
				}
				ri := journal.RoutineItem{ID: next, Text: text}
				if rid := r.idOrNil("id"); rid != nil {
					ri.ID = *rid
				}
				if done, ok := r.lookup("done", "checked"); ok {
					ri.Done = toBool(done)
				}
				p.DailyRoutine = append(p.DailyRoutine, ri)
			default:
				if s, ok := toString(x); ok && s != "" {
					p.DailyRoutine = append(p.DailyRoutine, journal.RoutineItem{ID: next, Text: s})
				}
			}
		}
	}

	if v, ok := raw.lookup("rules"); ok {
		for _, rule := range toList(v) {
			if rule == nil {
				continue
			}
			if s, ok := toString(rule); ok && s != "" {
				p.Rules = append(p.Rules, s)
			}
		}
	}

	return p
}

func canonical(s string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(r.Replace(s))
}

func parseCategory(s string) journal.Category {
	want := canonical(s)
	for _, c := range journal.Categories {
		if canonical(string(c)) == want {
			return c
		}
	}
	return journal.CategoryOther
}

func parseImpact(s string) journal.Impact {
	want := canonical(s)
	for _, i := range journal.Impacts {
		if canonical(string(i)) == want {
			return i
		}
	}
	return journal.ImpactMedium
}
