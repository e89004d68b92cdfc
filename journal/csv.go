package journal

import (
	"encoding/csv"
	"io"
	"strconv"
)

var tradesCSVHeader = []string{
	"id", "account_id", "open_date", "close_date", "pair", "direction",
	"position_size", "setup", "risk", "pnl", "r", "notes", "psychology",
	"screenshot_before", "screenshot_after",
}

// WriteTradesCSV writes trades with a header row. Null numeric columns are
// written as empty cells.
func WriteTradesCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tradesCSVHeader); err != nil {
		return err
	}

	for _, t := range trades {
		id := ""
		if t.ID != nil {
			id = strconv.FormatInt(*t.ID, 10)
		}
		err := cw.Write([]string{
			id,
			t.AccountID,
			t.OpenDate,
			t.CloseDate,
			t.Pair,
			t.Direction,
			t.PositionSize,
			t.Setup,
			optCell(t.Risk),
			f(t.PnL),
			optCell(t.R),
			t.Notes,
			t.Psychology,
			t.ScreenshotBefore,
			t.ScreenshotAfter,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func optCell(x *float64) string {
	if x == nil {
		return ""
	}
	return f(*x)
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
