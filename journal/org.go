package journal

import (
	"fmt"
	"strings"
)

// FormatTradeOrg renders a Trade as an Org-mode block suitable for pasting into a journal.
// Structured facts go in a PROPERTIES drawer; the free-form notes and psychology
// become narrative sections.
func FormatTradeOrg(t Trade) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Trade: %s %s (%s)\n", t.Pair, t.Direction, tradeID(t))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", tradeID(t))
	fmt.Fprintf(&b, ":ACCOUNT: %s\n", t.AccountID)
	fmt.Fprintf(&b, ":PAIR: %s\n", t.Pair)
	fmt.Fprintf(&b, ":DIRECTION: %s\n", t.Direction)
	fmt.Fprintf(&b, ":OPEN_DATE: %s\n", t.OpenDate)
	fmt.Fprintf(&b, ":CLOSE_DATE: %s\n", orDash(t.CloseDate))
	fmt.Fprintf(&b, ":POSITION_SIZE: %s\n", orDash(t.PositionSize))
	fmt.Fprintf(&b, ":SETUP: %s\n", orDash(t.Setup))
	fmt.Fprintf(&b, ":RISK: %s\n", optFloat(t.Risk))
	fmt.Fprintf(&b, ":PNL: %.2f\n", t.PnL)
	fmt.Fprintf(&b, ":R: %s\n", optFloat(t.R))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "*** Psychology\n- %s\n\n", t.Psychology)
	fmt.Fprintf(&b, "*** Notes\n- %s\n", t.Notes)

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func tradeID(t Trade) string {
	if t.ID == nil {
		return "new"
	}
	return fmt.Sprintf("%d", *t.ID)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func optFloat(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *f)
}
