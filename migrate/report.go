package migrate

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"
)

// String renders the one-line summary shown to the user after a run.
func (r Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d accounts, %d trades, %d macro events imported",
		r.Accounts.Inserted, r.Trades.Inserted, r.MacroEvents.Inserted)
	if skipped := r.Accounts.Skipped + r.Trades.Skipped + r.MacroEvents.Skipped; skipped > 0 {
		fmt.Fprintf(&b, " (%d skipped)", skipped)
	}
	if r.PlanInserted {
		b.WriteString(", trading plan replaced")
	}
	return b.String()
}

// Report is the Org-mode record of one run, written next to the journal.
type Report struct {
	RunID       string
	Source      string
	Database    string
	MacroCutoff string
	TradeCutoff string
	Started     time.Time
	Finished    time.Time
	Result      Result
}

var reportFuncs = template.FuncMap{
	"orNone": func(s string) string {
		if s == "" {
			return "(none)"
		}
		return s
	},
	"stamp": func(t time.Time) string {
		if t.IsZero() {
			t = time.Now()
		}
		return t.Format("2006-01-02 Mon 15:04")
	},
}

var reportTemplate = template.Must(template.New("report").Funcs(reportFuncs).Parse(ReportOrgTemplate))

// WriteOrg renders the report as an Org-mode entry.
func (r Report) WriteOrg(w io.Writer) error {
	return reportTemplate.Execute(w, r)
}

const ReportOrgTemplate = `* MIGRATION: {{orNone .Source}}
:PROPERTIES:
:RUN_ID:        {{orNone .RunID}}
:DATABASE:      {{orNone .Database}}
:MACRO_CUTOFF:  {{orNone .MacroCutoff}}
:TRADE_CUTOFF:  {{orNone .TradeCutoff}}
:STARTED:       [{{stamp .Started}}]
:FINISHED:      [{{stamp .Finished}}]
:END:

** Summary
{{.Result}}

** Collections
| Collection   | Inserted | Skipped |
|--------------+----------+---------|
| Accounts     | {{.Result.Accounts.Inserted}} | {{.Result.Accounts.Skipped}} |
| Trades       | {{.Result.Trades.Inserted}} | {{.Result.Trades.Skipped}} |
| Macro events | {{.Result.MacroEvents.Inserted}} | {{.Result.MacroEvents.Skipped}} |

** Trading plan
{{- if .Result.PlanInserted }}
- [X] replaced
{{- else }}
- [ ] not replaced
{{- end }}
`
