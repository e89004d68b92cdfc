package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// Tx exposes the data-access operations the migration engine needs, all
// bound to one transaction.
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Rollback aborts the transaction. Calling it after Commit is a no-op.
func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}

// ExistsByID reports whether c already holds a row with the given primary key.
func (t *Tx) ExistsByID(ctx context.Context, c Collection, id any) (bool, error) {
	switch c {
	case Accounts, Trades, MacroEvents:
	default:
		return false, fmt.Errorf("exists by id: unsupported collection %q", c)
	}
	return t.exists(ctx, `SELECT 1 FROM `+string(c)+` WHERE id = ? LIMIT 1`, id)
}

// ExistsBySignature reports whether c already holds a row matching every
// field of sig.
func (t *Tx) ExistsBySignature(ctx context.Context, c Collection, sig Signature) (bool, error) {
	allowed, ok := signatureColumns[c]
	if !ok {
		return false, fmt.Errorf("exists by signature: unsupported collection %q", c)
	}
	if len(sig) == 0 {
		return false, fmt.Errorf("exists by signature: empty signature for %q", c)
	}

	where := make([]string, 0, len(sig))
	args := make([]any, 0, len(sig))
	for _, f := range sig {
		if !allowed[f.Column] {
			return false, fmt.Errorf("exists by signature: column %q not allowed for %q", f.Column, c)
		}
		where = append(where, f.Column+" = ?")
		args = append(args, f.Value)
	}

	q := `SELECT 1 FROM ` + string(c) + ` WHERE ` + strings.Join(where, " AND ") + ` LIMIT 1`
	return t.exists(ctx, q, args...)
}

func (t *Tx) exists(ctx context.Context, q string, args ...any) (bool, error) {
	var one int
	err := t.tx.QueryRowContext(ctx, q, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (t *Tx) InsertAccount(ctx context.Context, a Account) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO accounts (id, name, balance, currency)
		VALUES (?, ?, ?, ?)`,
		a.ID, a.Name, a.Balance, a.Currency,
	)
	return err
}

func (t *Tx) InsertTrade(ctx context.Context, tr Trade) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO trades (
			id, account_id, open_date, close_date, pair, direction,
			position_size, setup, risk, pnl, r, notes, psychology,
			screenshot_before, screenshot_after
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullInt(tr.ID), tr.AccountID, nullString(tr.OpenDate), nullString(tr.CloseDate),
		tr.Pair, tr.Direction, nullString(tr.PositionSize), nullString(tr.Setup),
		nullFloat(tr.Risk), tr.PnL, nullFloat(tr.R), nullString(tr.Notes),
		nullString(tr.Psychology), nullString(tr.ScreenshotBefore), nullString(tr.ScreenshotAfter),
	)
	return err
}

func (t *Tx) InsertMacroEvent(ctx context.Context, m MacroEvent) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO macro_events (id, date, event, category, actual, forecast, previous, impact)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		nullInt(m.ID), nullString(m.Date), m.Event, string(m.Category),
		m.Actual, m.Forecast, nullFloat(m.Previous), string(m.Impact),
	)
	return err
}

// DeletePlan removes every stored plan row.
func (t *Tx) DeletePlan(ctx context.Context) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM trading_plan`)
	return err
}

func (t *Tx) InsertPlan(ctx context.Context, p Plan) error {
	routine, rules, err := encodePlan(p)
	if err != nil {
		return err
	}
	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO trading_plan (daily_routine, rules, goals)
		VALUES (?, ?, ?)`,
		routine, rules, nullString(p.Goals),
	)
	return err
}

// Savepoint runs fn inside a named savepoint. If fn fails, its writes are
// rolled back and the error from fn is returned; earlier writes in the
// transaction are kept.
func (t *Tx) Savepoint(ctx context.Context, name string, fn func() error) error {
	if _, err := t.tx.ExecContext(ctx, `SAVEPOINT `+name); err != nil {
		return fmt.Errorf("savepoint %s: %w", name, err)
	}

	if ferr := fn(); ferr != nil {
		if _, err := t.tx.ExecContext(ctx, `ROLLBACK TO `+name); err != nil {
			return fmt.Errorf("rollback to %s: %w", name, err)
		}
		if _, err := t.tx.ExecContext(ctx, `RELEASE `+name); err != nil {
			return fmt.Errorf("release %s: %w", name, err)
		}
		return ferr
	}

	if _, err := t.tx.ExecContext(ctx, `RELEASE `+name); err != nil {
		return fmt.Errorf("release %s: %w", name, err)
	}
	return nil
}

// encodePlan serializes the JSON-text columns of the plan. Nil slices are
// written as empty arrays so that decodePlan is symmetric.
func encodePlan(p Plan) (routine, rules string, err error) {
	items := p.DailyRoutine
	if items == nil {
		items = []RoutineItem{}
	}
	rs := p.Rules
	if rs == nil {
		rs = []string{}
	}

	rb, err := json.Marshal(items)
	if err != nil {
		return "", "", fmt.Errorf("encode daily_routine: %w", err)
	}
	sb, err := json.Marshal(rs)
	if err != nil {
		return "", "", fmt.Errorf("encode rules: %w", err)
	}
	return string(rb), string(sb), nil
}

func decodePlan(routine, rules string, goals sql.NullString) (Plan, error) {
	p := Plan{Goals: goals.String}
	if err := json.Unmarshal([]byte(routine), &p.DailyRoutine); err != nil {
		return Plan{}, fmt.Errorf("decode daily_routine: %w", err)
	}
	if err := json.Unmarshal([]byte(rules), &p.Rules); err != nil {
		return Plan{}, fmt.Errorf("decode rules: %w", err)
	}
	return p, nil
}
