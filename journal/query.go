package journal

import (
	"context"
	"database/sql"
	"fmt"
)

const tradeColumns = `id, account_id, open_date, close_date, pair, direction,
	position_size, setup, risk, pnl, r, notes, psychology,
	screenshot_before, screenshot_after`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (Trade, error) {
	var (
		rec          Trade
		id           int64
		closeDate    sql.NullString
		positionSize sql.NullString
		setup        sql.NullString
		notes        sql.NullString
		psychology   sql.NullString
		shotBefore   sql.NullString
		shotAfter    sql.NullString
		risk         sql.NullFloat64
		r            sql.NullFloat64
	)
	err := s.Scan(
		&id,
		&rec.AccountID,
		&rec.OpenDate,
		&closeDate,
		&rec.Pair,
		&rec.Direction,
		&positionSize,
		&setup,
		&risk,
		&rec.PnL,
		&r,
		&notes,
		&psychology,
		&shotBefore,
		&shotAfter,
	)
	if err != nil {
		return Trade{}, err
	}

	rec.ID = &id
	rec.CloseDate = closeDate.String
	rec.PositionSize = positionSize.String
	rec.Setup = setup.String
	rec.Notes = notes.String
	rec.Psychology = psychology.String
	rec.ScreenshotBefore = shotBefore.String
	rec.ScreenshotAfter = shotAfter.String
	if risk.Valid {
		rec.Risk = &risk.Float64
	}
	if r.Valid {
		rec.R = &r.Float64
	}
	return rec, nil
}

// GetTrade returns a single trade by ID.
func (j *SQLite) GetTrade(ctx context.Context, id int64) (Trade, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE id = ?`, id)
	rec, err := scanTrade(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Trade{}, fmt.Errorf("trade %d: %w", id, ErrNotFound)
		}
		return Trade{}, err
	}
	return rec, nil
}

// ListTrades returns every trade, most recently opened first.
func (j *SQLite) ListTrades(ctx context.Context) ([]Trade, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT `+tradeColumns+` FROM trades ORDER BY open_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, name, balance, currency
		FROM accounts
		ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Balance, &a.Currency); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMacroEvents returns every macro event, most recent first.
func (j *SQLite) ListMacroEvents(ctx context.Context) ([]MacroEvent, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, date, event, category, actual, forecast, previous, impact
		FROM macro_events
		ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MacroEvent
	for rows.Next() {
		var (
			m        MacroEvent
			id       int64
			category string
			impact   string
			previous sql.NullFloat64
		)
		if err := rows.Scan(&id, &m.Date, &m.Event, &category, &m.Actual, &m.Forecast, &previous, &impact); err != nil {
			return nil, err
		}
		m.ID = &id
		m.Category = Category(category)
		m.Impact = Impact(impact)
		if previous.Valid {
			m.Previous = &previous.Float64
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPlan returns the current trading plan.
func (j *SQLite) GetPlan(ctx context.Context) (Plan, error) {
	var (
		routine, rules string
		goals          sql.NullString
	)
	err := j.db.QueryRowContext(ctx, `
		SELECT daily_routine, rules, goals
		FROM trading_plan
		ORDER BY id DESC LIMIT 1`).Scan(&routine, &rules, &goals)
	if err != nil {
		if err == sql.ErrNoRows {
			return Plan{}, fmt.Errorf("trading plan: %w", ErrNotFound)
		}
		return Plan{}, err
	}
	return decodePlan(routine, rules, goals)
}

// Count returns the number of rows in c.
func (j *SQLite) Count(ctx context.Context, c Collection) (int, error) {
	switch c {
	case Accounts, Trades, MacroEvents, TradingPlan:
	default:
		return 0, fmt.Errorf("count: unsupported collection %q", c)
	}
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+string(c)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// PruneMacroEventsBefore deletes macro events dated strictly before date
// (YYYY-MM-DD) and returns how many rows were removed.
func (j *SQLite) PruneMacroEventsBefore(ctx context.Context, date string) (int64, error) {
	res, err := j.db.ExecContext(ctx, `DELETE FROM macro_events WHERE date < ?`, date)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PruneTradesBefore deletes trades opened strictly before date.
func (j *SQLite) PruneTradesBefore(ctx context.Context, date string) (int64, error) {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE open_date < ?`, date)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
