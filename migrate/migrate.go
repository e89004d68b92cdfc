// Package migrate reconciles legacy JSON journal data into the SQLite store.
//
// A run normalizes each legacy record, drops macro events older than the
// cutoff, skips records that already exist (by identity, or by signature
// when there is none) and inserts the rest, all in one transaction. Runs are
// independent and safe to repeat.
package migrate

import (
	"context"
	"fmt"
	"io"

	"github.com/SkouffyBates/BatesTrading-Vision/journal"
	"github.com/sirupsen/logrus"
)

// Result summarizes one migration run.
type Result struct {
	Accounts     Counts `json:"accounts"`
	Trades       Counts `json:"trades"`
	MacroEvents  Counts `json:"macroEvents"`
	PlanInserted bool   `json:"planInserted"`
}

// runTx is the transaction a run executes in.
type runTx interface {
	Store
	Commit() error
	Rollback() error
}

type Migrator struct {
	begin       func(ctx context.Context) (runTx, error)
	log         logrus.FieldLogger
	macroCutoff Cutoff
	tradeCutoff Cutoff
}

type Option func(*Migrator)

func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Migrator) { m.log = l }
}

// WithMacroCutoff replaces DefaultMacroCutoff. The zero Cutoff keeps every
// macro event.
func WithMacroCutoff(c Cutoff) Option {
	return func(m *Migrator) { m.macroCutoff = c }
}

// WithTradeCutoff drops trades opened before c. Disabled by default.
func WithTradeCutoff(c Cutoff) Option {
	return func(m *Migrator) { m.tradeCutoff = c }
}

func New(db *journal.SQLite, opts ...Option) *Migrator {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	m := &Migrator{
		begin: func(ctx context.Context) (runTx, error) {
			return db.Begin(ctx)
		},
		log:         quiet,
		macroCutoff: DefaultMacroCutoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Migrate imports p into the store in a single transaction. Duplicates and
// records the store rejects are counted as skipped; a storage failure
// returns an error and nothing from the run is kept.
func (m *Migrator) Migrate(ctx context.Context, p Payload) (Result, error) {
	var res Result
	if p.Empty() {
		return res, nil
	}

	tx, err := m.begin(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("migrate: %w", err)
	}
	defer tx.Rollback()

	if err := m.run(ctx, tx, p, &res); err != nil {
		return Result{}, fmt.Errorf("migrate: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Result{}, fmt.Errorf("migrate: %w", err)
	}

	m.log.WithFields(logrus.Fields{
		"accounts_inserted":     res.Accounts.Inserted,
		"accounts_skipped":      res.Accounts.Skipped,
		"trades_inserted":       res.Trades.Inserted,
		"trades_skipped":        res.Trades.Skipped,
		"macro_events_inserted": res.MacroEvents.Inserted,
		"macro_events_skipped":  res.MacroEvents.Skipped,
		"plan_inserted":         res.PlanInserted,
	}).Info("migration completed")
	return res, nil
}

// MigrateLegacyFolder loads dir with LoadLegacyFolder and migrates what it
// finds. It returns ErrNoLegacyData when there is nothing to import.
func (m *Migrator) MigrateLegacyFolder(ctx context.Context, dir string) (Result, error) {
	p, err := LoadLegacyFolder(dir, m.log)
	if err != nil {
		return Result{}, err
	}
	return m.Migrate(ctx, p)
}

// run walks the collections in a fixed order: accounts first so that trades
// can reference them, then trades, macro events and finally the plan.
func (m *Migrator) run(ctx context.Context, s Store, p Payload, res *Result) error {
	accounts := newBatch(s, journal.Accounts, &res.Accounts, m.log)
	for _, raw := range p.Accounts {
		a := NormalizeAccount(raw)
		err := accounts.apply(ctx, AccountKey(a), func() error {
			return s.InsertAccount(ctx, a)
		})
		if err != nil {
			return err
		}
	}

	trades := newBatch(s, journal.Trades, &res.Trades, m.log)
	for _, raw := range p.Trades {
		t := NormalizeTrade(raw)
		key := TradeKey(t)
		if m.tradeCutoff.Rejects(t.OpenDate) {
			trades.skip(key, "before cutoff "+string(m.tradeCutoff))
			continue
		}
		err := trades.apply(ctx, key, func() error {
			return s.InsertTrade(ctx, t)
		})
		if err != nil {
			return err
		}
	}

	events := newBatch(s, journal.MacroEvents, &res.MacroEvents, m.log)
	for _, raw := range p.MacroEvents {
		ev := NormalizeMacroEvent(raw)
		key := MacroEventKey(ev)
		if m.macroCutoff.Rejects(ev.Date) {
			events.skip(key, "before cutoff "+string(m.macroCutoff))
			continue
		}
		err := events.apply(ctx, key, func() error {
			return s.InsertMacroEvent(ctx, ev)
		})
		if err != nil {
			return err
		}
	}

	if p.Plan != nil {
		res.PlanInserted = m.replacePlan(ctx, s, NormalizePlan(p.Plan))
	}
	return nil
}

// replacePlan deletes the stored plan and inserts plan in its place. Both
// writes share a savepoint, so a failure keeps the previous plan and does
// not abort the run.
func (m *Migrator) replacePlan(ctx context.Context, s Store, plan journal.Plan) bool {
	err := s.Savepoint(ctx, "migrate_plan", func() error {
		if err := s.DeletePlan(ctx); err != nil {
			return err
		}
		return s.InsertPlan(ctx, plan)
	})
	if err != nil {
		m.log.WithError(err).Warn("trading plan not replaced")
		return false
	}
	return true
}
