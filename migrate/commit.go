package migrate

import (
	"context"
	"fmt"

	"github.com/SkouffyBates/BatesTrading-Vision/journal"
	"github.com/sirupsen/logrus"
)

// Store is every operation a migration run performs, all inside the run's
// transaction. *journal.Tx implements it.
type Store interface {
	Lookup
	InsertAccount(ctx context.Context, a journal.Account) error
	InsertTrade(ctx context.Context, t journal.Trade) error
	InsertMacroEvent(ctx context.Context, m journal.MacroEvent) error
	DeletePlan(ctx context.Context) error
	InsertPlan(ctx context.Context, p journal.Plan) error
	Savepoint(ctx context.Context, name string, fn func() error) error
}

// Counts tallies the outcome of every record of one collection. Each record
// lands in exactly one of the two.
type Counts struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

func (c Counts) Total() int {
	return c.Inserted + c.Skipped
}

// batch applies the records of one collection and keeps their counts.
type batch struct {
	store      Store
	collection journal.Collection
	counts     *Counts
	log        logrus.FieldLogger
}

func newBatch(store Store, c journal.Collection, counts *Counts, log logrus.FieldLogger) *batch {
	return &batch{
		store:      store,
		collection: c,
		counts:     counts,
		log:        log.WithField("collection", string(c)),
	}
}

func (b *batch) skip(key Key, reason string) {
	b.counts.Skipped++
	b.log.WithFields(logrus.Fields{
		"key":    key.String(),
		"reason": reason,
	}).Debug("record skipped")
}

// apply resolves key and, when the record is new, runs write under a
// savepoint. A write rejected because of the record itself is rolled back
// and counted as skipped. Lookup or storage failures are returned and must
// abort the run.
func (b *batch) apply(ctx context.Context, key Key, write func() error) error {
	exists, err := Exists(ctx, b.store, b.collection, key)
	if err != nil {
		return fmt.Errorf("resolve %s %s: %w", b.collection, key, err)
	}
	if exists {
		b.skip(key, "duplicate")
		return nil
	}

	err = b.store.Savepoint(ctx, "migrate_record", write)
	switch {
	case err == nil:
		b.counts.Inserted++
		return nil
	case journal.IsRecordError(err):
		b.skip(key, err.Error())
		return nil
	default:
		return fmt.Errorf("insert %s %s: %w", b.collection, key, err)
	}
}
