package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/SkouffyBates/BatesTrading-Vision/journal"
)

// Key is the duplicate-detection key of a canonical record: either
// ByIdentity or BySignature.
type Key interface {
	fmt.Stringer
	isKey()
}

// ByIdentity matches a stored row by primary key alone.
type ByIdentity struct {
	ID any
}

// BySignature matches a stored row by a tuple of fields, for records that
// carry no identity.
type BySignature struct {
	Fields journal.Signature
}

func (ByIdentity) isKey()  {}
func (BySignature) isKey() {}

func (k ByIdentity) String() string {
	return fmt.Sprintf("id=%v", k.ID)
}

func (k BySignature) String() string {
	parts := make([]string, len(k.Fields))
	for i, f := range k.Fields {
		parts[i] = fmt.Sprintf("%s=%v", f.Column, f.Value)
	}
	return strings.Join(parts, ",")
}

// Accounts always carry an identity after normalization.
func AccountKey(a journal.Account) Key {
	return ByIdentity{ID: a.ID}
}

func TradeKey(t journal.Trade) Key {
	if t.ID != nil {
		return ByIdentity{ID: *t.ID}
	}
	return BySignature{Fields: journal.TradeSignature(t)}
}

func MacroEventKey(m journal.MacroEvent) Key {
	if m.ID != nil {
		return ByIdentity{ID: *m.ID}
	}
	return BySignature{Fields: journal.MacroEventSignature(m)}
}

// Lookup is the read side of the store the resolver needs.
type Lookup interface {
	ExistsByID(ctx context.Context, c journal.Collection, id any) (bool, error)
	ExistsBySignature(ctx context.Context, c journal.Collection, sig journal.Signature) (bool, error)
}

// Exists reports whether a record with key is already stored in c. A match
// means the record is skipped; stored rows are never updated.
func Exists(ctx context.Context, store Lookup, c journal.Collection, key Key) (bool, error) {
	switch k := key.(type) {
	case ByIdentity:
		return store.ExistsByID(ctx, c, k.ID)
	case BySignature:
		return store.ExistsBySignature(ctx, c, k.Fields)
	default:
		return false, fmt.Errorf("resolve %s: unsupported key %T", c, key)
	}
}
