package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// derivedEntryTypes is the settlement decision table. It maps the source
// (kind, category) pair to the entry type of the derived cash entry. A pair
// that is absent has no cash effect: an advance on an asset purchase is
// assumed already reflected by the asset's own cash entry.
var derivedEntryTypes = map[EntryType]map[Category]EntryType{
	EntryTypeCredit: {
		CategorySales:  EntryTypeCashInflow,
		CategoryCOGS:   EntryTypeCashOutflow,
		CategoryOpex:   EntryTypeCashOutflow,
		CategoryAssets: EntryTypeCashOutflow,
	},
	EntryTypeAdvance: {
		CategorySales: EntryTypeCashOutflow,
		CategoryCOGS:  EntryTypeCashOutflow,
		CategoryOpex:  EntryTypeCashOutflow,
	},
}

// DerivedEntryType resolves the decision table for one (kind, category) pair.
// The second return value is false when settlement of the pair is a no-op.
func DerivedEntryType(kind EntryType, category Category) (EntryType, bool, error) {
	if kind != EntryTypeCredit && kind != EntryTypeAdvance {
		return "", false, ErrInvalidEntryKind
	}

	derived, ok := derivedEntryTypes[kind][category]

	return derived, ok, nil
}

// SettlementNote builds the note attached to a derived entry, referencing the
// source entry it realizes.
func SettlementNote(kind EntryType, sourceID string) string {
	return fmt.Sprintf("Settlement of %s %s", strings.ToLower(string(kind)), sourceID)
}

// Settlement describes the outcome of settling a source entry: the derived
// cash entry to insert (nil when the decision table yields no cash effect)
// and the settlement date to stamp on the source.
type Settlement struct {
	SettledAt time.Time
	Derived   *Entry
}

// ResolveSettlement decides what settling source with the given amount and
// date produces. It rejects non-settleable kinds, already settled sources,
// and non-positive amounts before anything else, and performs no I/O: the
// derived entry it returns carries no ID or audit timestamps.
func ResolveSettlement(source *Entry, amount decimal.Decimal, settledAt time.Time) (*Settlement, error) {
	if !source.Settleable() {
		return nil, ErrInvalidEntryKind
	}

	if source.Settled {
		return nil, ErrAlreadySettled
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	derivedType, ok, err := DerivedEntryType(source.Type, source.Category)
	if err != nil {
		return nil, err
	}

	s := &Settlement{SettledAt: settledAt}
	if !ok {
		return s, nil
	}

	s.Derived = &Entry{
		UserID:        source.UserID,
		Type:          derivedType,
		Category:      source.Category,
		PaymentMethod: source.PaymentMethod,
		Amount:        amount,
		EntryDate:     settledAt,
		Notes:         SettlementNote(source.Type, source.ID),
	}

	return s, nil
}
