package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDerivedEntryType(t *testing.T) {
	t.Parallel()

	type outcome struct {
		derived EntryType
		hasCash bool
	}

	// Every (kind, category) pair the table accepts.
	table := map[EntryType]map[Category]outcome{
		EntryTypeCredit: {
			CategorySales:  {EntryTypeCashInflow, true},
			CategoryCOGS:   {EntryTypeCashOutflow, true},
			CategoryOpex:   {EntryTypeCashOutflow, true},
			CategoryAssets: {EntryTypeCashOutflow, true},
		},
		EntryTypeAdvance: {
			CategorySales:  {EntryTypeCashOutflow, true},
			CategoryCOGS:   {EntryTypeCashOutflow, true},
			CategoryOpex:   {EntryTypeCashOutflow, true},
			CategoryAssets: {"", false},
		},
	}

	for kind, byCategory := range table {
		for category, want := range byCategory {
			derived, ok, err := DerivedEntryType(kind, category)
			if err != nil {
				t.Fatalf("DerivedEntryType(%q, %q): unexpected error %v", kind, category, err)
			}
			if ok != want.hasCash {
				t.Fatalf("DerivedEntryType(%q, %q): cash effect = %v, want %v", kind, category, ok, want.hasCash)
			}
			if derived != want.derived {
				t.Fatalf("DerivedEntryType(%q, %q) = %q, want %q", kind, category, derived, want.derived)
			}
		}
	}

	for _, kind := range []EntryType{EntryTypeCashInflow, EntryTypeCashOutflow, "Refund"} {
		for _, category := range Categories() {
			if _, _, err := DerivedEntryType(kind, category); !errors.Is(err, ErrInvalidEntryKind) {
				t.Fatalf("DerivedEntryType(%q, %q): expected ErrInvalidEntryKind, got %v", kind, category, err)
			}
		}
	}
}

func TestSettlementNote(t *testing.T) {
	t.Parallel()

	if got := SettlementNote(EntryTypeCredit, "e-42"); got != "Settlement of credit e-42" {
		t.Fatalf("unexpected note %q", got)
	}

	if got := SettlementNote(EntryTypeAdvance, "e-7"); got != "Settlement of advance e-7" {
		t.Fatalf("unexpected note %q", got)
	}
}

func TestResolveSettlement(t *testing.T) {
	t.Parallel()

	settledAt := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	source := func(kind EntryType, category Category) *Entry {
		return &Entry{
			ID:            "src-1",
			UserID:        "owner-1",
			Type:          kind,
			Category:      category,
			PaymentMethod: PaymentMethodNone,
			Amount:        decimal.NewFromInt(250),
			EntryDate:     time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("credit sale derives cash inflow", func(t *testing.T) {
		s, err := ResolveSettlement(source(EntryTypeCredit, CategorySales), decimal.NewFromInt(250), settledAt)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.Derived == nil {
			t.Fatal("expected a derived entry")
		}
		if s.Derived.Type != EntryTypeCashInflow {
			t.Fatalf("derived type = %q, want %q", s.Derived.Type, EntryTypeCashInflow)
		}
		if s.Derived.Category != CategorySales {
			t.Fatalf("derived category = %q, want %q", s.Derived.Category, CategorySales)
		}
		if !s.Derived.Amount.Equal(decimal.NewFromInt(250)) {
			t.Fatalf("derived amount = %s, want 250", s.Derived.Amount)
		}
		if !s.Derived.EntryDate.Equal(settledAt) {
			t.Fatalf("derived entry date = %v, want %v", s.Derived.EntryDate, settledAt)
		}
		if s.Derived.Notes != "Settlement of credit src-1" {
			t.Fatalf("derived notes = %q", s.Derived.Notes)
		}
		if s.Derived.ID != "" {
			t.Fatalf("derived entry should carry no ID, got %q", s.Derived.ID)
		}
	})

	t.Run("credit purchase derives cash outflow", func(t *testing.T) {
		s, err := ResolveSettlement(source(EntryTypeCredit, CategoryCOGS), decimal.NewFromInt(100), settledAt)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.Derived == nil || s.Derived.Type != EntryTypeCashOutflow {
			t.Fatalf("expected derived cash outflow, got %+v", s.Derived)
		}
	})

	t.Run("advance on assets has no cash effect", func(t *testing.T) {
		s, err := ResolveSettlement(source(EntryTypeAdvance, CategoryAssets), decimal.NewFromInt(100), settledAt)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.Derived != nil {
			t.Fatalf("expected no derived entry, got %+v", s.Derived)
		}
		if !s.SettledAt.Equal(settledAt) {
			t.Fatalf("settled at = %v, want %v", s.SettledAt, settledAt)
		}
	})

	t.Run("partial amount overrides source amount", func(t *testing.T) {
		s, err := ResolveSettlement(source(EntryTypeCredit, CategorySales), decimal.NewFromInt(60), settledAt)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !s.Derived.Amount.Equal(decimal.NewFromInt(60)) {
			t.Fatalf("derived amount = %s, want 60", s.Derived.Amount)
		}
	})

	t.Run("cash entry rejected", func(t *testing.T) {
		_, err := ResolveSettlement(source(EntryTypeCashInflow, CategorySales), decimal.NewFromInt(100), settledAt)
		if !errors.Is(err, ErrInvalidEntryKind) {
			t.Fatalf("expected ErrInvalidEntryKind, got %v", err)
		}
	})

	t.Run("already settled rejected", func(t *testing.T) {
		src := source(EntryTypeCredit, CategorySales)
		src.Settled = true
		_, err := ResolveSettlement(src, decimal.NewFromInt(100), settledAt)
		if !errors.Is(err, ErrAlreadySettled) {
			t.Fatalf("expected ErrAlreadySettled, got %v", err)
		}
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := ResolveSettlement(source(EntryTypeCredit, CategorySales), decimal.Zero, settledAt)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("kind check precedes settled check", func(t *testing.T) {
		src := source(EntryTypeCashOutflow, CategoryOpex)
		src.Settled = true
		_, err := ResolveSettlement(src, decimal.Zero, settledAt)
		if !errors.Is(err, ErrInvalidEntryKind) {
			t.Fatalf("expected ErrInvalidEntryKind to win, got %v", err)
		}
	})

	t.Run("settled check precedes amount check", func(t *testing.T) {
		src := source(EntryTypeCredit, CategorySales)
		src.Settled = true
		_, err := ResolveSettlement(src, decimal.Zero, settledAt)
		if !errors.Is(err, ErrAlreadySettled) {
			t.Fatalf("expected ErrAlreadySettled to win, got %v", err)
		}
	})

	t.Run("source is not mutated", func(t *testing.T) {
		src := source(EntryTypeCredit, CategorySales)
		if _, err := ResolveSettlement(src, decimal.NewFromInt(10), settledAt); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if src.Settled || src.SettledAt != nil {
			t.Fatal("ResolveSettlement must not mutate the source")
		}
	})
}
