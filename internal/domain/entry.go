package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies the cash effect of an entry.
type EntryType string

const (
	EntryTypeCashInflow  EntryType = "Cash Inflow"
	EntryTypeCashOutflow EntryType = "Cash Outflow"
	EntryTypeCredit      EntryType = "Credit"
	EntryTypeAdvance     EntryType = "Advance"
)

// Category is the accounting bucket an entry belongs to.
type Category string

const (
	CategorySales  Category = "Sales"
	CategoryCOGS   Category = "COGS"
	CategoryOpex   Category = "Opex"
	CategoryAssets Category = "Assets"
)

// PaymentMethod records how the cash moved, if it moved at all.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "Cash"
	PaymentMethodBank PaymentMethod = "Bank"
	PaymentMethodNone PaymentMethod = "None"
)

// EntryTypes lists every valid entry type.
func EntryTypes() []EntryType {
	return []EntryType{EntryTypeCashInflow, EntryTypeCashOutflow, EntryTypeCredit, EntryTypeAdvance}
}

// Categories lists every valid category.
func Categories() []Category {
	return []Category{CategorySales, CategoryCOGS, CategoryOpex, CategoryAssets}
}

// PaymentMethods lists every valid payment method.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCash, PaymentMethodBank, PaymentMethodNone}
}

// Valid reports whether t is a member of the closed entry type set.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeCashInflow, EntryTypeCashOutflow, EntryTypeCredit, EntryTypeAdvance:
		return true
	}
	return false
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategorySales, CategoryCOGS, CategoryOpex, CategoryAssets:
		return true
	}
	return false
}

// Valid reports whether m is a member of the closed payment method set.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBank, PaymentMethodNone:
		return true
	}
	return false
}

// ParseEntryType validates a raw entry type value at the boundary.
func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(s)
	if !t.Valid() {
		return "", ErrInvalidEntryType
	}

	return t, nil
}

// ParseCategory validates a raw category value at the boundary.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", ErrInvalidCategory
	}

	return c, nil
}

// ParsePaymentMethod validates a raw payment method value at the boundary.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.Valid() {
		return "", ErrInvalidPaymentMethod
	}

	return m, nil
}

// Entry represents a single recorded financial event.
type Entry struct {
	EntryDate     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	SettledAt     *time.Time
	ID            string
	UserID        string
	Notes         string
	Type          EntryType
	Category      Category
	PaymentMethod PaymentMethod
	Amount        decimal.Decimal
	Settled       bool
}

// Validate validates an entry before it enters the ledger.
func (e *Entry) Validate() error {
	if !e.Type.Valid() {
		return ErrInvalidEntryType
	}

	if !e.Category.Valid() {
		return ErrInvalidCategory
	}

	if !e.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}

	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	return ValidateNotes(e.Notes)
}

// Settleable reports whether the entry kind participates in settlement at all.
func (e *Entry) Settleable() bool {
	return e.Type == EntryTypeCredit || e.Type == EntryTypeAdvance
}
