package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrNotesTooLong   = errors.New("notes exceed maximum length")
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")
	ErrMissingOwner   = errors.New("owner id is required")
)

// Validation constants
const (
	MaxNotesLength = 500
	MaxEntryAmount = "1000000000000" // 1 trillion, currency-agnostic magnitude
)

// ValidateNotes validates free-text notes length.
func ValidateNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return fmt.Errorf("%w: limit is %d characters", ErrNotesTooLong, MaxNotesLength)
	}

	return nil
}

// ValidateEntryAmount validates an entry magnitude at the boundary.
func ValidateEntryAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxEntryAmount)
	}

	return nil
}

// ValidateSettlementAmount validates a settlement magnitude, which must be
// strictly positive.
func ValidateSettlementAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxEntryAmount)
	}

	return nil
}

// ValidateOwnerID validates the owner reference every operation is scoped to.
func ValidateOwnerID(ownerID string) error {
	if ownerID == "" {
		return ErrMissingOwner
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
