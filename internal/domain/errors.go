package domain

import (
	"errors"
	"fmt"
)

var (
	// Entry errors
	ErrEntryNotFound        = errors.New("entry not found")
	ErrInvalidEntryType     = errors.New("invalid entry type")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrNotEntryOwner        = errors.New("entry belongs to a different owner")

	// Settlement errors
	ErrInvalidEntryKind = errors.New("settlement is only defined for credit and advance entries")
	ErrAlreadySettled   = errors.New("entry is already settled")
	ErrInvalidAmount    = errors.New("amount must be positive")

	// Period errors
	ErrInvalidPeriod = errors.New("invalid period selector")
)

// SettlementPersistenceError reports a storage failure during the settlement
// transaction. The transaction is rolled back before it is returned, so no
// partial state is left behind.
type SettlementPersistenceError struct {
	Err     error
	EntryID string
}

func (e *SettlementPersistenceError) Error() string {
	return fmt.Sprintf("settlement of entry %s failed to persist: %v", e.EntryID, e.Err)
}

func (e *SettlementPersistenceError) Unwrap() error {
	return e.Err
}
