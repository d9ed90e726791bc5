package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashbookhq/cashbook/internal/domain"
)

// EntryUseCase handles entry creation and retrieval.
type EntryUseCase struct {
	entryRepo EntryRepository
	idGen     IDGenerator
	clock     Clock
	cache     Cache
}

// NewEntryUseCase creates a new EntryUseCase. cache may be nil.
func NewEntryUseCase(entryRepo EntryRepository, idGen IDGenerator, clock Clock, cache Cache) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
		idGen:     idGen,
		clock:     clock,
		cache:     cache,
	}
}

// CreateEntryInput represents input for creating an entry.
type CreateEntryInput struct {
	EntryDate     time.Time
	OwnerID       string
	Notes         string
	Type          domain.EntryType
	Category      domain.Category
	PaymentMethod domain.PaymentMethod
	Amount        decimal.Decimal
}

// CreateEntry validates and persists a new entry, assigning its ID and audit
// timestamps.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	if err := domain.ValidateOwnerID(input.OwnerID); err != nil {
		return nil, err
	}

	if err := domain.ValidateEntryAmount(input.Amount); err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	entry := &domain.Entry{
		ID:            uc.idGen.Generate(),
		UserID:        input.OwnerID,
		Type:          input.Type,
		Category:      input.Category,
		PaymentMethod: input.PaymentMethod,
		Amount:        input.Amount,
		EntryDate:     input.EntryDate,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Insert(ctx, entry); err != nil {
		return nil, err
	}

	invalidateSummaries(ctx, uc.cache, input.OwnerID)

	return entry, nil
}

// GetEntry retrieves one entry scoped to its owner.
func (uc *EntryUseCase) GetEntry(ctx context.Context, ownerID, id string) (*domain.Entry, error) {
	if err := domain.ValidateOwnerID(ownerID); err != nil {
		return nil, err
	}

	return uc.entryRepo.GetByID(ctx, ownerID, id)
}

// ListEntriesInput represents input for listing entries.
type ListEntriesInput struct {
	CustomStart *time.Time
	CustomEnd   *time.Time
	OwnerID     string
	Period      domain.PeriodSelector
	Limit       int
	Offset      int
}

// ListEntries lists an owner's entries inside the requested period.
func (uc *EntryUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.Entry, error) {
	if err := domain.ValidateOwnerID(input.OwnerID); err != nil {
		return nil, err
	}

	period := input.Period
	if period == "" {
		period = domain.PeriodAllTime
	}

	dateRange := domain.ResolvePeriod(period, uc.clock.Now(), input.CustomStart, input.CustomEnd)
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.ListByOwner(ctx, input.OwnerID, dateRange, limit, offset)
}
