package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashbookhq/cashbook/internal/domain"
)

// SettlementUseCase realizes Credit and Advance entries into cash movement.
type SettlementUseCase struct {
	txManager TransactionManager
	entryRepo EntryRepository
	idGen     IDGenerator
	clock     Clock
	cache     Cache
}

// NewSettlementUseCase creates a new SettlementUseCase. cache may be nil.
func NewSettlementUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	idGen IDGenerator,
	clock Clock,
	cache Cache,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
		idGen:     idGen,
		clock:     clock,
		cache:     cache,
	}
}

// SettleInput represents input for settling an entry.
type SettleInput struct {
	SettledAt time.Time
	OwnerID   string
	EntryID   string
	Amount    decimal.Decimal
}

// SettleResult reports what a settlement produced. Derived is nil when the
// combination has no cash effect.
type SettleResult struct {
	Source  *domain.Entry
	Derived *domain.Entry
}

// Settle realizes a Credit or Advance entry. Inside one transaction it locks
// the source row, rejects invalid kinds and repeated settlement before any
// write, inserts the derived cash entry when the decision table yields one,
// and marks the source settled. Both writes commit together or not at all.
// Storage failures surface as *domain.SettlementPersistenceError; there is
// no implicit retry.
func (uc *SettlementUseCase) Settle(ctx context.Context, input SettleInput) (*SettleResult, error) {
	if err := domain.ValidateOwnerID(input.OwnerID); err != nil {
		return nil, err
	}

	if err := domain.ValidateSettlementAmount(input.Amount); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, &domain.SettlementPersistenceError{EntryID: input.EntryID, Err: err}
	}
	defer tx.Rollback(ctx)

	source, err := uc.entryRepo.GetByIDForUpdate(ctx, tx, input.OwnerID, input.EntryID)
	if err != nil {
		return nil, err
	}

	settlement, err := domain.ResolveSettlement(source, input.Amount, input.SettledAt)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	if settlement.Derived != nil {
		settlement.Derived.ID = uc.idGen.Generate()
		settlement.Derived.CreatedAt = now
		settlement.Derived.UpdatedAt = now

		if err := uc.entryRepo.InsertTx(ctx, tx, settlement.Derived); err != nil {
			return nil, &domain.SettlementPersistenceError{EntryID: input.EntryID, Err: err}
		}
	}

	if err := uc.entryRepo.MarkSettled(ctx, tx, source.ID, settlement.SettledAt, now); err != nil {
		return nil, &domain.SettlementPersistenceError{EntryID: input.EntryID, Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &domain.SettlementPersistenceError{EntryID: input.EntryID, Err: err}
	}

	source.Settled = true
	settledAt := settlement.SettledAt
	source.SettledAt = &settledAt
	source.UpdatedAt = now

	invalidateSummaries(ctx, uc.cache, input.OwnerID)

	return &SettleResult{Source: source, Derived: settlement.Derived}, nil
}
