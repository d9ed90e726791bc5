package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/cashbookhq/cashbook/internal/domain"
)

// EntryRepository defines data access for ledger entries. All reads and
// writes are scoped to one owner.
type EntryRepository interface {
	Insert(ctx context.Context, entry *domain.Entry) error
	InsertTx(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Entry, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, ownerID, id string) (*domain.Entry, error)
	ListByOwner(ctx context.Context, ownerID string, dateRange domain.DateRange, limit, offset int) ([]*domain.Entry, error)
	MarkSettled(ctx context.Context, tx Transaction, id string, settledAt, updatedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time, so period resolution is testable.
type Clock interface {
	Now() time.Time
}

// ErrCacheMiss is returned by Cache.Get when the key is absent, as opposed
// to the cache being unreachable.
var ErrCacheMiss = errors.New("cache miss")

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Increment(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Authorizer decides whether the caller may act for an owner. Admin and
// session policy live with the surrounding application; the engine only
// consumes the decision.
type Authorizer interface {
	Authorize(ctx context.Context, ownerID string) error
}

// AllowAllAuthorizer authorizes every request. The default when no policy
// is injected.
type AllowAllAuthorizer struct{}

// Authorize always succeeds.
func (AllowAllAuthorizer) Authorize(ctx context.Context, ownerID string) error {
	return nil
}

// SystemClock is the wall-clock Clock used outside tests.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
