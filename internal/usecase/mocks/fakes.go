package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/cashbookhq/cashbook/internal/domain"
	"github.com/cashbookhq/cashbook/internal/usecase"
)

// FakeEntryRepository is an in-memory implementation of EntryRepository.
// Any Func field, when set, overrides the default behavior.
type FakeEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry

	InsertFunc           func(ctx context.Context, entry *domain.Entry) error
	InsertTxFunc         func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	GetByIDFunc          func(ctx context.Context, ownerID, id string) (*domain.Entry, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ownerID, id string) (*domain.Entry, error)
	ListByOwnerFunc      func(ctx context.Context, ownerID string, dateRange domain.DateRange, limit, offset int) ([]*domain.Entry, error)
	MarkSettledFunc      func(ctx context.Context, tx usecase.Transaction, id string, settledAt, updatedAt time.Time) error
}

func NewFakeEntryRepository() *FakeEntryRepository {
	return &FakeEntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

// Seed stores entries directly, bypassing any Func override.
func (f *FakeEntryRepository) Seed(entries ...*domain.Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range entries {
		f.entries[e.ID] = e
	}
}

func (f *FakeEntryRepository) Insert(ctx context.Context, entry *domain.Entry) error {
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, entry)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[entry.ID] = entry
	return nil
}

func (f *FakeEntryRepository) InsertTx(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if f.InsertTxFunc != nil {
		return f.InsertTxFunc(ctx, tx, entry)
	}
	return f.Insert(ctx, entry)
}

func (f *FakeEntryRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Entry, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, ownerID, id)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if e, ok := f.entries[id]; ok && e.UserID == ownerID {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (f *FakeEntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, ownerID, id string) (*domain.Entry, error) {
	if f.GetByIDForUpdateFunc != nil {
		return f.GetByIDForUpdateFunc(ctx, tx, ownerID, id)
	}
	return f.GetByID(ctx, ownerID, id)
}

func (f *FakeEntryRepository) ListByOwner(ctx context.Context, ownerID string, dateRange domain.DateRange, limit, offset int) ([]*domain.Entry, error) {
	if f.ListByOwnerFunc != nil {
		return f.ListByOwnerFunc(ctx, ownerID, dateRange, limit, offset)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range f.entries {
		if e.UserID == ownerID && dateRange.Contains(e.EntryDate) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (f *FakeEntryRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, id string, settledAt, updatedAt time.Time) error {
	if f.MarkSettledFunc != nil {
		return f.MarkSettledFunc(ctx, tx, id, settledAt, updatedAt)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return domain.ErrEntryNotFound
	}
	if e.Settled {
		return domain.ErrAlreadySettled
	}
	e.Settled = true
	t := settledAt
	e.SettledAt = &t
	e.UpdatedAt = updatedAt
	return nil
}

// FakeTransactionManager is a fake implementation of TransactionManager.
type FakeTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewFakeTransactionManager() *FakeTransactionManager {
	return &FakeTransactionManager{}
}

func (f *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if f.BeginFunc != nil {
		return f.BeginFunc(ctx)
	}
	return &FakeTransaction{}, nil
}

// FakeTransaction is a fake implementation of Transaction that counts calls.
type FakeTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Commits   int
	Rollbacks int
}

func (f *FakeTransaction) Commit(ctx context.Context) error {
	f.Commits++
	if f.CommitFunc != nil {
		return f.CommitFunc(ctx)
	}
	return nil
}

func (f *FakeTransaction) Rollback(ctx context.Context) error {
	f.Rollbacks++
	if f.RollbackFunc != nil {
		return f.RollbackFunc(ctx)
	}
	return nil
}

// FakeIDGenerator is a fake implementation of IDGenerator.
type FakeIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (f *FakeIDGenerator) Generate() string {
	if f.GenerateFunc != nil {
		return f.GenerateFunc()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counter++
	return "fake-id-" + strconv.Itoa(f.counter)
}

// FakeClock is a Clock pinned to a fixed instant.
type FakeClock struct {
	NowTime time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{NowTime: now}
}

func (f *FakeClock) Now() time.Time {
	return f.NowTime
}

// FakeCache is an in-memory implementation of Cache.
type FakeCache struct {
	mu       sync.RWMutex
	data     map[string][]byte
	counters map[string]int64

	GetFunc       func(ctx context.Context, key string) ([]byte, error)
	SetFunc       func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	IncrementFunc func(ctx context.Context, key string) (int64, error)
	DeleteFunc    func(ctx context.Context, key string) error
}

func NewFakeCache() *FakeCache {
	return &FakeCache{
		data:     make(map[string][]byte),
		counters: make(map[string]int64),
	}
}

func (f *FakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, key)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	if c, ok := f.counters[key]; ok {
		return []byte(strconv.FormatInt(c, 10)), nil
	}
	return nil, usecase.ErrCacheMiss
}

func (f *FakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.SetFunc != nil {
		return f.SetFunc(ctx, key, value, ttl)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *FakeCache) Increment(ctx context.Context, key string) (int64, error) {
	if f.IncrementFunc != nil {
		return f.IncrementFunc(ctx, key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[key]++
	return f.counters[key], nil
}

func (f *FakeCache) Delete(ctx context.Context, key string) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	delete(f.counters, key)
	return nil
}

// FakeIdempotencyStore is an in-memory implementation of IdempotencyStore.
type FakeIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewFakeIdempotencyStore() *FakeIdempotencyStore {
	return &FakeIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (f *FakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if f.CheckAndSetFunc != nil {
		return f.CheckAndSetFunc(ctx, key, response, ttl)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		f.data[key] = response
	} else {
		f.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (f *FakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, key, response, ttl)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = response
	return nil
}
