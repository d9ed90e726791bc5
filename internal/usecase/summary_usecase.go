package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cashbookhq/cashbook/internal/domain"
)

// SummaryUseCase computes period-windowed cash and profit summaries.
type SummaryUseCase struct {
	entryRepo EntryRepository
	cache     Cache
	clock     Clock
	logger    zerolog.Logger
	cacheTTL  time.Duration
}

// NewSummaryUseCase creates a new SummaryUseCase. cache may be nil, in which
// case every summary is computed directly.
func NewSummaryUseCase(entryRepo EntryRepository, cache Cache, clock Clock, logger zerolog.Logger) *SummaryUseCase {
	return &SummaryUseCase{
		entryRepo: entryRepo,
		cache:     cache,
		clock:     clock,
		logger:    logger,
		cacheTTL:  SummaryCacheTTL,
	}
}

// WithCacheTTL overrides how long cached summaries live. Non-positive
// values keep the default.
func (uc *SummaryUseCase) WithCacheTTL(ttl time.Duration) *SummaryUseCase {
	if ttl > 0 {
		uc.cacheTTL = ttl
	}

	return uc
}

// SummaryInput represents input for computing a summary.
type SummaryInput struct {
	CustomStart *time.Time
	CustomEnd   *time.Time
	OwnerID     string
	Period      domain.PeriodSelector
}

// summaryMaxEntries bounds how many rows one summary fold reads.
const summaryMaxEntries = 100000

// Summary resolves the period against the current clock, folds the owner's
// entries inside it, and serves the result through the cache when one is
// wired. Cache failures degrade to direct computation, never to an error.
func (uc *SummaryUseCase) Summary(ctx context.Context, input SummaryInput) (domain.Summary, error) {
	if err := domain.ValidateOwnerID(input.OwnerID); err != nil {
		return domain.Summary{}, err
	}

	period := input.Period
	if period == "" {
		period = domain.PeriodAllTime
	}

	dateRange := domain.ResolvePeriod(period, uc.clock.Now(), input.CustomStart, input.CustomEnd)

	key, cached := uc.lookupCached(ctx, input.OwnerID, dateRange)
	if cached != nil {
		return *cached, nil
	}

	entries, err := uc.entryRepo.ListByOwner(ctx, input.OwnerID, dateRange, summaryMaxEntries, 0)
	if err != nil {
		return domain.Summary{}, err
	}

	summary := domain.Summarize(entries, dateRange)

	uc.storeCached(ctx, key, summary)

	return summary, nil
}

// lookupCached returns the cache key for this owner and range plus the
// cached summary, if any. An empty key disables caching for this call.
func (uc *SummaryUseCase) lookupCached(ctx context.Context, ownerID string, r domain.DateRange) (string, *domain.Summary) {
	if uc.cache == nil {
		return "", nil
	}

	gen := "0"

	raw, err := uc.cache.Get(ctx, summaryGenKey(ownerID))
	switch {
	case err == nil:
		gen = string(raw)
	case !errors.Is(err, ErrCacheMiss):
		uc.logger.Warn().Err(err).Msg("summary cache unavailable, computing directly")
		return "", nil
	}

	key := summaryKey(ownerID, gen, r)

	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		return key, nil
	}

	var summary domain.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cached summary")
		return key, nil
	}

	return key, &summary
}

func (uc *SummaryUseCase) storeCached(ctx context.Context, key string, summary domain.Summary) {
	if uc.cache == nil || key == "" {
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("failed to cache summary")
	}
}

func summaryGenKey(ownerID string) string {
	return "summary:gen:" + ownerID
}

func summaryKey(ownerID, gen string, r domain.DateRange) string {
	start, end := int64(0), int64(0)
	if r.Start != nil {
		start = r.Start.Unix()
	}

	if r.End != nil {
		end = r.End.Unix()
	}

	return fmt.Sprintf("summary:%s:%s:%d-%d", ownerID, gen, start, end)
}

// invalidateSummaries bumps the owner's summary generation so every cached
// window for that owner stops matching. Best effort: the short cache TTL
// covers a lost bump.
func invalidateSummaries(ctx context.Context, cache Cache, ownerID string) {
	if cache == nil {
		return
	}

	_, _ = cache.Increment(ctx, summaryGenKey(ownerID))
}
