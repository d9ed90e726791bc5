package usecase

import "time"

const (
	// SummaryCacheTTL bounds how stale a cached summary can get even if an
	// invalidation is lost.
	SummaryCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
