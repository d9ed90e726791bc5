package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashbookhq/cashbook/internal/domain"
	"github.com/cashbookhq/cashbook/internal/usecase"
)

// entryDateFormat is the calendar-date wire format for entry and settlement
// dates.
const entryDateFormat = "2006-01-02"

// CreateEntryRequest represents a request to create an entry.
type CreateEntryRequest struct {
	EntryType     string          `json:"entry_type"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	EntryDate     string          `json:"entry_date"`
	Notes         string          `json:"notes,omitempty"`
}

// ToUseCaseInput validates the closed enumerations and converts to use case
// input. Unknown values are rejected here, before they reach the engine.
func (r *CreateEntryRequest) ToUseCaseInput(ownerID string) (usecase.CreateEntryInput, error) {
	entryType, err := domain.ParseEntryType(r.EntryType)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	category, err := domain.ParseCategory(r.Category)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	paymentMethod, err := domain.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	entryDate, err := parseDate(r.EntryDate)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	return usecase.CreateEntryInput{
		OwnerID:       ownerID,
		Type:          entryType,
		Category:      category,
		PaymentMethod: paymentMethod,
		Amount:        r.Amount,
		EntryDate:     entryDate,
		Notes:         r.Notes,
	}, nil
}

// SettleEntryRequest represents a request to settle a Credit or Advance
// entry.
type SettleEntryRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	SettlementDate string          `json:"settlement_date"`
}

// ToUseCaseInput converts to use case input.
func (r *SettleEntryRequest) ToUseCaseInput(ownerID, entryID string) (usecase.SettleInput, error) {
	settledAt, err := parseDate(r.SettlementDate)
	if err != nil {
		return usecase.SettleInput{}, err
	}

	return usecase.SettleInput{
		OwnerID:   ownerID,
		EntryID:   entryID,
		Amount:    r.Amount,
		SettledAt: settledAt,
	}, nil
}

// PeriodQuery represents the period selection query parameters shared by the
// list and summary endpoints.
type PeriodQuery struct {
	Period      string
	CustomStart string
	CustomEnd   string
}

// Resolve validates the selector and parses the optional custom bounds.
func (q PeriodQuery) Resolve() (domain.PeriodSelector, *time.Time, *time.Time, error) {
	raw := q.Period
	if raw == "" {
		raw = string(domain.PeriodAllTime)
	}

	period, err := domain.ParsePeriodSelector(raw)
	if err != nil {
		return "", nil, nil, err
	}

	var start, end *time.Time

	if q.CustomStart != "" {
		t, err := parseDate(q.CustomStart)
		if err != nil {
			return "", nil, nil, err
		}

		start = &t
	}

	if q.CustomEnd != "" {
		t, err := parseDate(q.CustomEnd)
		if err != nil {
			return "", nil, nil, err
		}

		// Custom end bounds are inclusive of the whole day.
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		end = &t
	}

	return period, start, end, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(entryDateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", s, entryDateFormat)
	}

	return t.UTC(), nil
}
