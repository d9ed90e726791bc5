package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashbookhq/cashbook/internal/domain"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// EntryResponse represents an entry in responses, including the display
// label and color the dashboard renders it with.
type EntryResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	EntryType       string          `json:"entry_type"`
	DisplayType     string          `json:"display_type"`
	Color           string          `json:"color"`
	Category        string          `json:"category"`
	DisplayCategory string          `json:"display_category"`
	PaymentMethod   string          `json:"payment_method"`
	Amount          decimal.Decimal `json:"amount"`
	EntryDate       string          `json:"entry_date"`
	Notes           string          `json:"notes,omitempty"`
	Settled         bool            `json:"settled"`
	SettledAt       *string         `json:"settled_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) EntryResponse {
	resp := EntryResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		EntryType:       string(e.Type),
		DisplayType:     domain.DisplayEntryType(e.Type),
		Color:           string(domain.EntryTypeColor(e.Type)),
		Category:        string(e.Category),
		DisplayCategory: domain.DisplayCategory(e.Category),
		PaymentMethod:   string(e.PaymentMethod),
		Amount:          e.Amount,
		EntryDate:       e.EntryDate.Format(entryDateFormat),
		Notes:           e.Notes,
		Settled:         e.Settled,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}

	if e.SettledAt != nil {
		s := e.SettledAt.Format(entryDateFormat)
		resp.SettledAt = &s
	}

	return resp
}

// EntriesFromDomain converts a slice of domain entries.
func EntriesFromDomain(entries []*domain.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryFromDomain(e))
	}

	return out
}

// SettleResponse represents the outcome of a settlement.
type SettleResponse struct {
	Source  EntryResponse  `json:"source"`
	Derived *EntryResponse `json:"derived,omitempty"`
}

// SummaryResponse represents a cash and profit summary.
type SummaryResponse struct {
	CashIn         decimal.Decimal           `json:"cash_in"`
	CashOut        decimal.Decimal           `json:"cash_out"`
	Net            decimal.Decimal           `json:"net"`
	PendingCredit  decimal.Decimal           `json:"pending_credit"`
	PendingAdvance decimal.Decimal           `json:"pending_advance"`
	GrossProfit    decimal.Decimal           `json:"gross_profit"`
	NetProfit      decimal.Decimal           `json:"net_profit"`
	Categories     map[string]CategoryTotals `json:"categories"`
	EntryCount     int                       `json:"entry_count"`
}

// CategoryTotals mirrors domain.CategoryTotals on the wire, keyed by the
// category display label.
type CategoryTotals struct {
	In  decimal.Decimal `json:"in"`
	Out decimal.Decimal `json:"out"`
}

// SummaryFromDomain converts a domain summary to a response.
func SummaryFromDomain(s domain.Summary) SummaryResponse {
	categories := make(map[string]CategoryTotals, len(s.Categories))
	for c, totals := range s.Categories {
		categories[domain.DisplayCategory(c)] = CategoryTotals{In: totals.In, Out: totals.Out}
	}

	return SummaryResponse{
		CashIn:         s.CashIn,
		CashOut:        s.CashOut,
		Net:            s.Net,
		PendingCredit:  s.PendingCredit,
		PendingAdvance: s.PendingAdvance,
		GrossProfit:    s.GrossProfit(),
		NetProfit:      s.NetProfit(),
		Categories:     categories,
		EntryCount:     s.EntryCount,
	}
}
