package domain

import "github.com/shopspring/decimal"

// CategoryTotals splits a category's realized cash by direction.
type CategoryTotals struct {
	In  decimal.Decimal `json:"in"`
	Out decimal.Decimal `json:"out"`
}

// Summary holds the figures a dashboard renders for one owner and window.
// Cash totals count realized movement only (Cash Inflow / Cash Outflow
// entries); pending totals carry unsettled Credit and Advance magnitudes.
type Summary struct {
	CashIn         decimal.Decimal             `json:"cash_in"`
	CashOut        decimal.Decimal             `json:"cash_out"`
	Net            decimal.Decimal             `json:"net"`
	PendingCredit  decimal.Decimal             `json:"pending_credit"`
	PendingAdvance decimal.Decimal             `json:"pending_advance"`
	Categories     map[Category]CategoryTotals `json:"categories"`
	EntryCount     int                         `json:"entry_count"`
}

// NewSummary returns an all-zero summary with every category present, so an
// empty window renders the same shape as a busy one.
func NewSummary() Summary {
	categories := make(map[Category]CategoryTotals, len(Categories()))
	for _, c := range Categories() {
		categories[c] = CategoryTotals{In: decimal.Zero, Out: decimal.Zero}
	}

	return Summary{
		CashIn:         decimal.Zero,
		CashOut:        decimal.Zero,
		Net:            decimal.Zero,
		PendingCredit:  decimal.Zero,
		PendingAdvance: decimal.Zero,
		Categories:     categories,
	}
}

// GrossProfit is Sales cash in minus COGS cash out.
func (s Summary) GrossProfit() decimal.Decimal {
	return s.Categories[CategorySales].In.Sub(s.Categories[CategoryCOGS].Out)
}

// NetProfit is gross profit minus Opex cash out.
func (s Summary) NetProfit() decimal.Decimal {
	return s.GrossProfit().Sub(s.Categories[CategoryOpex].Out)
}

// Summarize folds entries inside r into a Summary. It is a pure fold: the
// input is never mutated, an empty input yields zero totals, and any
// permutation of the same set produces identical output.
func Summarize(entries []*Entry, r DateRange) Summary {
	s := NewSummary()

	for _, e := range entries {
		if !r.Contains(e.EntryDate) {
			continue
		}

		s.EntryCount++

		switch e.Type {
		case EntryTypeCashInflow:
			s.CashIn = s.CashIn.Add(e.Amount)
			ct := s.Categories[e.Category]
			ct.In = ct.In.Add(e.Amount)
			s.Categories[e.Category] = ct

		case EntryTypeCashOutflow:
			s.CashOut = s.CashOut.Add(e.Amount)
			ct := s.Categories[e.Category]
			ct.Out = ct.Out.Add(e.Amount)
			s.Categories[e.Category] = ct

		case EntryTypeCredit:
			if !e.Settled {
				s.PendingCredit = s.PendingCredit.Add(e.Amount)
			}

		case EntryTypeAdvance:
			if !e.Settled {
				s.PendingAdvance = s.PendingAdvance.Add(e.Amount)
			}
		}
	}

	s.Net = s.CashIn.Sub(s.CashOut)

	return s
}
