package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashbookhq/cashbook/internal/domain"
)

func TestCreateEntryRequest_ToUseCaseInput(t *testing.T) {
	tests := []struct {
		name        string
		request     *CreateEntryRequest
		expectError bool
	}{
		{
			name: "valid request",
			request: &CreateEntryRequest{
				EntryType:     "Cash Inflow",
				Category:      "Sales",
				PaymentMethod: "Cash",
				Amount:        decimal.NewFromInt(100),
				EntryDate:     "2025-06-10",
				Notes:         "walk-in sale",
			},
		},
		{
			name: "unknown entry type",
			request: &CreateEntryRequest{
				EntryType:     "Loan",
				Category:      "Sales",
				PaymentMethod: "Cash",
				Amount:        decimal.NewFromInt(100),
				EntryDate:     "2025-06-10",
			},
			expectError: true,
		},
		{
			name: "unknown category",
			request: &CreateEntryRequest{
				EntryType:     "Cash Inflow",
				Category:      "Payroll",
				PaymentMethod: "Cash",
				Amount:        decimal.NewFromInt(100),
				EntryDate:     "2025-06-10",
			},
			expectError: true,
		},
		{
			name: "unknown payment method",
			request: &CreateEntryRequest{
				EntryType:     "Cash Inflow",
				Category:      "Sales",
				PaymentMethod: "Cheque",
				Amount:        decimal.NewFromInt(100),
				EntryDate:     "2025-06-10",
			},
			expectError: true,
		},
		{
			name: "bad date format",
			request: &CreateEntryRequest{
				EntryType:     "Cash Inflow",
				Category:      "Sales",
				PaymentMethod: "Cash",
				Amount:        decimal.NewFromInt(100),
				EntryDate:     "10/06/2025",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.request.ToUseCaseInput("owner-1")
			if tt.expectError {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.OwnerID != "owner-1" {
				t.Fatalf("owner = %q, want owner-1", got.OwnerID)
			}
			if got.Type != domain.EntryTypeCashInflow {
				t.Fatalf("type = %q, want %q", got.Type, domain.EntryTypeCashInflow)
			}
			wantDate := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
			if !got.EntryDate.Equal(wantDate) {
				t.Fatalf("entry date = %v, want %v", got.EntryDate, wantDate)
			}
		})
	}
}

func TestSettleEntryRequest_ToUseCaseInput(t *testing.T) {
	req := &SettleEntryRequest{
		Amount:         decimal.NewFromInt(75),
		SettlementDate: "2025-06-14",
	}

	got, err := req.ToUseCaseInput("owner-1", "entry-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.OwnerID != "owner-1" || got.EntryID != "entry-1" {
		t.Fatalf("unexpected scope %q / %q", got.OwnerID, got.EntryID)
	}
	if !got.Amount.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("amount = %s, want 75", got.Amount)
	}

	if _, err := (&SettleEntryRequest{SettlementDate: "last tuesday"}).ToUseCaseInput("owner-1", "entry-1"); err == nil {
		t.Fatal("expected an error for an unparseable date")
	}
}

func TestPeriodQuery_Resolve(t *testing.T) {
	t.Run("empty period defaults to all-time", func(t *testing.T) {
		period, start, end, err := PeriodQuery{}.Resolve()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if period != domain.PeriodAllTime {
			t.Fatalf("period = %q, want all-time", period)
		}
		if start != nil || end != nil {
			t.Fatal("expected no custom bounds")
		}
	})

	t.Run("custom end is inclusive of the whole day", func(t *testing.T) {
		q := PeriodQuery{Period: "custom", CustomStart: "2025-03-01", CustomEnd: "2025-03-31"}
		period, start, end, err := q.Resolve()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if period != domain.PeriodCustom {
			t.Fatalf("period = %q, want custom", period)
		}
		wantStart := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)
		if start == nil || !start.Equal(wantStart) {
			t.Fatalf("start = %v, want %v", start, wantStart)
		}
		if end == nil || !end.Equal(wantEnd) {
			t.Fatalf("end = %v, want %v", end, wantEnd)
		}
	})

	t.Run("unknown selector rejected", func(t *testing.T) {
		if _, _, _, err := (PeriodQuery{Period: "last-quarter"}).Resolve(); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("bad custom bound rejected", func(t *testing.T) {
		q := PeriodQuery{Period: "custom", CustomStart: "March 1st", CustomEnd: "2025-03-31"}
		if _, _, _, err := q.Resolve(); err == nil {
			t.Fatal("expected an error")
		}
	})
}
