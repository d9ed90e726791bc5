package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashbookhq/cashbook/internal/adapter/http/dto"
	"github.com/cashbookhq/cashbook/internal/domain"
	"github.com/cashbookhq/cashbook/internal/usecase"
	"github.com/cashbookhq/cashbook/internal/usecase/mocks"
)

func newSettlementFixture() (*SettlementHandler, *mocks.FakeEntryRepository) {
	repo := mocks.NewFakeEntryRepository()
	uc := usecase.NewSettlementUseCase(
		mocks.NewFakeTransactionManager(), repo, mocks.NewFakeIDGenerator(), mocks.NewFakeClock(handlerNow), nil,
	)

	return NewSettlementHandler(uc, nil), repo
}

func seedCredit(repo *mocks.FakeEntryRepository, id string) {
	repo.Seed(&domain.Entry{
		ID:            id,
		UserID:        "owner-1",
		Type:          domain.EntryTypeCredit,
		Category:      domain.CategorySales,
		PaymentMethod: domain.PaymentMethodNone,
		Amount:        decimal.NewFromInt(250),
		EntryDate:     time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
}

func settleRequest(entryID string, body dto.SettleEntryRequest) *http.Request {
	raw, _ := json.Marshal(body)
	req := withOwner(httptest.NewRequest(http.MethodPost, "/api/v1/entries/"+entryID+"/settle", bytes.NewReader(raw)), "owner-1")

	return setChiURLParam(req, "id", entryID)
}

func TestSettlementHandler_Settle(t *testing.T) {
	h, repo := newSettlementFixture()
	seedCredit(repo, "entry-1")

	rr := httptest.NewRecorder()
	h.Settle(rr, settleRequest("entry-1", dto.SettleEntryRequest{
		Amount:         decimal.NewFromInt(250),
		SettlementDate: "2025-06-14",
	}))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}

	var resp dto.SettleResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Source.Settled {
		t.Fatal("source must be settled")
	}
	if resp.Derived == nil {
		t.Fatal("expected a derived entry")
	}
	if resp.Derived.EntryType != "Cash Inflow" {
		t.Fatalf("derived type = %q, want Cash Inflow", resp.Derived.EntryType)
	}
	if resp.Source.SettledAt == nil || *resp.Source.SettledAt != "2025-06-14" {
		t.Fatalf("settled at = %v, want 2025-06-14", resp.Source.SettledAt)
	}
}

func TestSettlementHandler_Settle_NoCashEffect(t *testing.T) {
	h, repo := newSettlementFixture()
	repo.Seed(&domain.Entry{
		ID:            "entry-1",
		UserID:        "owner-1",
		Type:          domain.EntryTypeAdvance,
		Category:      domain.CategoryAssets,
		PaymentMethod: domain.PaymentMethodNone,
		Amount:        decimal.NewFromInt(500),
	})

	rr := httptest.NewRecorder()
	h.Settle(rr, settleRequest("entry-1", dto.SettleEntryRequest{
		Amount:         decimal.NewFromInt(500),
		SettlementDate: "2025-06-14",
	}))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}

	var resp dto.SettleResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Derived != nil {
		t.Fatalf("expected no derived entry, got %+v", resp.Derived)
	}
	if !resp.Source.Settled {
		t.Fatal("source must still be settled")
	}
}

func TestSettlementHandler_Settle_AlreadySettled(t *testing.T) {
	h, repo := newSettlementFixture()
	seedCredit(repo, "entry-1")

	first := httptest.NewRecorder()
	h.Settle(first, settleRequest("entry-1", dto.SettleEntryRequest{
		Amount:         decimal.NewFromInt(250),
		SettlementDate: "2025-06-14",
	}))
	if first.Code != http.StatusCreated {
		t.Fatalf("first settle status = %d, want 201", first.Code)
	}

	second := httptest.NewRecorder()
	h.Settle(second, settleRequest("entry-1", dto.SettleEntryRequest{
		Amount:         decimal.NewFromInt(250),
		SettlementDate: "2025-06-14",
	}))

	if second.Code != http.StatusConflict {
		t.Fatalf("second settle status = %d, want 409", second.Code)
	}
}

func TestSettlementHandler_Settle_InvalidKind(t *testing.T) {
	h, repo := newSettlementFixture()
	repo.Seed(&domain.Entry{
		ID:            "entry-1",
		UserID:        "owner-1",
		Type:          domain.EntryTypeCashInflow,
		Category:      domain.CategorySales,
		PaymentMethod: domain.PaymentMethodCash,
		Amount:        decimal.NewFromInt(100),
	})

	rr := httptest.NewRecorder()
	h.Settle(rr, settleRequest("entry-1", dto.SettleEntryRequest{
		Amount:         decimal.NewFromInt(100),
		SettlementDate: "2025-06-14",
	}))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestSettlementHandler_Settle_NotFound(t *testing.T) {
	h, _ := newSettlementFixture()

	rr := httptest.NewRecorder()
	h.Settle(rr, settleRequest("missing", dto.SettleEntryRequest{
		Amount:         decimal.NewFromInt(100),
		SettlementDate: "2025-06-14",
	}))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestSettlementHandler_Settle_PersistenceFailure(t *testing.T) {
	repo := mocks.NewFakeEntryRepository()
	seedCredit(repo, "entry-1")
	repo.InsertTxFunc = func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
		return errors.New("disk full")
	}

	uc := usecase.NewSettlementUseCase(
		mocks.NewFakeTransactionManager(), repo, mocks.NewFakeIDGenerator(), mocks.NewFakeClock(handlerNow), nil,
	)
	h := NewSettlementHandler(uc, nil)

	rr := httptest.NewRecorder()
	h.Settle(rr, settleRequest("entry-1", dto.SettleEntryRequest{
		Amount:         decimal.NewFromInt(250),
		SettlementDate: "2025-06-14",
	}))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}

func TestSettlementHandler_Settle_BadDate(t *testing.T) {
	h, repo := newSettlementFixture()
	seedCredit(repo, "entry-1")

	rr := httptest.NewRecorder()
	h.Settle(rr, settleRequest("entry-1", dto.SettleEntryRequest{
		Amount:         decimal.NewFromInt(250),
		SettlementDate: "June 14",
	}))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}
