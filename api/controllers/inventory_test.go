package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/robertocantu/ironclub-backend/internal/inventory"
	pkgerrors "github.com/robertocantu/ironclub-backend/pkg/errors"
)

type stubInventoryService struct {
	reserveErr error
	updateErr  error
	view       inventory.StockView
}

func (s *stubInventoryService) GetStock(ctx context.Context, productID int) (inventory.StockView, error) {
	return s.view, nil
}

func (s *stubInventoryService) GetAllStock(ctx context.Context) (map[int]inventory.StockView, error) {
	return map[int]inventory.StockView{}, nil
}

func (s *stubInventoryService) ReserveStock(ctx context.Context, productID, quantity int) (inventory.StockView, error) {
	if s.reserveErr != nil {
		return inventory.StockView{}, s.reserveErr
	}
	return s.view, nil
}

func (s *stubInventoryService) ReleaseStock(ctx context.Context, productID, quantity int) (inventory.StockView, error) {
	return s.view, nil
}

func (s *stubInventoryService) UpdateStock(ctx context.Context, productID, quantity int, reason string) (inventory.StockView, error) {
	if s.updateErr != nil {
		return inventory.StockView{}, s.updateErr
	}
	return s.view, nil
}

func (s *stubInventoryService) CompletePurchase(ctx context.Context, items []inventory.PurchaseItem) ([]inventory.PurchaseItemResult, error) {
	return nil, nil
}

func (s *stubInventoryService) GetLowStockItems(ctx context.Context) ([]inventory.LowStockItem, error) {
	return nil, nil
}

func (s *stubInventoryService) GetStockHistory(ctx context.Context, productID, limit int) ([]inventory.HistoryEntryDTO, error) {
	return nil, nil
}

func TestInventoryReserveMapsConflict(t *testing.T) {
	svc := &stubInventoryService{reserveErr: pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock available")}
	handler := InventoryReserve(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/reserve", strings.NewReader(`{"product_id":15,"quantity":2}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Message != "insufficient stock available" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestInventoryReserveRejectsMalformedBody(t *testing.T) {
	handler := InventoryReserve(&stubInventoryService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/reserve", strings.NewReader(`{"product_id":0,"quantity":-1}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestInventoryUpdateMapsStateConflict(t *testing.T) {
	svc := &stubInventoryService{updateErr: pkgerrors.New(pkgerrors.CodeStateConflict, "new quantity cannot undercut reserved stock")}
	handler := http.HandlerFunc(InventoryUpdate(svc, nil))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/inventory/15", strings.NewReader(`{"quantity":1}`))
	req = withURLParam(req, "productId", "15")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestInventoryGetRejectsBadParam(t *testing.T) {
	handler := http.HandlerFunc(InventoryGet(&stubInventoryService{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/abc", nil)
	req = withURLParam(req, "productId", "abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
