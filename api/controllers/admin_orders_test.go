package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	internalorders "github.com/adebayof/gromart-backend/internal/orders"
	"github.com/adebayof/gromart-backend/pkg/db/models"
	"github.com/adebayof/gromart-backend/pkg/enums"
	pkgerrors "github.com/adebayof/gromart-backend/pkg/errors"
	"github.com/adebayof/gromart-backend/pkg/pagination"
	"github.com/google/uuid"
)

type stubOrdersService struct {
	page  *internalorders.Page
	order *models.Order
	err   error
}

func (s stubOrdersService) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*internalorders.Page, error) {
	return s.page, s.err
}

func (s stubOrdersService) ListAll(ctx context.Context, params pagination.Params) (*internalorders.Page, error) {
	return s.page, s.err
}

func (s stubOrdersService) Transition(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	return s.order, s.err
}

func statusRequest(orderID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/orders/"+orderID+"/status", strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orderId", orderID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAdminUpdateOrderStatusSuccess(t *testing.T) {
	order := &models.Order{ID: uuid.New(), Status: enums.OrderStatusConfirmed}
	handler := AdminUpdateOrderStatus(stubOrdersService{order: order}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, statusRequest(order.ID.String(), `{"status":"confirmed"}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAdminUpdateOrderStatusUnknownStatus(t *testing.T) {
	handler := AdminUpdateOrderStatus(stubOrdersService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, statusRequest(uuid.NewString(), `{"status":"shipped"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminUpdateOrderStatusIllegalTransition(t *testing.T) {
	handler := AdminUpdateOrderStatus(stubOrdersService{
		err: pkgerrors.New(pkgerrors.CodeStateConflict, "cannot move order from delivered to cancelled"),
	}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, statusRequest(uuid.NewString(), `{"status":"cancelled"}`))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestAdminUpdateOrderStatusBadOrderID(t *testing.T) {
	handler := AdminUpdateOrderStatus(stubOrdersService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, statusRequest("not-a-uuid", `{"status":"confirmed"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminListOrders(t *testing.T) {
	page := &internalorders.Page{
		Orders:     []models.Order{{ID: uuid.New(), Status: enums.OrderStatusPending}},
		NextCursor: "",
	}
	handler := AdminListOrders(stubOrdersService{page: page}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders?limit=10", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAdminListOrdersRejectsBadLimit(t *testing.T) {
	handler := AdminListOrders(stubOrdersService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders?limit=9999", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
