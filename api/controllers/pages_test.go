package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/maritalgrace/tickets-backend/internal/fulfillment"
	"github.com/maritalgrace/tickets-backend/pkg/config"
	"github.com/maritalgrace/tickets-backend/pkg/db/models"
	pkgerrors "github.com/maritalgrace/tickets-backend/pkg/errors"
)

func TestPaymentSuccessFulfillsFromQuery(t *testing.T) {
	t.Parallel()

	svc := &stubFulfillmentService{result: &fulfillment.Result{Reference: "MG-0A1B2C3D"}}
	handler := PaymentSuccess(svc, config.EventConfig{Name: "MARITAL GRACE"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/payment-success?email=jane%40example.com&qty=2&first_name=Jane", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status mismatch: %d", rec.Code)
	}
	if svc.input == nil {
		t.Fatalf("fulfillment not called")
	}
	if svc.input.Email != "jane@example.com" || svc.input.Quantity != 2 || svc.input.FirstName != "Jane" {
		t.Fatalf("input mismatch: %+v", svc.input)
	}

	page := rec.Body.String()
	if !strings.Contains(page, "MG-0A1B2C3D") {
		t.Fatalf("confirmation page missing reference: %s", page)
	}
	if !strings.Contains(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("expected html response, got %s", rec.Header().Get("Content-Type"))
	}
}

func TestPaymentSuccessDefaultsQuantityToOne(t *testing.T) {
	t.Parallel()

	svc := &stubFulfillmentService{result: &fulfillment.Result{Reference: "MG-0A1B2C3D"}}
	handler := PaymentSuccess(svc, config.EventConfig{Name: "MARITAL GRACE"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/payment-success?email=jane%40example.com", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status mismatch: %d", rec.Code)
	}
	if svc.input.Quantity != 1 {
		t.Fatalf("quantity should default to 1, got %d", svc.input.Quantity)
	}
}

func TestPaymentSuccessFulfillmentFailureRendersErrorPage(t *testing.T) {
	t.Parallel()

	svc := &stubFulfillmentService{err: pkgerrors.New(pkgerrors.CodeProcessing, "dispatch ticket email")}
	handler := PaymentSuccess(svc, config.EventConfig{Name: "MARITAL GRACE"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/payment-success?email=jane%40example.com&qty=1", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "contact the organisers") {
		t.Fatalf("error page missing guidance: %s", rec.Body.String())
	}
}

func TestAdminDashboardRendersGuestList(t *testing.T) {
	t.Parallel()

	svc := &stubFulfillmentService{sales: []models.TicketSale{
		{Reference: "MG-0A1B2C3D", Email: "jane@example.com", Name: "Jane Dube", Quantity: 2, Status: "PAID", CreatedAt: time.Now()},
		{Reference: "MG-11223344", Email: "sam@example.com", Name: "Sam Khoza", Quantity: 3, Status: "PAID", CreatedAt: time.Now()},
	}}
	handler := AdminDashboard(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin-dashboard", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status mismatch: %d", rec.Code)
	}
	page := rec.Body.String()
	for _, want := range []string{"MG-0A1B2C3D", "jane@example.com", "Jane Dube", "PAID"} {
		if !strings.Contains(page, want) {
			t.Fatalf("dashboard missing %q: %s", want, page)
		}
	}
	if !strings.Contains(page, "Total Tickets Sold: 5") {
		t.Fatalf("dashboard missing ticket total: %s", page)
	}
}

func TestAdminDashboardEmptyGuestList(t *testing.T) {
	t.Parallel()

	handler := AdminDashboard(&stubFulfillmentService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin-dashboard", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status mismatch: %d", rec.Code)
	}
	page := rec.Body.String()
	if !strings.Contains(page, "No tickets sold yet.") {
		t.Fatalf("dashboard missing empty-state row: %s", page)
	}
	if !strings.Contains(page, "Total Tickets Sold: 0") {
		t.Fatalf("dashboard missing zero total: %s", page)
	}
}

func TestAdminDashboardRepositoryFailure(t *testing.T) {
	t.Parallel()

	svc := &stubFulfillmentService{err: pkgerrors.New(pkgerrors.CodeDependency, "list sales")}
	handler := AdminDashboard(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin-dashboard", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
