package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/maritalgrace/tickets-backend/internal/checkout"
	pkgerrors "github.com/maritalgrace/tickets-backend/pkg/errors"
)

type stubCheckoutService struct {
	input   *checkout.CreateInput
	session *checkout.Session
	err     error
}

func (s *stubCheckoutService) Create(_ context.Context, input checkout.CreateInput) (*checkout.Session, error) {
	s.input = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func TestCreateCheckoutSuccess(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{session: &checkout.Session{RedirectURL: "https://pay.example/c/abc"}}
	handler := CreateCheckout(svc, "https://maritalgrace.onrender.com", nil)

	body := `{"email":"jane@example.com","quantity":2,"first_name":"Jane"}`
	req := httptest.NewRequest(http.MethodPost, "/create-checkout", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status mismatch: got %d body %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			RedirectURL string `json:"redirect_url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RedirectURL != "https://pay.example/c/abc" {
		t.Fatalf("redirect url mismatch: %s", envelope.Data.RedirectURL)
	}

	if svc.input == nil {
		t.Fatalf("service not called")
	}
	if svc.input.BaseURL != "https://maritalgrace.onrender.com" {
		t.Fatalf("configured base url not used: %s", svc.input.BaseURL)
	}
	if svc.input.Quantity != 2 || svc.input.Email != "jane@example.com" {
		t.Fatalf("input mismatch: %+v", svc.input)
	}
}

func TestCreateCheckoutDerivesBaseURLFromRequest(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{session: &checkout.Session{RedirectURL: "https://pay.example"}}
	handler := CreateCheckout(svc, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/create-checkout", strings.NewReader(`{"email":"a@b.c","quantity":1}`))
	req.Host = "tickets.local:8080"
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status mismatch: %d", rec.Code)
	}
	if svc.input.BaseURL != "http://tickets.local:8080" {
		t.Fatalf("derived base url mismatch: %s", svc.input.BaseURL)
	}
}

func TestCreateCheckoutRejectsBadBody(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{session: &checkout.Session{}}
	handler := CreateCheckout(svc, "", nil)

	cases := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"quantity":1}`},
		{name: "bad email", body: `{"email":"not-an-email","quantity":1}`},
		{name: "zero quantity", body: `{"email":"a@b.c","quantity":0}`},
		{name: "unknown field", body: `{"email":"a@b.c","quantity":1,"amount":1}`},
		{name: "not json", body: `email=a@b.c`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/create-checkout", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
	if svc.input != nil {
		t.Fatalf("service must not be called for invalid bodies")
	}
}

func TestCreateCheckoutProviderFailure(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodePaymentProvider, "status 502: upstream")}
	handler := CreateCheckout(svc, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/create-checkout", strings.NewReader(`{"email":"a@b.c","quantity":1}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodePaymentProvider) {
		t.Fatalf("error code mismatch: %s", envelope.Error.Code)
	}
	if strings.Contains(envelope.Error.Message, "502") {
		t.Fatalf("provider detail leaked: %s", envelope.Error.Message)
	}
	if strings.Contains(rec.Body.String(), "redirect") {
		t.Fatalf("no redirect url may be exposed on failure")
	}
}
