package checkout

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/maritalgrace/tickets-backend/pkg/config"
	pkgerrors "github.com/maritalgrace/tickets-backend/pkg/errors"
	"github.com/maritalgrace/tickets-backend/pkg/yoco"
)

type stubProvider struct {
	req      *yoco.CheckoutRequest
	checkout *yoco.Checkout
	err      error
}

func (s *stubProvider) CreateCheckout(_ context.Context, req yoco.CheckoutRequest) (*yoco.Checkout, error) {
	s.req = &req
	if s.err != nil {
		return nil, s.err
	}
	return s.checkout, nil
}

func testEvent() config.EventConfig {
	return config.EventConfig{
		Name:            "MARITAL GRACE",
		UnitPrice:       "100",
		Currency:        "ZAR",
		ReferencePrefix: "MG",
	}
}

func TestCreateBuildsProviderRequest(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{checkout: &yoco.Checkout{RedirectURL: "https://pay.example/c/abc"}}
	svc, err := NewService(provider, testEvent(), nil, nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	session, err := svc.Create(context.Background(), CreateInput{
		Email:     "jane@example.com",
		Quantity:  2,
		FirstName: "Jane",
		LastName:  "Dube",
		BaseURL:   "https://maritalgrace.onrender.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if session.RedirectURL != "https://pay.example/c/abc" {
		t.Fatalf("unexpected redirect url: %s", session.RedirectURL)
	}
	if provider.req == nil {
		t.Fatalf("provider was not called")
	}
	if provider.req.AmountCents != 20000 {
		t.Fatalf("amount mismatch: got %d", provider.req.AmountCents)
	}
	if provider.req.Currency != "ZAR" {
		t.Fatalf("currency mismatch: %s", provider.req.Currency)
	}

	parsed, err := url.Parse(provider.req.RedirectURL)
	if err != nil {
		t.Fatalf("parse redirect url: %v", err)
	}
	// The provider must send the buyer to the fulfillment handler, not back
	// to the booking page; nothing else renders or emails the ticket.
	if parsed.Path != "/payment-success" {
		t.Fatalf("redirect path mismatch: %s", parsed.Path)
	}
	q := parsed.Query()
	if q.Get("payment_success") != "true" {
		t.Fatalf("payment_success flag missing")
	}
	if q.Get("email") != "jane@example.com" {
		t.Fatalf("email param mismatch: %s", q.Get("email"))
	}
	if q.Get("qty") != "2" {
		t.Fatalf("qty param mismatch: %s", q.Get("qty"))
	}
	if q.Get("first_name") != "Jane" || q.Get("last_name") != "Dube" {
		t.Fatalf("name params mismatch: %s %s", q.Get("first_name"), q.Get("last_name"))
	}
}

func TestCreateRejectsMissingEmail(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{checkout: &yoco.Checkout{RedirectURL: "https://pay.example"}}
	svc, err := NewService(provider, testEvent(), nil, nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Create(context.Background(), CreateInput{Email: "  ", Quantity: 1, BaseURL: "https://x.test"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if provider.req != nil {
		t.Fatalf("provider should not be called on validation failure")
	}
}

func TestCreateWrapsProviderFailure(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{err: pkgerrors.New(pkgerrors.CodePaymentProvider, "status 401: bad key")}
	svc, err := NewService(provider, testEvent(), nil, nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Create(context.Background(), CreateInput{
		Email:    "jane@example.com",
		Quantity: 1,
		BaseURL:  "https://x.test",
	})
	if err == nil {
		t.Fatalf("expected provider error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodePaymentProvider {
		t.Fatalf("expected payment provider code, got %v", err)
	}
	meta := pkgerrors.MetadataFor(typed.Code())
	if meta.HTTPStatus != 500 {
		t.Fatalf("provider errors must map to 500, got %d", meta.HTTPStatus)
	}
	if strings.Contains(meta.PublicMessage, "401") {
		t.Fatalf("provider detail leaked into public message: %s", meta.PublicMessage)
	}
}

func TestAmountCents(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		unitPrice string
		quantity  int
		want      int64
		wantErr   bool
	}{
		{name: "single ticket", unitPrice: "100", quantity: 1, want: 10000},
		{name: "two tickets", unitPrice: "100", quantity: 2, want: 20000},
		{name: "fractional price", unitPrice: "99.50", quantity: 3, want: 29850},
		{name: "ten tickets", unitPrice: "100", quantity: 10, want: 100000},
		{name: "sub-cent precision", unitPrice: "0.001", quantity: 1, wantErr: true},
		{name: "garbage price", unitPrice: "free", quantity: 1, wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := AmountCents(tc.unitPrice, tc.quantity)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("amount: %v", err)
			}
			if got != tc.want {
				t.Fatalf("amount mismatch: got %d want %d", got, tc.want)
			}
		})
	}
}
