package checkout

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/maritalgrace/tickets-backend/pkg/config"
	pkgerrors "github.com/maritalgrace/tickets-backend/pkg/errors"
	"github.com/maritalgrace/tickets-backend/pkg/logger"
	"github.com/maritalgrace/tickets-backend/pkg/metrics"
	"github.com/maritalgrace/tickets-backend/pkg/yoco"
)

// PaymentProvider is the slice of the Yoco client the service needs.
type PaymentProvider interface {
	CreateCheckout(ctx context.Context, req yoco.CheckoutRequest) (*yoco.Checkout, error)
}

// Service creates hosted checkout sessions for ticket purchases.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Session, error)
}

// CreateInput is one buyer's checkout submission. BaseURL is the
// scheme://host the payment provider should send the browser back to; it is
// derived from the incoming request when no public base URL is configured.
type CreateInput struct {
	Email     string
	Quantity  int
	FirstName string
	LastName  string
	BaseURL   string
}

// Session is the provider-hosted payment page created for the buyer.
type Session struct {
	RedirectURL string
	AmountCents int64
	Currency    string
}

type service struct {
	provider PaymentProvider
	event    config.EventConfig
	logg     *logger.Logger
	metrics  *metrics.FulfillmentMetrics
}

// NewService wires the checkout session creator.
func NewService(provider PaymentProvider, event config.EventConfig, logg *logger.Logger, m *metrics.FulfillmentMetrics) (Service, error) {
	if provider == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment provider required")
	}
	return &service{provider: provider, event: event, logg: logg, metrics: m}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Session, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	amountCents, err := AmountCents(s.event.UnitPrice, input.Quantity)
	if err != nil {
		return nil, err
	}

	successURL, err := buildRedirectURL(input.BaseURL, input)
	if err != nil {
		return nil, err
	}

	co, err := s.provider.CreateCheckout(ctx, yoco.CheckoutRequest{
		AmountCents: amountCents,
		Currency:    s.event.Currency,
		RedirectURL: successURL,
		SuccessURL:  successURL,
		Metadata: map[string]string{
			"email":    email,
			"quantity": strconv.Itoa(input.Quantity),
			"product":  s.event.Name,
		},
	})
	if err != nil {
		s.metrics.IncCheckout("failure")
		// Provider detail stays in the logs; the caller only ever sees the
		// generic checkout-failed response.
		if s.logg != nil {
			s.logg.Error(ctx, "checkout.provider_failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePaymentProvider, err, "create checkout session")
	}

	s.metrics.IncCheckout("success")
	return &Session{
		RedirectURL: co.RedirectURL,
		AmountCents: amountCents,
		Currency:    s.event.Currency,
	}, nil
}

// AmountCents converts the configured per-ticket price into the total amount
// in minor currency units: quantity x unit price x 100.
func AmountCents(unitPrice string, quantity int) (int64, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(unitPrice))
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "invalid unit price configuration")
	}
	total := price.Mul(decimal.NewFromInt(int64(quantity))).Mul(decimal.NewFromInt(100))
	if !total.IsInteger() {
		return 0, pkgerrors.New(pkgerrors.CodeInternal, "unit price has sub-cent precision")
	}
	return total.IntPart(), nil
}

// buildRedirectURL points the provider back at the fulfillment handler and
// carries the order context through the round trip as query parameters; there
// is no server-side session between checkout creation and fulfillment.
func buildRedirectURL(baseURL string, input CreateInput) (string, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "redirect base url required")
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "invalid redirect base url")
	}
	u.Path = "/payment-success"

	q := u.Query()
	q.Set("payment_success", "true")
	q.Set("email", strings.TrimSpace(input.Email))
	q.Set("qty", strconv.Itoa(input.Quantity))
	if name := strings.TrimSpace(input.FirstName); name != "" {
		q.Set("first_name", name)
	}
	if name := strings.TrimSpace(input.LastName); name != "" {
		q.Set("last_name", name)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
