package yoco

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/maritalgrace/tickets-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://payments.yoco.com"
	checkoutsPath              = "/api/checkouts"
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 10 * time.Second
)

var errSecretKeyRequired = errors.New("yoco secret key is required")

// Client wraps Yoco's hosted-checkout API. Yoco publishes no Go SDK, so the
// surface we need (checkout creation) is called directly.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured payments base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the Yoco client given the account's secret key.
func NewClient(secretKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(secretKey)
	if trimmedKey == "" {
		return nil, errSecretKeyRequired
	}

	client := &Client{
		secretKey:  trimmedKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client, nil
}

// CheckoutRequest describes the payload sent to the checkout-creation API.
type CheckoutRequest struct {
	AmountCents int64             `json:"amount"`
	Currency    string            `json:"currency"`
	SuccessURL  string            `json:"successUrl,omitempty"`
	CancelURL   string            `json:"cancelUrl,omitempty"`
	RedirectURL string            `json:"redirectUrl,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Checkout is the hosted payment page Yoco creates for a request.
type Checkout struct {
	ID          string
	RedirectURL string
	Status      string
}

// CreateCheckout asks Yoco for a hosted payment page and returns its URL.
func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodePaymentProvider, "yoco client not configured")
	}
	if req.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout amount must be positive")
	}
	if strings.TrimSpace(req.Currency) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout currency is required")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePaymentProvider, err, "marshal checkout request")
	}

	url := strings.TrimRight(c.baseURL, "/") + checkoutsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePaymentProvider, err, "build checkout request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePaymentProvider, err, "execute checkout request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(
			pkgerrors.CodePaymentProvider,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"checkout creation failed",
		)
	}

	var apiResp struct {
		ID          string `json:"id"`
		RedirectURL string `json:"redirectUrl"`
		Status      string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePaymentProvider, err, "decode checkout response")
	}
	if apiResp.RedirectURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodePaymentProvider, "checkout response missing redirect url")
	}

	return &Checkout{
		ID:          apiResp.ID,
		RedirectURL: apiResp.RedirectURL,
		Status:      apiResp.Status,
	}, nil
}
