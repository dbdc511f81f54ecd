package brevo

import (
	"bytes"
	"context"
	"encoding/base64"
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
	defaultBaseURL             = "https://api.brevo.com"
	smtpEmailPath              = "/v3/smtp/email"
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 10 * time.Second
)

var (
	errAPIKeyRequired = errors.New("brevo api key is required")
	errSenderRequired = errors.New("brevo sender email is required")
)

// Client sends transactional email through Brevo's SMTP API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	senderName  string
	senderEmail string
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

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the Brevo client with a fixed sender identity.
func NewClient(apiKey, senderName, senderEmail string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}
	trimmedSender := strings.TrimSpace(senderEmail)
	if trimmedSender == "" {
		return nil, errSenderRequired
	}

	client := &Client{
		apiKey:      trimmedKey,
		senderName:  strings.TrimSpace(senderName),
		senderEmail: trimmedSender,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultClientTimeout},
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

// Attachment is a file carried by the email, encoded for transport.
type Attachment struct {
	Name    string
	Content []byte
}

// SendEmailParams describes one transactional email.
type SendEmailParams struct {
	ToEmail     string
	ToName      string
	Subject     string
	HTMLContent string
	Attachments []Attachment
}

type apiSender struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type apiRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type apiAttachment struct {
	Content string `json:"content"`
	Name    string `json:"name"`
}

type apiEmailRequest struct {
	Sender      apiSender       `json:"sender"`
	To          []apiRecipient  `json:"to"`
	Subject     string          `json:"subject"`
	HTMLContent string          `json:"htmlContent"`
	Attachment  []apiAttachment `json:"attachment,omitempty"`
}

// SendEmail submits one email with the configured sender identity.
func (c *Client) SendEmail(ctx context.Context, params SendEmailParams) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeProcessing, "brevo client not configured")
	}
	if strings.TrimSpace(params.ToEmail) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient email is required")
	}
	if strings.TrimSpace(params.Subject) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email subject is required")
	}

	req := apiEmailRequest{
		Sender:      apiSender{Name: c.senderName, Email: c.senderEmail},
		To:          []apiRecipient{{Email: params.ToEmail, Name: params.ToName}},
		Subject:     params.Subject,
		HTMLContent: params.HTMLContent,
	}
	for _, att := range params.Attachments {
		req.Attachment = append(req.Attachment, apiAttachment{
			Content: base64.StdEncoding.EncodeToString(att.Content),
			Name:    att.Name,
		})
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeProcessing, err, "marshal email request")
	}

	url := strings.TrimRight(c.baseURL, "/") + smtpEmailPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeProcessing, err, "build email request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeProcessing, err, "execute email request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(
			pkgerrors.CodeProcessing,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"email dispatch failed",
		)
	}

	return nil
}
