package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/maritalgrace/tickets-backend/pkg/config"
)

var errSpreadsheetRequired = errors.New("spreadsheet id is required")

// Client appends guest-list rows to the configured Google Sheet.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	writeRange    string
}

// Row is one completed sale. Field order mirrors the sheet's header row
// exactly (Date, Name, Email, Reference, Quantity, Status); the Sheets API
// will not complain about a mismatch, it just files values under the wrong
// columns.
type Row struct {
	Date      string
	Name      string
	Email     string
	Reference string
	Quantity  int
	Status    string
}

// NewClient builds the Sheets client. Credentials come from the configured
// service-account JSON, falling back to application default credentials.
func NewClient(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	spreadsheetID := strings.TrimSpace(cfg.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errSpreadsheetRequired
	}

	opts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	if creds := strings.TrimSpace(cfg.CredentialsJSON); creds != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	writeRange := strings.TrimSpace(cfg.Range)
	if writeRange == "" {
		writeRange = "Sales!A:F"
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
	}, nil
}

// Append adds one row below the sheet's existing data.
func (c *Client) Append(ctx context.Context, row Row) error {
	if c == nil || c.svc == nil {
		return errors.New("sheets client not initialized")
	}

	values := &sheetsapi.ValueRange{
		Values: [][]any{{row.Date, row.Name, row.Email, row.Reference, row.Quantity, row.Status}},
	}

	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.writeRange, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending sales row: %w", err)
	}
	return nil
}
