// Package mirror appends applied transactions to a Google Sheet so a
// spreadsheet stays a human-browsable copy of the ledger. Strictly
// best-effort and strictly additive; the sheet is never the source of
// truth.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"dompet/internal/core"
	applog "dompet/internal/log"
)

// Sheets mirrors transactions into one sheet of a spreadsheet.
type Sheets struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	log           *applog.Logger
}

// Config carries the OAuth client and token JSON blobs plus the target
// spreadsheet. Credentials come from config, never from files baked into
// the binary.
type Config struct {
	SpreadsheetID   string
	SheetName       string
	OAuthClientJSON string
	OAuthTokenJSON  string
}

func New(ctx context.Context, cfg Config, logger *applog.Logger) (*Sheets, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("missing spreadsheet id")
	}
	sheetName := cfg.SheetName
	if sheetName == "" {
		sheetName = "Transaksi"
	}

	conf, err := google.ConfigFromJSON([]byte(cfg.OAuthClientJSON), gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(cfg.OAuthTokenJSON), &token); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	svc, err := gsheet.NewService(ctx, goption.WithHTTPClient(conf.Client(ctx, &token)))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Sheets{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
		log:           logger.WithComponent(applog.ComponentMirror),
	}, nil
}

// Append adds one row per transaction to the mirror sheet.
func (s *Sheets) Append(ctx context.Context, ownerID string, txns []core.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	values := make([][]any, 0, len(txns))
	for _, t := range txns {
		values = append(values, []any{
			t.Date.String(),
			ownerID,
			t.ID,
			string(t.Kind),
			t.Category,
			t.Description,
			t.Amount.String(),
			t.WalletID,
			t.ToWalletID,
		})
	}

	rng := fmt.Sprintf("%s!A:I", s.sheetName)
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, rng, &gsheet.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append rows: %w", err)
	}

	s.log.DebugContext(ctx, "transactions mirrored",
		applog.FieldOwnerID, ownerID,
		applog.FieldBatchSize, len(txns))
	return nil
}
