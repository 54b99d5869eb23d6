package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	expensesSheet = "Expenses"
	summarySheet  = "Category Summary"
)

// Exporter writes reports to a Google spreadsheet.
type Exporter struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

var _ ReportExporter = (*Exporter)(nil)

// NewExporter creates a Google Sheets exporter.
func NewExporter(ctx context.Context, config Config, logger *slog.Logger) (*Exporter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Exporter{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Export writes the report into the Expenses and Category Summary tabs,
// replacing whatever was there before.
func (e *Exporter) Export(ctx context.Context, rep *Report) error {
	e.logger.Info("starting export",
		"rows", len(rep.Rows),
		"categories", len(rep.Breakdown.Slices))

	spreadsheetID, err := e.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if err = e.ensureTabs(ctx, spreadsheetID); err != nil {
		return fmt.Errorf("failed to prepare tabs: %w", err)
	}

	tabs := []struct {
		name   string
		values [][]any
	}{
		{expensesSheet, expenseRows(rep)},
		{summarySheet, summaryRows(rep)},
	}
	for _, tab := range tabs {
		if err = e.withRetry(ctx, func() error {
			return e.writeTab(ctx, spreadsheetID, tab.name, tab.values)
		}); err != nil {
			return fmt.Errorf("failed to write %s: %w", tab.name, err)
		}
	}

	if e.config.EnableFormatting {
		if err = e.withRetry(ctx, func() error {
			return e.applyFormatting(ctx, spreadsheetID)
		}); err != nil {
			// Formatting is cosmetic; the data is already written.
			e.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	e.logger.Info("export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(rep.Rows))

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token, err := GetOrCreateToken(ctx, OAuth2Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenFile:    config.TokenFile,
		})
		if err != nil {
			if config.RefreshToken == "" {
				return nil, fmt.Errorf("unable to obtain OAuth2 token: %w", err)
			}
			token = &oauth2.Token{RefreshToken: config.RefreshToken, TokenType: "Bearer"}
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet verifies the configured spreadsheet is reachable,
// or creates a fresh one with both tabs.
func (e *Exporter) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if e.config.SpreadsheetID != "" {
		_, err := e.service.Spreadsheets.Get(e.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", e.config.SpreadsheetID, err)
		}
		return e.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    e.config.SpreadsheetName,
			TimeZone: e.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: expensesSheet}},
			{Properties: &sheets.SheetProperties{Title: summarySheet}},
		},
	}

	created, err := e.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	e.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	e.config.SpreadsheetID = created.SpreadsheetId
	return created.SpreadsheetId, nil
}

// ensureTabs adds any missing tab to an existing spreadsheet.
func (e *Exporter) ensureTabs(ctx context.Context, spreadsheetID string) error {
	spreadsheet, err := e.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return err
	}

	existing := make(map[string]bool, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		existing[s.Properties.Title] = true
	}

	var requests []*sheets.Request
	for _, title := range []string{expensesSheet, summarySheet} {
		if existing[title] {
			continue
		}
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		})
	}
	if len(requests) == 0 {
		return nil
	}

	_, err = e.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

// writeTab clears a tab and replaces its contents.
func (e *Exporter) writeTab(ctx context.Context, spreadsheetID, tab string, values [][]any) error {
	clearRange := fmt.Sprintf("%s!A:Z", tab)
	if _, err := e.service.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to clear %s: %w", tab, err)
	}

	valueRange := &sheets.ValueRange{Values: values}
	_, err := e.service.Spreadsheets.Values.Update(spreadsheetID, fmt.Sprintf("%s!A1", tab), valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}

// applyFormatting bolds header rows and freezes them on both tabs.
func (e *Exporter) applyFormatting(ctx context.Context, spreadsheetID string) error {
	spreadsheet, err := e.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return err
	}

	ids := make(map[string]int64, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		ids[s.Properties.Title] = s.Properties.SheetId
	}

	var requests []*sheets.Request
	for _, title := range []string{expensesSheet, summarySheet} {
		sheetID, ok := ids[title]
		if !ok {
			continue
		}
		requests = append(requests,
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:       sheetID,
						StartRowIndex: 0,
						EndRowIndex:   1,
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							TextFormat: &sheets.TextFormat{Bold: true},
						},
					},
					Fields: "userEnteredFormat.textFormat.bold",
				},
			},
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId: sheetID,
						GridProperties: &sheets.GridProperties{
							FrozenRowCount: 1,
						},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
		)
	}

	_, err = e.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

// withRetry runs fn up to RetryAttempts times with exponential backoff.
func (e *Exporter) withRetry(ctx context.Context, fn func() error) error {
	var err error
	delay := e.config.RetryDelay
	for attempt := 1; attempt <= e.config.RetryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == e.config.RetryAttempts {
			break
		}
		e.logger.Warn("sheets call failed, retrying",
			"attempt", attempt,
			"delay", delay,
			"error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
