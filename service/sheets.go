package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/selvacse6139/SK-Associate/config"
	"github.com/selvacse6139/SK-Associate/model"
)

// SheetsProvider appends each lead as one row to a Google Sheet. It is the
// last-resort channel: append-only, no record identifier comes back.
type SheetsProvider struct {
	cfg  *config.SheetsConfig
	opts []option.ClientOption
	now  func() time.Time
}

// NewSheetsProvider creates the provider. Extra client options replace the
// default service-account authentication, which lets tests point the client
// at a fake endpoint.
func NewSheetsProvider(cfg *config.SheetsConfig, opts ...option.ClientOption) *SheetsProvider {
	return &SheetsProvider{
		cfg:  cfg,
		opts: opts,
		now:  time.Now,
	}
}

func (p *SheetsProvider) Name() string {
	return model.ProviderSpreadsheet
}

func (p *SheetsProvider) Configured() bool {
	return p.cfg.IsConfigured()
}

// Deliver appends a row of timestamp, lead fields and attachment filename
// (empty when nothing was uploaded) to the configured sheet.
func (p *SheetsProvider) Deliver(ctx context.Context, lead *model.LeadSubmission) (*model.DeliveryResult, error) {
	svc, err := p.service(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	row := []any{
		p.now().UTC().Format(time.RFC3339),
		lead.Field(model.FieldName),
		lead.Field(model.FieldPhone),
		lead.Field(model.FieldEmail),
		lead.Field(model.FieldLoanType),
		lead.Field(model.FieldAmount),
		lead.Field(model.FieldMessage),
		lead.AttachmentFilename(),
	}

	readRange := fmt.Sprintf("%s!A:H", p.cfg.SheetName)
	_, err = svc.Spreadsheets.Values.
		Append(p.cfg.SpreadsheetID, readRange, &sheets.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to append row: %w", err)
	}

	return &model.DeliveryResult{ProviderName: model.ProviderSpreadsheet}, nil
}

func (p *SheetsProvider) service(ctx context.Context) (*sheets.Service, error) {
	if len(p.opts) > 0 {
		return sheets.NewService(ctx, p.opts...)
	}

	conf := &jwt.Config{
		Email:      p.cfg.ServiceAccountEmail,
		PrivateKey: []byte(p.cfg.PrivateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	return sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
}
