package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/selvacse6139/SK-Associate/config"
	"github.com/selvacse6139/SK-Associate/model"
)

const airtableAPIURL = "https://api.airtable.com/v0"

// AirtableProvider stores each lead as a record in an Airtable base. Known
// fields map to fixed columns; anything extra is dumped into Notes.
type AirtableProvider struct {
	cfg        *config.AirtableConfig
	baseURL    string
	httpClient *http.Client
}

func NewAirtableProvider(cfg *config.AirtableConfig) *AirtableProvider {
	return &AirtableProvider{
		cfg:     cfg,
		baseURL: airtableAPIURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type airtableCreateRequest struct {
	Fields map[string]any `json:"fields"`
}

type airtableCreateResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *AirtableProvider) Name() string {
	return model.ProviderRecordStore
}

func (p *AirtableProvider) Configured() bool {
	return p.cfg.IsConfigured()
}

// Deliver creates one record in the configured table. Only the attachment
// filename is stored; the file content never leaves the server.
func (p *AirtableProvider) Deliver(ctx context.Context, lead *model.LeadSubmission) (*model.DeliveryResult, error) {
	fields := map[string]any{
		"Name":      lead.Field(model.FieldName),
		"Phone":     lead.Field(model.FieldPhone),
		"Email":     lead.Field(model.FieldEmail),
		"Loan Type": lead.Field(model.FieldLoanType),
		"Amount":    lead.Field(model.FieldAmount),
		"Message":   lead.Field(model.FieldMessage),
		"Source":    lead.Field(model.FieldSource),
	}
	if len(lead.ExtraKeys()) > 0 {
		fields["Notes"] = renderLeadBody(lead)
	}
	if lead.Attachment != nil {
		fields["Attachment"] = lead.Attachment.Filename
	}

	body, err := json.Marshal(airtableCreateRequest{Fields: fields})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s", p.baseURL, url.PathEscape(p.cfg.BaseID), url.PathEscape(p.cfg.Table))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("airtable returned %d: %s", resp.StatusCode, string(excerpt))
	}

	var result airtableCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("airtable error: %s: %s", result.Error.Type, result.Error.Message)
	}
	if result.ID == "" {
		return nil, fmt.Errorf("airtable response missing record id")
	}

	return &model.DeliveryResult{
		ProviderName:      model.ProviderRecordStore,
		ProviderReference: result.ID,
	}, nil
}
