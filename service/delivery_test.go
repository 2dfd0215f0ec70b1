package service

import (
	"context"
	"errors"
	"testing"

	"github.com/selvacse6139/SK-Associate/model"
)

type fakeProvider struct {
	name       string
	configured bool
	calls      int
	result     *model.DeliveryResult
	err        error
}

func (f *fakeProvider) Name() string     { return f.name }
func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) Deliver(_ context.Context, _ *model.LeadSubmission) (*model.DeliveryResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testLead() *model.LeadSubmission {
	return &model.LeadSubmission{
		Fields: map[string]string{
			"name":     "Asha",
			"phone":    "9876543210",
			"email":    "asha@example.com",
			"loanType": "home",
			"amount":   "500000",
		},
	}
}

func TestDispatchNoProvidersConfigured(t *testing.T) {
	email := &fakeProvider{name: model.ProviderEmail}
	record := &fakeProvider{name: model.ProviderRecordStore}
	sheet := &fakeProvider{name: model.ProviderSpreadsheet}

	d := NewDispatcher(email, record, sheet)

	_, err := d.Dispatch(context.Background(), testLead())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Expected ErrAllProvidersFailed, got %v", err)
	}
	if email.calls != 0 || record.calls != 0 || sheet.calls != 0 {
		t.Error("Expected no provider to be attempted")
	}
}

func TestDispatchOnlySpreadsheetConfigured(t *testing.T) {
	email := &fakeProvider{name: model.ProviderEmail}
	record := &fakeProvider{name: model.ProviderRecordStore}
	sheet := &fakeProvider{
		name:       model.ProviderSpreadsheet,
		configured: true,
		result:     &model.DeliveryResult{ProviderName: model.ProviderSpreadsheet},
	}

	d := NewDispatcher(email, record, sheet)

	result, err := d.Dispatch(context.Background(), testLead())
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if result.ProviderName != model.ProviderSpreadsheet {
		t.Errorf("Expected provider spreadsheet-append, got %s", result.ProviderName)
	}
	if sheet.calls != 1 {
		t.Errorf("Expected 1 spreadsheet call, got %d", sheet.calls)
	}
	if email.calls != 0 || record.calls != 0 {
		t.Error("Expected unconfigured providers to be skipped without attempts")
	}
}

func TestDispatchFirstSuccessWins(t *testing.T) {
	email := &fakeProvider{
		name:       model.ProviderEmail,
		configured: true,
		result:     &model.DeliveryResult{ProviderName: model.ProviderEmail, ProviderReference: "<id@relay>"},
	}
	record := &fakeProvider{name: model.ProviderRecordStore, configured: true}
	sheet := &fakeProvider{name: model.ProviderSpreadsheet, configured: true}

	d := NewDispatcher(email, record, sheet)

	result, err := d.Dispatch(context.Background(), testLead())
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if result.ProviderName != model.ProviderEmail {
		t.Errorf("Expected provider email, got %s", result.ProviderName)
	}
	if record.calls != 0 || sheet.calls != 0 {
		t.Errorf("Expected no attempt after first success, got record=%d sheet=%d", record.calls, sheet.calls)
	}
}

func TestDispatchFallsThroughOnFailure(t *testing.T) {
	email := &fakeProvider{
		name:       model.ProviderEmail,
		configured: true,
		err:        errors.New("smtp: connection refused"),
	}
	record := &fakeProvider{
		name:       model.ProviderRecordStore,
		configured: true,
		result:     &model.DeliveryResult{ProviderName: model.ProviderRecordStore, ProviderReference: "rec123"},
	}
	sheet := &fakeProvider{name: model.ProviderSpreadsheet, configured: true}

	d := NewDispatcher(email, record, sheet)

	result, err := d.Dispatch(context.Background(), testLead())
	if err != nil {
		t.Fatalf("Expected the email failure to be swallowed, got %v", err)
	}
	if result.ProviderName != model.ProviderRecordStore {
		t.Errorf("Expected provider record-store, got %s", result.ProviderName)
	}
	if email.calls != 1 {
		t.Errorf("Expected email to be attempted once, got %d", email.calls)
	}
	if sheet.calls != 0 {
		t.Errorf("Expected no spreadsheet attempt, got %d", sheet.calls)
	}
}

func TestDispatchAllConfiguredFail(t *testing.T) {
	email := &fakeProvider{name: model.ProviderEmail, configured: true, err: errors.New("auth failed")}
	record := &fakeProvider{name: model.ProviderRecordStore, configured: true, err: errors.New("quota exceeded")}
	sheet := &fakeProvider{name: model.ProviderSpreadsheet, configured: true, err: errors.New("permission denied")}

	d := NewDispatcher(email, record, sheet)

	_, err := d.Dispatch(context.Background(), testLead())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Expected ErrAllProvidersFailed, got %v", err)
	}
	if email.calls != 1 || record.calls != 1 || sheet.calls != 1 {
		t.Errorf("Expected every configured provider to be attempted, got %d/%d/%d",
			email.calls, record.calls, sheet.calls)
	}
}
