package model

import "sort"

// Form field names submitted by the website lead form.
const (
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldLoanType = "loanType"
	FieldAmount   = "amount"
	FieldMessage  = "message"
	FieldSource   = "source"
)

// KnownFields is the canonical ordering of the standard lead fields.
var KnownFields = []string{
	FieldName,
	FieldPhone,
	FieldEmail,
	FieldLoanType,
	FieldAmount,
	FieldMessage,
	FieldSource,
}

// Provider name constants
const (
	ProviderEmail       = "email"
	ProviderRecordStore = "record-store"
	ProviderSpreadsheet = "spreadsheet-append"
)

// Attachment is a single uploaded document, materialized to a temporary
// file that lives only for the duration of one request.
type Attachment struct {
	Filename    string
	Path        string
	ContentType string
	Size        int64
}

// LeadSubmission is the decoded result of one lead form submission.
// Fields holds every scalar form value, known and unknown keys alike.
type LeadSubmission struct {
	Fields     map[string]string
	Attachment *Attachment
}

// Field returns the named field value, or an empty string if absent.
func (l *LeadSubmission) Field(name string) string {
	return l.Fields[name]
}

// OrderedKeys returns the known fields present in the submission in
// canonical order, followed by any extra keys sorted alphabetically.
func (l *LeadSubmission) OrderedKeys() []string {
	keys := make([]string, 0, len(l.Fields))
	seen := make(map[string]bool, len(KnownFields))
	for _, k := range KnownFields {
		if _, ok := l.Fields[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	extras := make([]string, 0)
	for k := range l.Fields {
		if !seen[k] {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	return append(keys, extras...)
}

// ExtraKeys returns the field keys outside KnownFields, sorted.
func (l *LeadSubmission) ExtraKeys() []string {
	known := make(map[string]bool, len(KnownFields))
	for _, k := range KnownFields {
		known[k] = true
	}
	extras := make([]string, 0)
	for k := range l.Fields {
		if !known[k] {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	return extras
}

// AttachmentFilename returns the original filename of the uploaded
// document, or an empty string if nothing was uploaded.
func (l *LeadSubmission) AttachmentFilename() string {
	if l.Attachment == nil {
		return ""
	}
	return l.Attachment.Filename
}

// DeliveryResult identifies the provider that accepted a lead.
type DeliveryResult struct {
	ProviderName      string `json:"providerName"`
	ProviderReference string `json:"providerReference"`
}
