package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/selvacse6139/SK-Associate/config"
	"github.com/selvacse6139/SK-Associate/model"
)

// MailSender sends composed messages through an SMTP relay.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailProvider mails each lead to the consultancy inbox. It is the
// highest-priority channel because a direct notification is the most
// immediate one.
type EmailProvider struct {
	cfg    *config.SMTPConfig
	brand  string
	sender MailSender
}

func NewEmailProvider(cfg *config.SMTPConfig, brand string) *EmailProvider {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.Secure
	return &EmailProvider{
		cfg:    cfg,
		brand:  brand,
		sender: dialer,
	}
}

func (p *EmailProvider) Name() string {
	return model.ProviderEmail
}

func (p *EmailProvider) Configured() bool {
	return p.cfg.IsConfigured()
}

// Deliver sends the lead as a plain-text email with every field rendered as
// a key: value line. The generated Message-Id doubles as the success
// reference so the delivery can be traced in the relay logs.
func (p *EmailProvider) Deliver(_ context.Context, lead *model.LeadSubmission) (*model.DeliveryResult, error) {
	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), p.cfg.Host)

	m := gomail.NewMessage()
	m.SetHeader("From", p.cfg.From)
	m.SetHeader("To", p.cfg.To)
	m.SetHeader("Subject", fmt.Sprintf("%s - New Loan Enquiry", p.brand))
	m.SetHeader("Message-Id", messageID)
	m.SetBody("text/plain", renderLeadBody(lead))

	if lead.Attachment != nil {
		m.Attach(lead.Attachment.Path, gomail.Rename(lead.Attachment.Filename))
	}

	if err := p.sender.DialAndSend(m); err != nil {
		return nil, fmt.Errorf("smtp send failed: %w", err)
	}

	return &model.DeliveryResult{
		ProviderName:      model.ProviderEmail,
		ProviderReference: messageID,
	}, nil
}

// renderLeadBody renders every submitted field as a key: value line.
func renderLeadBody(lead *model.LeadSubmission) string {
	var b strings.Builder
	for _, key := range lead.OrderedKeys() {
		fmt.Fprintf(&b, "%s: %s\n", key, lead.Fields[key])
	}
	return b.String()
}
