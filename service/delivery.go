package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/selvacse6139/SK-Associate/model"
	"github.com/selvacse6139/SK-Associate/pkg/logger"
)

// Provider is an external delivery channel for a lead.
type Provider interface {
	// Name identifies the provider in responses and logs.
	Name() string
	// Configured reports whether the provider has all required settings.
	Configured() bool
	// Deliver pushes the lead to the backing service.
	Deliver(ctx context.Context, lead *model.LeadSubmission) (*model.DeliveryResult, error)
}

// ErrAllProvidersFailed is returned when every provider was either
// unconfigured or failed its delivery attempt.
var ErrAllProvidersFailed = errors.New("no delivery provider configured or all providers failed")

// Dispatcher attempts delivery through providers in a fixed priority order,
// stopping at the first success. Provider attempts are strictly sequential;
// a failure in one provider must never prevent the next from being tried.
type Dispatcher struct {
	providers []Provider
}

// NewDispatcher creates a dispatcher over the given providers. The argument
// order is the delivery priority order. The configured set is logged once
// so a misconfigured deployment is visible at startup.
func NewDispatcher(providers ...Provider) *Dispatcher {
	configured := make([]string, 0, len(providers))
	for _, p := range providers {
		if p.Configured() {
			configured = append(configured, p.Name())
		}
	}
	if len(configured) == 0 {
		slog.Warn("no delivery provider configured, lead submissions will fail")
	} else {
		slog.Info("delivery providers configured", "providers", configured)
	}
	return &Dispatcher{providers: providers}
}

// Dispatch tries each configured provider in order and returns the first
// success. Unconfigured providers are skipped silently; a provider failure
// is logged and swallowed, never surfaced to the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, lead *model.LeadSubmission) (*model.DeliveryResult, error) {
	for _, p := range d.providers {
		if !p.Configured() {
			logger.Debug(ctx, "provider not configured, skipping", "provider", p.Name())
			continue
		}

		result, err := p.Deliver(ctx, lead)
		if err != nil {
			logger.Warn(ctx, "provider delivery failed, trying next",
				"provider", p.Name(),
				"error", err,
			)
			continue
		}

		logger.Info(ctx, "lead delivered",
			"provider", result.ProviderName,
			"reference", result.ProviderReference,
		)
		return result, nil
	}

	return nil, ErrAllProvidersFailed
}
