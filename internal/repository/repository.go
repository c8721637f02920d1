package repository

import (
	"context"

	"github.com/hidramais/vtex-alerts/internal/domain"
)

// WebhookLogRepository stores the append-only webhook audit log
type WebhookLogRepository interface {
	Create(ctx context.Context, log *domain.WebhookLog) error
	// ExistsSent reports whether a campaign for this order and template was
	// already accepted by Blip.
	ExistsSent(ctx context.Context, orderNumber, messageTemplate string) (bool, error)
}

// Repositories groups the repositories backed by the configured database.
// It is nil when no database is configured.
type Repositories struct {
	WebhookLog WebhookLogRepository
}
