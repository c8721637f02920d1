package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hidramais/vtex-alerts/internal/domain"
)

type webhookLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWebhookLogRepository creates a new webhook log repository
func NewWebhookLogRepository(db *sql.DB, logger *zap.Logger) *webhookLogRepository {
	return &webhookLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *webhookLogRepository) Create(ctx context.Context, log *domain.WebhookLog) error {
	query := `
		INSERT INTO webhook_logs (
			id, status, order_number, message_template, purchase_date, tracking_url, note,
			webhook_payload, blip_payload, blip_response, vtex_order_payload,
			error_message, error_stack, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		nullString(log.Status),
		nullString(log.OrderNumber),
		nullString(log.MessageTemplate),
		nullString(log.PurchaseDate),
		nullString(log.TrackingURL),
		nullString(log.Note),
		log.WebhookPayload,
		log.BlipPayload,
		log.BlipResponse,
		log.VTEXOrderPayload,
		nullString(log.ErrorMessage),
		nullString(log.ErrorStack),
		log.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create webhook log", zap.Error(err))
		return err
	}

	return nil
}

// ExistsSent only counts rows for campaigns Blip accepted. Skips and failed
// sends for the same pair do not block a later attempt.
func (r *webhookLogRepository) ExistsSent(ctx context.Context, orderNumber, messageTemplate string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM webhook_logs
			WHERE order_number = $1
			  AND message_template = $2
			  AND blip_response IS NOT NULL
			  AND error_message IS NULL
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, orderNumber, messageTemplate).Scan(&exists); err != nil {
		r.logger.Error("Failed to query sent webhook logs", zap.Error(err))
		return false, err
	}

	return exists, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
