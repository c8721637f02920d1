package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/hidramais/vtex-alerts/internal/config"
	"github.com/hidramais/vtex-alerts/internal/repository"
)

// NewConnection opens and pings a Postgres connection pool
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(60 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewRepositories creates all repositories on top of db
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		WebhookLog: NewWebhookLogRepository(db, logger),
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS webhook_logs (
	id                 UUID PRIMARY KEY,
	status             TEXT,
	order_number       TEXT,
	message_template   TEXT,
	purchase_date      TEXT,
	tracking_url       TEXT,
	note               TEXT,
	webhook_payload    JSONB NOT NULL,
	blip_payload       JSONB,
	blip_response      JSONB,
	vtex_order_payload JSONB,
	error_message      TEXT,
	error_stack        TEXT,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_webhook_logs_order_template
	ON webhook_logs (order_number, message_template);
`

// EnsureSchema creates the webhook_logs table when it does not exist yet
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
