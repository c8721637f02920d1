package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/hidramais/vtex-alerts/internal/domain"
)

func newMockRepo(t *testing.T) (*webhookLogRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewWebhookLogRepository(db, zap.NewNop()), mock
}

func TestWebhookLogCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	log := &domain.WebhookLog{
		Status:         "handling",
		OrderNumber:    "1234-01",
		Note:           "missing required data",
		WebhookPayload: datatypes.JSON(`{"orderId":"1234-01"}`),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO webhook_logs")).
		WithArgs(
			sqlmock.AnyArg(),
			"handling",
			"1234-01",
			nil,
			nil,
			nil,
			"missing required data",
			`{"orderId":"1234-01"}`,
			nil,
			nil,
			nil,
			nil,
			nil,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), log); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if log.ID == uuid.Nil {
		t.Errorf("Expected ID to be assigned")
	}
	if log.CreatedAt.IsZero() {
		t.Errorf("Expected CreatedAt to be assigned")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestWebhookLogCreateError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO webhook_logs")).
		WillReturnError(sql.ErrConnDone)

	err := repo.Create(context.Background(), &domain.WebhookLog{WebhookPayload: datatypes.JSON(`{}`)})
	if !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("Expected ErrConnDone, got %v", err)
	}
}

func TestWebhookLogExistsSent(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
	}{
		{name: "already_sent", exists: true},
		{name: "not_sent", exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
				WithArgs("1234-01", "pedido_ready_for_handling_v1").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			got, err := repo.ExistsSent(context.Background(), "1234-01", "pedido_ready_for_handling_v1")
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.exists {
				t.Errorf("ExistsSent = %v, want %v", got, tt.exists)
			}
		})
	}
}

func TestWebhookLogExistsSentError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnError(errors.New("connection reset"))

	if _, err := repo.ExistsSent(context.Background(), "1", "t"); err == nil {
		t.Fatalf("Expected error")
	}
}
