package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/hidramais/vtex-alerts/internal/domain"
	"github.com/hidramais/vtex-alerts/internal/repository"
)

// auditService wraps the optional webhook log store. Without a store, dedup
// always answers "not sent" and records are dropped with a log line.
type auditService struct {
	repo   repository.WebhookLogRepository
	logger *zap.Logger
}

func newAuditService(repo repository.WebhookLogRepository, logger *zap.Logger) *auditService {
	return &auditService{
		repo:   repo,
		logger: logger,
	}
}

// AlreadySent fails open: store errors are logged and treated as "not sent".
func (s *auditService) AlreadySent(ctx context.Context, orderNumber string, template domain.MessageTemplate) bool {
	if s.repo == nil {
		return false
	}

	sent, err := s.repo.ExistsSent(ctx, orderNumber, string(template))
	if err != nil {
		s.logger.Error("Failed to check for duplicate notification",
			zap.String("order_number", orderNumber),
			zap.String("message_template", string(template)),
			zap.Error(err),
		)
		return false
	}
	return sent
}

// Record persists log. Failures are logged and never returned.
func (s *auditService) Record(ctx context.Context, log *domain.WebhookLog) {
	if s.repo == nil {
		s.logger.Info("Database not configured; webhook log not saved",
			zap.String("order_number", log.OrderNumber),
			zap.String("note", log.Note),
		)
		return
	}

	if err := s.repo.Create(ctx, log); err != nil {
		s.logger.Error("Failed to save webhook log",
			zap.String("order_number", log.OrderNumber),
			zap.Error(err),
		)
	}
}
