package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/hidramais/vtex-alerts/internal/blip"
	"github.com/hidramais/vtex-alerts/internal/domain"
	"github.com/hidramais/vtex-alerts/internal/metrics"
	"github.com/hidramais/vtex-alerts/internal/repository"
	"github.com/hidramais/vtex-alerts/internal/vtex"
)

// Audit notes for skipped webhooks
const (
	NoteMissingOrderNumber  = "missing order number"
	NoteMissingRequiredData = "missing required data"
	NoteTrackingUnavailable = "tracking URL unavailable"
)

// Outcome is the terminal state of one webhook
type Outcome string

const (
	OutcomeIgnored             Outcome = "ignored"
	OutcomeSent                Outcome = "sent"
	OutcomeMissingOrderNumber  Outcome = "missing_order_number"
	OutcomeNoTemplate          Outcome = "no_template"
	OutcomeDuplicate           Outcome = "duplicate"
	OutcomeMissingRequiredData Outcome = "missing_required_data"
	OutcomeTrackingUnavailable Outcome = "tracking_url_unavailable"
	OutcomeDispatchFailed      Outcome = "dispatch_failed"
)

// OrderFetcher looks up a VTEX order for enrichment
type OrderFetcher interface {
	FetchOrder(ctx context.Context, orderNumber string) vtex.Lookup
}

// Dispatcher sends a campaign payload to Blip
type Dispatcher interface {
	Send(ctx context.Context, payload *blip.Payload) (*blip.Response, error)
}

// Result describes how a webhook was handled. Handled is false only for
// statuses outside the allow-list.
type Result struct {
	Status   domain.OrderStatus
	Handled  bool
	Outcome  Outcome
	Template domain.MessageTemplate
}

type NotificationService struct {
	orders     OrderFetcher
	dispatcher Dispatcher
	builder    *blip.PayloadBuilder
	audit      *auditService
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewNotificationService wires the webhook pipeline. repos and m may be nil.
func NewNotificationService(
	orders OrderFetcher,
	dispatcher Dispatcher,
	builder *blip.PayloadBuilder,
	repos *repository.Repositories,
	m *metrics.Metrics,
	logger *zap.Logger,
) *NotificationService {
	var logRepo repository.WebhookLogRepository
	if repos != nil {
		logRepo = repos.WebhookLog
	}
	return &NotificationService{
		orders:     orders,
		dispatcher: dispatcher,
		builder:    builder,
		audit:      newAuditService(logRepo, logger),
		metrics:    m,
		logger:     logger,
	}
}

// Handle runs one webhook through the notification pipeline. The only error
// it returns is a failed Blip dispatch; every other skip is reported through
// Result.Outcome and, where applicable, an audit log entry.
//
// Dedup reads before the send and the log is appended after it, so two
// concurrent deliveries for the same order and template can both send.
func (s *NotificationService) Handle(ctx context.Context, event *domain.WebhookEvent) (*Result, error) {
	status := domain.NormalizeStatus(event.RawStatus())
	result := &Result{Status: status}

	if !status.IsAllowed() {
		s.metrics.ObserveWebhook("other")
		return s.finish(result, OutcomeIgnored), nil
	}
	s.metrics.ObserveWebhook(string(status))
	result.Handled = true

	s.logger.Info("Allowed status received", zap.String("status", string(status)))

	nc := domain.NewNotificationContext(event)

	if nc.OrderNumber == "" {
		s.logger.Info("Webhook without order number", zap.String("status", string(status)))
		s.audit.Record(ctx, &domain.WebhookLog{
			Status:         string(status),
			PurchaseDate:   nc.PurchaseDate,
			TrackingURL:    nc.TrackingURL,
			Note:           NoteMissingOrderNumber,
			WebhookPayload: datatypes.JSON(event.Payload()),
		})
		return s.finish(result, OutcomeMissingOrderNumber), nil
	}

	template := status.Template()
	if template == "" {
		// Unmapped statuses leave no audit entry, same as duplicates.
		s.logger.Info("Status has no message template", zap.String("status", string(status)))
		return s.finish(result, OutcomeNoTemplate), nil
	}
	result.Template = template

	if s.audit.AlreadySent(ctx, nc.OrderNumber, template) {
		s.logger.Info("Duplicate detected, notification already sent for this order and template",
			zap.String("order_number", nc.OrderNumber),
			zap.String("message_template", string(template)),
		)
		return s.finish(result, OutcomeDuplicate), nil
	}

	lookup := s.orders.FetchOrder(ctx, nc.OrderNumber)
	nc.Enrich(lookup.Order)

	var orderPayload datatypes.JSON
	if lookup.Order != nil {
		orderPayload = datatypes.JSON(lookup.Order.Raw)
	}

	if missing := nc.Missing(); len(missing) > 0 {
		s.logger.Info("Required data missing even after VTEX lookup",
			zap.Strings("missing", missing),
			zap.String("order_number", nc.OrderNumber),
			zap.String("status", string(status)),
		)
		s.audit.Record(ctx, &domain.WebhookLog{
			Status:           string(status),
			OrderNumber:      nc.OrderNumber,
			PurchaseDate:     nc.PurchaseDate,
			TrackingURL:      nc.TrackingURL,
			Note:             NoteMissingRequiredData,
			WebhookPayload:   datatypes.JSON(event.Payload()),
			VTEXOrderPayload: orderPayload,
		})
		return s.finish(result, OutcomeMissingRequiredData), nil
	}

	if template.RequiresTrackingURL() && nc.TrackingURL == "" {
		s.logger.Info("Tracking URL unavailable",
			zap.String("order_number", nc.OrderNumber),
			zap.String("purchase_date", nc.PurchaseDate),
		)
		s.audit.Record(ctx, &domain.WebhookLog{
			Status:           string(status),
			OrderNumber:      nc.OrderNumber,
			MessageTemplate:  string(template),
			PurchaseDate:     nc.PurchaseDate,
			Note:             NoteTrackingUnavailable,
			WebhookPayload:   datatypes.JSON(event.Payload()),
			VTEXOrderPayload: orderPayload,
		})
		return s.finish(result, OutcomeTrackingUnavailable), nil
	}

	s.logger.Info("Webhook validated, sending notification",
		zap.String("status", string(status)),
		zap.String("order_number", nc.OrderNumber),
		zap.String("message_template", string(template)),
	)

	payload := s.builder.Build(template, nc)
	entry := &domain.WebhookLog{
		Status:           string(status),
		OrderNumber:      nc.OrderNumber,
		MessageTemplate:  string(template),
		PurchaseDate:     nc.PurchaseDate,
		TrackingURL:      nc.TrackingURL,
		WebhookPayload:   datatypes.JSON(event.Payload()),
		BlipPayload:      toJSON(payload),
		VTEXOrderPayload: orderPayload,
	}

	resp, err := s.dispatcher.Send(ctx, payload)
	if err != nil {
		s.logger.Error("Blip dispatch failed",
			zap.String("order_number", nc.OrderNumber),
			zap.Error(err),
		)
		entry.ErrorMessage = err.Error()
		entry.ErrorStack = zap.Stack("stack").String
		s.audit.Record(ctx, entry)
		s.finish(result, OutcomeDispatchFailed)
		return result, err
	}

	entry.BlipResponse = toJSON(resp)
	s.audit.Record(ctx, entry)
	return s.finish(result, OutcomeSent), nil
}

func (s *NotificationService) finish(result *Result, outcome Outcome) *Result {
	result.Outcome = outcome
	s.metrics.ObserveOutcome(string(outcome))
	return result
}

func toJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
