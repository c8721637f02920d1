package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hidramais/vtex-alerts/internal/domain"
	"github.com/hidramais/vtex-alerts/internal/service"
)

const maxWebhookBodyBytes = 2 << 20

// WebhookProcessor runs a webhook through the notification pipeline
type WebhookProcessor interface {
	Handle(ctx context.Context, event *domain.WebhookEvent) (*service.Result, error)
}

// HandleVTEXWebhook handles POST /webhook/vtex
func HandleVTEXWebhook(processor WebhookProcessor, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "failed to read body"})
			return
		}

		logger.Debug("Webhook received", zap.ByteString("body", body))

		event, err := domain.ParseWebhookEvent(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":      false,
				"message": "invalid JSON body",
			})
			return
		}

		result, err := processor.Handle(c.Request.Context(), event)
		if err != nil {
			status := domain.NormalizeStatus(event.RawStatus())
			if result != nil {
				status = result.Status
			}
			logger.Error("Failed to process webhook",
				zap.String("status", string(status)),
				zap.Error(err),
			)
			c.JSON(http.StatusBadGateway, gin.H{
				"ok":      false,
				"handled": false,
				"status":  status,
				"message": err.Error(),
			})
			return
		}

		if !result.Handled {
			c.JSON(http.StatusAccepted, gin.H{
				"ok":      true,
				"handled": false,
				"status":  result.Status,
				"message": "ignored",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":           true,
			"handled":      true,
			"status":       result.Status,
			"customerName": nullable(event.CustomerName()),
			"orderNumber":  nullable(event.OrderNumber()),
			"purchaseDate": nullable(event.PurchaseDate()),
		})
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
