package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hidramais/vtex-alerts/internal/service"
	"github.com/hidramais/vtex-alerts/internal/vtex"
)

// OrderLookup fetches a VTEX order, reporting failures as an empty Lookup
type OrderLookup interface {
	FetchOrder(ctx context.Context, orderID string) vtex.Lookup
}

// HandleGetVTEXOrder handles GET /api/vtex/orders/:orderId
func HandleGetVTEXOrder(orders OrderLookup, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := strings.TrimSpace(c.Param("orderId"))
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":      false,
				"message": "orderId is required",
			})
			return
		}

		lookup := orders.FetchOrder(c.Request.Context(), orderID)
		if lookup.Order == nil {
			logger.Warn("Order lookup returned no order", zap.String("order_id", orderID))
			c.JSON(http.StatusBadGateway, gin.H{
				"ok":      false,
				"message": "failed to fetch order from VTEX",
				"orderId": orderID,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":      true,
			"orderId": orderID,
			"data":    service.SummarizeOrder(lookup),
		})
	}
}
