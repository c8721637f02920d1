package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hidramais/vtex-alerts/internal/api/handlers"
	"github.com/hidramais/vtex-alerts/internal/api/middleware"
	"github.com/hidramais/vtex-alerts/internal/config"
	"github.com/hidramais/vtex-alerts/internal/metrics"
)

// Services are the collaborators the routes are wired to
type Services struct {
	Notifications handlers.WebhookProcessor
	Orders        handlers.OrderLookup
	Metrics       *metrics.Metrics
	// Gatherer backs /metrics; the route is omitted when nil
	Gatherer prometheus.Gatherer
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svc Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger, svc.Metrics))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if svc.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(svc.Gatherer, promhttp.HandlerOpts{})))
	}

	// VTEX order-status hook
	router.POST("/webhook/vtex", handlers.HandleVTEXWebhook(svc.Notifications, logger))

	// Internal routes
	apiRoutes := router.Group("/api")
	apiRoutes.Use(middleware.APITokenAuth(cfg.API.RouteTokenHash, logger))
	{
		apiRoutes.GET("/vtex/orders/:orderId", handlers.HandleGetVTEXOrder(svc.Orders, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests and records request metrics
func loggingMiddleware(logger *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		c.Next()

		// route template keeps metric labels bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		latency := time.Since(start)

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		)

		if m != nil {
			m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			m.HTTPDuration.WithLabelValues(method, path).Observe(latency.Seconds())
		}
	}
}
