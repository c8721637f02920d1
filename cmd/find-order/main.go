package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hidramais/vtex-alerts/internal/config"
	"github.com/hidramais/vtex-alerts/internal/vtex"
	apperrors "github.com/hidramais/vtex-alerts/pkg/errors"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-order/main.go <order-id>")
		fmt.Println("Example: go run cmd/find-order/main.go \"1234567890123-01\"")
		os.Exit(1)
	}

	orderID := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := vtex.NewClient(cfg.VTEX, logger)

	fmt.Printf("🔍 Fetching VTEX order: %s\n\n", orderID)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	order, err := client.GetOrder(ctx, orderID)
	var notFound *apperrors.ErrNotFound
	if errors.As(err, &notFound) {
		fmt.Printf("❌ Order '%s' not found in VTEX.\n", orderID)
		fmt.Printf("\nMake sure:\n")
		fmt.Printf("  1. The order ID includes the sequence suffix (e.g. -01)\n")
		fmt.Printf("  2. VTEX_BASE_URL points at the right account\n")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to fetch order: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Found order!\n\n")
	fmt.Printf("Order ID: %s\n", order.OrderID)
	fmt.Printf("Status: %s\n", order.DisplayStatus())
	fmt.Printf("Created: %s\n", order.CreationDate)
	fmt.Printf("Customer: %s\n", order.CustomerName())
	if url := order.TrackingURL(); url != "" {
		fmt.Printf("Tracking URL: %s\n", url)
	} else {
		fmt.Printf("Tracking URL: (none yet)\n")
	}
	if desc := order.ProductDescription(); desc != "" {
		fmt.Printf("\nProducts:\n%s\n", desc)
	}
}
