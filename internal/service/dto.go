package service

import (
	"github.com/hidramais/vtex-alerts/internal/dateutil"
	"github.com/hidramais/vtex-alerts/internal/vtex"
)

// OrderSummary is the condensed order returned by the order lookup endpoint
type OrderSummary struct {
	Status             *string `json:"status"`
	PurchaseDate       *string `json:"purchaseDate"`
	OrderNumber        *string `json:"orderNumber"`
	ProductDescription string  `json:"productDescription"`
	TrackingURL        *string `json:"trackingUrl"`
}

// SummarizeOrder condenses a successful lookup. lookup.Order must not be nil.
func SummarizeOrder(lookup vtex.Lookup) OrderSummary {
	order := lookup.Order

	summary := OrderSummary{
		Status:             stringPtr(order.DisplayStatus()),
		OrderNumber:        stringPtr(order.OrderID.String()),
		ProductDescription: order.ProductDescription(),
		TrackingURL:        stringPtr(lookup.TrackingURL),
	}
	if created := order.CreationDate.String(); created != "" {
		summary.PurchaseDate = stringPtr(dateutil.FormatIfValid(created))
	}

	return summary
}

// stringPtr returns nil for "" so absent values serialize as null
func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
