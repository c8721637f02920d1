package domain

import "strings"

// OrderStatus is a VTEX order status after normalization
type OrderStatus string

const (
	OrderStatusReadyForHandling OrderStatus = "ready-for-handling"
	OrderStatusHandling         OrderStatus = "handling"
	OrderStatusInvoiced         OrderStatus = "invoiced"
	OrderStatusShipped          OrderStatus = "shipped"
)

// NormalizeStatus lowercases a raw status and rewrites the "invoice" alias.
func NormalizeStatus(raw string) OrderStatus {
	s := strings.ToLower(raw)
	if s == "invoice" {
		return OrderStatusInvoiced
	}
	return OrderStatus(s)
}

// IsAllowed reports whether the status triggers any processing
func (s OrderStatus) IsAllowed() bool {
	switch s {
	case OrderStatusReadyForHandling,
		OrderStatusHandling,
		OrderStatusInvoiced,
		OrderStatusShipped:
		return true
	default:
		return false
	}
}

// Template returns the message template for the status, or "" when none is mapped.
func (s OrderStatus) Template() MessageTemplate {
	switch s {
	case OrderStatusReadyForHandling, OrderStatusHandling:
		return TemplateReadyForHandling
	case OrderStatusInvoiced, OrderStatusShipped:
		return TemplateShippingConfirmation
	default:
		return ""
	}
}

// MessageTemplate identifies a pre-approved Blip message template
type MessageTemplate string

const (
	TemplateReadyForHandling     MessageTemplate = "pedido_ready_for_handling_v1"
	TemplateShippingConfirmation MessageTemplate = "pedido_com_confirmacao_de_envio_v1"
)

// RequiresTrackingURL reports whether the template has a tracking URL parameter
func (t MessageTemplate) RequiresTrackingURL() bool {
	return t == TemplateShippingConfirmation
}
