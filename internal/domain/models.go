package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WebhookEvent is the order-status notification VTEX posts to us. VTEX has
// sent several spellings of the same fields over time, so most concepts have
// more than one source; use the accessor methods instead of the raw fields.
type WebhookEvent struct {
	OrderID           Text                       `json:"orderId"`
	Status            Text                       `json:"status"`
	CreationDate      Text                       `json:"creationDate"`
	LegacyOrderID     Text                       `json:"OrderId"`
	State             Text                       `json:"State"`
	LastState         Text                       `json:"LastState"`
	LastChange        Text                       `json:"LastChange"`
	CurrentChange     Text                       `json:"CurrentChange"`
	Domain            Text                       `json:"Domain"`
	Origin            Lenient[Origin]            `json:"Origin"`
	PackageAttachment Lenient[PackageAttachment] `json:"packageAttachment"`
	ClientProfileData Lenient[ClientProfile]     `json:"clientProfileData"`

	// Raw is the body as received, kept for the audit log
	Raw json.RawMessage `json:"-"`
}

type Origin struct {
	Account Text `json:"Account"`
	Key     Text `json:"Key"`
}

type PackageAttachment struct {
	Packages []Lenient[Package] `json:"packages"`
}

type Package struct {
	TrackingURL Text `json:"trackingUrl"`
}

type ClientProfile struct {
	FirstName Text `json:"firstName"`
	LastName  Text `json:"lastName"`
	Email     Text `json:"email"`
	Phone     Text `json:"phone"`
}

// ParseWebhookEvent decodes a webhook body. Only malformed JSON is an error;
// fields of unexpected types decode as absent, and a body that is not a JSON
// object decodes as an empty event.
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}
	var event WebhookEvent
	if !json.Valid(body) {
		return nil, errors.New("invalid JSON body")
	}
	// Arrays and scalars are valid JSON but carry no fields
	if trimmed := bytes.TrimSpace(body); trimmed[0] == '{' {
		if err := json.Unmarshal(body, &event); err != nil {
			return nil, err
		}
	}
	event.Raw = append(json.RawMessage(nil), body...)
	return &event, nil
}

// Payload returns the body to persist for this event
func (e *WebhookEvent) Payload() json.RawMessage {
	if len(e.Raw) > 0 {
		return e.Raw
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return b
}

func (e *WebhookEvent) RawStatus() string {
	return firstNonEmpty(e.Status, e.State)
}

func (e *WebhookEvent) OrderNumber() string {
	return firstNonEmpty(e.OrderID, e.LegacyOrderID)
}

func (e *WebhookEvent) PurchaseDate() string {
	return firstNonEmpty(e.CreationDate, e.CurrentChange, e.LastChange)
}

func (e *WebhookEvent) CustomerName() string {
	if !e.ClientProfileData.Valid {
		return ""
	}
	p := e.ClientProfileData.Value
	return FullName(p.FirstName, p.LastName)
}

func (e *WebhookEvent) Email() string {
	return e.ClientProfileData.Value.Email.String()
}

func (e *WebhookEvent) Phone() string {
	return e.ClientProfileData.Value.Phone.String()
}

func (e *WebhookEvent) TrackingURL() string {
	if !e.PackageAttachment.Valid {
		return ""
	}
	return e.PackageAttachment.Value.firstTrackingURL()
}

func (a PackageAttachment) firstTrackingURL() string {
	for _, pkg := range a.Packages {
		if pkg.Valid && pkg.Value.TrackingURL != "" {
			return pkg.Value.TrackingURL.String()
		}
	}
	return ""
}

// OrderRecord is an order as returned by the VTEX OMS API
type OrderRecord struct {
	OrderID           Text                       `json:"orderId"`
	Status            Text                       `json:"status"`
	StatusDescription Text                       `json:"statusDescription"`
	CreationDate      Text                       `json:"creationDate"`
	Items             OrderItems                 `json:"items"`
	ClientProfileData Lenient[ClientProfile]     `json:"clientProfileData"`
	PackageAttachment Lenient[PackageAttachment] `json:"packageAttachment"`
	ShippingData      Lenient[ShippingData]      `json:"shippingData"`

	Raw json.RawMessage `json:"-"`
}

type OrderItem struct {
	Name     Text         `json:"name"`
	Quantity Lenient[int] `json:"quantity"`
}

// OrderItems skips malformed entries; a non-array value decodes as no items.
type OrderItems []Lenient[OrderItem]

func (items *OrderItems) UnmarshalJSON(data []byte) error {
	var v []Lenient[OrderItem]
	if err := json.Unmarshal(data, &v); err != nil {
		*items = nil
		return nil
	}
	*items = v
	return nil
}

type ShippingData struct {
	LogisticsInfo []Lenient[LogisticsInfo] `json:"logisticsInfo"`
}

type LogisticsInfo struct {
	TrackingURL Text `json:"trackingUrl"`
}

// TrackingURL checks package attachments first, then logistics info.
func (o *OrderRecord) TrackingURL() string {
	if o.PackageAttachment.Valid {
		if url := o.PackageAttachment.Value.firstTrackingURL(); url != "" {
			return url
		}
	}
	if o.ShippingData.Valid {
		for _, info := range o.ShippingData.Value.LogisticsInfo {
			if info.Valid && info.Value.TrackingURL != "" {
				return info.Value.TrackingURL.String()
			}
		}
	}
	return ""
}

func (o *OrderRecord) CustomerName() string {
	if !o.ClientProfileData.Valid {
		return ""
	}
	p := o.ClientProfileData.Value
	return FullName(p.FirstName, p.LastName)
}

// DisplayStatus prefers the human-readable status description
func (o *OrderRecord) DisplayStatus() string {
	return firstNonEmpty(o.StatusDescription, o.Status)
}

type orderDetails struct {
	Status       *string         `json:"status"`
	Data         *string         `json:"data"`
	NumeroPedido *string         `json:"numero_pedido"`
	Produtos     []productDetail `json:"produtos"`
}

type productDetail struct {
	Nome       *string      `json:"nome"`
	Quantidade Lenient[int] `json:"quantidade"`
}

// Details renders the JSON order summary sent to the customer as the
// "pedido" template parameter.
func (o *OrderRecord) Details() string {
	details := orderDetails{
		Status:       nullable(o.StatusDescription.String()),
		Data:         nullable(o.CreationDate.String()),
		NumeroPedido: nullable(o.OrderID.String()),
		Produtos:     make([]productDetail, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		if !item.Valid {
			continue
		}
		details.Produtos = append(details.Produtos, productDetail{
			Nome:       nullable(item.Value.Name.String()),
			Quantidade: item.Value.Quantity,
		})
	}

	b, err := json.Marshal(details)
	if err != nil {
		return ""
	}
	return string(b)
}

// ProductDescription lists item names as bullet lines
func (o *OrderRecord) ProductDescription() string {
	lines := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if name := item.Value.Name.Trimmed(); name != "" {
			lines = append(lines, "• "+name)
		}
	}
	return strings.Join(lines, "\n")
}

// NotificationContext holds everything needed to send one customer message,
// after the webhook has been merged with the VTEX order.
type NotificationContext struct {
	CustomerName string
	Email        string
	Phone        string
	OrderNumber  string
	PurchaseDate string
	TrackingURL  string
	OrderDetails string
}

// NewNotificationContext seeds a context from the webhook alone
func NewNotificationContext(event *WebhookEvent) NotificationContext {
	return NotificationContext{
		CustomerName: event.CustomerName(),
		Email:        event.Email(),
		Phone:        event.Phone(),
		OrderNumber:  event.OrderNumber(),
		PurchaseDate: event.PurchaseDate(),
		TrackingURL:  event.TrackingURL(),
	}
}

// Enrich fills fields the webhook left empty. Values already present are kept.
func (c *NotificationContext) Enrich(order *OrderRecord) {
	if order == nil {
		return
	}
	if c.PurchaseDate == "" {
		c.PurchaseDate = order.CreationDate.String()
	}
	if order.ClientProfileData.Valid {
		client := order.ClientProfileData.Value
		if c.CustomerName == "" {
			c.CustomerName = FullName(client.FirstName, client.LastName)
		}
		if c.Email == "" {
			c.Email = client.Email.String()
		}
		if c.Phone == "" {
			c.Phone = client.Phone.String()
		}
	}
	c.OrderDetails = order.Details()
	if c.TrackingURL == "" {
		c.TrackingURL = order.TrackingURL()
	}
}

// Missing lists the required fields that are still empty
func (c NotificationContext) Missing() []string {
	var missing []string
	if c.CustomerName == "" {
		missing = append(missing, "customerName")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if c.Phone == "" {
		missing = append(missing, "phone")
	}
	if c.OrderNumber == "" {
		missing = append(missing, "orderNumber")
	}
	if c.PurchaseDate == "" {
		missing = append(missing, "purchaseDate")
	}
	return missing
}

// WebhookLog is one audit row per processed webhook
type WebhookLog struct {
	ID               uuid.UUID
	Status           string
	OrderNumber      string
	MessageTemplate  string
	PurchaseDate     string
	TrackingURL      string
	Note             string
	WebhookPayload   datatypes.JSON // JSONB
	BlipPayload      datatypes.JSON // JSONB
	BlipResponse     datatypes.JSON // JSONB
	VTEXOrderPayload datatypes.JSON // JSONB
	ErrorMessage     string
	ErrorStack       string
	CreatedAt        time.Time
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
