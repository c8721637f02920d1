package blip

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hidramais/vtex-alerts/internal/config"
	"github.com/hidramais/vtex-alerts/internal/dateutil"
	"github.com/hidramais/vtex-alerts/internal/domain"
)

const (
	campaignRecipient = "postmaster@activecampaign.msging.net"
	campaignURI       = "/campaign/full"
	campaignType      = "application/vnd.iris.activecampaign.full-campaign+json"
	channelWhatsApp   = "WhatsApp"
	brazilCountryCode = "55"
)

// Payload is a Blip ActiveCampaign "full campaign" command
type Payload struct {
	ID       string   `json:"id"`
	To       string   `json:"to"`
	Method   string   `json:"method"`
	URI      string   `json:"uri"`
	Type     string   `json:"type"`
	Resource Resource `json:"resource"`
}

type Resource struct {
	Campaign  Campaign   `json:"campaign"`
	Audiences []Audience `json:"audiences"`
	Message   Message    `json:"message"`
}

type Campaign struct {
	Name              string `json:"name"`
	CampaignType      string `json:"campaignType"`
	FlowID            string `json:"flowId"`
	StateID           string `json:"stateId"`
	MasterState       string `json:"masterstate"`
	ChannelType       string `json:"channelType"`
	SourceApplication string `json:"sourceApplication,omitempty"`
}

type Audience struct {
	Recipient     string            `json:"recipient"`
	MessageParams map[string]string `json:"messageParams"`
}

type Message struct {
	MessageTemplate string   `json:"messageTemplate"`
	MessageParams   []string `json:"messageParams"`
	ChannelType     string   `json:"channelType,omitempty"`
}

// PayloadBuilder turns a resolved notification into a campaign payload using
// the campaign settings from config.
type PayloadBuilder struct {
	cfg   config.BlipConfig
	newID func() string
}

func NewPayloadBuilder(cfg config.BlipConfig) *PayloadBuilder {
	return &PayloadBuilder{cfg: cfg, newID: uuid.NewString}
}

// Build creates a payload for one customer. Every call gets a fresh message
// id and campaign name, so retries never reuse a campaign.
func (b *PayloadBuilder) Build(template domain.MessageTemplate, nc domain.NotificationContext) *Payload {
	params := map[string]string{
		"order": nc.OrderNumber,
		"1":     nc.CustomerName,
		"2":     nc.OrderNumber,
		"3":     dateutil.FormatIfValid(nc.PurchaseDate),
	}
	positional := []string{"1", "2", "3"}
	if nc.TrackingURL != "" {
		params["4"] = nc.TrackingURL
		positional = append(positional, "4")
	}
	if nc.OrderDetails != "" {
		params["pedido"] = nc.OrderDetails
	}

	return &Payload{
		ID:     b.newID(),
		To:     campaignRecipient,
		Method: "set",
		URI:    campaignURI,
		Type:   campaignType,
		Resource: Resource{
			Campaign: Campaign{
				Name:              fmt.Sprintf("%s %s", b.cfg.CampaignNamePrefix, b.newID()),
				CampaignType:      b.cfg.CampaignType,
				FlowID:            b.cfg.FlowID,
				StateID:           b.cfg.StateID,
				MasterState:       b.cfg.MasterState,
				ChannelType:       channelWhatsApp,
				SourceApplication: b.cfg.SourceApplication,
			},
			Audiences: []Audience{
				{
					Recipient:     NormalizePhone(nc.Phone),
					MessageParams: params,
				},
			},
			Message: Message{
				MessageTemplate: string(template),
				MessageParams:   positional,
				ChannelType:     channelWhatsApp,
			},
		},
	}
}

// NormalizePhone keeps digits only and formats the number as +55XXXXXXXXXXX.
func NormalizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if !strings.HasPrefix(digits, brazilCountryCode) {
		digits = brazilCountryCode + digits
	}
	return "+" + digits
}
