package blip

import (
	"reflect"
	"strings"
	"testing"

	"github.com/hidramais/vtex-alerts/internal/config"
	"github.com/hidramais/vtex-alerts/internal/domain"
)

func testBlipConfig() config.BlipConfig {
	return config.BlipConfig{
		CampaignNamePrefix: "Hidramais",
		CampaignType:       "Batch",
		FlowID:             "flow-1",
		StateID:            "onboarding",
		MasterState:        "master@msging.net",
		SourceApplication:  "API de Alerta Webhook VTEX",
	}
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "11987654321", want: "+5511987654321"},
		{in: "5511987654321", want: "+5511987654321"},
		{in: "+55 (11) 98765-4321", want: "+5511987654321"},
		{in: "(11) 98765-4321", want: "+5511987654321"},
	}

	for _, tt := range tests {
		got := NormalizePhone(tt.in)
		if got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := NormalizePhone(got); again != got {
			t.Errorf("NormalizePhone is not idempotent for %q: %q", got, again)
		}
	}
}

func TestBuildWithoutTrackingURL(t *testing.T) {
	t.Parallel()

	b := NewPayloadBuilder(testBlipConfig())
	p := b.Build(domain.TemplateReadyForHandling, domain.NotificationContext{
		CustomerName: "Ana Souza",
		Email:        "ana@example.com",
		Phone:        "11987654321",
		OrderNumber:  "1234-01",
		PurchaseDate: "2024-03-05T00:00:00Z",
	})

	if got := p.Resource.Message.MessageParams; !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Fatalf("Expected params [1 2 3], got %v", got)
	}
	if len(p.Resource.Audiences) != 1 {
		t.Fatalf("Expected one audience, got %d", len(p.Resource.Audiences))
	}
	aud := p.Resource.Audiences[0]
	if aud.Recipient != "+5511987654321" {
		t.Errorf("Expected normalized recipient, got %q", aud.Recipient)
	}
	want := map[string]string{
		"order": "1234-01",
		"1":     "Ana Souza",
		"2":     "1234-01",
		"3":     "05/03/2024",
	}
	if !reflect.DeepEqual(aud.MessageParams, want) {
		t.Errorf("Unexpected message params: %v", aud.MessageParams)
	}
	if p.Resource.Message.MessageTemplate != string(domain.TemplateReadyForHandling) {
		t.Errorf("Unexpected template %q", p.Resource.Message.MessageTemplate)
	}
	if p.Resource.Campaign.ChannelType != "WhatsApp" || p.Resource.Message.ChannelType != "WhatsApp" {
		t.Errorf("Expected WhatsApp channel")
	}
}

func TestBuildWithTrackingURLAndDetails(t *testing.T) {
	t.Parallel()

	b := NewPayloadBuilder(testBlipConfig())
	p := b.Build(domain.TemplateShippingConfirmation, domain.NotificationContext{
		CustomerName: "Ana Souza",
		Phone:        "11987654321",
		OrderNumber:  "1234-01",
		PurchaseDate: "2024-03-05",
		TrackingURL:  "https://track.example.com/XYZ",
		OrderDetails: `{"status":"Faturado"}`,
	})

	if got := p.Resource.Message.MessageParams; !reflect.DeepEqual(got, []string{"1", "2", "3", "4"}) {
		t.Fatalf("Expected params [1 2 3 4], got %v", got)
	}
	params := p.Resource.Audiences[0].MessageParams
	for _, key := range p.Resource.Message.MessageParams {
		if params[key] == "" {
			t.Errorf("Positional param %s is empty", key)
		}
	}
	if params["4"] != "https://track.example.com/XYZ" {
		t.Errorf("Expected tracking URL in param 4, got %q", params["4"])
	}
	if params["pedido"] != `{"status":"Faturado"}` {
		t.Errorf("Expected order details in pedido param, got %q", params["pedido"])
	}
}

func TestBuildGeneratesFreshIdentifiers(t *testing.T) {
	t.Parallel()

	b := NewPayloadBuilder(testBlipConfig())
	nc := domain.NotificationContext{Phone: "11987654321", OrderNumber: "1"}
	first := b.Build(domain.TemplateReadyForHandling, nc)
	second := b.Build(domain.TemplateReadyForHandling, nc)

	if first.ID == second.ID {
		t.Errorf("Expected distinct message ids")
	}
	if first.Resource.Campaign.Name == second.Resource.Campaign.Name {
		t.Errorf("Expected distinct campaign names")
	}
	if !strings.HasPrefix(first.Resource.Campaign.Name, "Hidramais ") {
		t.Errorf("Expected campaign prefix, got %q", first.Resource.Campaign.Name)
	}
	c := first.Resource.Campaign
	if c.FlowID != "flow-1" || c.StateID != "onboarding" || c.MasterState != "master@msging.net" || c.CampaignType != "Batch" {
		t.Errorf("Campaign settings not taken from config: %+v", c)
	}
	if first.To != campaignRecipient || first.Method != "set" || first.URI != campaignURI {
		t.Errorf("Unexpected envelope: %+v", first)
	}
}
