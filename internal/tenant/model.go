package tenant

import "time"

type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Params struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone,omitempty"`
}

// BusinessInfo is the tenant's customer-facing business profile, read out by
// the voice agent during calls.
type BusinessInfo struct {
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
	Description  string `json:"description,omitempty"`
}

type AgentSettings struct {
	GreetingMessage string `json:"greeting_message,omitempty"`
	Language        string `json:"language,omitempty"`
	VoiceID         string `json:"voice_id,omitempty"`
	ServiceType     string `json:"service_type,omitempty"`
}

// TwilioIntegration holds the tenant's telephony credentials. The auth token
// is write-only; the backend never returns it.
type TwilioIntegration struct {
	ID         string `json:"id,omitempty"`
	TenantID   string `json:"tenant_id,omitempty"`
	AccountSID string `json:"account_sid"`
	Country    string `json:"country,omitempty"`
	AreaCode   string `json:"area_code,omitempty"`
	NumberType string `json:"number_type,omitempty"`
}

type TwilioParams struct {
	AccountSID string `json:"account_sid"`
	AuthToken  string `json:"auth_token"`
	Country    string `json:"country,omitempty"`
	AreaCode   string `json:"area_code,omitempty"`
	NumberType string `json:"number_type,omitempty"`
}
