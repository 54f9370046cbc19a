package agent

import "time"

type Agent struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"tenant_id"`
	Name            string    `json:"name"`
	GreetingMessage string    `json:"greeting_message,omitempty"`
	Language        string    `json:"language,omitempty"`
	VoiceID         string    `json:"voice_id,omitempty"`
	ServiceType     string    `json:"service_type,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Params struct {
	Name            string `json:"name"`
	GreetingMessage string `json:"greeting_message,omitempty"`
	Language        string `json:"language,omitempty"`
	VoiceID         string `json:"voice_id,omitempty"`
	ServiceType     string `json:"service_type,omitempty"`
}

type Voice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

type VoicePreview struct {
	VoiceID string `json:"voice_id"`
	URL     string `json:"url"`
}
