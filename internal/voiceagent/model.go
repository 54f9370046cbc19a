package voiceagent

import "time"

// Session statuses as the media service reports them.
const (
	StatusStarting = "starting"
	StatusActive   = "active"
	StatusEnded    = "ended"
	StatusFailed   = "failed"
)

type SessionInfo struct {
	SessionID   string         `json:"session_id"`
	TenantID    string         `json:"tenant_id"`
	ServiceType string         `json:"service_type,omitempty"`
	TestMode    bool           `json:"test_mode"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	Status      string         `json:"status"`
	RoomName    string         `json:"room_name,omitempty"`
	StartedAt   time.Time      `json:"started_at,omitempty"`
	EndedAt     *time.Time     `json:"ended_at,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type StartParams struct {
	TenantID    string         `json:"tenant_id"`
	ServiceType string         `json:"service_type"`
	TestMode    bool           `json:"test_mode"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type AgentStats struct {
	TenantID        string `json:"tenant_id"`
	TotalSessions   int    `json:"total_sessions"`
	ActiveSessions  int    `json:"active_sessions"`
	CompletedCalls  int    `json:"completed_calls"`
	FailedCalls     int    `json:"failed_calls"`
	TotalDurationMS int64  `json:"total_duration_ms,omitempty"`
}

// Terminal reports whether a session status can no longer change.
func Terminal(status string) bool {
	return status == StatusEnded || status == StatusFailed
}
