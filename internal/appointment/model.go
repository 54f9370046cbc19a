package appointment

import "time"

// Appointment statuses as the backend reports them.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

type Appointment struct {
	ID                  string    `json:"id"`
	TenantID            string    `json:"tenant_id"`
	CustomerName        string    `json:"customer_name"`
	CustomerPhone       string    `json:"customer_phone"`
	CustomerEmail       string    `json:"customer_email,omitempty"`
	ServiceType         string    `json:"service_type,omitempty"`
	ServiceAddress      string    `json:"service_address,omitempty"`
	AppointmentDatetime time.Time `json:"appointment_datetime"`
	DurationMinutes     int       `json:"duration_minutes,omitempty"`
	Status              string    `json:"status"`
	Notes               string    `json:"notes,omitempty"`
}

type CreateParams struct {
	TenantID            string    `json:"tenant_id"`
	CustomerName        string    `json:"customer_name"`
	CustomerPhone       string    `json:"customer_phone"`
	CustomerEmail       string    `json:"customer_email,omitempty"`
	ServiceType         string    `json:"service_type,omitempty"`
	ServiceAddress      string    `json:"service_address,omitempty"`
	AppointmentDatetime time.Time `json:"appointment_datetime"`
	DurationMinutes     int       `json:"duration_minutes,omitempty"`
	Notes               string    `json:"notes,omitempty"`
}

type ListParams struct {
	Status string
	Limit  int
	Offset int
}

type Slot struct {
	Start time.Time `json:"slot_start"`
	End   time.Time `json:"slot_end"`
}

type SlotHold struct {
	HoldID    string    `json:"hold_id"`
	TenantID  string    `json:"tenant_id"`
	SlotStart time.Time `json:"slot_start"`
	SlotEnd   time.Time `json:"slot_end"`
	ExpiresAt time.Time `json:"expires_at"`
}

type HoldParams struct {
	SlotStart           time.Time `json:"slot_start"`
	SlotEnd             time.Time `json:"slot_end"`
	CustomerName        string    `json:"customer_name"`
	CustomerPhone       string    `json:"customer_phone"`
	HoldDurationMinutes int       `json:"hold_duration_minutes,omitempty"`
}
