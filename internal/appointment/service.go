// Package appointment is the client for the scheduling API.
package appointment

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/coding1100/appointment-setter-console/internal/api"
)

const basePath = "/api/v1/appointments"

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (Appointment, error) {
	var a Appointment
	if err := s.client.Post(ctx, basePath, params, &a); err != nil {
		return Appointment{}, fmt.Errorf("creating appointment: %w", err)
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, appointmentID string) (Appointment, error) {
	var a Appointment
	if err := s.client.Get(ctx, s.path(appointmentID), nil, &a); err != nil {
		return Appointment{}, fmt.Errorf("getting appointment: %w", err)
	}
	return a, nil
}

func (s *Service) ListByTenant(ctx context.Context, tenantID string, params ListParams) ([]Appointment, error) {
	query := url.Values{}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}

	var appointments []Appointment
	if err := s.client.Get(ctx, s.tenantPath(tenantID), query, &appointments); err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) UpdateStatus(ctx context.Context, appointmentID, status, notes string) (Appointment, error) {
	body := map[string]string{"status": status, "notes": notes}

	var a Appointment
	if err := s.client.Put(ctx, s.path(appointmentID)+"/status", body, &a); err != nil {
		return Appointment{}, fmt.Errorf("updating appointment status: %w", err)
	}
	return a, nil
}

func (s *Service) Cancel(ctx context.Context, appointmentID, reason string) (Appointment, error) {
	body := map[string]string{"reason": reason}

	var a Appointment
	if err := s.client.Put(ctx, s.path(appointmentID)+"/cancel", body, &a); err != nil {
		return Appointment{}, fmt.Errorf("cancelling appointment: %w", err)
	}
	return a, nil
}

func (s *Service) Reschedule(ctx context.Context, appointmentID string, newDatetime time.Time, reason string) (Appointment, error) {
	body := map[string]any{
		"new_datetime": newDatetime,
		"reason":       reason,
	}

	var a Appointment
	if err := s.client.Put(ctx, s.path(appointmentID)+"/reschedule", body, &a); err != nil {
		return Appointment{}, fmt.Errorf("rescheduling appointment: %w", err)
	}
	return a, nil
}

func (s *Service) Complete(ctx context.Context, appointmentID, completionNotes string) (Appointment, error) {
	body := map[string]string{"completion_notes": completionNotes}

	var a Appointment
	if err := s.client.Put(ctx, s.path(appointmentID)+"/complete", body, &a); err != nil {
		return Appointment{}, fmt.Errorf("completing appointment: %w", err)
	}
	return a, nil
}

func (s *Service) Upcoming(ctx context.Context, tenantID string, daysAhead int) ([]Appointment, error) {
	query := url.Values{"days_ahead": {strconv.Itoa(daysAhead)}}

	var appointments []Appointment
	if err := s.client.Get(ctx, s.tenantPath(tenantID)+"/upcoming", query, &appointments); err != nil {
		return nil, fmt.Errorf("listing upcoming appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) ByDateRange(ctx context.Context, tenantID string, start, end time.Time) ([]Appointment, error) {
	query := url.Values{
		"start_date": {start.Format(time.RFC3339)},
		"end_date":   {end.Format(time.RFC3339)},
	}

	var appointments []Appointment
	if err := s.client.Get(ctx, s.tenantPath(tenantID)+"/date-range", query, &appointments); err != nil {
		return nil, fmt.Errorf("listing appointments by date range: %w", err)
	}
	return appointments, nil
}

func (s *Service) AvailableSlots(ctx context.Context, tenantID string, targetDate time.Time, durationMinutes int) ([]Slot, error) {
	query := url.Values{
		"target_date":      {targetDate.Format("2006-01-02")},
		"duration_minutes": {strconv.Itoa(durationMinutes)},
	}

	var slots []Slot
	if err := s.client.Get(ctx, s.tenantPath(tenantID)+"/available-slots", query, &slots); err != nil {
		return nil, fmt.Errorf("listing available slots: %w", err)
	}
	return slots, nil
}

func (s *Service) HoldSlot(ctx context.Context, tenantID string, params HoldParams) (SlotHold, error) {
	var hold SlotHold
	if err := s.client.Post(ctx, s.tenantPath(tenantID)+"/hold-slot", params, &hold); err != nil {
		return SlotHold{}, fmt.Errorf("holding slot: %w", err)
	}
	return hold, nil
}

func (s *Service) ReleaseHold(ctx context.Context, holdID string) error {
	if err := s.client.Delete(ctx, basePath+"/hold/"+url.PathEscape(holdID), nil); err != nil {
		return fmt.Errorf("releasing slot hold: %w", err)
	}
	return nil
}

func (s *Service) path(appointmentID string) string {
	return basePath + "/" + url.PathEscape(appointmentID)
}

func (s *Service) tenantPath(tenantID string) string {
	return basePath + "/tenant/" + url.PathEscape(tenantID)
}
