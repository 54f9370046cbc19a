// Package phonenumber is the client for phone-number assignment.
package phonenumber

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/coding1100/appointment-setter-console/internal/api"
)

const basePath = "/api/v1/phone-numbers"

type PhoneNumber struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	AgentID     string    `json:"agent_id,omitempty"`
	PhoneNumber string    `json:"phone_number"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Params struct {
	PhoneNumber string `json:"phone_number"`
	AgentID     string `json:"agent_id,omitempty"`
}

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Create(ctx context.Context, tenantID string, params Params) (PhoneNumber, error) {
	var n PhoneNumber
	if err := s.client.Post(ctx, s.tenantPath(tenantID), params, &n); err != nil {
		return PhoneNumber{}, fmt.Errorf("creating phone number: %w", err)
	}
	return n, nil
}

func (s *Service) List(ctx context.Context, tenantID string) ([]PhoneNumber, error) {
	var numbers []PhoneNumber
	if err := s.client.Get(ctx, s.tenantPath(tenantID), nil, &numbers); err != nil {
		return nil, fmt.Errorf("listing phone numbers: %w", err)
	}
	return numbers, nil
}

func (s *Service) Get(ctx context.Context, phoneID string) (PhoneNumber, error) {
	var n PhoneNumber
	if err := s.client.Get(ctx, s.path(phoneID), nil, &n); err != nil {
		return PhoneNumber{}, fmt.Errorf("getting phone number: %w", err)
	}
	return n, nil
}

// ByAgent returns the number assigned to the agent, if any.
func (s *Service) ByAgent(ctx context.Context, agentID string) (PhoneNumber, error) {
	var n PhoneNumber
	if err := s.client.Get(ctx, s.agentPath(agentID), nil, &n); err != nil {
		return PhoneNumber{}, fmt.Errorf("getting phone number by agent: %w", err)
	}
	return n, nil
}

func (s *Service) Update(ctx context.Context, phoneID string, params Params) (PhoneNumber, error) {
	var n PhoneNumber
	if err := s.client.Put(ctx, s.path(phoneID), params, &n); err != nil {
		return PhoneNumber{}, fmt.Errorf("updating phone number: %w", err)
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, phoneID string) error {
	if err := s.client.Delete(ctx, s.path(phoneID), nil); err != nil {
		return fmt.Errorf("deleting phone number: %w", err)
	}
	return nil
}

func (s *Service) Assign(ctx context.Context, tenantID, agentID, phoneNumber string) (PhoneNumber, error) {
	body := map[string]string{
		"agent_id":     agentID,
		"phone_number": phoneNumber,
	}

	var n PhoneNumber
	if err := s.client.Post(ctx, s.tenantPath(tenantID)+"/assign", body, &n); err != nil {
		return PhoneNumber{}, fmt.Errorf("assigning phone number: %w", err)
	}
	return n, nil
}

func (s *Service) Unassign(ctx context.Context, agentID string) error {
	if err := s.client.Delete(ctx, s.agentPath(agentID)+"/unassign", nil); err != nil {
		return fmt.Errorf("unassigning phone number: %w", err)
	}
	return nil
}

func (s *Service) path(phoneID string) string {
	return basePath + "/" + url.PathEscape(phoneID)
}

func (s *Service) tenantPath(tenantID string) string {
	return basePath + "/tenant/" + url.PathEscape(tenantID)
}

func (s *Service) agentPath(agentID string) string {
	return basePath + "/agent/" + url.PathEscape(agentID)
}
