// Package health probes the backend's health endpoints.
package health

import (
	"context"
	"fmt"
	"time"

	"github.com/coding1100/appointment-setter-console/internal/api"
)

const basePath = "/api/v1/health"

type Status struct {
	Status      string    `json:"status"`
	Service     string    `json:"service,omitempty"`
	Version     string    `json:"version,omitempty"`
	Environment string    `json:"environment,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitempty"`
}

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Check(ctx context.Context) (Status, error) {
	var status Status
	if err := s.client.Get(ctx, basePath, nil, &status); err != nil {
		return Status{}, fmt.Errorf("checking backend health: %w", err)
	}
	return status, nil
}

func (s *Service) Detailed(ctx context.Context) (map[string]any, error) {
	var detail map[string]any
	if err := s.client.Get(ctx, basePath+"/detailed", nil, &detail); err != nil {
		return nil, fmt.Errorf("checking detailed health: %w", err)
	}
	return detail, nil
}

func (s *Service) Ready(ctx context.Context) error {
	if err := s.client.Get(ctx, basePath+"/ready", nil, nil); err != nil {
		return fmt.Errorf("checking readiness: %w", err)
	}
	return nil
}

func (s *Service) Live(ctx context.Context) error {
	if err := s.client.Get(ctx, basePath+"/live", nil, nil); err != nil {
		return fmt.Errorf("checking liveness: %w", err)
	}
	return nil
}
