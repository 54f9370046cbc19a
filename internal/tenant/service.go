// Package tenant is the client for the platform's tenant API: the tenant
// records themselves plus their business-info, agent-settings and telephony
// credential sub-resources.
package tenant

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/coding1100/appointment-setter-console/internal/api"
)

const basePath = "/api/v1/tenants"

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Create(ctx context.Context, params Params) (Tenant, error) {
	var t Tenant
	if err := s.client.Post(ctx, basePath, params, &t); err != nil {
		return Tenant{}, fmt.Errorf("creating tenant: %w", err)
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Tenant, error) {
	query := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}

	var tenants []Tenant
	if err := s.client.Get(ctx, basePath, query, &tenants); err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	return tenants, nil
}

func (s *Service) Get(ctx context.Context, tenantID string) (Tenant, error) {
	var t Tenant
	if err := s.client.Get(ctx, s.path(tenantID), nil, &t); err != nil {
		return Tenant{}, fmt.Errorf("getting tenant: %w", err)
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, tenantID string, params Params) (Tenant, error) {
	var t Tenant
	if err := s.client.Put(ctx, s.path(tenantID), params, &t); err != nil {
		return Tenant{}, fmt.Errorf("updating tenant: %w", err)
	}
	return t, nil
}

func (s *Service) Activate(ctx context.Context, tenantID string) (Tenant, error) {
	var t Tenant
	if err := s.client.Post(ctx, s.path(tenantID)+"/activate", nil, &t); err != nil {
		return Tenant{}, fmt.Errorf("activating tenant: %w", err)
	}
	return t, nil
}

func (s *Service) Deactivate(ctx context.Context, tenantID string) (Tenant, error) {
	var t Tenant
	if err := s.client.Post(ctx, s.path(tenantID)+"/deactivate", nil, &t); err != nil {
		return Tenant{}, fmt.Errorf("deactivating tenant: %w", err)
	}
	return t, nil
}

func (s *Service) GetBusinessInfo(ctx context.Context, tenantID string) (BusinessInfo, error) {
	var info BusinessInfo
	if err := s.client.Get(ctx, s.path(tenantID)+"/business-info", nil, &info); err != nil {
		return BusinessInfo{}, fmt.Errorf("getting business info: %w", err)
	}
	return info, nil
}

func (s *Service) CreateBusinessInfo(ctx context.Context, tenantID string, info BusinessInfo) (BusinessInfo, error) {
	var created BusinessInfo
	if err := s.client.Post(ctx, s.path(tenantID)+"/business-info", info, &created); err != nil {
		return BusinessInfo{}, fmt.Errorf("creating business info: %w", err)
	}
	return created, nil
}

func (s *Service) UpdateBusinessInfo(ctx context.Context, tenantID string, info BusinessInfo) (BusinessInfo, error) {
	var updated BusinessInfo
	if err := s.client.Put(ctx, s.path(tenantID)+"/business-info", info, &updated); err != nil {
		return BusinessInfo{}, fmt.Errorf("updating business info: %w", err)
	}
	return updated, nil
}

func (s *Service) GetAgentSettings(ctx context.Context, tenantID string) (AgentSettings, error) {
	var settings AgentSettings
	if err := s.client.Get(ctx, s.path(tenantID)+"/agent-settings", nil, &settings); err != nil {
		return AgentSettings{}, fmt.Errorf("getting agent settings: %w", err)
	}
	return settings, nil
}

func (s *Service) CreateAgentSettings(ctx context.Context, tenantID string, settings AgentSettings) (AgentSettings, error) {
	var created AgentSettings
	if err := s.client.Post(ctx, s.path(tenantID)+"/agent-settings", settings, &created); err != nil {
		return AgentSettings{}, fmt.Errorf("creating agent settings: %w", err)
	}
	return created, nil
}

func (s *Service) UpdateAgentSettings(ctx context.Context, tenantID string, settings AgentSettings) (AgentSettings, error) {
	var updated AgentSettings
	if err := s.client.Put(ctx, s.path(tenantID)+"/agent-settings", settings, &updated); err != nil {
		return AgentSettings{}, fmt.Errorf("updating agent settings: %w", err)
	}
	return updated, nil
}

// Twilio credential management lives on a dedicated router, not under the
// tenant resource.
const twilioBasePath = "/api/v1/twilio-integration/tenant"

func (s *Service) CreateTwilioIntegration(ctx context.Context, tenantID string, params TwilioParams) (TwilioIntegration, error) {
	var integration TwilioIntegration
	if err := s.client.Post(ctx, twilioPath(tenantID)+"/create", params, &integration); err != nil {
		return TwilioIntegration{}, fmt.Errorf("creating twilio integration: %w", err)
	}
	return integration, nil
}

func (s *Service) GetTwilioIntegration(ctx context.Context, tenantID string) (TwilioIntegration, error) {
	var integration TwilioIntegration
	if err := s.client.Get(ctx, twilioPath(tenantID), nil, &integration); err != nil {
		return TwilioIntegration{}, fmt.Errorf("getting twilio integration: %w", err)
	}
	return integration, nil
}

func (s *Service) UpdateTwilioIntegration(ctx context.Context, tenantID string, params TwilioParams) (TwilioIntegration, error) {
	var integration TwilioIntegration
	if err := s.client.Put(ctx, twilioPath(tenantID)+"/update", params, &integration); err != nil {
		return TwilioIntegration{}, fmt.Errorf("updating twilio integration: %w", err)
	}
	return integration, nil
}

func (s *Service) DeleteTwilioIntegration(ctx context.Context, tenantID string) error {
	if err := s.client.Delete(ctx, twilioPath(tenantID), nil); err != nil {
		return fmt.Errorf("deleting twilio integration: %w", err)
	}
	return nil
}

func (s *Service) path(tenantID string) string {
	return basePath + "/" + url.PathEscape(tenantID)
}

func twilioPath(tenantID string) string {
	return twilioBasePath + "/" + url.PathEscape(tenantID)
}
