// Package agent is the client for voice-agent management.
package agent

import (
	"context"
	"fmt"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/coding1100/appointment-setter-console/internal/api"
)

const basePath = "/api/v1/agents"

// The voice catalog changes rarely but the forms ask for it on every mount,
// so it is cached in-process for a short while.
const (
	voicesCacheKey = "voices"
	voicesCacheTTL = 5 * time.Minute
)

type Service struct {
	client *api.Client
	cache  *gocache.Cache
}

func NewService(client *api.Client) *Service {
	return &Service{
		client: client,
		cache:  gocache.New(voicesCacheTTL, 10*time.Minute),
	}
}

func (s *Service) Create(ctx context.Context, tenantID string, params Params) (Agent, error) {
	var a Agent
	if err := s.client.Post(ctx, basePath+"/tenant/"+url.PathEscape(tenantID), params, &a); err != nil {
		return Agent{}, fmt.Errorf("creating agent: %w", err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, tenantID string) ([]Agent, error) {
	var agents []Agent
	if err := s.client.Get(ctx, basePath+"/tenant/"+url.PathEscape(tenantID), nil, &agents); err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}
	return agents, nil
}

func (s *Service) Get(ctx context.Context, agentID string) (Agent, error) {
	var a Agent
	if err := s.client.Get(ctx, s.path(agentID), nil, &a); err != nil {
		return Agent{}, fmt.Errorf("getting agent: %w", err)
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, agentID string, params Params) (Agent, error) {
	var a Agent
	if err := s.client.Put(ctx, s.path(agentID), params, &a); err != nil {
		return Agent{}, fmt.Errorf("updating agent: %w", err)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, agentID string) error {
	if err := s.client.Delete(ctx, s.path(agentID), nil); err != nil {
		return fmt.Errorf("deleting agent: %w", err)
	}
	return nil
}

func (s *Service) Activate(ctx context.Context, agentID string) (Agent, error) {
	var a Agent
	if err := s.client.Post(ctx, s.path(agentID)+"/activate", nil, &a); err != nil {
		return Agent{}, fmt.Errorf("activating agent: %w", err)
	}
	return a, nil
}

func (s *Service) Deactivate(ctx context.Context, agentID string) (Agent, error) {
	var a Agent
	if err := s.client.Post(ctx, s.path(agentID)+"/deactivate", nil, &a); err != nil {
		return Agent{}, fmt.Errorf("deactivating agent: %w", err)
	}
	return a, nil
}

// Voices returns the available voice catalog, served from the in-process
// cache when fresh.
func (s *Service) Voices(ctx context.Context) ([]Voice, error) {
	if cached, ok := s.cache.Get(voicesCacheKey); ok {
		return cached.([]Voice), nil
	}

	var voices []Voice
	if err := s.client.Get(ctx, basePath+"/voices/list", nil, &voices); err != nil {
		return nil, fmt.Errorf("listing voices: %w", err)
	}

	s.cache.Set(voicesCacheKey, voices, gocache.DefaultExpiration)

	return voices, nil
}

func (s *Service) VoicePreview(ctx context.Context, voiceID string) (VoicePreview, error) {
	var preview VoicePreview
	if err := s.client.Get(ctx, basePath+"/voices/preview/"+url.PathEscape(voiceID), nil, &preview); err != nil {
		return VoicePreview{}, fmt.Errorf("getting voice preview: %w", err)
	}
	return preview, nil
}

func (s *Service) path(agentID string) string {
	return basePath + "/" + url.PathEscape(agentID)
}
