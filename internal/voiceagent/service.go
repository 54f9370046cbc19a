// Package voiceagent is the client for voice-agent test sessions. The media
// itself is handled by an external realtime service; this client only starts,
// inspects and ends sessions.
package voiceagent

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/coding1100/appointment-setter-console/internal/api"
)

const basePath = "/api/v1/voice-agent"

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Start(ctx context.Context, params StartParams) (SessionInfo, error) {
	var info SessionInfo
	if err := s.client.Post(ctx, basePath+"/start-session", params, &info); err != nil {
		return SessionInfo{}, fmt.Errorf("starting voice session: %w", err)
	}
	return info, nil
}

func (s *Service) End(ctx context.Context, sessionID string) (SessionInfo, error) {
	var info SessionInfo
	if err := s.client.Post(ctx, basePath+"/end-session/"+url.PathEscape(sessionID), nil, &info); err != nil {
		return SessionInfo{}, fmt.Errorf("ending voice session: %w", err)
	}
	return info, nil
}

func (s *Service) Status(ctx context.Context, sessionID string) (SessionInfo, error) {
	var info SessionInfo
	if err := s.client.Get(ctx, basePath+"/session-status/"+url.PathEscape(sessionID), nil, &info); err != nil {
		return SessionInfo{}, fmt.Errorf("getting session status: %w", err)
	}
	return info, nil
}

func (s *Service) TenantSessions(ctx context.Context, tenantID string, activeOnly bool) ([]SessionInfo, error) {
	query := url.Values{"active_only": {strconv.FormatBool(activeOnly)}}

	var sessions []SessionInfo
	if err := s.client.Get(ctx, s.tenantPath(tenantID)+"/sessions", query, &sessions); err != nil {
		return nil, fmt.Errorf("listing tenant sessions: %w", err)
	}
	return sessions, nil
}

func (s *Service) AgentStats(ctx context.Context, tenantID string) (AgentStats, error) {
	var stats AgentStats
	if err := s.client.Get(ctx, s.tenantPath(tenantID)+"/agent-stats", nil, &stats); err != nil {
		return AgentStats{}, fmt.Errorf("getting agent stats: %w", err)
	}
	return stats, nil
}

func (s *Service) tenantPath(tenantID string) string {
	return basePath + "/tenant/" + url.PathEscape(tenantID)
}
