package voiceagent

import (
	"context"
	"fmt"
	"time"

	slogctx "github.com/veqryn/slog-context"
)

// StatusGetter is the slice of Service the poller needs.
type StatusGetter interface {
	Status(ctx context.Context, sessionID string) (SessionInfo, error)
}

// Poller watches a session until it reaches a terminal status. Cancellation
// is explicit: the caller's context bounds the watch, there is no bare timer
// left running after teardown.
type Poller struct {
	sessions StatusGetter
	interval time.Duration
}

func NewPoller(sessions StatusGetter, interval time.Duration) *Poller {
	return &Poller{
		sessions: sessions,
		interval: interval,
	}
}

// Wait polls until the session reaches a terminal status or ctx is done. Each
// observed status change is handed to onChange when it is non-nil.
func (p *Poller) Wait(ctx context.Context, sessionID string, onChange func(SessionInfo)) (SessionInfo, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var lastStatus string
	for {
		info, err := p.sessions.Status(ctx, sessionID)
		if err != nil {
			return SessionInfo{}, fmt.Errorf("polling session status: %w", err)
		}

		if info.Status != lastStatus {
			lastStatus = info.Status
			slogctx.Debug(ctx, "Session status changed", "session_id", sessionID, "status", info.Status)

			if onChange != nil {
				onChange(info)
			}
		}

		if Terminal(info.Status) {
			return info, nil
		}

		select {
		case <-ticker.C:
			continue
		case <-ctx.Done():
			return SessionInfo{}, ctx.Err()
		}
	}
}
