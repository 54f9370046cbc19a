package voiceagent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedStatuses plays back a fixed status sequence, holding the last entry.
type scriptedStatuses struct {
	statuses []string
	calls    int
}

func (s *scriptedStatuses) Status(_ context.Context, sessionID string) (SessionInfo, error) {
	idx := s.calls
	if idx >= len(s.statuses) {
		idx = len(s.statuses) - 1
	}
	s.calls++

	return SessionInfo{SessionID: sessionID, Status: s.statuses[idx]}, nil
}

func TestPollerWaitsForTerminalStatus(t *testing.T) {
	statuses := &scriptedStatuses{statuses: []string{StatusStarting, StatusActive, StatusActive, StatusEnded}}
	poller := NewPoller(statuses, time.Millisecond)

	var observed []string
	final, err := poller.Wait(t.Context(), "s1", func(info SessionInfo) {
		observed = append(observed, info.Status)
	})

	require.NoError(t, err)
	assert.Equal(t, StatusEnded, final.Status)
	assert.Equal(t, "s1", final.SessionID)
	assert.Equal(t, []string{StatusStarting, StatusActive, StatusEnded}, observed,
		"onChange fires once per status change, not per poll")
}

func TestPollerStopsOnFailedSession(t *testing.T) {
	statuses := &scriptedStatuses{statuses: []string{StatusStarting, StatusFailed}}
	poller := NewPoller(statuses, time.Millisecond)

	final, err := poller.Wait(t.Context(), "s1", nil)

	require.NoError(t, err)
	assert.Equal(t, StatusFailed, final.Status)
}

func TestPollerCancellation(t *testing.T) {
	statuses := &scriptedStatuses{statuses: []string{StatusActive}}
	poller := NewPoller(statuses, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(t.Context(), 35*time.Millisecond)
	defer cancel()

	_, err := poller.Wait(ctx, "s1", nil)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.LessOrEqual(t, statuses.calls, 5, "polling stops once the context is done")
}

func TestTerminal(t *testing.T) {
	assert.False(t, Terminal(StatusStarting))
	assert.False(t, Terminal(StatusActive))
	assert.True(t, Terminal(StatusEnded))
	assert.True(t, Terminal(StatusFailed))
}
