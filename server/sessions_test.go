package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meikuraledutech/flow"
)

func TestSessions_IdleSessionsAreEvicted(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newSessions(10 * time.Minute)
	s.now = func() time.Time { return now }

	stale := s.add(flow.NewEditor())
	now = now.Add(5 * time.Minute)
	fresh := s.add(flow.NewEditor())

	now = now.Add(6 * time.Minute)
	assert.Equal(t, 1, s.evictIdle())
	assert.Equal(t, 1, s.len())

	_, ok := s.get(stale)
	assert.False(t, ok)
	_, ok = s.get(fresh)
	assert.True(t, ok)
}

func TestSessions_GetKeepsSessionAlive(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newSessions(10 * time.Minute)
	s.now = func() time.Time { return now }

	id := s.add(flow.NewEditor())
	for i := 0; i < 5; i++ {
		now = now.Add(8 * time.Minute)
		_, ok := s.get(id)
		require.True(t, ok)
	}

	now = now.Add(11 * time.Minute)
	_, ok := s.get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, s.len())
}

func TestSessions_AddSweepsIdleSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newSessions(time.Minute)
	s.now = func() time.Time { return now }

	for i := 0; i < 50; i++ {
		s.add(flow.NewEditor())
	}
	now = now.Add(2 * time.Minute)
	s.add(flow.NewEditor())
	assert.Equal(t, 1, s.len())
}
