package main

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meikuraledutech/flow"
)

// defaultSessionTTL is how long a session may sit unused before it is evicted.
const defaultSessionTTL = 30 * time.Minute

// session serializes events for one editor; an Editor handles one event at a time.
type session struct {
	mu       sync.Mutex
	editor   *flow.Editor
	lastUsed time.Time
}

type sessions struct {
	mu  sync.RWMutex
	m   map[string]*session
	ttl time.Duration
	now func() time.Time
}

func newSessions(ttl time.Duration) *sessions {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessions{m: make(map[string]*session), ttl: ttl, now: time.Now}
}

// add registers ed under a fresh id. Idle sessions are swept first.
func (s *sessions) add(ed *flow.Editor) string {
	id := uuid.NewString()
	s.mu.Lock()
	now := s.now()
	s.evictIdleLocked(now)
	s.m[id] = &session{editor: ed, lastUsed: now}
	s.mu.Unlock()
	return id
}

// get returns a live session and marks it used. An idle one is dropped.
func (s *sessions) get(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(sess.lastUsed) > s.ttl {
		delete(s.m, id)
		return nil, false
	}
	sess.lastUsed = now
	return sess, true
}

func (s *sessions) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return false
	}
	delete(s.m, id)
	return true
}

// evictIdle drops every session unused for longer than the TTL and
// returns how many went.
func (s *sessions) evictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictIdleLocked(s.now())
}

func (s *sessions) evictIdleLocked(now time.Time) int {
	n := 0
	for id, sess := range s.m {
		if now.Sub(sess.lastUsed) > s.ttl {
			delete(s.m, id)
			n++
		}
	}
	return n
}

func (s *sessions) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
