package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/chriswiesanjaya/sun-protection/internal/domain"
	"github.com/chriswiesanjaya/sun-protection/internal/observability"
)

// Store is an in-memory session registry with idle expiry. All access goes
// through the store so session mutations are serialized.
type Store struct {
	ttl     time.Duration
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates a Store that evicts sessions idle longer than ttl.
func NewStore(ttl time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		ttl:      ttl,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
		sessions: make(map[string]*Session),
	}
}

// Create starts a fresh session at the first question and returns a copy.
func (s *Store) Create() Session {
	sess := &Session{
		ID:       uuid.NewString(),
		State:    StateAnswering,
		Answers:  make([]*int, domain.NumQuestions),
		lastSeen: s.clock.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.metrics.SessionsActive.Inc()
	s.logger.Debug("session created", "session_id", sess.ID)
	return sess.snapshot()
}

// Get returns a copy of the session, refreshing its idle timer.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	sess.lastSeen = s.clock.Now()
	return sess.snapshot(), nil
}

// Update applies fn to the session under the store lock and returns a copy
// of the resulting state. The session still exists and keeps any mutations
// fn made before failing; fn decides what changes on error.
func (s *Store) Update(id string, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	sess.lastSeen = s.clock.Now()

	if err := fn(sess); err != nil {
		return sess.snapshot(), err
	}
	return sess.snapshot(), nil
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run evicts idle sessions until the context is cancelled.
func (s *Store) Run(ctx context.Context) error {
	interval := s.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}

	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session store stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			s.sweep()
		}
	}
}

// sweep removes sessions idle longer than the TTL.
func (s *Store) sweep() {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			s.metrics.SessionsActive.Dec()
			s.logger.Debug("session expired", "session_id", id)
		}
	}
}
