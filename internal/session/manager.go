// Package session maps storefront session tokens to owned cart controllers.
// Each browser session gets its own controller, and through it its own
// commerce-API session cookie, so two visitors never share an active order.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pawluxe/storefront/internal/domain"
)

// Visitor is the per-session state: the cart controller and the backend
// client it wraps. Checkout steps talk to the backend directly and use the
// controller for resync and clearing.
type Visitor struct {
	Controller domain.CartController
	Backend    domain.OrderBackend
}

// Factory builds the per-session state for a new session, wired to its own
// backend client.
type Factory func() *Visitor

type session struct {
	visitor  *Visitor
	lastSeen time.Time
}

// Manager is the registry of live sessions. Idle sessions are evicted after
// the configured TTL; the backend keeps the order itself, so an evicted
// visitor only loses the cheap in-memory view, not the cart.
type Manager struct {
	factory Factory
	ttl     time.Duration
	logger  zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func NewManager(factory Factory, ttl time.Duration, logger zerolog.Logger) *Manager {
	return &Manager{
		factory:  factory,
		ttl:      ttl,
		logger:   logger.With().Str("component", "session").Logger(),
		sessions: make(map[string]*session),
	}
}

// Resolve returns the visitor for a token, creating a fresh session when
// the token is empty or unknown. New controllers refresh once so an existing
// backend order is picked up immediately; a failed initial refresh is logged
// and the session starts empty.
func (m *Manager) Resolve(ctx context.Context, token string) (*Visitor, string) {
	m.mu.Lock()
	if token != "" {
		if s, ok := m.sessions[token]; ok {
			s.lastSeen = time.Now()
			m.mu.Unlock()
			return s.visitor, token
		}
	}

	token = uuid.NewString()
	visitor := m.factory()
	m.sessions[token] = &session{visitor: visitor, lastSeen: time.Now()}
	m.mu.Unlock()

	if err := visitor.Controller.Refresh(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("initial cart refresh failed; session starts empty")
	}

	m.logger.Debug().Str("session", token).Msg("session created")
	return visitor, token
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Run sweeps idle sessions until the context is cancelled.
func (m *Manager) Run(ctx context.Context) {
	interval := m.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.evict(time.Now())
		}
	}
}

func (m *Manager) evict(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for token, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.ttl {
			delete(m.sessions, token)
			m.logger.Debug().Str("session", token).Msg("session evicted")
		}
	}
}
