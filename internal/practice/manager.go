package practice

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// ErrSessionNotFound is returned for unknown, expired, or foreign sessions.
var ErrSessionNotFound = errors.New("practice session not found")

// DefaultMaxSessionsPerUser applies when ManagerConfig.MaxSessionsPerUser is zero.
const DefaultMaxSessionsPerUser = 5

// ManagerConfig holds configuration for the session manager
type ManagerConfig struct {
	// SessionTTL is how long a session survives without activity.
	SessionTTL time.Duration

	// MaxSessionsPerUser bounds the live sessions one user can hold. Starting
	// a session beyond the limit ends that user's least recently used one.
	MaxSessionsPerUser int

	// SweepInterval defines how often expired sessions are removed.
	// If zero, defaults to one minute.
	SweepInterval time.Duration
}

// Manager keeps practice sessions in memory. It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	byUser   map[uuid.UUID]map[uuid.UUID]*Session
	uses     uint64
	rng      *rand.Rand
	now      func() time.Time
	config   ManagerConfig
	logger   *slog.Logger

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// Option customizes a Manager.
type Option func(*Manager)

// WithRand sets the random source used to shuffle cards.
func WithRand(rng *rand.Rand) Option {
	return func(m *Manager) { m.rng = rng }
}

// WithClock sets the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a new Manager.
func NewManager(config ManagerConfig, logger *slog.Logger, opts ...Option) *Manager {
	if config.SweepInterval == 0 {
		config.SweepInterval = time.Minute
	}
	if config.MaxSessionsPerUser <= 0 {
		config.MaxSessionsPerUser = DefaultMaxSessionsPerUser
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		sessions:   make(map[uuid.UUID]*Session),
		byUser:     make(map[uuid.UUID]map[uuid.UUID]*Session),
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:        time.Now,
		config:     config,
		logger:     logger.With(slog.String("component", "practice_manager")),
		ctx:        ctx,
		cancelFunc: cancel,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins removing expired sessions in the background.
func (m *Manager) Start() {
	m.wg.Add(1)
	go m.expiryMonitor()
}

// Stop halts the background sweep and waits for it to exit.
func (m *Manager) Stop() {
	m.cancelFunc()
	m.wg.Wait()
}

// StartSession begins a practice session over set for userID. If the user
// already holds MaxSessionsPerUser sessions, the least recently used one is
// ended first.
func (m *Manager) StartSession(userID uuid.UUID, set *domain.CardSet) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := NewSession(userID, set, m.rng, m.now())
	if err != nil {
		return View{}, err
	}
	for len(m.byUser[userID]) >= m.config.MaxSessionsPerUser {
		evicted := m.leastRecentlyUsed(userID)
		m.remove(evicted)
		m.logger.Debug("practice session evicted",
			slog.String("session_id", evicted.ID.String()),
			slog.Int("limit", m.config.MaxSessionsPerUser))
	}
	m.add(s)

	m.logger.Debug("practice session started",
		slog.String("session_id", s.ID.String()),
		slog.String("card_set_id", set.ID.String()),
		slog.Int("card_count", len(set.Cards)))
	return s.View(), nil
}

// Current returns the session's current card.
func (m *Manager) Current(userID, sessionID uuid.UUID) (View, error) {
	return m.apply(userID, sessionID, func(*Session) {})
}

// Reveal toggles the answer of the current card.
func (m *Manager) Reveal(userID, sessionID uuid.UUID) (View, error) {
	return m.apply(userID, sessionID, (*Session).ToggleReveal)
}

// Next moves to the following card.
func (m *Manager) Next(userID, sessionID uuid.UUID) (View, error) {
	return m.apply(userID, sessionID, (*Session).Next)
}

// Previous moves to the preceding card.
func (m *Manager) Previous(userID, sessionID uuid.UUID) (View, error) {
	return m.apply(userID, sessionID, (*Session).Previous)
}

// Restart reshuffles the session and returns to the first card.
func (m *Manager) Restart(userID, sessionID uuid.UUID) (View, error) {
	return m.apply(userID, sessionID, (*Session).Restart)
}

// End discards a session.
func (m *Manager) End(userID, sessionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(userID, sessionID)
	if err != nil {
		return err
	}
	m.remove(s)
	return nil
}

// Sweep removes expired sessions and returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for _, s := range m.sessions {
		if m.expired(s, now) {
			m.remove(s)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions, including expired ones not yet swept.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) apply(userID, sessionID uuid.UUID, step func(*Session)) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(userID, sessionID)
	if err != nil {
		return View{}, err
	}
	step(s)
	s.lastActive = m.now()
	m.touch(s)
	return s.View(), nil
}

// lookup must be called with mu held.
func (m *Manager) lookup(userID, sessionID uuid.UUID) (*Session, error) {
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, ErrSessionNotFound
	}
	if m.expired(s, m.now()) {
		m.remove(s)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// add, touch, remove and leastRecentlyUsed must be called with mu held.
func (m *Manager) add(s *Session) {
	m.sessions[s.ID] = s
	owned, ok := m.byUser[s.UserID]
	if !ok {
		owned = make(map[uuid.UUID]*Session)
		m.byUser[s.UserID] = owned
	}
	owned[s.ID] = s
	m.touch(s)
}

func (m *Manager) touch(s *Session) {
	m.uses++
	s.lastUse = m.uses
}

func (m *Manager) remove(s *Session) {
	delete(m.sessions, s.ID)
	owned := m.byUser[s.UserID]
	delete(owned, s.ID)
	if len(owned) == 0 {
		delete(m.byUser, s.UserID)
	}
}

func (m *Manager) leastRecentlyUsed(userID uuid.UUID) *Session {
	var oldest *Session
	for _, s := range m.byUser[userID] {
		if oldest == nil || s.lastUse < oldest.lastUse {
			oldest = s
		}
	}
	return oldest
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.config.SessionTTL > 0 && now.Sub(s.lastActive) > m.config.SessionTTL
}

// expiryMonitor periodically removes sessions that have been idle for too long.
func (m *Manager) expiryMonitor() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			if removed := m.Sweep(); removed > 0 {
				m.logger.Debug("expired practice sessions removed", slog.Int("count", removed))
			}
		}
	}
}
