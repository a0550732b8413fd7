// internal/domain/session/manager.go
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/your-org/store-pilot/internal/domain/catalog"
	"github.com/your-org/store-pilot/internal/domain/negotiation"
	"github.com/your-org/store-pilot/internal/domain/search"
	"github.com/your-org/store-pilot/internal/domain/store"
	"github.com/your-org/store-pilot/internal/infrastructure/kv"
)

// ErrBusy is returned when a session is already handling a chat turn
var ErrBusy = errors.New("session busy")

// Session is one shopper's store
type Session struct {
	ID    string
	Store *store.Store

	busy     atomic.Bool
	lastSeen time.Time
}

// Acquire marks the session busy. It fails if another turn holds it.
func (s *Session) Acquire() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

// Release clears the busy flag
func (s *Session) Release() {
	s.busy.Store(false)
}

// Busy reports whether a chat turn is in progress
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Manager keeps the live sessions. Each session gets its own store whose
// persisted state lives under its own key prefix.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	catalog     *catalog.Catalog
	engine      *search.Engine
	kv          kv.Store
	recorder    negotiation.Recorder
	random      func() negotiation.RandomSource
	logger      logrus.FieldLogger
	idleTimeout time.Duration
	now         func() time.Time
}

// Option configures a Manager
type Option func(*Manager)

// WithKV sets the backing store for session state
func WithKV(store kv.Store) Option {
	return func(m *Manager) { m.kv = store }
}

// WithRecorder sets where negotiation records go
func WithRecorder(recorder negotiation.Recorder) Option {
	return func(m *Manager) { m.recorder = recorder }
}

// WithRandomFactory sets how each new session gets its random source
func WithRandomFactory(factory func() negotiation.RandomSource) Option {
	return func(m *Manager) { m.random = factory }
}

// WithSeed gives every new session a random source seeded with seed
func WithSeed(seed uint64) Option {
	return WithRandomFactory(func() negotiation.RandomSource {
		return negotiation.NewSeededRandom(seed)
	})
}

// WithIdleTimeout sets how long an unused session stays in memory
func WithIdleTimeout(d time.Duration) Option {
	return func(m *Manager) { m.idleTimeout = d }
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a new session manager
func NewManager(c *catalog.Catalog, opts ...Option) *Manager {
	m := &Manager{
		sessions:    make(map[string]*Session),
		catalog:     c,
		engine:      search.NewEngine(c),
		random:      negotiation.DefaultRandom,
		logger:      logrus.StandardLogger(),
		idleTimeout: 30 * time.Minute,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.kv == nil {
		m.kv = kv.NewMemory()
	}
	return m
}

// NewID returns a fresh session id
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like a session id
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Catalog returns the catalog shared by all sessions
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}

// Get returns the session for id, restoring it from the KV store when it is
// not in memory.
func (m *Manager) Get(ctx context.Context, id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.lastSeen = m.now()
		return s
	}

	s := &Session{
		ID: id,
		Store: store.New(ctx, m.catalog,
			store.WithKV(kv.WithPrefix(m.kv, KeyPrefix(id))),
			store.WithLogger(m.logger),
			store.WithRandom(m.random()),
			store.WithRecorder(m.recorder),
			store.WithSessionID(id),
			store.WithSearchEngine(m.engine),
		),
		lastSeen: m.now(),
	}
	m.sessions[id] = s
	m.logger.WithField("session_id", id).Debug("Session opened")
	return s
}

// KeyPrefix is where a session's persisted state lives
func KeyPrefix(id string) string {
	return "session:" + id + ":"
}

// Len returns the number of sessions in memory
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops idle sessions from memory. Their persisted cart and coupon
// stay in the KV store.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.idleTimeout)
	removed := 0
	for id, s := range m.sessions {
		if s.Busy() || s.lastSeen.After(cutoff) {
			continue
		}
		delete(m.sessions, id)
		removed++
	}
	if removed > 0 {
		m.logger.WithField("removed", removed).Debug("Swept idle sessions")
	}
	return removed
}

// Run sweeps every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
