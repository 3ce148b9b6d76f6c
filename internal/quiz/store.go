package quiz

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Akhileshvankayala/quiz-for-IP/internal/bank"
	"github.com/Akhileshvankayala/quiz-for-IP/internal/models"
)

// StoreConfig holds session store settings
type StoreConfig struct {
	MaxSessions int // 0 means unlimited
	UndoPolicy  UndoPolicy
	Now         func() time.Time
}

type storeEntry struct {
	engine   *Engine
	lastSeen time.Time
}

// Store keeps one engine per session id so concurrent players stay isolated
type Store struct {
	mu          sync.Mutex
	bank        *bank.Bank
	engineOpts  []Option
	maxSessions int
	now         func() time.Time
	entries     map[string]*storeEntry
}

// NewStore creates an empty session store over a question bank
func NewStore(b *bank.Bank, cfg StoreConfig) *Store {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	policy := cfg.UndoPolicy
	if policy == "" {
		policy = UndoReopen
	}

	return &Store{
		bank:        b,
		engineOpts:  []Option{WithUndoPolicy(policy), WithClock(now)},
		maxSessions: cfg.MaxSessions,
		now:         now,
		entries:     make(map[string]*storeEntry),
	}
}

// Bank returns the question bank sessions are played against
func (s *Store) Bank() *bank.Bank {
	return s.bank
}

// Start creates a new session and registers it under its id.
// If replaceID names an existing session, that session is discarded.
func (s *Store) Start(playerName, replaceID string) (*Engine, models.Session) {
	engine := NewEngine(s.bank, s.engineOpts...)
	session := engine.Start(playerName)

	s.mu.Lock()
	defer s.mu.Unlock()

	if replaceID != "" {
		if old, ok := s.entries[replaceID]; ok {
			old.engine.Reset()
			delete(s.entries, replaceID)
		}
	}

	if s.maxSessions > 0 && len(s.entries) >= s.maxSessions {
		s.evictOldestLocked()
	}

	s.entries[session.ID] = &storeEntry{engine: engine, lastSeen: s.now()}
	return engine, session
}

// Get returns the engine for a session id
func (s *Store) Get(id string) (*Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = s.now()
	return entry.engine, nil
}

// Delete resets and removes a session
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok {
		delete(s.entries, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	entry.engine.Reset()
	return nil
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// EvictIdle removes sessions not accessed within maxIdle and returns how many were removed
func (s *Store) EvictIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	evicted := 0
	for id, entry := range s.entries {
		if entry.lastSeen.Before(cutoff) {
			entry.engine.Reset()
			delete(s.entries, id)
			evicted++
			slog.Info("session evicted", "session_id", id, "last_seen", entry.lastSeen)
		}
	}
	return evicted
}

// evictOldestLocked drops the least recently used session. Caller holds mu.
func (s *Store) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, entry := range s.entries {
		if oldestID == "" || entry.lastSeen.Before(oldest) {
			oldestID = id
			oldest = entry.lastSeen
		}
	}

	if oldestID == "" {
		return
	}
	s.entries[oldestID].engine.Reset()
	delete(s.entries, oldestID)
	slog.Warn("session store full, evicted oldest session", "session_id", oldestID, "max_sessions", s.maxSessions)
}
