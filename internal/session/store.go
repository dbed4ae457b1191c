package session

import (
	"context"
	"sync"

	"github.com/Dyno1404/Justredact/internal/state"
)

// Storage keys, kept distinct so each flag can be inspected or cleared on
// its own.
const (
	keyAuth     = "adminAuth"
	keyRemember = "adminRemember"
)

// StateStore persists session flags in the local state database.
type StateStore struct {
	db *state.DB
}

func NewStateStore(db *state.DB) *StateStore {
	return &StateStore{db: db}
}

func (s *StateStore) Load(ctx context.Context) (Session, error) {
	var sess Session
	v, ok, err := s.db.Get(ctx, keyAuth)
	if err != nil {
		return Session{}, err
	}
	sess.Authenticated = ok && v == "true"
	v, ok, err = s.db.Get(ctx, keyRemember)
	if err != nil {
		return Session{}, err
	}
	sess.Remember = ok && v == "true"
	return normalize(sess), nil
}

func (s *StateStore) Save(ctx context.Context, sess Session) error {
	v := "false"
	if sess.Authenticated {
		v = "true"
	}
	if err := s.db.Set(ctx, keyAuth, v); err != nil {
		return err
	}
	if sess.Remember {
		return s.db.Set(ctx, keyRemember, "true")
	}
	return s.db.Delete(ctx, keyRemember)
}

func (s *StateStore) Clear(ctx context.Context) error {
	if err := s.db.Delete(ctx, keyAuth); err != nil {
		return err
	}
	return s.db.Delete(ctx, keyRemember)
}

// MemoryStore is a non-durable Store for tests.
type MemoryStore struct {
	mu   sync.Mutex
	sess Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return normalize(m.sess), nil
}

func (m *MemoryStore) Save(ctx context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = s
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = Session{}
	return nil
}
