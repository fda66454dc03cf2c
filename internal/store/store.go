// Package store keeps the live quiz.State of each browser session between
// requests. A Reset on the session deletes its snapshot.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/mind-engage/sheetquiz/internal/quiz"
)

var ErrNotFound = errors.New("session not found")

type Store interface {
	Get(ctx context.Context, id string) (quiz.State, error)
	Put(ctx context.Context, id string, st quiz.State) error
	Delete(ctx context.Context, id string) error
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]quiz.State
}

func NewInMemoryStore() Store {
	return &memoryStore{sessions: map[string]quiz.State{}}
}

func (m *memoryStore) Get(_ context.Context, id string) (quiz.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.sessions[id]
	if !ok {
		return quiz.State{}, ErrNotFound
	}
	return st, nil
}

// Put stores st as given; callers hand over a copy from quiz.Session.State.
func (m *memoryStore) Put(_ context.Context, id string, st quiz.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = st
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
