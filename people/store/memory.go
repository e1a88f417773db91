// Package store provides an in-memory people.Store for tests and dev.
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/warp/office-cheer/people"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	order   []string // ids in insertion order
	byID    map[string]people.Person
	byEmail map[string]string // lowercased email -> id
}

func NewMemory() *Memory {
	return &Memory{
		byID:    make(map[string]people.Person),
		byEmail: make(map[string]string),
	}
}

func (m *Memory) Add(_ context.Context, p people.Person) (people.Person, error) {
	if err := p.Validate(); err != nil {
		return people.Person{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := emailKey(p.Email)
	if _, exists := m.byEmail[key]; exists {
		return people.Person{}, people.ErrDuplicateEmail
	}

	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	p.Interests = append([]string(nil), p.Interests...)

	m.byID[p.ID] = p
	m.byEmail[key] = p.ID
	m.order = append(m.order, p.ID)
	return p, nil
}

func (m *Memory) GetByID(_ context.Context, id string) (people.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.byID[id]
	if !ok {
		return people.Person{}, people.ErrNotFound
	}
	return p, nil
}

func (m *Memory) GetByEmail(_ context.Context, email string) (people.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[emailKey(email)]
	if !ok {
		return people.Person{}, people.ErrNotFound
	}
	return m.byID[id], nil
}

func (m *Memory) Update(_ context.Context, id string, upd people.Update) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.byID[id]
	if !ok {
		return people.ErrNotFound
	}

	merged, err := upd.Apply(current)
	if err != nil {
		return err
	}

	oldKey, newKey := emailKey(current.Email), emailKey(merged.Email)
	if newKey != oldKey {
		if _, taken := m.byEmail[newKey]; taken {
			return people.ErrDuplicateEmail
		}
		delete(m.byEmail, oldKey)
		m.byEmail[newKey] = id
	}

	m.byID[id] = merged
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.byID[id]
	if !ok {
		return people.ErrNotFound
	}

	delete(m.byID, id)
	delete(m.byEmail, emailKey(p.Email))
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) ListAll(_ context.Context) ([]people.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]people.Person, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.byID[id])
	}
	return result, nil
}

func (m *Memory) Close() error { return nil }

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
