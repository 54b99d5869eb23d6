package session

import "sync"

// Memory is an in-memory Store used by tests and anywhere durable state
// is not wanted. Watch callbacks fire on every mutation, which lets tests
// exercise the out-of-band change path without touching the filesystem.
type Memory struct {
	watchers map[int]func()
	identity string
	nextID   int
	mu       sync.Mutex
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory session store.
func NewMemory() *Memory {
	return &Memory{watchers: make(map[int]func())}
}

// IsAuthenticated implements Store.
func (m *Memory) IsAuthenticated() bool {
	return m.Identity() != ""
}

// Identity implements Store.
func (m *Memory) Identity() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

// Establish implements Store.
func (m *Memory) Establish(identity string) error {
	m.mu.Lock()
	m.identity = identity
	watchers := m.snapshot()
	m.mu.Unlock()

	for _, w := range watchers {
		w()
	}
	return nil
}

// Clear implements Store.
func (m *Memory) Clear() error {
	m.mu.Lock()
	m.identity = ""
	watchers := m.snapshot()
	m.mu.Unlock()

	for _, w := range watchers {
		w()
	}
	return nil
}

// Watch implements Store.
func (m *Memory) Watch(onChange func()) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.watchers[id] = onChange

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.watchers, id)
	}, nil
}

func (m *Memory) snapshot() []func() {
	watchers := make([]func(), 0, len(m.watchers))
	for _, w := range m.watchers {
		watchers = append(watchers, w)
	}
	return watchers
}
