package agent

import (
	"sync"

	"github.com/google/uuid"
)

// Manager hands out one Agent per conversation so concurrent web sessions
// never share state. Only the map itself is guarded; each Agent still
// processes one turn at a time within its session.
type Manager struct {
	mu      sync.RWMutex
	agents  map[string]*Agent
	factory func() *Agent
}

// NewManager creates a Manager that builds new agents with factory.
func NewManager(factory func() *Agent) *Manager {
	return &Manager{
		agents:  make(map[string]*Agent),
		factory: factory,
	}
}

// Get returns the agent for id, if any.
func (m *Manager) Get(id string) (*Agent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	agent, exists := m.agents[id]
	return agent, exists
}

// GetOrCreate returns the agent for id, minting a fresh id and agent when
// id is empty or unknown.
func (m *Manager) GetOrCreate(id string) (string, *Agent) {
	if id != "" {
		if agent, exists := m.Get(id); exists {
			return id, agent
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id = uuid.New().String()
	agent := m.factory()
	m.agents[id] = agent
	return id, agent
}
