// Package session keeps the transient per-admin conversation state.
package session

import (
	"sync"

	"telegram-shift-bot/internal/models"
)

// State is what an admin has entered so far in an add or edit flow.
type State struct {
	Stage     models.Stage
	ShiftID   int // set in the edit flow only
	StartTime string
	EndTime   string
}

// Store holds one State per admin identity.
type Store interface {
	Get(admin int64) (State, bool)
	Put(admin int64, st State)
	Clear(admin int64)
}

// Memory is a process-local Store. Sessions are lost on restart.
type Memory struct {
	mu     sync.Mutex
	states map[int64]State
}

func NewMemory() *Memory {
	return &Memory{states: make(map[int64]State)}
}

func (m *Memory) Get(admin int64) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[admin]
	return st, ok
}

func (m *Memory) Put(admin int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[admin] = st
}

func (m *Memory) Clear(admin int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, admin)
}
