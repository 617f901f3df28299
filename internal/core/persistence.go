package core

import "sync"

// BestScoreStore persists a single running-maximum score.
// LoadBestScore returns 0 when nothing has been saved yet.
type BestScoreStore interface {
	LoadBestScore() (int, error)
	SaveBestScore(value int) error
}

// MemoryBestScores is an in-process BestScoreStore.
// Used when no database is available and as a test fake.
type MemoryBestScores struct {
	mu    sync.Mutex
	value int
	saves int
}

// NewMemoryBestScores creates a store preloaded with the given value.
func NewMemoryBestScores(initial int) *MemoryBestScores {
	return &MemoryBestScores{value: initial}
}

// LoadBestScore returns the stored value.
func (m *MemoryBestScores) LoadBestScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, nil
}

// SaveBestScore stores the value.
func (m *MemoryBestScores) SaveBestScore(value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = value
	m.saves++
	return nil
}

// Saves returns how many times SaveBestScore was called.
func (m *MemoryBestScores) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
