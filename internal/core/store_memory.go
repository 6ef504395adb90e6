package core

import (
	"context"
	"strconv"
	"sync"
)

// MemoryStore is an in-process Store. Nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	options map[string]string
	meta    map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{options: map[string]string{}, meta: map[string]string{}}
}

func (s *MemoryStore) GetOption(_ context.Context, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.options[name]
	return v, ok, nil
}

func (s *MemoryStore) SetOption(_ context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[name] = value
	return nil
}

func (s *MemoryStore) GetUserMeta(_ context.Context, userID int, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.meta[strconv.Itoa(userID)+":"+key]
	return v, ok, nil
}

func (s *MemoryStore) SetUserMeta(_ context.Context, userID int, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta[strconv.Itoa(userID)+":"+key] = value
	return nil
}
