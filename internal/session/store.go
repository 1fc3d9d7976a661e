package session

import (
	"sync"
	"time"

	"secrethouse/internal/domain"
)

// Store keeps in-flight conversation drafts keyed by chat id. Each draft is
// owned by one conversation; eviction is caller-driven, either per chat via
// Clear or in bulk via Prune.
type Store struct {
	mu     sync.RWMutex
	drafts map[int64]*domain.Draft
}

func NewStore() *Store {
	return &Store{drafts: make(map[int64]*domain.Draft)}
}

func (s *Store) Get(chatID int64) (*domain.Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[chatID]
	return draft, ok
}

// GetOrCreate returns the existing draft for the chat or starts a fresh one.
func (s *Store) GetOrCreate(chatID int64) *domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	if draft, ok := s.drafts[chatID]; ok {
		return draft
	}
	draft := &domain.Draft{ChatID: chatID, UpdatedAt: time.Now()}
	s.drafts[chatID] = draft
	return draft
}

func (s *Store) Put(chatID int64, draft *domain.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft.ChatID = chatID
	draft.UpdatedAt = time.Now()
	s.drafts[chatID] = draft
}

// Clear drops the draft for the chat; clearing an absent scope is a no-op.
func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, chatID)
}

// Prune drops drafts that have not been touched for ttl and reports how
// many were dropped.
func (s *Store) Prune(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for chatID, draft := range s.drafts {
		if draft.UpdatedAt.Before(cutoff) {
			delete(s.drafts, chatID)
			pruned++
		}
	}
	return pruned
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}
