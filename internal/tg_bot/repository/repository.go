// Package repository provides the conversation state store of the bot.
// States live in memory for the process lifetime only.
package repository

import (
	"sync"
	"time"

	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/models"
	"github.com/sirupsen/logrus"
)

// turnLock serializes turns of one chat. refs counts holders and waiters.
type turnLock struct {
	mu   sync.Mutex
	refs int
}

// ConversationStore keeps one dialog state per chat and serializes turns of the same chat.
type ConversationStore struct {
	states map[int64]models.ConversationState // In-memory store of conversation states by chat ID.
	locks  map[int64]*turnLock                // Per-chat turn locks.
	mu     sync.RWMutex                       // Protects states and locks
	now    func() time.Time
}

// NewConversationStore creates an empty ConversationStore.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		states: make(map[int64]models.ConversationState),
		locks:  make(map[int64]*turnLock),
		now:    time.Now,
	}
}

// Get returns a copy of the chat's state and whether it exists.
func (s *ConversationStore) Get(chatID int64) (models.ConversationState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[chatID]
	return state, ok
}

// Set creates or replaces the chat's state and stamps UpdatedAt.
func (s *ConversationStore) Set(state models.ConversationState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state.UpdatedAt = s.now()
	s.states[state.ChatID] = state
}

// Delete removes the chat's state. Deleting an absent chat is a no-op.
func (s *ConversationStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, chatID)
}

// Len returns the number of stored conversations.
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.states)
}

// Lock acquires the turn lock of chatID and returns its release function.
// Callers hold it for the whole turn so that one chat's events never interleave.
func (s *ConversationStore) Lock(chatID int64) func() {
	s.mu.Lock()
	l, ok := s.locks[chatID]
	if !ok {
		l = &turnLock{}
		s.locks[chatID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			s.mu.Lock()
			l.refs--
			s.mu.Unlock()
		})
	}
}

// EvictIdle drops conversations not updated within ttl, along with unused turn locks.
// Returns the number of evicted conversations.
func (s *ConversationStore) EvictIdle(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	startTime := time.Now()
	deadline := s.now().Add(-ttl)
	evicted := 0
	for chatID, state := range s.states {
		if state.UpdatedAt.Before(deadline) {
			delete(s.states, chatID)
			evicted++
		}
	}
	for chatID, l := range s.locks {
		if l.refs == 0 {
			delete(s.locks, chatID)
		}
	}

	logrus.Debugf("Evicted %d idle conversations, %d left, in %v", evicted, len(s.states), time.Since(startTime))
	return evicted
}
