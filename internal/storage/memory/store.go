package memory

import (
	"context"
	"errors"
	"sync"

	"surveyor/internal/question"
	"surveyor/internal/storage"
)

// Store is an in-memory storage.Provider for tests and ephemeral runs.
type Store struct {
	mu      sync.RWMutex
	answers map[string]question.Answer
}

// New creates an empty store.
func New() *Store {
	return &Store{answers: map[string]question.Answer{}}
}

// Exists reports whether an answer for the id has been put.
func (s *Store) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.answers[id]
	return ok, nil
}

// Get returns a copy of the stored answer or storage.ErrNotFound.
func (s *Store) Get(_ context.Context, id string) (question.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ans, ok := s.answers[id]
	if !ok {
		return question.Answer{}, storage.ErrNotFound
	}
	return ans.Clone(), nil
}

// Put stores a copy of the answer. First write wins: an id that is already
// present is left untouched.
func (s *Store) Put(_ context.Context, ans question.Answer) error {
	if ans.QuestionID == "" {
		return &storage.StorageError{Op: "put", Err: errors.New("question id is required")}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.answers[ans.QuestionID]; ok {
		return nil
	}
	s.answers[ans.QuestionID] = ans.Clone()
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// Len returns the number of stored answers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.answers)
}
