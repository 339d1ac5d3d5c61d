package memory

import (
	"context"

	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

func (s *Store) Put(_ context.Context, ch models.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.challenges[ch.Phone] = ch
	return nil
}

func (s *Store) Get(_ context.Context, phone string) (*models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[phone]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &ch, nil
}

func (s *Store) UpdateIfMatch(_ context.Context, phone, challengeID string, attempts int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[phone]
	if !ok {
		return store.ErrNotFound
	}
	if ch.ID != challengeID {
		// A newer challenge replaced the one that was read; leave it.
		return store.ErrConflict
	}
	ch.Attempts = attempts
	s.challenges[phone] = ch
	return nil
}

func (s *Store) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.challenges, phone)
	return nil
}

func (s *Store) DeleteIfMatch(_ context.Context, phone, challengeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[phone]
	if !ok {
		return store.ErrNotFound
	}
	if ch.ID != challengeID {
		// A newer challenge replaced the one that was matched; leave it.
		return store.ErrConflict
	}
	delete(s.challenges, phone)
	return nil
}
