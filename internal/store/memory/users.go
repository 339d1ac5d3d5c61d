package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

func (s *Store) GetUserByPhone(_ context.Context, phone string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[phone]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetOrCreateUserByPhone(_ context.Context, phone string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if u, ok := s.users[phone]; ok {
		u.UpdatedAt = now
		s.users[phone] = u
		return &u, nil
	}

	u := models.User{
		ID:        uuid.New().String(),
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[phone] = u
	return &u, nil
}
