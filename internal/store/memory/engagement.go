package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

func (s *Store) LikeVideo(_ context.Context, videoID, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[videoID]
	if !ok {
		return 0, store.ErrNotFound
	}

	set, ok := s.likes[videoID]
	if !ok {
		set = make(map[string]struct{})
		s.likes[videoID] = set
	}
	if _, already := set[userID]; already {
		return v.LikeCount, nil
	}

	set[userID] = struct{}{}
	v.LikeCount++
	s.videos[videoID] = v
	return v.LikeCount, nil
}

func (s *Store) UnlikeVideo(_ context.Context, videoID, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[videoID]
	if !ok {
		return 0, store.ErrNotFound
	}

	set := s.likes[videoID]
	if _, liked := set[userID]; !liked {
		return v.LikeCount, nil
	}

	delete(set, userID)
	if v.LikeCount > 0 {
		v.LikeCount--
	}
	s.videos[videoID] = v
	return v.LikeCount, nil
}

func (s *Store) CreateReport(_ context.Context, r models.Report) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.videos[r.VideoID]; !ok {
		return models.Report{}, store.ErrNotFound
	}

	r.ID = uuid.New().String()
	r.CreatedAt = time.Now().UTC()
	s.reports[r.ID] = r
	return r, nil
}

func (s *Store) CreateShare(_ context.Context, sh models.Share) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[sh.VideoID]
	if !ok {
		return 0, store.ErrNotFound
	}

	sh.ID = uuid.New().String()
	sh.CreatedAt = time.Now().UTC()
	s.shares[sh.ID] = sh

	v.ShareCount++
	s.videos[v.ID] = v
	return v.ShareCount, nil
}

func (s *Store) ListFilterPresets(_ context.Context) ([]models.FilterPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.FilterPreset, len(s.presets))
	copy(out, s.presets)
	return out, nil
}

func (s *Store) CreateCheckout(_ context.Context, c models.CheckoutSession) (models.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.New().String()
	c.Status = models.CheckoutStatusPending
	c.CreatedAt = time.Now().UTC()
	s.checkouts[c.ID] = c
	return c, nil
}

func (s *Store) GetCheckout(_ context.Context, id string) (*models.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.checkouts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}
