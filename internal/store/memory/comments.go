package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

func (s *Store) CreateComment(_ context.Context, c models.Comment) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[c.VideoID]
	if !ok {
		return models.Comment{}, store.ErrNotFound
	}

	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()
	s.comments[c.ID] = c

	v.CommentCount++
	s.videos[v.ID] = v
	return c, nil
}

func (s *Store) GetComment(_ context.Context, id string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (s *Store) ListComments(_ context.Context, videoID string, limit int) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}

	var out []models.Comment
	for _, c := range s.comments {
		if c.VideoID == videoID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) DeleteComment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.comments, id)

	if v, ok := s.videos[c.VideoID]; ok && v.CommentCount > 0 {
		v.CommentCount--
		s.videos[v.ID] = v
	}
	return nil
}
