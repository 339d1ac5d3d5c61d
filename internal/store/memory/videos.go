package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

func (s *Store) CreateVideo(_ context.Context, v models.Video) (models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = uuid.New().String()
	v.CreatedAt = time.Now().UTC()
	s.videos[v.ID] = v
	return v, nil
}

func (s *Store) GetVideo(_ context.Context, id string) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &v, nil
}

// sortedVideos returns all videos newest first. Callers must hold s.mu.
func (s *Store) sortedVideos() []models.Video {
	out := make([]models.Video, 0, len(s.videos))
	for _, v := range s.videos {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *Store) ListFeed(_ context.Context, f store.FeedFilter) ([]models.Video, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.sortedVideos()

	start := 0
	if f.Cursor != "" {
		for i, v := range all {
			if v.ID == f.Cursor {
				start = i + 1
				break
			}
		}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	page := all[start:end]

	next := ""
	if end < len(all) && len(page) > 0 {
		next = page[len(page)-1].ID
	}
	return page, next, nil
}

func (s *Store) ListVideosByHashtag(_ context.Context, tag string, limit int) ([]models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	var out []models.Video
	for _, v := range s.sortedVideos() {
		for _, t := range v.Hashtags {
			if t == tag {
				out = append(out, v)
				break
			}
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *Store) TrendingHashtags(_ context.Context, limit int) ([]models.HashtagCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, v := range s.videos {
		for _, t := range v.Hashtags {
			counts[t]++
		}
	}

	out := make([]models.HashtagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, models.HashtagCount{Tag: tag, Videos: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Videos != out[j].Videos {
			return out[i].Videos > out[j].Videos
		}
		return out[i].Tag < out[j].Tag
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
