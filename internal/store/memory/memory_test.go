package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

func TestChallengeLifecycle(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	ch := models.Challenge{
		ID:        "ch-1",
		Phone:     "+15551234567",
		CodeHash:  "hash",
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
	}
	require.NoError(t, s.Put(ctx, ch))

	got, err := s.Get(ctx, ch.Phone)
	require.NoError(t, err)
	assert.Equal(t, "ch-1", got.ID)

	// UpdateIfMatch records attempts without touching the rest.
	require.NoError(t, s.UpdateIfMatch(ctx, ch.Phone, ch.ID, 2))
	got, err = s.Get(ctx, ch.Phone)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Attempts)
	assert.Equal(t, ch.ExpiresAt, got.ExpiresAt)

	require.NoError(t, s.Delete(ctx, ch.Phone))
	_, err = s.Get(ctx, ch.Phone)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestChallengePutOverwrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, models.Challenge{ID: "old", Phone: "+15551234567"}))
	require.NoError(t, s.Put(ctx, models.Challenge{ID: "new", Phone: "+15551234567"}))

	got, err := s.Get(ctx, "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)
}

func TestUpdateIfMatch(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.UpdateIfMatch(ctx, "+15551234567", "ch-1", 1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Put(ctx, models.Challenge{ID: "ch-1", Phone: "+15551234567", CodeHash: "hash-1"}))

	// A stale ID must not write over the live challenge.
	err = s.UpdateIfMatch(ctx, "+15551234567", "ch-0", 3)
	assert.ErrorIs(t, err, store.ErrConflict)
	got, err := s.Get(ctx, "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Attempts)
	assert.Equal(t, "hash-1", got.CodeHash)

	require.NoError(t, s.UpdateIfMatch(ctx, "+15551234567", "ch-1", 3))
	got, err = s.Get(ctx, "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Attempts)
}

func TestDeleteIfMatch(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, models.Challenge{ID: "ch-1", Phone: "+15551234567"}))

	// A stale ID must not delete the live challenge.
	err := s.DeleteIfMatch(ctx, "+15551234567", "ch-0")
	assert.ErrorIs(t, err, store.ErrConflict)
	_, err = s.Get(ctx, "+15551234567")
	require.NoError(t, err)

	require.NoError(t, s.DeleteIfMatch(ctx, "+15551234567", "ch-1"))
	_, err = s.Get(ctx, "+15551234567")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.DeleteIfMatch(ctx, "+15551234567", "ch-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetOrCreateUserByPhone(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u1, err := s.GetOrCreateUserByPhone(ctx, "+15551234567")
	require.NoError(t, err)
	assert.NotEmpty(t, u1.ID)
	assert.Equal(t, "+15551234567", u1.Phone)

	u2, err := s.GetOrCreateUserByPhone(ctx, "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, u1.ID, u2.ID)
	assert.False(t, u2.UpdatedAt.Before(u1.UpdatedAt))
}

func TestFeedPagination(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.CreateVideo(ctx, models.Video{AuthorID: "u1", VideoURL: "https://cdn.example/v.mp4"})
		require.NoError(t, err)
	}

	page1, cursor, err := s.ListFeed(ctx, store.FeedFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page1, 3)
	require.NotEmpty(t, cursor)

	page2, cursor2, err := s.ListFeed(ctx, store.FeedFilter{Cursor: cursor, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page2, 2)
	assert.Empty(t, cursor2)

	seen := make(map[string]struct{})
	for _, v := range append(page1, page2...) {
		seen[v.ID] = struct{}{}
	}
	assert.Len(t, seen, 5)
}

func TestLikesIdempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	v, err := s.CreateVideo(ctx, models.Video{AuthorID: "u1", VideoURL: "https://cdn.example/v.mp4"})
	require.NoError(t, err)

	count, err := s.LikeVideo(ctx, v.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = s.LikeVideo(ctx, v.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = s.LikeVideo(ctx, v.ID, "u3")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = s.UnlikeVideo(ctx, v.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = s.UnlikeVideo(ctx, v.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = s.LikeVideo(ctx, "missing", "u2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCommentsAdjustVideoCount(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	v, err := s.CreateVideo(ctx, models.Video{AuthorID: "u1", VideoURL: "https://cdn.example/v.mp4"})
	require.NoError(t, err)

	c, err := s.CreateComment(ctx, models.Comment{VideoID: v.ID, AuthorID: "u2", Text: "nice"})
	require.NoError(t, err)

	got, err := s.GetVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CommentCount)

	comments, err := s.ListComments(ctx, v.ID, 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].Text)

	require.NoError(t, s.DeleteComment(ctx, c.ID))
	got, err = s.GetVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CommentCount)

	_, err = s.CreateComment(ctx, models.Comment{VideoID: "missing", AuthorID: "u2", Text: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTrendingHashtags(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.CreateVideo(ctx, models.Video{AuthorID: "u1", VideoURL: "https://cdn.example/v.mp4", Hashtags: []string{"dance"}})
		require.NoError(t, err)
	}
	_, err := s.CreateVideo(ctx, models.Video{AuthorID: "u1", VideoURL: "https://cdn.example/v.mp4", Hashtags: []string{"dance", "comedy"}})
	require.NoError(t, err)

	tags, err := s.TrendingHashtags(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, models.HashtagCount{Tag: "dance", Videos: 4}, tags[0])
	assert.Equal(t, models.HashtagCount{Tag: "comedy", Videos: 1}, tags[1])

	byTag, err := s.ListVideosByHashtag(ctx, "comedy", 10)
	require.NoError(t, err)
	assert.Len(t, byTag, 1)
}

func TestSharesAndCheckouts(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	v, err := s.CreateVideo(ctx, models.Video{AuthorID: "u1", VideoURL: "https://cdn.example/v.mp4"})
	require.NoError(t, err)

	count, err := s.CreateShare(ctx, models.Share{VideoID: v.ID, UserID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = s.CreateShare(ctx, models.Share{VideoID: v.ID, UserID: "u3"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	c, err := s.CreateCheckout(ctx, models.CheckoutSession{UserID: "u2", AmountCents: 499, Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutStatusPending, c.Status)

	got, err := s.GetCheckout(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(499), got.AmountCents)

	presets, err := s.ListFilterPresets(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, presets)
}
