package store

import (
	"context"
	"errors"

	"github.com/afritok/afritok/internal/models"
)

var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
)

// ChallengeStore holds outstanding OTP challenges keyed by phone number.
// It is the only mutable shared state of the auth core, so implementations
// must keep per-phone operations atomic: the *IfMatch writes take effect
// only when the stored record still carries the given ID, which keeps a
// verify that read an old challenge from clobbering a newer one written
// concurrently for the same phone.
type ChallengeStore interface {
	// Put writes the challenge, unconditionally replacing any existing
	// record for the same phone.
	Put(ctx context.Context, ch models.Challenge) error
	Get(ctx context.Context, phone string) (*models.Challenge, error)
	// UpdateIfMatch sets the attempt counter without extending the
	// record's lifetime. Returns ErrNotFound if no record exists and
	// ErrConflict if the stored challenge no longer carries challengeID.
	UpdateIfMatch(ctx context.Context, phone, challengeID string, attempts int) error
	Delete(ctx context.Context, phone string) error
	DeleteIfMatch(ctx context.Context, phone, challengeID string) error
}

type FeedFilter struct {
	Cursor string
	Limit  int
}

// Store is the persistent entity store behind the platform surface.
type Store interface {
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	// GetOrCreateUserByPhone creates the user on first verification and
	// touches UpdatedAt on every one after that.
	GetOrCreateUserByPhone(ctx context.Context, phone string) (*models.User, error)

	CreateVideo(ctx context.Context, v models.Video) (models.Video, error)
	GetVideo(ctx context.Context, id string) (*models.Video, error)
	// ListFeed returns videos newest first plus an opaque cursor for the
	// next page; the cursor is empty when the feed is exhausted.
	ListFeed(ctx context.Context, f FeedFilter) ([]models.Video, string, error)
	ListVideosByHashtag(ctx context.Context, tag string, limit int) ([]models.Video, error)
	TrendingHashtags(ctx context.Context, limit int) ([]models.HashtagCount, error)

	// LikeVideo is idempotent per (video, user) pair. Both return the
	// resulting like count.
	LikeVideo(ctx context.Context, videoID, userID string) (int, error)
	UnlikeVideo(ctx context.Context, videoID, userID string) (int, error)

	CreateComment(ctx context.Context, c models.Comment) (models.Comment, error)
	GetComment(ctx context.Context, id string) (*models.Comment, error)
	ListComments(ctx context.Context, videoID string, limit int) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id string) error

	CreateReport(ctx context.Context, r models.Report) (models.Report, error)
	// CreateShare records the share and returns the video's share count.
	CreateShare(ctx context.Context, s models.Share) (int, error)

	ListFilterPresets(ctx context.Context) ([]models.FilterPreset, error)

	CreateCheckout(ctx context.Context, c models.CheckoutSession) (models.CheckoutSession, error)
	GetCheckout(ctx context.Context, id string) (*models.CheckoutSession, error)
}
