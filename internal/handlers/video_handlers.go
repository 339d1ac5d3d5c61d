package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/afritok/afritok/internal/middleware"
	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

const maxFeedLimit = 50

type VideoHandlers struct {
	store   store.Store
	baseURL string
	logger  *logrus.Logger
}

func NewVideoHandlers(st store.Store, baseURL string, logger *logrus.Logger) *VideoHandlers {
	return &VideoHandlers{
		store:   st,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

type createVideoRequest struct {
	Caption  string `json:"caption" validate:"max=2200"`
	VideoURL string `json:"video_url" validate:"required,url"`
}

func (h *VideoHandlers) CreateVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var req createVideoRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	video := models.Video{
		AuthorID: user.ID,
		Caption:  req.Caption,
		VideoURL: req.VideoURL,
		Hashtags: models.ExtractHashtags(req.Caption),
		Mentions: models.ExtractMentions(req.Caption),
	}

	created, err := h.store.CreateVideo(r.Context(), video)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create video")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]models.Video{"video": created})
}

func (h *VideoHandlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	videos, next, err := h.store.ListFeed(r.Context(), store.FeedFilter{
		Cursor: r.URL.Query().Get("cursor"),
		Limit:  limit,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to list feed")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"videos":      videos,
		"next_cursor": next,
	})
}

func (h *VideoHandlers) GetVideo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	video, err := h.store.GetVideo(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "NOT_FOUND", "Video not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get video")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]*models.Video{"video": video})
}

func (h *VideoHandlers) LikeVideo(w http.ResponseWriter, r *http.Request) {
	h.setLike(w, r, true)
}

func (h *VideoHandlers) UnlikeVideo(w http.ResponseWriter, r *http.Request) {
	h.setLike(w, r, false)
}

func (h *VideoHandlers) setLike(w http.ResponseWriter, r *http.Request, liked bool) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}
	id := mux.Vars(r)["id"]

	var count int
	var err error
	if liked {
		count, err = h.store.LikeVideo(r.Context(), id, user.ID)
	} else {
		count, err = h.store.UnlikeVideo(r.Context(), id, user.ID)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "NOT_FOUND", "Video not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update like")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"like_count": count})
}

func (h *VideoHandlers) ShareVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}
	id := mux.Vars(r)["id"]

	count, err := h.store.CreateShare(r.Context(), models.Share{
		VideoID: id,
		UserID:  user.ID,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "NOT_FOUND", "Video not found")
			return
		}
		h.logger.WithError(err).Error("Failed to record share")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"share_url":   h.baseURL + "/v/" + id,
		"share_count": count,
	})
}

func (h *VideoHandlers) HashtagVideos(w http.ResponseWriter, r *http.Request) {
	tag := strings.ToLower(mux.Vars(r)["tag"])

	videos, err := h.store.ListVideosByHashtag(r.Context(), tag, maxFeedLimit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list hashtag videos")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tag":    tag,
		"videos": videos,
	})
}

func (h *VideoHandlers) TrendingHashtags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.store.TrendingHashtags(r.Context(), 10)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list trending hashtags")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string][]models.HashtagCount{"hashtags": tags})
}
