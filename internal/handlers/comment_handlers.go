package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/afritok/afritok/internal/middleware"
	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

type CommentHandlers struct {
	store  store.Store
	logger *logrus.Logger
}

func NewCommentHandlers(st store.Store, logger *logrus.Logger) *CommentHandlers {
	return &CommentHandlers{
		store:  st,
		logger: logger,
	}
}

type createCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

func (h *CommentHandlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var req createCommentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	comment, err := h.store.CreateComment(r.Context(), models.Comment{
		VideoID:  mux.Vars(r)["id"],
		AuthorID: user.ID,
		Text:     req.Text,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "NOT_FOUND", "Video not found")
			return
		}
		h.logger.WithError(err).Error("Failed to create comment")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]models.Comment{"comment": comment})
}

func (h *CommentHandlers) ListComments(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < limit {
			limit = n
		}
	}

	comments, err := h.store.ListComments(r.Context(), mux.Vars(r)["id"], limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list comments")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string][]models.Comment{"comments": comments})
}

func (h *CommentHandlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}
	id := mux.Vars(r)["id"]

	comment, err := h.store.GetComment(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "NOT_FOUND", "Comment not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get comment")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	if comment.AuthorID != user.ID {
		respondWithError(w, http.StatusForbidden, "FORBIDDEN", "Only the author can delete a comment")
		return
	}

	if err := h.store.DeleteComment(r.Context(), id); err != nil {
		h.logger.WithError(err).Error("Failed to delete comment")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
