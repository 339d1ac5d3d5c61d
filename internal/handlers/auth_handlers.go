package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/afritok/afritok/internal/middleware"
	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/service/challenge"
	"github.com/afritok/afritok/internal/service/session"
)

// UserStore is the slice of the entity store the auth flow needs.
type UserStore interface {
	GetOrCreateUserByPhone(ctx context.Context, phone string) (*models.User, error)
}

type AuthHandlers struct {
	challenges *challenge.Service
	sessions   *session.Service
	users      UserStore
	logger     *logrus.Logger
}

func NewAuthHandlers(
	challenges *challenge.Service,
	sessions *session.Service,
	users UserStore,
	logger *logrus.Logger,
) *AuthHandlers {
	return &AuthHandlers{
		challenges: challenges,
		sessions:   sessions,
		users:      users,
		logger:     logger,
	}
}

type requestOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type verifyOTPResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token,omitempty"`
	User    userPayload `json:"user"`
}

func (h *AuthHandlers) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req requestOTPRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	phone, err := challenge.NormalizePhone(req.Phone)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "INVALID_PHONE", "Invalid phone number format")
		return
	}

	if err := h.challenges.Request(r.Context(), phone); err != nil {
		h.logger.WithError(err).Error("Failed to issue challenge")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	// Same response whether or not the number belongs to anyone; delivery
	// outcome is never reflected here.
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	phone, err := challenge.NormalizePhone(req.Phone)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "INVALID_PHONE", "Invalid phone number format")
		return
	}

	if err := h.challenges.Verify(r.Context(), phone, req.Code); err != nil {
		switch {
		case errors.Is(err, challenge.ErrMalformedCode):
			respondWithError(w, http.StatusBadRequest, "INVALID_CODE", "Code must be 6 digits")
		case errors.Is(err, challenge.ErrChallengeNotFound):
			respondWithError(w, http.StatusUnauthorized, "OTP_NOT_FOUND", "No code outstanding, request a new one")
		case errors.Is(err, challenge.ErrChallengeExpired):
			respondWithError(w, http.StatusUnauthorized, "OTP_EXPIRED", "Code expired, request a new one")
		case errors.Is(err, challenge.ErrCodeMismatch):
			respondWithError(w, http.StatusUnauthorized, "OTP_MISMATCH", "Incorrect code")
		case errors.Is(err, challenge.ErrTooManyAttempts):
			respondWithError(w, http.StatusUnauthorized, "OTP_TOO_MANY_ATTEMPTS", "Too many attempts, request a new code")
		default:
			h.logger.WithError(err).Error("Failed to verify challenge")
			respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		}
		return
	}

	user, err := h.users.GetOrCreateUserByPhone(r.Context(), phone)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get or create user")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue session")
		respondWithError(w, http.StatusInternalServerError, "SESSION_ISSUE_FAILED", "Failed to create session")
		return
	}

	h.sessions.SetCookie(w, token)
	respondWithJSON(w, http.StatusOK, verifyOTPResponse{
		Success: true,
		Token:   token,
		User: userPayload{
			ID:    user.ID,
			Phone: user.Phone,
			Name:  user.Name,
		},
	})
}

func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]userPayload{
		"user": {
			ID:    user.ID,
			Phone: user.Phone,
			Name:  user.Name,
		},
	})
}

func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	// Stateless sessions: clearing the cookie is all there is to do. The
	// old token stays valid until natural expiry.
	h.sessions.ClearCookie(w)
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
