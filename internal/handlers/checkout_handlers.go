package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/afritok/afritok/internal/middleware"
	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

// CheckoutHandlers back the payment stub: sessions are created and listed
// but never charged; no gateway is wired.
type CheckoutHandlers struct {
	store  store.Store
	logger *logrus.Logger
}

func NewCheckoutHandlers(st store.Store, logger *logrus.Logger) *CheckoutHandlers {
	return &CheckoutHandlers{
		store:  st,
		logger: logger,
	}
}

type createCheckoutRequest struct {
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"required,len=3,alpha"`
	Description string `json:"description" validate:"max=500"`
}

func (h *CheckoutHandlers) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var req createCheckoutRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	checkout, err := h.store.CreateCheckout(r.Context(), models.CheckoutSession{
		UserID:      user.ID,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Description: req.Description,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to create checkout session")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]models.CheckoutSession{"checkout": checkout})
}

func (h *CheckoutHandlers) GetCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	checkout, err := h.store.GetCheckout(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "NOT_FOUND", "Checkout session not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get checkout session")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	if checkout.UserID != user.ID {
		respondWithError(w, http.StatusForbidden, "FORBIDDEN", "Checkout session belongs to another user")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]*models.CheckoutSession{"checkout": checkout})
}
