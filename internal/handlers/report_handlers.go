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

type ReportHandlers struct {
	store  store.Store
	logger *logrus.Logger
}

func NewReportHandlers(st store.Store, logger *logrus.Logger) *ReportHandlers {
	return &ReportHandlers{
		store:  st,
		logger: logger,
	}
}

type createReportRequest struct {
	Reason  string `json:"reason" validate:"required,oneof=spam abuse nudity violence other"`
	Details string `json:"details" validate:"max=1000"`
}

func (h *ReportHandlers) CreateReport(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var req createReportRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	report, err := h.store.CreateReport(r.Context(), models.Report{
		VideoID:    mux.Vars(r)["id"],
		ReporterID: user.ID,
		Reason:     req.Reason,
		Details:    req.Details,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "NOT_FOUND", "Video not found")
			return
		}
		h.logger.WithError(err).Error("Failed to create report")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]models.Report{"report": report})
}
