package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

type FilterHandlers struct {
	store  store.Store
	logger *logrus.Logger
}

func NewFilterHandlers(st store.Store, logger *logrus.Logger) *FilterHandlers {
	return &FilterHandlers{
		store:  st,
		logger: logger,
	}
}

func (h *FilterHandlers) ListFilters(w http.ResponseWriter, r *http.Request) {
	presets, err := h.store.ListFilterPresets(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list filter presets")
		respondWithError(w, http.StatusServiceUnavailable, "TEMPORARY_FAILURE", "Could not process the request, try again")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string][]models.FilterPreset{"filters": presets})
}
