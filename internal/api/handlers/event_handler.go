package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/isdelr/blogit-be/internal/models"
	"github.com/isdelr/blogit-be/internal/services"
	"github.com/rs/zerolog/log"
)

const defaultEventLimit = 20

// EventHandler handles HTTP requests for the activity log.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent handles the request to list recent activity entries.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	events, err := h.service.GetRecentEvents(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve events")
		writeMessage(w, http.StatusInternalServerError, "Error fetching events")
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}
