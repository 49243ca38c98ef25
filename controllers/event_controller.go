package controllers

import (
	"context"
	"net/http"
	"strconv"

	"playdates_server/models"
	"playdates_server/services"

	"github.com/gorilla/mux"
)

// EventController exposes community event operations.
type EventController struct {
	Events *services.EventService
}

// NewEventController initializes the event controller.
func NewEventController(events *services.EventService) *EventController {
	return &EventController{Events: events}
}

// CreateEvent handles POST /api/events.
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event models.CommunityEvent
	if err := decodeBody(r, &event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if event.OrganizerID == "" {
		writeError(w, http.StatusBadRequest, "organizerId is required")
		return
	}

	created, err := c.Events.CreateEvent(r.Context(), event)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetEvent handles GET /api/events/{eventId}.
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	event, err := c.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// ListUpcoming handles GET /api/events?category=...
func (c *EventController) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	events, err := c.Events.ListUpcomingEvents(r.Context(), category, int32(limit))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// RSVP handles POST /api/events/{eventId}/rsvp.
func (c *EventController) RSVP(w http.ResponseWriter, r *http.Request) {
	c.membership(w, r, c.Events.RSVP)
}

// CancelRSVP handles POST /api/events/{eventId}/cancel.
func (c *EventController) CancelRSVP(w http.ResponseWriter, r *http.Request) {
	c.membership(w, r, c.Events.CancelRSVP)
}

func (c *EventController) membership(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, eventID, userID string) (*models.CommunityEvent, error)) {
	eventID := mux.Vars(r)["eventId"]

	var body struct {
		UserID string `json:"userId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	event, err := op(r.Context(), eventID, body.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}
