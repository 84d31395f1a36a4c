package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/TEJ12356788/atmosphere/internal/service"
)

type EventHandler struct {
	Service *service.Service
}

func (h *EventHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.UpcomingEvents(r.Context(), h.Service.Today())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Attending(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	events, err := h.Service.EventsAttending(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	var req service.EventInput
	if !decode(w, r, &req) {
		return
	}
	event, err := h.Service.CreateEvent(r.Context(), sess, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	result, err := h.Service.RSVP(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
