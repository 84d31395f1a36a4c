package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/TEJ12356788/atmosphere/internal/service"
)

const defaultDiscoverLimit = 20

type CircleHandler struct {
	Service *service.Service
}

func (h *CircleHandler) Mine(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	circles, err := h.Service.CirclesByMember(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, circles)
}

func (h *CircleHandler) Discover(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	limit := defaultDiscoverLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, service.ErrInvalidInput)
			return
		}
		limit = n
	}
	circles, err := h.Service.DiscoverCircles(r.Context(), sess.UserID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, circles)
}

func (h *CircleHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	var req service.CircleInput
	if !decode(w, r, &req) {
		return
	}
	circle, err := h.Service.CreateCircle(r.Context(), sess, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, circle)
}

func (h *CircleHandler) Join(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	circle, err := h.Service.JoinCircle(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, circle)
}

func (h *CircleHandler) Leave(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	circle, err := h.Service.LeaveCircle(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, circle)
}

func (h *CircleHandler) Events(w http.ResponseWriter, r *http.Request) {
	circleID := mux.Vars(r)["id"]
	if _, err := h.Service.GetCircle(r.Context(), circleID); err != nil {
		writeError(w, err)
		return
	}
	events, err := h.Service.EventsByCircle(r.Context(), circleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
