package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/TEJ12356788/atmosphere/internal/service"
)

type MediaHandler struct {
	Service *service.Service
}

func (h *MediaHandler) Mine(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	media, err := h.Service.MediaByUser(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, media)
}

func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	var req service.MediaInput
	if !decode(w, r, &req) {
		return
	}
	item, err := h.Service.UploadMedia(r.Context(), sess, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

type PromotionHandler struct {
	Service *service.Service
}

func (h *PromotionHandler) Active(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.Service.ActivePromotions(r.Context(), h.Service.Today())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promotions)
}

func (h *PromotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	var req service.PromotionInput
	if !decode(w, r, &req) {
		return
	}
	promo, err := h.Service.CreatePromotion(r.Context(), sess, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, promo)
}

func (h *PromotionHandler) Claim(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	promo, err := h.Service.ClaimPromotion(r.Context(), sess, mux.Vars(r)["id"], h.Service.Today())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promo)
}

type NotificationHandler struct {
	Service *service.Service
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	feed, err := h.Service.Notifications(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	if err := h.Service.MarkRead(r.Context(), sess.UserID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ReportHandler struct {
	Service *service.Service
}

func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	var req service.ReportInput
	if !decode(w, r, &req) {
		return
	}
	report, err := h.Service.ReportContent(r.Context(), sess, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}
