package handlers

import (
	"errors"
	"net/http"

	"github.com/TEJ12356788/atmosphere/internal/auth"
	"github.com/TEJ12356788/atmosphere/internal/models"
	"github.com/TEJ12356788/atmosphere/internal/service"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthHandler struct {
	Service *service.Service
	Signer  *auth.Signer
}

type loginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type meResponse struct {
	Username string           `json:"username"`
	User     models.User      `json:"user"`
	Business *models.Business `json:"business,omitempty"`
	Unread   int              `json:"unread_notifications"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupInput
	if !decode(w, r, &req) {
		return
	}

	user, err := h.Service.SignupUser(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user.Public())
}

func (h *AuthHandler) SignupBusiness(w http.ResponseWriter, r *http.Request) {
	var req service.BusinessSignupInput
	if !decode(w, r, &req) {
		return
	}

	user, business, err := h.Service.SignupBusiness(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":     user.Public(),
		"business": business,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if !decode(w, r, &creds) {
		return
	}

	user, err := h.Service.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.Signer.Sign(service.Session(creds.Username, user))
	if err != nil {
		writeError(w, err)
		return
	}
	h.Signer.SetCookie(w, token)

	writeJSON(w, http.StatusOK, loginResponse{User: user.Public(), Token: token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	user, err := h.Service.GetUser(r.Context(), sess.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := meResponse{Username: sess.Username, User: user.Public()}

	if sess.IsBusiness() {
		business, err := h.Service.BusinessByOwner(r.Context(), sess.UserID)
		switch {
		case err == nil:
			resp.Business = &business
		case !errors.Is(err, service.ErrNotFound):
			writeError(w, err)
			return
		}
	}

	resp.Unread, err = h.Service.UnreadCount(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
