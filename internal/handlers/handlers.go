package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TEJ12356788/atmosphere/internal/apierr"
	"github.com/TEJ12356788/atmosphere/internal/middleware"
	"github.com/TEJ12356788/atmosphere/internal/models"
	"github.com/TEJ12356788/atmosphere/internal/service"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto API errors.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierr.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, service.ErrInvalidInput):
		apiErr = apierr.WithDetails(apierr.ErrInvalidInput, err.Error())
	case errors.Is(err, service.ErrNotFound):
		apiErr = apierr.WithDetails(apierr.ErrNotFound, err.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		apiErr = apierr.New("USERNAME_TAKEN", "Username already exists", http.StatusConflict)
	case errors.Is(err, service.ErrInvalidCredentials):
		apiErr = apierr.New("INVALID_CREDENTIALS", "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, service.ErrNotMember):
		apiErr = apierr.New("NOT_MEMBER", "Not a member of this circle", http.StatusForbidden)
	case errors.Is(err, service.ErrNotBusiness):
		apiErr = apierr.New("BUSINESS_REQUIRED", "Business account required", http.StatusForbidden)
	case errors.Is(err, service.ErrPromotionInactive):
		apiErr = apierr.New("PROMOTION_INACTIVE", "Promotion is not active", http.StatusConflict)
	default:
		apiErr = apierr.Wrap(err, apierr.ErrInternal.Code, apierr.ErrInternal.Message, apierr.ErrInternal.Status)
	}
	apierr.Write(w, apiErr)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		apierr.Write(w, apierr.WithDetails(apierr.ErrInvalidInput, err.Error()))
		return false
	}
	return true
}

// session returns the caller's session. Routes using it sit behind
// AuthMiddleware, so a missing session is answered with 401.
func session(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		apierr.Write(w, apierr.ErrUnauthorized)
	}
	return sess, ok
}
