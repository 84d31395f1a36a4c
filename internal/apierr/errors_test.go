package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrap(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", ErrNotFound)
	if got := Wrap(wrapped, "X", "x", 500); got != ErrNotFound {
		t.Errorf("Expected existing APIError to be returned, got %+v", got)
	}

	got := Wrap(errors.New("boom"), "STORE", "store failed", http.StatusBadGateway)
	if got.Code != "STORE" || got.Details != "boom" || got.Status != http.StatusBadGateway {
		t.Errorf("Unexpected wrapped error: %+v", got)
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"api error", WithDetails(ErrConflict, "username taken"), http.StatusConflict, "CONFLICT"},
		{"plain error", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			Write(rr, tt.err)

			if rr.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON content type, got %q", ct)
			}
			var body APIError
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("Expected code %s, got %s", tt.wantCode, body.Code)
			}
			if tt.wantStatus >= 500 && body.Details != "" {
				t.Errorf("Expected internal details to be hidden, got %q", body.Details)
			}
		})
	}
}
