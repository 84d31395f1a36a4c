package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/TEJ12356788/atmosphere/internal/apierr"
	"github.com/TEJ12356788/atmosphere/internal/auth"
	"github.com/TEJ12356788/atmosphere/internal/models"
)

type contextKey string

const SessionKey contextKey = "session"

// AuthMiddleware requires a valid session token, taken from the session
// cookie or an Authorization: Bearer header.
func AuthMiddleware(signer *auth.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				apierr.Write(w, apierr.ErrUnauthorized)
				return
			}

			sess, err := signer.Verify(token)
			if err != nil {
				apierr.Write(w, apierr.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(auth.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func WithSession(ctx context.Context, sess models.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

func SessionFromContext(ctx context.Context) (models.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(models.Session)
	return sess, ok
}
