package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/TEJ12356788/atmosphere/internal/models"
)

const CookieName = "session"

var ErrInvalidSession = errors.New("invalid session")

// Signer issues and verifies HS256 session tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// Sign creates a token carrying the session.
func (s *Signer) Sign(sess models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":      sess.UserID,
		"username":     sess.Username,
		"account_type": string(sess.AccountType),
		"exp":          time.Now().Add(s.ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature and expiry and returns its session.
func (s *Signer) Verify(tokenString string) (models.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return models.Session{}, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Session{}, ErrInvalidSession
	}
	userID, _ := claims["user_id"].(string)
	username, _ := claims["username"].(string)
	accountType, _ := claims["account_type"].(string)
	if userID == "" || username == "" {
		return models.Session{}, ErrInvalidSession
	}

	return models.Session{
		UserID:      userID,
		Username:    username,
		AccountType: models.AccountType(accountType),
	}, nil
}

// SetCookie writes the session token as an HttpOnly cookie.
func (s *Signer) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
