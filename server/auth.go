package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

var (
	errNoAuth      = errors.New("no authentication provided")
	errInvalidAuth = errors.New("invalid authentication provided")
	errExpiredAuth = errors.New("authentication is expired")
)

// Authenticate rejects requests without a valid bearer token. If no debug key
// is configured, all requests are let through.
func (e *Engine) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if e.keyLookup == nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := e.debugUser(r.Header.Get("Authorization"), time.Now())
		if err != nil {
			e.l.Debugw("debug access denied",
				"path", r.URL.Path,
				"error", err)
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		e.l.Debugw("debug access granted",
			"user", user,
			"path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// debugUser returns the id carried by a bearer token. Tokens must be signed
// with the debug key and carry an expiry.
func (e *Engine) debugUser(header string, now time.Time) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) || len(header) == len(prefix) {
		return "", errNoAuth
	}

	var claims = jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, prefix), claims, e.keyLookup)
	if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
		return "", errExpiredAuth
	} else if err != nil || !token.Valid {
		return "", errInvalidAuth
	}

	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < now.Unix() {
		return "", errExpiredAuth
	}
	user, ok := claims["id"].(string)
	if !ok || user == "" {
		return "", errInvalidAuth
	}
	return user, nil
}
