package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/adilbekov/homecook-api/internal/auth"
)

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

var errMissingToken = errors.New("missing or malformed authorization header")

// bearerToken extracts the session token from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errMissingToken
	}

	return parts[1], nil
}

// sessionUser resolves the request's bearer token to a verified user id.
func (app *application) sessionUser(r *http.Request) (string, error) {
	token, err := bearerToken(r)
	if err != nil {
		return "", err
	}

	userID, err := app.sessions.Resolve(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidSession) {
			return "", auth.ErrInvalidSession
		}
		return "", err
	}

	return userID, nil
}
