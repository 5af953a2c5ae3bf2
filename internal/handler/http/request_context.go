package http

import (
	"net/http"
	"time"

	"github.com/notelock/notelock/internal/utils"
)

// requestUserID returns the authenticated user's ID placed in the context by
// the auth middleware. When the value is missing the request never passed
// authentication; a 401 is written and ok is false.
func requestUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	}
	return userID, ok
}

// requestSessionID returns the session identifier placed in the context by
// the auth middleware, writing a 401 when it is missing.
func requestSessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	}
	return sessionID, ok
}

// requestSessionExpiry returns the session expiry placed in the context by
// the auth middleware, writing a 401 when it is missing.
func requestSessionExpiry(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	expiry, ok := utils.GetSessionExpiryFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	}
	return expiry, ok
}
