// Package session tracks which login sessions have unlocked the hidden-notes
// view.
//
// The unlock flag is the only per-session state the server keeps: it is set
// when a PIN verification succeeds, read on every hidden-list request, and
// cleared on logout. Each flag carries the expiry of the session token that
// produced it, so an unlock can never outlive the login session itself.
package session

import (
	"context"
	"time"
)

// Store holds the hidden-notes unlock flag per session identifier.
//
// Implementations must be safe for concurrent use: the store is the only
// mutable in-process state shared between requests.
type Store interface {
	// Unlock marks sessionID as allowed to view hidden notes until expiresAt.
	Unlock(ctx context.Context, sessionID string, expiresAt time.Time) error

	// Unlocked reports whether sessionID currently holds a live unlock flag.
	// An expired flag counts as locked.
	Unlocked(ctx context.Context, sessionID string) bool

	// Lock removes the unlock flag for sessionID, returning the session to
	// the locked state. Locking an unknown session is a no-op.
	Lock(ctx context.Context, sessionID string) error

	// PurgeExpired drops every flag whose expiry has passed and returns the
	// number of removed entries. Called periodically by the session janitor.
	PurgeExpired(ctx context.Context) int
}
