package validators

import "errors"

// Sentinel validation errors. Handlers map all of them to HTTP 400; the
// messages are user-facing, so they name the field rule, never internals.
var (
	// ErrPinFormat is returned when a submitted PIN is not exactly six
	// ASCII digits. Distinct from an authentication mismatch: this is a
	// malformed-input failure, surfaced as a field-level message.
	ErrPinFormat = errors.New("PIN must be 6 digits")

	// ErrInvalidNote is returned when a note payload violates field rules
	// (missing title, oversized labels, malformed color value).
	ErrInvalidNote = errors.New("invalid note data")

	// ErrInvalidCredentials is returned when a registration or login payload
	// is structurally invalid (empty login, too-short password).
	ErrInvalidCredentials = errors.New("invalid credentials provided")

	// ErrConfirmMismatch is returned when the account-deletion confirmation
	// phrase is not the literal string "DELETE".
	ErrConfirmMismatch = errors.New("you must type DELETE to confirm account deletion")
)
