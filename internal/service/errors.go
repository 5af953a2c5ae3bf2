package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	// ErrPinMismatch covers both a wrong PIN and a PIN that was never set.
	// Collapsing the two keeps the gate from leaking whether hidden notes
	// are protected at all.
	ErrPinMismatch = errors.New("incorrect PIN")

	// ErrHiddenLocked is returned when the hidden-notes view is requested
	// by a session that has not verified the PIN.
	ErrHiddenLocked = errors.New("hidden notes are locked")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
