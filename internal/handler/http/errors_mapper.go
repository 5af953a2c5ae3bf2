package http

import (
	"errors"
	"net/http"

	"github.com/notelock/notelock/internal/service"
	"github.com/notelock/notelock/internal/store"
	"github.com/notelock/notelock/internal/validators"
)

var errorStatusMap = map[error]int{
	validators.ErrPinFormat:          http.StatusBadRequest,
	validators.ErrInvalidNote:        http.StatusBadRequest,
	validators.ErrInvalidCredentials: http.StatusBadRequest,
	validators.ErrConfirmMismatch:    http.StatusBadRequest,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrPinMismatch:             http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrHiddenLocked:            http.StatusForbidden,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrProfileNotFound:    http.StatusNotFound,
	store.ErrNoteNotFound:       http.StatusNotFound,
	store.ErrImageNotFound:      http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// clientMessage maps err to the HTTP status and the user-facing message of
// the matched sentinel. Unmatched errors get 500 with the generic status
// text so internals never leak to the client.
func clientMessage(err error) (int, string) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			if status == http.StatusInternalServerError {
				return status, http.StatusText(status)
			}
			return status, target.Error()
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
