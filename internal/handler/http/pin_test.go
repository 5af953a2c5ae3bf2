package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notelock/notelock/internal/service"
	"github.com/notelock/notelock/internal/utils"
	"github.com/notelock/notelock/internal/validators"
	"github.com/notelock/notelock/models"
)

func TestSetPin_Created(t *testing.T) {
	var storedPin string
	pins := &mockPinService{
		setPinFn: func(_ context.Context, userID int64, rawPin string) error {
			assert.Equal(t, int64(1), userID)
			storedPin = rawPin
			return nil
		},
	}

	h := newTestHandler(t, &service.Services{PinService: pins})
	body := jsonBody(t, models.SetPinRequest{Pin: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/api/profile/pin", strings.NewReader(body))
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.setPin, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "123456", storedPin)
}

func TestSetPin_MalformedPin(t *testing.T) {
	pins := &mockPinService{
		setPinFn: func(context.Context, int64, string) error {
			return validators.ErrPinFormat
		},
	}

	h := newTestHandler(t, &service.Services{PinService: pins})
	body := jsonBody(t, models.SetPinRequest{Pin: "12345"})
	req := httptest.NewRequest(http.MethodPost, "/api/profile/pin", strings.NewReader(body))
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.setPin, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "PIN must be 6 digits")
}

func TestResetPin_Success(t *testing.T) {
	pins := &mockPinService{
		resetPinFn: func(_ context.Context, userID int64, currentRawPin, newRawPin string) error {
			assert.Equal(t, "111111", currentRawPin)
			assert.Equal(t, "222222", newRawPin)
			return nil
		},
	}

	h := newTestHandler(t, &service.Services{PinService: pins})
	body := jsonBody(t, models.ResetPinRequest{CurrentPin: "111111", NewPin: "222222"})
	req := httptest.NewRequest(http.MethodPut, "/api/profile/pin", strings.NewReader(body))
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.resetPin, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestResetPin_WrongCurrentPin(t *testing.T) {
	pins := &mockPinService{
		resetPinFn: func(context.Context, int64, string, string) error {
			return service.ErrPinMismatch
		},
	}

	h := newTestHandler(t, &service.Services{PinService: pins})
	body := jsonBody(t, models.ResetPinRequest{CurrentPin: "999999", NewPin: "222222"})
	req := httptest.NewRequest(http.MethodPut, "/api/profile/pin", strings.NewReader(body))
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.resetPin, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "incorrect PIN")
}

// TestVerifyPin_UnlockBoundToSessionExpiry verifies the handler hands the
// session attributes from the auth middleware to the service, so the unlock
// can never outlive the login token.
func TestVerifyPin_UnlockBoundToSessionExpiry(t *testing.T) {
	tokenExpiry := time.Now().Add(45 * time.Minute).Truncate(time.Second)

	var seenSession string
	var seenExpiry time.Time
	pins := &mockPinService{
		verifyPinFn: func(_ context.Context, userID int64, sessionID string, expiresAt time.Time, rawPin string) error {
			assert.Equal(t, int64(1), userID)
			assert.Equal(t, "123456", rawPin)
			seenSession = sessionID
			seenExpiry = expiresAt
			return nil
		},
	}

	h := newTestHandler(t, &service.Services{PinService: pins})
	body := jsonBody(t, models.VerifyPinRequest{Pin: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/api/profile/pin/verify", strings.NewReader(body))
	req = authedRequest(req, 1, "session-1", tokenExpiry)

	rec := doRequest(h.verifyPin, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "session-1", seenSession)
	assert.True(t, seenExpiry.Equal(tokenExpiry))
}

func TestVerifyPin_Mismatch(t *testing.T) {
	pins := &mockPinService{
		verifyPinFn: func(context.Context, int64, string, time.Time, string) error {
			return service.ErrPinMismatch
		},
	}

	h := newTestHandler(t, &service.Services{PinService: pins})
	body := jsonBody(t, models.VerifyPinRequest{Pin: "000000"})
	req := httptest.NewRequest(http.MethodPost, "/api/profile/pin/verify", strings.NewReader(body))
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.verifyPin, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyPin_MissingSessionExpiry(t *testing.T) {
	h := newTestHandler(t, &service.Services{PinService: &mockPinService{}})
	body := jsonBody(t, models.VerifyPinRequest{Pin: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/api/profile/pin/verify", strings.NewReader(body))
	// Only user and session IDs; no expiry in the context.
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, int64(1))
	ctx = context.WithValue(ctx, utils.SessionIDCtxKey, "session-1")
	req = req.WithContext(ctx)

	rec := doRequest(h.verifyPin, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
