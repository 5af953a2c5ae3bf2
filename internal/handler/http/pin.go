package http

import (
	"encoding/json"
	"net/http"

	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/models"
)

func (h *Handler) setPin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req models.SetPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.PinService.SetPin(r.Context(), userID, req.Pin); err != nil {
		status, message := clientMessage(err)
		log.Err(err).Msg("error occurred during PIN setup")
		http.Error(w, message, status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) resetPin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req models.ResetPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.PinService.ResetPin(r.Context(), userID, req.CurrentPin, req.NewPin); err != nil {
		status, message := clientMessage(err)
		log.Err(err).Msg("error occurred during PIN reset")
		http.Error(w, message, status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// verifyPin unlocks the hidden-notes view for the current session. The
// unlock inherits the session token's expiry, so it can never outlive the
// login session.
func (h *Handler) verifyPin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	sessionID, ok := requestSessionID(w, r)
	if !ok {
		return
	}
	expiresAt, ok := requestSessionExpiry(w, r)
	if !ok {
		return
	}

	var req models.VerifyPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.PinService.VerifyPin(r.Context(), userID, sessionID, expiresAt, req.Pin); err != nil {
		status, message := clientMessage(err)
		log.Err(err).Msg("error occurred during PIN verification")
		http.Error(w, message, status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
