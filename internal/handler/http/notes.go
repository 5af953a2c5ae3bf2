package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/internal/service"
	"github.com/notelock/notelock/internal/store"
	"github.com/notelock/notelock/internal/utils"
	"github.com/notelock/notelock/models"
)

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *Handler) listHiddenNotes(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// list serves both note partitions. The query parameters tag, color, and
// search are normalized here: absent, blank, and the "all" sentinel all
// become nil criteria, so the service layer only ever sees real constraints.
func (h *Handler) list(w http.ResponseWriter, r *http.Request, hidden bool) {
	log := logger.FromRequest(r)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	sessionID, ok := requestSessionID(w, r)
	if !ok {
		return
	}

	noteList, err := h.services.NoteService.List(r.Context(), service.ListParams{
		UserID:    userID,
		SessionID: sessionID,
		Hidden:    hidden,
		Tag:       filterParam(r, "tag"),
		Color:     filterParam(r, "color"),
		Search:    filterParam(r, "search"),
	})
	if err != nil {
		status, message := clientMessage(err)
		log.Err(err).Msg("error occurred during notes listing")
		http.Error(w, message, status)
		return
	}

	utils.WriteJSON(w, noteList, http.StatusOK)
}

// filterParam reads one filter axis from the query string. The "all"
// sentinel and a blank value both mean "no constraint" and map to nil.
func filterParam(r *http.Request, name string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" || value == models.FilterAll {
		return nil
	}
	return &value
}

// noteIDParam parses the {noteID} route parameter. A non-numeric id is
// indistinguishable from a missing note and yields a 404.
func noteIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	noteID, err := strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
	if err != nil {
		http.Error(w, store.ErrNoteNotFound.Error(), http.StatusNotFound)
		return 0, false
	}
	return noteID, true
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req models.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	createdNote, err := h.services.NoteService.Create(r.Context(), userID, req)
	if err != nil {
		status, message := clientMessage(err)
		log.Err(err).Msg("error occurred during note creation")
		http.Error(w, message, status)
		return
	}

	utils.WriteJSON(w, createdNote, http.StatusCreated)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	noteID, ok := noteIDParam(w, r)
	if !ok {
		return
	}

	var req models.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updatedNote, err := h.services.NoteService.Update(r.Context(), userID, noteID, req)
	if err != nil {
		status, message := clientMessage(err)
		log.Err(err).Int64("noteID", noteID).Msg("error occurred during note update")
		http.Error(w, message, status)
		return
	}

	utils.WriteJSON(w, updatedNote, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	noteID, ok := noteIDParam(w, r)
	if !ok {
		return
	}

	if err := h.services.NoteService.Delete(r.Context(), userID, noteID); err != nil {
		status, message := clientMessage(err)
		log.Err(err).Int64("noteID", noteID).Msg("error occurred during note deletion")
		http.Error(w, message, status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
