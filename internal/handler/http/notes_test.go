package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notelock/notelock/internal/service"
	"github.com/notelock/notelock/internal/store"
	"github.com/notelock/notelock/internal/validators"
	"github.com/notelock/notelock/models"
)

// withRouteParam attaches a chi route parameter to the request context, the
// way the router would for a matched pattern.
func withRouteParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// ─────────────────────────────────────────────
// list — filter translation
// ─────────────────────────────────────────────

func TestListNotes_TranslatesAllSentinelToNoConstraint(t *testing.T) {
	var seen service.ListParams
	notes := &mockNoteService{
		listFn: func(_ context.Context, params service.ListParams) (models.NoteList, error) {
			seen = params
			return models.NoteList{}, nil
		},
	}

	h := newTestHandler(t, &service.Services{NoteService: notes})
	req := httptest.NewRequest(http.MethodGet, "/api/notes?tag=all&color=all&search=", nil)
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.listNotes, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, seen.Tag)
	assert.Nil(t, seen.Color)
	assert.Nil(t, seen.Search)
	assert.False(t, seen.Hidden)
}

func TestListNotes_PassesRealConstraints(t *testing.T) {
	var seen service.ListParams
	notes := &mockNoteService{
		listFn: func(_ context.Context, params service.ListParams) (models.NoteList, error) {
			seen = params
			return models.NoteList{}, nil
		},
	}

	h := newTestHandler(t, &service.Services{NoteService: notes})
	req := httptest.NewRequest(http.MethodGet, "/api/notes?tag=work&color=red&search=milk", nil)
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.listNotes, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen.Tag)
	assert.Equal(t, "work", *seen.Tag)
	require.NotNil(t, seen.Color)
	assert.Equal(t, "red", *seen.Color)
	require.NotNil(t, seen.Search)
	assert.Equal(t, "milk", *seen.Search)
	assert.Equal(t, int64(1), seen.UserID)
	assert.Equal(t, "session-1", seen.SessionID)
}

func TestListHiddenNotes_SetsHiddenPartition(t *testing.T) {
	var seen service.ListParams
	notes := &mockNoteService{
		listFn: func(_ context.Context, params service.ListParams) (models.NoteList, error) {
			seen = params
			return models.NoteList{Hidden: true}, nil
		},
	}

	h := newTestHandler(t, &service.Services{NoteService: notes})
	req := httptest.NewRequest(http.MethodGet, "/api/notes/hidden", nil)
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.listHiddenNotes, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, seen.Hidden)
}

func TestListHiddenNotes_LockedSessionGets403(t *testing.T) {
	notes := &mockNoteService{
		listFn: func(context.Context, service.ListParams) (models.NoteList, error) {
			return models.NoteList{}, service.ErrHiddenLocked
		},
	}

	h := newTestHandler(t, &service.Services{NoteService: notes})
	req := httptest.NewRequest(http.MethodGet, "/api/notes/hidden", nil)
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.listHiddenNotes, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "hidden notes are locked")
}

func TestListNotes_ResponseCarriesFacetsAndSelection(t *testing.T) {
	notes := &mockNoteService{
		listFn: func(context.Context, service.ListParams) (models.NoteList, error) {
			return models.NoteList{
				Notes:         []models.Note{{NoteID: 1, Title: "milk"}},
				AllTags:       []string{"home", "work"},
				AllColors:     []string{"red"},
				SelectedTag:   "work",
				SelectedColor: models.FilterAll,
			}, nil
		},
	}

	h := newTestHandler(t, &service.Services{NoteService: notes})
	req := httptest.NewRequest(http.MethodGet, "/api/notes?tag=work", nil)
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.listNotes, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var noteList models.NoteList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &noteList))
	assert.Equal(t, []string{"home", "work"}, noteList.AllTags)
	assert.Equal(t, "work", noteList.SelectedTag)
	assert.Equal(t, models.FilterAll, noteList.SelectedColor)
}

// ─────────────────────────────────────────────
// create / update / delete
// ─────────────────────────────────────────────

func TestCreateNote_Success(t *testing.T) {
	notes := &mockNoteService{
		createFn: func(_ context.Context, userID int64, req models.NoteRequest) (models.Note, error) {
			assert.Equal(t, int64(1), userID)
			return models.Note{NoteID: 10, UserID: userID, Title: req.Title, IsHidden: req.IsHidden}, nil
		},
	}

	h := newTestHandler(t, &service.Services{NoteService: notes})
	body := jsonBody(t, models.NoteRequest{Title: "groceries", IsHidden: true})
	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body))
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.createNote, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(10), created.NoteID)
	assert.True(t, created.IsHidden)
}

func TestCreateNote_ValidationFailure(t *testing.T) {
	notes := &mockNoteService{
		createFn: func(context.Context, int64, models.NoteRequest) (models.Note, error) {
			return models.Note{}, validators.ErrInvalidNote
		},
	}

	h := newTestHandler(t, &service.Services{NoteService: notes})
	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"title":""}`))
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.createNote, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateNote_NotFound(t *testing.T) {
	notes := &mockNoteService{
		updateFn: func(context.Context, int64, int64, models.NoteRequest) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotFound
		},
	}

	h := newTestHandler(t, &service.Services{NoteService: notes})
	body := jsonBody(t, models.NoteRequest{Title: "renamed"})
	req := httptest.NewRequest(http.MethodPut, "/api/notes/99", strings.NewReader(body))
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))
	req = withRouteParam(req, "noteID", "99")

	rec := doRequest(h.updateNote, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateNote_NonNumericIDIs404(t *testing.T) {
	h := newTestHandler(t, &service.Services{NoteService: &mockNoteService{}})
	req := httptest.NewRequest(http.MethodPut, "/api/notes/abc", strings.NewReader(`{}`))
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))
	req = withRouteParam(req, "noteID", "abc")

	rec := doRequest(h.updateNote, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteNote_Success(t *testing.T) {
	var deletedNote int64
	notes := &mockNoteService{
		deleteFn: func(_ context.Context, userID, noteID int64) error {
			assert.Equal(t, int64(1), userID)
			deletedNote = noteID
			return nil
		},
	}

	h := newTestHandler(t, &service.Services{NoteService: notes})
	req := httptest.NewRequest(http.MethodDelete, "/api/notes/10", nil)
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))
	req = withRouteParam(req, "noteID", "10")

	rec := doRequest(h.deleteNote, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(10), deletedNote)
}
