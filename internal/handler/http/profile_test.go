package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notelock/notelock/internal/service"
	"github.com/notelock/notelock/internal/store"
	"github.com/notelock/notelock/models"
)

func TestGetProfile_Success(t *testing.T) {
	profiles := &mockProfileService{
		getProfileFn: func(_ context.Context, userID int64) (models.ProfileResponse, error) {
			assert.Equal(t, int64(1), userID)
			return models.ProfileResponse{Login: "alice", FirstName: "Alice", HasPin: true}, nil
		},
	}

	h := newTestHandler(t, &service.Services{ProfileService: profiles})
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.getProfile, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Login)
	assert.True(t, resp.HasPin)
}

func TestGetProfile_Missing(t *testing.T) {
	profiles := &mockProfileService{
		getProfileFn: func(context.Context, int64) (models.ProfileResponse, error) {
			return models.ProfileResponse{}, store.ErrProfileNotFound
		},
	}

	h := newTestHandler(t, &service.Services{ProfileService: profiles})
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.getProfile, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// profileForm builds a multipart body carrying the display names and,
// optionally, a picture file part.
func profileForm(t *testing.T, firstName, lastName string, picture []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("first_name", firstName))
	require.NoError(t, writer.WriteField("last_name", lastName))
	if picture != nil {
		part, err := writer.CreateFormFile("picture", "avatar.png")
		require.NoError(t, err)
		_, err = part.Write(picture)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUpdateProfile_WithPicture(t *testing.T) {
	var seenPicture *service.ImageUpload
	profiles := &mockProfileService{
		updateProfileFn: func(_ context.Context, userID int64, req models.UpdateProfileRequest, picture *service.ImageUpload) (models.ProfileResponse, error) {
			assert.Equal(t, "Alice", req.FirstName)
			assert.Equal(t, "Smith", req.LastName)
			seenPicture = picture
			return models.ProfileResponse{Login: "alice", FirstName: req.FirstName, LastName: req.LastName, PicturePath: "avatar.png"}, nil
		},
	}

	h := newTestHandler(t, &service.Services{ProfileService: profiles})
	body, contentType := profileForm(t, "Alice", "Smith", []byte("png bytes"))
	req := httptest.NewRequest(http.MethodPut, "/api/profile", body)
	req.Header.Set("Content-Type", contentType)
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.updateProfile, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seenPicture)
	assert.Equal(t, "avatar.png", seenPicture.Filename)
	assert.Equal(t, []byte("png bytes"), seenPicture.Content)
}

func TestUpdateProfile_WithoutPictureKeepsStoredOne(t *testing.T) {
	var pictureWasSent bool
	profiles := &mockProfileService{
		updateProfileFn: func(_ context.Context, _ int64, req models.UpdateProfileRequest, picture *service.ImageUpload) (models.ProfileResponse, error) {
			pictureWasSent = picture != nil
			return models.ProfileResponse{FirstName: req.FirstName}, nil
		},
	}

	h := newTestHandler(t, &service.Services{ProfileService: profiles})
	body, contentType := profileForm(t, "Alice", "Smith", nil)
	req := httptest.NewRequest(http.MethodPut, "/api/profile", body)
	req.Header.Set("Content-Type", contentType)
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.updateProfile, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, pictureWasSent, "a request without a picture part must not touch the stored picture")
}

func TestUpdateProfile_NotMultipart(t *testing.T) {
	h := newTestHandler(t, &service.Services{ProfileService: &mockProfileService{}})
	req := httptest.NewRequest(http.MethodPut, "/api/profile", bytes.NewReader([]byte(`{"first_name":"Alice"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = authedRequest(req, 1, "session-1", time.Now().Add(time.Hour))

	rec := doRequest(h.updateProfile, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
