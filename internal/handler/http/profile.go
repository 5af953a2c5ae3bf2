package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/internal/service"
	"github.com/notelock/notelock/internal/utils"
	"github.com/notelock/notelock/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.services.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		status, message := clientMessage(err)
		log.Err(err).Msg("error occurred during profile lookup")
		http.Error(w, message, status)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

// updateProfile accepts a multipart form carrying the display names and an
// optional "picture" file part.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Err(err).Msg("invalid multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	req := models.UpdateProfileRequest{
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
	}

	var picture *service.ImageUpload
	file, fileHeader, err := r.FormFile("picture")
	switch {
	case err == nil:
		content, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			log.Err(readErr).Msg("error reading uploaded picture")
			http.Error(w, "error reading uploaded picture", http.StatusBadRequest)
			return
		}
		picture = &service.ImageUpload{Filename: fileHeader.Filename, Content: content}
	case errors.Is(err, http.ErrMissingFile):
		// No picture part means the stored picture stays untouched.
	default:
		log.Err(err).Msg("invalid picture form part")
		http.Error(w, "invalid picture form part", http.StatusBadRequest)
		return
	}

	profile, err := h.services.ProfileService.UpdateProfile(r.Context(), userID, req, picture)
	if err != nil {
		status, message := clientMessage(err)
		log.Err(err).Msg("error occurred during profile update")
		http.Error(w, message, status)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}
