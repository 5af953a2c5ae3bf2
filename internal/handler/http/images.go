package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/internal/service"
	"github.com/notelock/notelock/internal/store"
	"github.com/notelock/notelock/internal/utils"
	"github.com/notelock/notelock/models"
)

// maxUploadBytes bounds one multipart upload request in memory.
const maxUploadBytes = 32 << 20

func (h *Handler) uploadImages(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	noteID, ok := noteIDParam(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Err(err).Msg("invalid multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	fileHeaders := r.MultipartForm.File["images"]
	if len(fileHeaders) == 0 {
		http.Error(w, "no images provided", http.StatusBadRequest)
		return
	}

	uploads := make([]service.ImageUpload, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		file, err := fileHeader.Open()
		if err != nil {
			log.Err(err).Str("filename", fileHeader.Filename).Msg("error opening uploaded file")
			http.Error(w, "error reading uploaded file", http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			log.Err(err).Str("filename", fileHeader.Filename).Msg("error reading uploaded file")
			http.Error(w, "error reading uploaded file", http.StatusBadRequest)
			return
		}

		uploads = append(uploads, service.ImageUpload{
			Filename: fileHeader.Filename,
			Content:  content,
		})
	}

	images, err := h.services.NoteService.AddImages(r.Context(), userID, noteID, uploads)
	if err != nil {
		status, message := clientMessage(err)
		log.Err(err).Int64("noteID", noteID).Msg("error occurred during image upload")
		http.Error(w, message, status)
		return
	}

	utils.WriteJSON(w, images, http.StatusCreated)
}

func (h *Handler) deleteImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	// image ids are UUIDs; anything else cannot name a stored image, so it
	// gets the same 404 as a missing one instead of a failed uuid cast in
	// the database
	imageID := chi.URLParam(r, "imageID")
	if _, err := uuid.Parse(imageID); err != nil {
		utils.WriteJSON(w, models.DeleteImageResponse{Success: false, Error: store.ErrImageNotFound.Error()}, http.StatusNotFound)
		return
	}

	if err := h.services.NoteService.DeleteImage(r.Context(), userID, imageID); err != nil {
		log.Err(err).Str("imageID", imageID).Msg("error occurred during image deletion")

		if errors.Is(err, store.ErrImageNotFound) {
			utils.WriteJSON(w, models.DeleteImageResponse{Success: false, Error: store.ErrImageNotFound.Error()}, http.StatusNotFound)
			return
		}

		status, message := clientMessage(err)
		utils.WriteJSON(w, models.DeleteImageResponse{Success: false, Error: message}, status)
		return
	}

	utils.WriteJSON(w, models.DeleteImageResponse{Success: true}, http.StatusOK)
}
