package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	// Registered decoders for intrinsic dimension extraction at upload time.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/internal/session"
	"github.com/notelock/notelock/internal/store"
	"github.com/notelock/notelock/internal/utils"
	"github.com/notelock/notelock/internal/validators"
	"github.com/notelock/notelock/models"
)

// noteService is the concrete implementation of NoteService.
//
// List is the visibility controller of the application: it enforces the
// hidden-view gate, runs the filter engine (one notes query plus two facet
// queries from the same criteria), and annotates image layout before
// returning the combined bundle. CRUD and image attachment are owner-scoped
// throughout; a foreign note is indistinguishable from a missing one.
type noteService struct {
	noteRepository  store.NoteRepository
	imageRepository store.ImageRepository
	files           store.FileStore

	// sessions answers whether the requesting session has unlocked the
	// hidden partition.
	sessions session.Store

	// ids generates image identifiers and stored file names.
	ids *utils.UUIDGenerator

	logger *logger.Logger
}

// NewNoteService constructs a NoteService over the given repositories.
// The returned service is safe for concurrent use.
func NewNoteService(noteRepository store.NoteRepository, imageRepository store.ImageRepository, files store.FileStore, sessions session.Store, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository:  noteRepository,
		imageRepository: imageRepository,
		files:           files,
		sessions:        sessions,
		ids:             utils.NewUUIDGenerator(),
		logger:          logger,
	}
}

// List returns the notes matching params together with the facet lists of
// the current partition.
//
// The hidden partition is checked against the session store before any
// query runs; a locked session gets ErrHiddenLocked and learns nothing
// about the hidden notes, not even whether any exist.
//
// Three queries share the one criteria struct: the notes query applies
// every constraint, the tag facet applies only the color constraint, and
// the color facet applies only the tag constraint. The search term never
// narrows the facets. Matching notes get their images attached and layout
// values computed per note.
func (n *noteService) List(ctx context.Context, params ListParams) (models.NoteList, error) {
	log := logger.FromContext(ctx)

	if params.Hidden && !n.sessions.Unlocked(ctx, params.SessionID) {
		log.Error().Int64("userID", params.UserID).Msg("hidden notes requested by locked session")
		return models.NoteList{}, ErrHiddenLocked
	}

	filter := models.NoteFilter{
		UserID: params.UserID,
		Hidden: params.Hidden,
		Tag:    params.Tag,
		Color:  params.Color,
		Search: params.Search,
	}

	notes, err := n.noteRepository.ListNotes(ctx, filter)
	if err != nil {
		log.Err(err).Int64("userID", params.UserID).Msg("notes listing ended with error")
		return models.NoteList{}, fmt.Errorf("notes listing ended with error: %w", err)
	}

	allTags, err := n.noteRepository.DistinctTags(ctx, params.UserID, params.Hidden, params.Color)
	if err != nil {
		log.Err(err).Int64("userID", params.UserID).Msg("tag facet query ended with error")
		return models.NoteList{}, fmt.Errorf("tag facet query ended with error: %w", err)
	}

	allColors, err := n.noteRepository.DistinctColors(ctx, params.UserID, params.Hidden, params.Tag)
	if err != nil {
		log.Err(err).Int64("userID", params.UserID).Msg("color facet query ended with error")
		return models.NoteList{}, fmt.Errorf("color facet query ended with error: %w", err)
	}

	if err := n.attachImages(ctx, notes); err != nil {
		log.Err(err).Int64("userID", params.UserID).Msg("image attachment ended with error")
		return models.NoteList{}, fmt.Errorf("image attachment ended with error: %w", err)
	}

	return models.NoteList{
		Notes:         notes,
		AllTags:       allTags,
		AllColors:     allColors,
		SelectedTag:   selectedValue(params.Tag),
		SelectedColor: selectedValue(params.Color),
		Hidden:        params.Hidden,
	}, nil
}

// attachImages loads the images of every listed note in one query, groups
// them onto their notes, and computes the per-note layout values.
func (n *noteService) attachImages(ctx context.Context, notes []models.Note) error {
	if len(notes) == 0 {
		return nil
	}

	noteIDs := make([]int64, 0, len(notes))
	for _, note := range notes {
		noteIDs = append(noteIDs, note.NoteID)
	}

	imagesByNote, err := n.imageRepository.ListByNoteIDs(ctx, noteIDs)
	if err != nil {
		return err
	}

	for i := range notes {
		images := imagesByNote[notes[i].NoteID]
		notes[i].MaxHeight = annotateLayout(images)
		notes[i].Images = images
	}

	return nil
}

// selectedValue echoes a filter criterion back to the client: the chosen
// value, or the "all" sentinel when the axis was unconstrained. The sentinel
// exists only in responses and query parameters, never in the filter itself.
func selectedValue(criterion *string) string {
	if criterion == nil {
		return models.FilterAll
	}
	return *criterion
}

// Create validates the payload and inserts a new note for userID.
func (n *noteService) Create(ctx context.Context, userID int64, req models.NoteRequest) (models.Note, error) {
	log := logger.FromContext(ctx)

	if err := validators.ValidateNote(req); err != nil {
		log.Error().Int64("userID", userID).Err(err).Msg("invalid note data provided")
		return models.Note{}, err
	}

	note := models.Note{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
		Color:       req.Color,
		IsHidden:    req.IsHidden,
	}

	createdNote, err := n.noteRepository.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	return createdNote, nil
}

// Update validates the payload and stores the editable fields of the
// owner's note, bumping its UpdatedAt. A missing or foreign note yields
// store.ErrNoteNotFound.
func (n *noteService) Update(ctx context.Context, userID, noteID int64, req models.NoteRequest) (models.Note, error) {
	log := logger.FromContext(ctx)

	if err := validators.ValidateNote(req); err != nil {
		log.Error().Int64("userID", userID).Int64("noteID", noteID).Err(err).Msg("invalid note data provided")
		return models.Note{}, err
	}

	note := models.Note{
		NoteID:      noteID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
		Color:       req.Color,
		IsHidden:    req.IsHidden,
	}

	updatedNote, err := n.noteRepository.UpdateNote(ctx, note)
	if err != nil {
		log.Err(err).Int64("userID", userID).Int64("noteID", noteID).Msg("note update ended with error")
		return models.Note{}, fmt.Errorf("note update ended with error: %w", err)
	}

	return updatedNote, nil
}

// Delete soft-deletes the owner's note. The row and its images stay in the
// database but disappear from every listing and facet.
func (n *noteService) Delete(ctx context.Context, userID, noteID int64) error {
	log := logger.FromContext(ctx)

	if err := n.noteRepository.SoftDeleteNote(ctx, userID, noteID); err != nil {
		log.Err(err).Int64("userID", userID).Int64("noteID", noteID).Msg("note deletion ended with error")
		return fmt.Errorf("note deletion ended with error: %w", err)
	}

	return nil
}

// AddImages attaches the uploaded files to the owner's note.
//
// Every file gets a generated identifier, its bytes written to the file
// store under that identifier, and a metadata row with the intrinsic
// dimensions read from the image header. Files the standard decoders do not
// recognize are stored anyway with zero dimensions; the layout computation
// skips them.
func (n *noteService) AddImages(ctx context.Context, userID, noteID int64, uploads []ImageUpload) ([]models.NoteImage, error) {
	log := logger.FromContext(ctx)

	if _, err := n.noteRepository.GetNote(ctx, userID, noteID); err != nil {
		log.Err(err).Int64("userID", userID).Int64("noteID", noteID).Msg("note search ended with error")
		return nil, fmt.Errorf("note search ended with error: %w", err)
	}

	images := make([]models.NoteImage, 0, len(uploads))
	for _, upload := range uploads {
		imageID := n.ids.Generate()

		width, height := decodeDimensions(upload.Content)
		if width == 0 {
			log.Debug().Str("filename", upload.Filename).Msg("unrecognized image format, storing without dimensions")
		}

		filePath, err := n.files.Save(ctx, imageID+storedExtension(upload.Filename), upload.Content)
		if err != nil {
			log.Err(err).Str("imageID", imageID).Msg("image file save ended with error")
			return nil, fmt.Errorf("image file save ended with error: %w", err)
		}

		createdImage, err := n.imageRepository.CreateImage(ctx, models.NoteImage{
			ImageID:  imageID,
			NoteID:   noteID,
			FilePath: filePath,
			Width:    width,
			Height:   height,
		})
		if err != nil {
			log.Err(err).Str("imageID", imageID).Msg("image creation ended with error")
			return nil, fmt.Errorf("image creation ended with error: %w", err)
		}

		images = append(images, createdImage)
	}

	return images, nil
}

// DeleteImage physically removes the image: the database row first, then the
// stored file. Ownership is enforced by the repository through the note
// join; a foreign image yields store.ErrImageNotFound. A file that fails to
// remove after the row is gone is logged and tolerated, since the row is
// the source of truth.
func (n *noteService) DeleteImage(ctx context.Context, userID int64, imageID string) error {
	log := logger.FromContext(ctx)

	deletedImage, err := n.imageRepository.DeleteImage(ctx, userID, imageID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Str("imageID", imageID).Msg("image deletion ended with error")
		return fmt.Errorf("image deletion ended with error: %w", err)
	}

	if err := n.files.Remove(ctx, deletedImage.FilePath); err != nil {
		log.Err(err).Str("imageID", imageID).Str("filePath", deletedImage.FilePath).Msg("image file removal failed")
	}

	return nil
}

// decodeDimensions reads the intrinsic pixel size from the image header.
// Only the header is parsed, never the full image. Returns 0, 0 when the
// format is not one of the registered decoders.
func decodeDimensions(content []byte) (width, height int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return 0, 0
	}

	return cfg.Width, cfg.Height
}

// storedExtension normalizes the client file name down to a lowercase
// extension for the stored file. Anything unusable becomes ".bin".
func storedExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || ext == "." || len(ext) > 8 {
		return ".bin"
	}
	return ext
}
