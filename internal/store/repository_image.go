package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/models"
)

// imageRepository is the PostgreSQL-backed implementation of
// [ImageRepository]. Image rows, unlike notes, are removed physically:
// a delete destroys the row, and the caller removes the stored file.
type imageRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewImageRepository constructs an [ImageRepository] backed by the provided
// database connection and logger.
func NewImageRepository(db *DB, logger *logger.Logger) ImageRepository {
	logger.Debug().Msg("creating image repository")
	return &imageRepository{
		db:     db,
		logger: logger,
	}
}

// CreateImage inserts the image metadata row and returns it with the
// server-assigned upload timestamp.
func (r *imageRepository) CreateImage(ctx context.Context, image models.NoteImage) (models.NoteImage, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createImage, image.ImageID, image.NoteID, image.FilePath, image.Width, image.Height)

	var created models.NoteImage
	if err := row.Scan(&created.ImageID, &created.NoteID, &created.FilePath, &created.Width, &created.Height, &created.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "*imageRepository.CreateImage").
			Int64("note_id", image.NoteID).
			Msg("error: scanning error")
		return models.NoteImage{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// ListByNoteIDs returns every image belonging to the given notes, grouped by
// note id. Notes without images are simply absent from the map.
func (r *imageRepository) ListByNoteIDs(ctx context.Context, noteIDs []int64) (map[int64][]models.NoteImage, error) {
	log := logger.FromContext(ctx)

	images := make(map[int64][]models.NoteImage, len(noteIDs))
	if len(noteIDs) == 0 {
		return images, nil
	}

	rows, err := r.db.QueryContext(ctx, listImagesByNoteIDs, noteIDs)
	if err != nil {
		log.Err(err).
			Str("func", "*imageRepository.ListByNoteIDs").
			Int("note ids count", len(noteIDs)).
			Msg("failed to execute query for listing note images")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var image models.NoteImage

		scanErr := rows.Scan(
			&image.ImageID,
			&image.NoteID,
			&image.FilePath,
			&image.Width,
			&image.Height,
			&image.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*imageRepository.ListByNoteIDs").
				Msg("failed to scan note image row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		images[image.NoteID] = append(images[image.NoteID], image)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*imageRepository.ListByNoteIDs").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return images, nil
}

// DeleteImage removes the image row when it hangs off one of the owner's
// notes. The deleted record is returned so the caller can remove the stored
// file after the row is gone.
//
// Error handling:
//   - [sql.ErrNoRows] (missing or foreign image) → [ErrImageNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *imageRepository) DeleteImage(ctx context.Context, userID int64, imageID string) (models.NoteImage, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, deleteImage, userID, imageID)

	var deleted models.NoteImage
	if err := row.Scan(&deleted.ImageID, &deleted.NoteID, &deleted.FilePath, &deleted.Width, &deleted.Height, &deleted.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NoteImage{}, ErrImageNotFound
		}

		log.Err(err).
			Str("func", "*imageRepository.DeleteImage").
			Int64("user_id", userID).
			Str("image_id", imageID).
			Msg("error: scanning error")
		return models.NoteImage{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return deleted, nil
}
