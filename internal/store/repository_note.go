package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// It executes the dynamic filter queries built in sql_queries.go and the
// fixed CRUD statements against the "notes" table.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, note_id, filter axes).
type noteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

// ListNotes retrieves the owner's notes matching filter, most recently
// updated first. The partition constraints (owner, not deleted, hidden flag)
// always apply; soft-deleted notes are invisible to every caller.
func (r *noteRepository) ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotesQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.ListNotes").
			Int64("user_id", filter.UserID).
			Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.ListNotes").
			Int64("user_id", filter.UserID).
			Bool("hidden", filter.Hidden).
			Msg("failed to execute filter query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 20)

	for rows.Next() {
		var note models.Note

		scanErr := rows.Scan(
			&note.NoteID,
			&note.UserID,
			&note.Title,
			&note.Description,
			&note.Tag,
			&note.Color,
			&note.IsHidden,
			&note.IsDeleted,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*noteRepository.ListNotes").
				Int64("user_id", filter.UserID).
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*noteRepository.ListNotes").
			Int64("user_id", filter.UserID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return notes, nil
}

// DistinctTags returns the distinct non-empty tags within the owner+hidden
// partition, constrained by the color filter when present. The search term
// never applies to facet queries.
func (r *noteRepository) DistinctTags(ctx context.Context, userID int64, hidden bool, color *string) ([]string, error) {
	return r.facetValues(ctx, "tag", userID, hidden, "color", color)
}

// DistinctColors returns the distinct non-empty colors within the
// owner+hidden partition, constrained by the tag filter when present.
func (r *noteRepository) DistinctColors(ctx context.Context, userID int64, hidden bool, tag *string) ([]string, error) {
	return r.facetValues(ctx, "color", userID, hidden, "tag", tag)
}

// facetValues runs one distinct-values facet query. The facet axis is never
// constrained by itself, only by the opposite axis, so a selected filter
// cannot collapse its own dropdown to a single option.
func (r *noteRepository) facetValues(ctx context.Context, column string, userID int64, hidden bool, crossColumn string, crossValue *string) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFacetQuery(column, userID, hidden, crossColumn, crossValue)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.facetValues").
			Str("facet", column).
			Int64("user_id", userID).
			Msg("failed to build facet query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.facetValues").
			Str("facet", column).
			Int64("user_id", userID).
			Msg("failed to execute facet query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	values := make([]string, 0, 10)

	for rows.Next() {
		var value string
		if scanErr := rows.Scan(&value); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*noteRepository.facetValues").
				Str("facet", column).
				Msg("failed to scan facet value")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		values = append(values, value)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*noteRepository.facetValues").
			Str("facet", column).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return values, nil
}

// GetNote retrieves one note by id, scoped to the owner.
//
// Error handling:
//   - [sql.ErrNoRows] (missing, foreign, or soft-deleted) → [ErrNoteNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *noteRepository) GetNote(ctx context.Context, userID, noteID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	row := r.db.QueryRowContext(ctx, getNote, noteID, userID)

	if err := row.Scan(&note.NoteID, &note.UserID, &note.Title, &note.Description, &note.Tag, &note.Color, &note.IsHidden, &note.IsDeleted, &note.CreatedAt, &note.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "*noteRepository.GetNote").
			Int64("user_id", userID).
			Int64("note_id", noteID).
			Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return note, nil
}

// CreateNote inserts the note and returns it with server-assigned fields
// (NoteID, CreatedAt, UpdatedAt).
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createNote, note.UserID, note.Title, note.Description, note.Tag, note.Color, note.IsHidden)

	var created models.Note
	if err := row.Scan(&created.NoteID, &created.UserID, &created.Title, &created.Description, &created.Tag, &created.Color, &created.IsHidden, &created.IsDeleted, &created.CreatedAt, &created.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "*noteRepository.CreateNote").
			Int64("user_id", note.UserID).
			Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// UpdateNote stores the editable fields and bumps updated_at, which moves
// the note to the top of the default ordering.
//
// Returns [ErrNoteNotFound] when the note is missing, foreign, or
// soft-deleted.
func (r *noteRepository) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateNote, note.NoteID, note.UserID, note.Title, note.Description, note.Tag, note.Color, note.IsHidden)

	var updated models.Note
	if err := row.Scan(&updated.NoteID, &updated.UserID, &updated.Title, &updated.Description, &updated.Tag, &updated.Color, &updated.IsHidden, &updated.IsDeleted, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "*noteRepository.UpdateNote").
			Int64("user_id", note.UserID).
			Int64("note_id", note.NoteID).
			Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// SoftDeleteNote marks the owner's note deleted. The row and its images stay
// in place; every query in the application excludes the marked row from now
// on.
//
// Returns [ErrNoteNotFound] when nothing was marked.
func (r *noteRepository) SoftDeleteNote(ctx context.Context, userID, noteID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, softDeleteNote, noteID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.SoftDeleteNote").
			Int64("user_id", userID).
			Int64("note_id", noteID).
			Msg("error: failed to soft delete note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}
