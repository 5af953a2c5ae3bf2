package store

import (
	"context"

	"github.com/notelock/notelock/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_repositories.go -package=mocks

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts the user together with its empty profile in one
	// transaction and returns the record with server-assigned fields.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin returns the account matching login, or
	// [ErrNoUserWasFound].
	FindUserByLogin(ctx context.Context, login string) (models.User, error)

	// FindUserByID returns the account matching userID, or
	// [ErrNoUserWasFound].
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	// DeleteUser removes the account; profiles, notes, and images cascade.
	DeleteUser(ctx context.Context, userID int64) error
}

// ProfileRepository persists per-user profile settings, including the hashed
// hidden-notes PIN.
type ProfileRepository interface {
	// GetByUserID returns the user's profile, or [ErrProfileNotFound].
	GetByUserID(ctx context.Context, userID int64) (models.Profile, error)

	// SetPin stores pinHash unconditionally, overwriting any previous hash.
	SetPin(ctx context.Context, userID int64, pinHash string) error

	// ReplacePin swaps the stored PIN hash for newHash inside a single
	// transaction. The current hash is read under a row-level lock and
	// passed to check before the update; a non-nil error from check aborts
	// the transaction and is returned unchanged. This makes concurrent PIN
	// resets against the same profile serialize instead of losing updates.
	ReplacePin(ctx context.Context, userID int64, check func(currentHash string) error, newHash string) error

	// UpdateProfile stores the display names and, when picturePath is
	// non-empty, the new profile picture location.
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName, picturePath string) error
}

// NoteRepository is the query surface of the note filter engine plus note CRUD.
type NoteRepository interface {
	// ListNotes returns the owner's notes matching filter, ordered by
	// UpdatedAt descending. Soft-deleted notes are never returned.
	ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)

	// DistinctTags returns the distinct non-empty tags in the owner+hidden
	// partition, constrained by color when non-nil. The search term never
	// applies here.
	DistinctTags(ctx context.Context, userID int64, hidden bool, color *string) ([]string, error)

	// DistinctColors returns the distinct non-empty colors in the
	// owner+hidden partition, constrained by tag when non-nil.
	DistinctColors(ctx context.Context, userID int64, hidden bool, tag *string) ([]string, error)

	// GetNote returns the owner's note by id, or [ErrNoteNotFound].
	GetNote(ctx context.Context, userID, noteID int64) (models.Note, error)

	// CreateNote inserts the note and returns it with server-assigned fields.
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)

	// UpdateNote stores the editable fields and bumps UpdatedAt.
	// Returns [ErrNoteNotFound] when the note is missing or foreign.
	UpdateNote(ctx context.Context, note models.Note) (models.Note, error)

	// SoftDeleteNote marks the owner's note deleted without removing the row.
	SoftDeleteNote(ctx context.Context, userID, noteID int64) error
}

// ImageRepository persists note image metadata. Image rows are removed
// physically, unlike notes.
type ImageRepository interface {
	// CreateImage inserts the image metadata row.
	CreateImage(ctx context.Context, image models.NoteImage) (models.NoteImage, error)

	// ListByNoteIDs returns all images belonging to the given notes,
	// keyed by note id.
	ListByNoteIDs(ctx context.Context, noteIDs []int64) (map[int64][]models.NoteImage, error)

	// DeleteImage removes the image row if it hangs off one of the owner's
	// notes, returning the deleted record so the caller can remove the
	// stored file. Returns [ErrImageNotFound] otherwise.
	DeleteImage(ctx context.Context, userID int64, imageID string) (models.NoteImage, error)
}

// FileStore persists uploaded binaries (note images, profile pictures)
// outside the relational database.
type FileStore interface {
	// Save writes content under a generated name and returns the path
	// (relative to the store root) to persist in the database.
	Save(ctx context.Context, name string, content []byte) (string, error)

	// Remove deletes a previously saved file. Removing a missing file is
	// not an error.
	Remove(ctx context.Context, path string) error
}
