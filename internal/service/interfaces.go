package service

import (
	"context"
	"time"

	"github.com/notelock/notelock/models"
)

// AuthService owns the account lifecycle and the JWT session tokens.
// Primary authentication is deliberately separate from PinService: the PIN
// is a secondary credential gating a view, not an account credential.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error
	DeleteAccount(ctx context.Context, userID int64, sessionID string, req models.DeleteAccountRequest) error

	// Logout re-locks the hidden-notes view for the session. The token
	// itself stays valid until it expires; only the unlock flag is dropped.
	Logout(ctx context.Context, sessionID string) error
}

// PinService manages the 6-digit hidden-notes PIN and per-session unlocking.
type PinService interface {
	// SetPin stores a new PIN, overwriting any previous one without
	// verification. Format failures return an error wrapping
	// validators.ErrPinFormat.
	SetPin(ctx context.Context, userID int64, rawPin string) error

	// ResetPin replaces the PIN after verifying the current one.
	// Returns ErrPinMismatch when no PIN is set or the current PIN is wrong.
	ResetPin(ctx context.Context, userID int64, currentRawPin, newRawPin string) error

	// VerifyPin checks rawPin against the stored hash and, on success,
	// marks the session unlocked until expiresAt. Returns ErrPinMismatch
	// when no PIN is set or the PIN is wrong, without distinguishing.
	VerifyPin(ctx context.Context, userID int64, sessionID string, expiresAt time.Time, rawPin string) error
}

// ListParams carries one list-notes request into the note service: the
// requesting owner and session, the partition, and the already-normalized
// filter criteria (nil = unconstrained; the "all" sentinel never gets here).
type ListParams struct {
	UserID    int64
	SessionID string
	Hidden    bool
	Tag       *string
	Color     *string
	Search    *string
}

// ImageUpload is one uploaded file: the client-supplied name and the raw
// bytes. Dimension decoding happens in the service, not the handler.
type ImageUpload struct {
	Filename string
	Content  []byte
}

// NoteService owns note visibility, filtering, layout annotation, and CRUD.
type NoteService interface {
	// List returns the filtered, layout-annotated notes together with the
	// facet lists for the current partition. The hidden partition requires
	// an unlocked session and returns ErrHiddenLocked otherwise, before
	// any query runs.
	List(ctx context.Context, params ListParams) (models.NoteList, error)

	Create(ctx context.Context, userID int64, req models.NoteRequest) (models.Note, error)
	Update(ctx context.Context, userID, noteID int64, req models.NoteRequest) (models.Note, error)
	Delete(ctx context.Context, userID, noteID int64) error

	// AddImages attaches the uploaded files to the owner's note, decoding
	// intrinsic dimensions from each image header. Unrecognized formats are
	// stored with zero dimensions and skipped by the layout computation.
	AddImages(ctx context.Context, userID, noteID int64, uploads []ImageUpload) ([]models.NoteImage, error)

	// DeleteImage removes the image row and the stored file. Ownership is
	// checked through the note the image hangs off.
	DeleteImage(ctx context.Context, userID int64, imageID string) error
}

// ProfileService exposes and updates per-user profile settings.
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (models.ProfileResponse, error)

	// UpdateProfile stores the display names and, when picture is non-nil,
	// the new profile picture.
	UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest, picture *ImageUpload) (models.ProfileResponse, error)
}

// AppInfoService reports static information about the running build.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
