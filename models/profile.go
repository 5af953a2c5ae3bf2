package models

import "time"

// Profile holds per-user settings that are not part of the account identity:
// the hashed hidden-notes PIN and the profile picture. Exactly one profile
// exists per user; it is created together with the account.
type Profile struct {
	// ProfileID is the internal unique identifier of the profile row.
	ProfileID int64 `json:"-"`

	// UserID references the owning user account.
	UserID int64 `json:"-"`

	// PinHash is the bcrypt hash of the 6-digit hidden-notes PIN.
	// Empty when the user has never set a PIN. The plaintext PIN is never
	// persisted and never serialized.
	PinHash string `json:"-"`

	// PicturePath is the file-store path of the profile picture,
	// empty when no picture was uploaded.
	PicturePath string `json:"picture_path,omitempty"`

	// UpdatedAt is the timestamp of the last profile modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPin reports whether a hidden-notes PIN has ever been set.
func (p Profile) HasPin() bool {
	return p.PinHash != ""
}

// TableName returns the name of the database table
// associated with the Profile model.
func (p Profile) TableName() string {
	return "profiles"
}
