package models

import "time"

// Note is a single user-owned note. Tag and Color are optional free-form
// labels; an empty string means the label is absent. Notes are soft-deleted:
// IsDeleted marks the row as gone without physical removal, and every query
// in the application excludes soft-deleted rows.
type Note struct {
	// NoteID is the internal unique identifier of the note.
	NoteID int64 `json:"note_id"`

	// UserID references the owning user. A note is visible only to its owner.
	UserID int64 `json:"-"`

	// Title is the note headline shown in list views.
	Title string `json:"title"`

	// Description is the note body text.
	Description string `json:"description"`

	// Tag is an optional free-text label used for filtering. Empty = no tag.
	Tag string `json:"tag,omitempty"`

	// Color is an optional swatch value (e.g. "#ff0000"). Empty = no color.
	Color string `json:"color,omitempty"`

	// IsHidden marks the note as part of the PIN-protected hidden subset.
	// Orthogonal to the delete state; set by the owner at create/edit time.
	IsHidden bool `json:"is_hidden"`

	// IsDeleted is the soft-delete marker.
	IsDeleted bool `json:"-"`

	// CreatedAt is the note creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the last modification timestamp. List views are ordered
	// by this field, most recently updated first.
	UpdatedAt time.Time `json:"updated_at"`

	// Images are the images attached to the note, annotated with display
	// layout values when the note is returned from a list request.
	Images []NoteImage `json:"images,omitempty"`

	// MaxHeight is the display height of the tallest image attached to the
	// note, in layout units. Zero when the note has no measurable images.
	// Computed per note, never persisted.
	MaxHeight int `json:"max_height"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}
