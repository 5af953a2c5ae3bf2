package models

import "time"

// NoteImage is an image attached to a note. A note may carry any number of
// images. Unlike notes, images are deleted physically: removing an image
// destroys both the database row and the stored file.
type NoteImage struct {
	// ImageID is the unique identifier of the image (UUID string).
	ImageID string `json:"image_id"`

	// NoteID references the owning note.
	NoteID int64 `json:"-"`

	// FilePath is the location of the image binary in the file store.
	FilePath string `json:"file_path"`

	// Width is the intrinsic pixel width decoded at upload time.
	// Zero when the image format could not be decoded.
	Width int `json:"width"`

	// Height is the intrinsic pixel height decoded at upload time.
	// Zero when the image format could not be decoded.
	Height int `json:"height"`

	// CreatedAt is the upload timestamp.
	CreatedAt time.Time `json:"created_at"`

	// ScaledHeight is the display height at the fixed layout width.
	// Zero for images without known intrinsic dimensions.
	// Computed per request, never persisted.
	ScaledHeight int `json:"scaled_height"`

	// HalfDiff is the vertical centering offset within the tallest image's
	// footprint: round((maxHeight - ScaledHeight) / 2).
	// Computed per request, never persisted.
	HalfDiff int `json:"half_diff"`
}

// HasDimensions reports whether intrinsic width and height are both known
// and positive, i.e. the image participates in layout computation.
func (i NoteImage) HasDimensions() bool {
	return i.Width > 0 && i.Height > 0
}

// TableName returns the name of the database table
// associated with the NoteImage model.
func (i NoteImage) TableName() string {
	return "note_images"
}
