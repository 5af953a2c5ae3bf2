package models

// FilterAll is the query-parameter sentinel meaning "no constraint".
// It exists only at the transport boundary: handlers translate it (and absent
// or blank parameters) to a nil criteria field before the core sees it.
const FilterAll = "all"

// NoteFilter is the immutable criteria struct consumed by the note filter
// engine. Nil pointer fields mean "no constraint"; the sentinel string "all"
// never reaches this struct.
type NoteFilter struct {
	// UserID scopes every query to the requesting owner.
	UserID int64

	// Hidden selects the note partition: false for the regular list,
	// true for the PIN-protected hidden list.
	Hidden bool

	// Tag, when non-nil, restricts notes to a case-insensitive exact tag match.
	Tag *string

	// Color, when non-nil, restricts notes to a case-insensitive exact color match.
	Color *string

	// Search, when non-nil and non-blank after trimming, restricts notes to
	// those whose title, description, or tag contains the term
	// (case-insensitive substring, OR across the three fields).
	Search *string
}

// NoteList is the combined outcome of one list-notes request: the filtered
// notes (layout-annotated), the facet lists describing the remaining filter
// choices, and the echoed selections for the dropdowns.
type NoteList struct {
	// Notes are the matching notes ordered by UpdatedAt descending,
	// with image layout values populated.
	Notes []Note `json:"notes"`

	// AllTags are the distinct non-empty tags available in the current
	// owner+hidden partition, computed against the color filter only.
	AllTags []string `json:"all_tags"`

	// AllColors are the distinct non-empty colors available in the current
	// owner+hidden partition, computed against the tag filter only.
	AllColors []string `json:"all_colors"`

	// SelectedTag echoes the requested tag, or "all" when unconstrained.
	SelectedTag string `json:"selected_tag"`

	// SelectedColor echoes the requested color, or "all" when unconstrained.
	SelectedColor string `json:"selected_color"`

	// Hidden reports which partition the list was drawn from.
	Hidden bool `json:"hidden"`
}
