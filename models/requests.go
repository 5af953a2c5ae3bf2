package models

// Request payloads for the JSON API. Each endpoint carries exactly one typed
// payload; there is no shared form struct dispatched by submitted button name.

// RegisterRequest creates a new account together with its empty profile.
type RegisterRequest struct {
	Login     string `json:"login"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// ChangePasswordRequest replaces the account password after verifying the
// current one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// DeleteAccountRequest destroys the account and everything it owns.
// Confirm must be the literal string "DELETE".
type DeleteAccountRequest struct {
	Confirm string `json:"confirm"`
}

// SetPinRequest sets the hidden-notes PIN for the first time, or overwrites
// it unconditionally when one already exists.
type SetPinRequest struct {
	Pin string `json:"pin"`
}

// ResetPinRequest replaces an existing PIN after verifying the current one.
type ResetPinRequest struct {
	CurrentPin string `json:"current_pin"`
	NewPin     string `json:"new_pin"`
}

// VerifyPinRequest unlocks the hidden-notes view for the current session.
type VerifyPinRequest struct {
	Pin string `json:"pin"`
}

// NoteRequest creates or updates a note.
type NoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
	Color       string `json:"color"`
	IsHidden    bool   `json:"is_hidden"`
}

// UpdateProfileRequest updates the display names; the profile picture rides
// alongside as a multipart file part.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
