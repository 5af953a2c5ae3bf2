package models

// ProfileResponse is the public view of an account and its profile settings
// returned by the profile endpoint. It reveals whether a PIN exists but
// never the hash itself.
type ProfileResponse struct {
	Login       string `json:"login"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PicturePath string `json:"picture_path,omitempty"`
	HasPin      bool   `json:"has_pin"`
}

// DeleteImageResponse acknowledges an image deletion request.
type DeleteImageResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
