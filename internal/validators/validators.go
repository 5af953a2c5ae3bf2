// Package validators checks inbound request payloads before they reach the
// service layer. Rules are declared with ozzo-validation; every failure is
// wrapped in one of the package's sentinel errors so that callers can match
// with errors.Is and map the failure to a client error.
package validators

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/notelock/notelock/models"
)

// PinLength is the exact number of digits a hidden-notes PIN must contain.
const PinLength = 6

// colorPattern matches the "#rrggbb" swatch values produced by a color input.
var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidatePin checks that rawPin is exactly six ASCII digits.
// Returns an error wrapping [ErrPinFormat] otherwise.
func ValidatePin(rawPin string) error {
	err := validation.Validate(rawPin,
		validation.Required,
		validation.Length(PinLength, PinLength),
		is.Digit,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPinFormat, err)
	}

	return nil
}

// ValidateNote checks the field rules of a note create/update payload.
// Returns an error wrapping [ErrInvalidNote] on the first violated rule.
func ValidateNote(req models.NoteRequest) error {
	err := validation.Errors{
		"title":       validation.Validate(req.Title, validation.Required, validation.Length(1, 255)),
		"description": validation.Validate(req.Description, validation.Length(0, 10000)),
		"tag":         validation.Validate(req.Tag, validation.Length(0, 50)),
		"color":       validation.Validate(req.Color, validation.When(req.Color != "", validation.Match(colorPattern))),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNote, err)
	}

	return nil
}

// ValidateRegistration checks a new-account payload.
// Returns an error wrapping [ErrInvalidCredentials] on failure.
func ValidateRegistration(req models.RegisterRequest) error {
	err := validation.Errors{
		"login":      validation.Validate(req.Login, validation.Required, validation.Length(3, 150)),
		"password":   validation.Validate(req.Password, validation.Required, validation.Length(8, 128)),
		"first_name": validation.Validate(req.FirstName, validation.Length(0, 30)),
		"last_name":  validation.Validate(req.LastName, validation.Length(0, 30)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	return nil
}

// ValidatePasswordChange checks a change-password payload.
// Returns an error wrapping [ErrInvalidCredentials] on failure.
func ValidatePasswordChange(req models.ChangePasswordRequest) error {
	err := validation.Errors{
		"current_password": validation.Validate(req.CurrentPassword, validation.Required),
		"new_password":     validation.Validate(req.NewPassword, validation.Required, validation.Length(8, 128)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	return nil
}

// ValidateProfileUpdate checks a profile update payload.
// Returns an error wrapping [ErrInvalidCredentials] on failure.
func ValidateProfileUpdate(req models.UpdateProfileRequest) error {
	err := validation.Errors{
		"first_name": validation.Validate(req.FirstName, validation.Length(0, 30)),
		"last_name":  validation.Validate(req.LastName, validation.Length(0, 30)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	return nil
}

// ValidateAccountDeletion checks the deletion confirmation phrase.
// Returns [ErrConfirmMismatch] unless the phrase is exactly "DELETE".
func ValidateAccountDeletion(req models.DeleteAccountRequest) error {
	if req.Confirm != "DELETE" {
		return ErrConfirmMismatch
	}

	return nil
}
