package service

import (
	"context"
	"fmt"
	"time"

	"github.com/notelock/notelock/internal/config"
	"github.com/notelock/notelock/internal/crypto"
	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/internal/session"
	"github.com/notelock/notelock/internal/store"
	"github.com/notelock/notelock/internal/utils"
	"github.com/notelock/notelock/internal/validators"
	"github.com/notelock/notelock/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification, the JWT token
// lifecycle, and account-level mutations (password change, deletion) using
// a UserRepository for persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// sessions holds the per-session hidden-notes unlock flags; logout and
	// account deletion clear the flag for the current session.
	sessions session.Store

	// hasher hashes and verifies account passwords.
	hasher crypto.CredentialHasher

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and session store, populated with security parameters
// from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, sessions session.Store, hasher crypto.CredentialHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		sessions:       sessions,
		hasher:         hasher,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Register creates a new user account together with its empty profile.
//
// The payload is validated first, then the password is bcrypt-hashed and
// persistence is delegated to the UserRepository, which inserts the user and
// the profile in one transaction.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - A validation error wrapping validators.ErrInvalidCredentials.
//   - A wrapped storage error if the repository call fails (e.g. login
//     already taken — see store.ErrLoginAlreadyExists).
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validators.ValidateRegistration(req); err != nil {
		log.Error().Str("login", req.Login).Err(err).Msg("invalid registration data provided")
		return models.User{}, err
	}

	passwordHash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("login", req.Login).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Login:        req.Login,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", req.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It looks up the account by login and verifies the supplied password
// against the stored bcrypt hash.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found — see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Login == "" || req.Password == "" {
		log.Error().Str("login", req.Login).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, req.Login)
	if err != nil {
		log.Err(err).Str("login", req.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if !a.hasher.Verify(req.Password, foundUser.PasswordHash) {
		log.Error().
			Int64("id", foundUser.UserID).
			Str("login", foundUser.Login).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, a fresh session identifier as
// the "jti" claim, and expires after tokenDuration. Every login therefore
// starts a new session with the hidden-notes view locked.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed,
// missing session identifier) is normalised to ErrTokenIsExpiredOrInvalid so
// that callers do not need to inspect low-level JWT errors.
//
// Returns the decoded token model on success or ErrTokenIsExpiredOrInvalid on
// any validation failure.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// ChangePassword replaces the account password after verifying the current
// one. Existing tokens are not revoked; the client is expected to log in
// again to obtain a fresh session.
//
// Returns:
//   - A validation error wrapping validators.ErrInvalidCredentials for a
//     malformed payload.
//   - ErrWrongPassword if the current password does not match.
//   - A wrapped storage error on lookup or update failure.
func (a *authService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := validators.ValidatePasswordChange(req); err != nil {
		log.Error().Int64("userID", userID).Err(err).Msg("invalid password change data provided")
		return err
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if !a.hasher.Verify(req.CurrentPassword, foundUser.PasswordHash) {
		log.Error().Int64("userID", userID).Msg("wrong current password")
		return ErrWrongPassword
	}

	newHash, err := a.hasher.Hash(req.NewPassword)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, userID, newHash); err != nil {
		log.Err(err).Int64("userID", userID).Msg("password update ended with error")
		return fmt.Errorf("password update ended with error: %w", err)
	}

	return nil
}

// DeleteAccount destroys the account and everything it owns. The profile,
// notes, and image rows cascade in the database; the current session's
// unlock flag is dropped so a reused token cannot see stale state.
//
// Returns:
//   - validators.ErrConfirmMismatch unless the confirmation phrase is the
//     literal string "DELETE".
//   - A wrapped storage error on deletion failure.
func (a *authService) DeleteAccount(ctx context.Context, userID int64, sessionID string, req models.DeleteAccountRequest) error {
	log := logger.FromContext(ctx)

	if err := validators.ValidateAccountDeletion(req); err != nil {
		log.Error().Int64("userID", userID).Msg("account deletion not confirmed")
		return err
	}

	if err := a.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Int64("userID", userID).Msg("account deletion ended with error")
		return fmt.Errorf("account deletion ended with error: %w", err)
	}

	if err := a.sessions.Lock(ctx, sessionID); err != nil {
		log.Err(err).Int64("userID", userID).Msg("session lock after account deletion failed")
	}

	log.Info().Int64("userID", userID).Msg("account deleted")

	return nil
}

// Logout re-locks the hidden-notes view for the session. Tokens are not
// tracked server-side, so this is the only server state a logout touches.
func (a *authService) Logout(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	if err := a.sessions.Lock(ctx, sessionID); err != nil {
		log.Err(err).Str("sessionID", sessionID).Msg("session lock on logout failed")
		return fmt.Errorf("session lock on logout failed: %w", err)
	}

	return nil
}
