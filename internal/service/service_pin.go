package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/notelock/notelock/internal/crypto"
	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/internal/session"
	"github.com/notelock/notelock/internal/store"
	"github.com/notelock/notelock/internal/validators"
)

// pinService is the concrete implementation of PinService: the gate in front
// of the hidden-notes view.
//
// A PIN is a secondary credential scoped to one view, not to the account.
// The service keeps no per-session state itself; successful verification is
// recorded in the session store and read back by the note service on every
// hidden-list request.
type pinService struct {
	// profileRepository persists the bcrypt PIN hash on the profile row.
	profileRepository store.ProfileRepository

	// sessions records which sessions have passed verification.
	sessions session.Store

	// hasher hashes and verifies PINs. Shared with the auth service so
	// passwords and PINs use the same work factor.
	hasher crypto.CredentialHasher

	logger *logger.Logger
}

// NewPinService constructs a PinService over the given repositories.
// The returned service is safe for concurrent use.
func NewPinService(profileRepository store.ProfileRepository, sessions session.Store, hasher crypto.CredentialHasher, logger *logger.Logger) PinService {
	return &pinService{
		profileRepository: profileRepository,
		sessions:          sessions,
		hasher:            hasher,
		logger:            logger,
	}
}

// SetPin validates rawPin, hashes it, and stores it unconditionally,
// overwriting any previous PIN without verification. First-time setup and
// deliberate overwrite share this path.
//
// Returns an error wrapping validators.ErrPinFormat for a malformed PIN, or
// a wrapped storage error on persistence failure.
func (p *pinService) SetPin(ctx context.Context, userID int64, rawPin string) error {
	log := logger.FromContext(ctx)

	if err := validators.ValidatePin(rawPin); err != nil {
		log.Error().Int64("userID", userID).Msg("malformed PIN provided")
		return err
	}

	pinHash, err := p.hasher.Hash(rawPin)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("PIN hashing failed")
		return fmt.Errorf("PIN hashing failed: %w", err)
	}

	if err := p.profileRepository.SetPin(ctx, userID, pinHash); err != nil {
		log.Err(err).Int64("userID", userID).Msg("PIN update ended with error")
		return fmt.Errorf("PIN update ended with error: %w", err)
	}

	return nil
}

// ResetPin replaces the PIN after verifying the current one.
//
// Verification and replacement happen inside a single repository
// transaction: the stored hash is read under a row-level lock, compared
// against currentRawPin, and only then replaced. Two concurrent resets
// therefore serialize; the loser sees the winner's hash and fails with
// ErrPinMismatch instead of silently overwriting it.
//
// Returns:
//   - An error wrapping validators.ErrPinFormat when either PIN is malformed.
//   - ErrPinMismatch when no PIN is set or currentRawPin is wrong.
//   - A wrapped storage error on transaction failure.
func (p *pinService) ResetPin(ctx context.Context, userID int64, currentRawPin, newRawPin string) error {
	log := logger.FromContext(ctx)

	if err := validators.ValidatePin(currentRawPin); err != nil {
		log.Error().Int64("userID", userID).Msg("malformed current PIN provided")
		return err
	}
	if err := validators.ValidatePin(newRawPin); err != nil {
		log.Error().Int64("userID", userID).Msg("malformed new PIN provided")
		return err
	}

	newHash, err := p.hasher.Hash(newRawPin)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("PIN hashing failed")
		return fmt.Errorf("PIN hashing failed: %w", err)
	}

	check := func(currentHash string) error {
		if !p.hasher.Verify(currentRawPin, currentHash) {
			return ErrPinMismatch
		}
		return nil
	}

	if err := p.profileRepository.ReplacePin(ctx, userID, check, newHash); err != nil {
		if errors.Is(err, ErrPinMismatch) {
			log.Error().Int64("userID", userID).Msg("PIN reset rejected")
			return ErrPinMismatch
		}
		log.Err(err).Int64("userID", userID).Msg("PIN reset ended with error")
		return fmt.Errorf("PIN reset ended with error: %w", err)
	}

	return nil
}

// VerifyPin checks rawPin against the stored hash and, on success, marks
// sessionID unlocked until expiresAt.
//
// A profile without a PIN and a wrong PIN both return ErrPinMismatch: the
// response never reveals whether hidden notes are protected. Malformed
// input fails before any comparison with an error wrapping
// validators.ErrPinFormat.
func (p *pinService) VerifyPin(ctx context.Context, userID int64, sessionID string, expiresAt time.Time, rawPin string) error {
	log := logger.FromContext(ctx)

	if err := validators.ValidatePin(rawPin); err != nil {
		log.Error().Int64("userID", userID).Msg("malformed PIN provided")
		return err
	}

	profile, err := p.profileRepository.GetByUserID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("profile search failed")
		return fmt.Errorf("profile search failed: %w", err)
	}

	if !p.hasher.Verify(rawPin, profile.PinHash) {
		log.Error().Int64("userID", userID).Msg("PIN verification failed")
		return ErrPinMismatch
	}

	if err := p.sessions.Unlock(ctx, sessionID, expiresAt); err != nil {
		log.Err(err).Int64("userID", userID).Msg("session unlock failed")
		return fmt.Errorf("session unlock failed: %w", err)
	}

	return nil
}
