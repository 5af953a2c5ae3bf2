package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/models"
)

// profileRepository is the PostgreSQL-backed implementation of
// [ProfileRepository]. The profile row is the single source of truth for the
// hashed hidden-notes PIN, so every PIN mutation goes through this type.
type profileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProfileRepository constructs a [ProfileRepository] backed by the
// provided database connection and logger.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUserID retrieves the profile row belonging to userID.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrProfileNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (models.Profile, error) {
	log := logger.FromContext(ctx)

	var profile models.Profile
	row := r.db.QueryRowContext(ctx, getProfileByUserID, userID)

	if err := row.Scan(&profile.ProfileID, &profile.UserID, &profile.PinHash, &profile.PicturePath, &profile.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, ErrProfileNotFound
		}

		log.Err(err).Str("func", "*profileRepository.GetByUserID").Int64("user_id", userID).Msg("error: scanning error")
		return models.Profile{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return profile, nil
}

// SetPin stores pinHash unconditionally, overwriting any previous value.
// Used for the initial PIN set, which requires no knowledge of the old PIN.
//
// Returns [ErrProfileNotFound] when the profile row does not exist.
func (r *profileRepository) SetPin(ctx context.Context, userID int64, pinHash string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, setProfilePin, userID, pinHash)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.SetPin").Int64("user_id", userID).Msg("error: failed to set pin")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// ReplacePin swaps the stored PIN hash inside one transaction: the current
// hash is read under FOR UPDATE, handed to check, and replaced only when
// check returns nil. Concurrent resets against the same profile serialize on
// the row lock, so the compare-then-write sequence cannot lose an update.
//
// A non-nil error from check rolls the transaction back and is returned to
// the caller unchanged, so authentication failures keep their identity.
func (r *profileRepository) ReplacePin(ctx context.Context, userID int64, check func(currentHash string) error, newHash string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.ReplacePin").Int64("user_id", userID).Msg("error: failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var currentHash string
	row := tx.QueryRowContext(ctx, selectPinForUpdate, userID)
	if err := row.Scan(&currentHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProfileNotFound
		}

		log.Err(err).Str("func", "*profileRepository.ReplacePin").Int64("user_id", userID).Msg("error: scanning error")
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := check(currentHash); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, setProfilePin, userID, newHash); err != nil {
		log.Err(err).Str("func", "*profileRepository.ReplacePin").Int64("user_id", userID).Msg("error: failed to replace pin")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*profileRepository.ReplacePin").Int64("user_id", userID).Msg("error: failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// UpdateProfile stores the display names on the user row and, when
// picturePath is non-empty, the new picture location on the profile row.
// Both updates run in one transaction.
func (r *profileRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, picturePath string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.UpdateProfile").Int64("user_id", userID).Msg("error: failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, updateUserNames, userID, firstName, lastName); err != nil {
		log.Err(err).Str("func", "*profileRepository.UpdateProfile").Int64("user_id", userID).Msg("error: failed to update names")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	result, err := tx.ExecContext(ctx, updateProfilePicture, userID, picturePath)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.UpdateProfile").Int64("user_id", userID).Msg("error: failed to update picture")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*profileRepository.UpdateProfile").Int64("user_id", userID).Msg("error: failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
