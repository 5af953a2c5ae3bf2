package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/notelock/notelock/internal/logger"
)

func newTestProfileRepo(t *testing.T) (*profileRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &profileRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestGetProfileByUserID_Success(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.
		NewRows([]string{"profile_id", "user_id", "pin_hash", "picture_path", "updated_at"}).
		AddRow(1, 42, "pin-hash", "pictures/42.png", time.Now())

	mock.ExpectQuery("SELECT profile_id").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	profile, err := repo.GetByUserID(ctx, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.UserID != 42 {
		t.Errorf("expected UserID=42, got %d", profile.UserID)
	}
	if !profile.HasPin() {
		t.Error("expected HasPin to report true for a stored hash")
	}
}

func TestGetProfileByUserID_NoPinYet(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.
		NewRows([]string{"profile_id", "user_id", "pin_hash", "picture_path", "updated_at"}).
		AddRow(1, 42, "", "", time.Now())

	mock.ExpectQuery("SELECT profile_id").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	profile, err := repo.GetByUserID(ctx, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.HasPin() {
		t.Error("expected HasPin to report false when no hash is stored")
	}
}

func TestGetProfileByUserID_NotFound(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT profile_id").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUserID(ctx, 42)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestSetPin_Success(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE profiles").
		WithArgs(int64(42), "new-pin-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetPin(ctx, 42, "new-pin-hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetPin_ProfileMissing(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE profiles").
		WithArgs(int64(42), "new-pin-hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPin(ctx, 42, "new-pin-hash")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestReplacePin_Success(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"pin_hash"}).AddRow("old-hash"))
	mock.ExpectExec("UPDATE profiles").
		WithArgs(int64(42), "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var seenHash string
	err := repo.ReplacePin(ctx, 42, func(currentHash string) error {
		seenHash = currentHash
		return nil
	}, "new-hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seenHash != "old-hash" {
		t.Errorf("check received %q, want old-hash", seenHash)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReplacePin_CheckRejectsWrite(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	ctx := context.Background()
	authFailure := errors.New("current pin does not match")

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"pin_hash"}).AddRow("old-hash"))
	mock.ExpectRollback()

	err := repo.ReplacePin(ctx, 42, func(string) error {
		return authFailure
	}, "new-hash")
	if !errors.Is(err, authFailure) {
		t.Fatalf("expected the check error back unchanged, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("the new hash must not be written after a failed check: %v", err)
	}
}

func TestReplacePin_NeverSetPassesEmptyHash(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"pin_hash"}).AddRow(""))
	mock.ExpectRollback()

	sentinel := errors.New("nothing to replace")
	err := repo.ReplacePin(ctx, 42, func(currentHash string) error {
		if currentHash != "" {
			t.Errorf("expected empty current hash, got %q", currentHash)
		}
		return sentinel
	}, "new-hash")
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}

func TestReplacePin_ProfileMissing(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.ReplacePin(ctx, 42, func(string) error { return nil }, "new-hash")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET first_name").
		WithArgs(int64(42), "John", "Doe").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE profiles").
		WithArgs(int64(42), "pictures/42.png").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.UpdateProfile(ctx, 42, "John", "Doe", "pictures/42.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateProfile_ProfileMissing(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET first_name").
		WithArgs(int64(42), "John", "Doe").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE profiles").
		WithArgs(int64(42), "").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UpdateProfile(ctx, 42, "John", "Doe", "")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
