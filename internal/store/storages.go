package store

import (
	"context"

	"github.com/notelock/notelock/internal/config"
	"github.com/notelock/notelock/internal/logger"
)

// Storages aggregates every persistence component of the application so the
// service layer can be wired from a single value.
type Storages struct {
	// DB is the shared connection handle, exposed so the entrypoint can run
	// migrations against the same pool the repositories use.
	DB *DB

	UserRepository    UserRepository
	ProfileRepository ProfileRepository
	NoteRepository    NoteRepository
	ImageRepository   ImageRepository
	Files             FileStore
}

// NewStorages connects to PostgreSQL and the image file store and constructs
// all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	files, err := NewImageFileStore(cfg.Files.ImagesDir, logger)
	if err != nil {
		return nil, err
	}

	return &Storages{
		DB:                db,
		UserRepository:    NewUserRepository(db, logger),
		ProfileRepository: NewProfileRepository(db, logger),
		NoteRepository:    NewNoteRepository(db, logger),
		ImageRepository:   NewImageRepository(db, logger),
		Files:             files,
	}, nil
}
