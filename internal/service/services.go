package service

import (
	"github.com/notelock/notelock/internal/config"
	"github.com/notelock/notelock/internal/crypto"
	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/internal/session"
	"github.com/notelock/notelock/internal/store"
)

type Services struct {
	AuthService    AuthService
	PinService     PinService
	NoteService    NoteService
	ProfileService ProfileService
	AppInfoService AppInfoService
}

// NewServices wires every service over the shared storages, session store,
// and one credential hasher, so passwords and PINs use the same work factor.
func NewServices(storages store.Storages, sessions session.Store, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	hasher := crypto.NewBcryptHasher(cfg.App.BcryptCost)

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, sessions, hasher, cfg.App, logger),
		PinService:     NewPinService(storages.ProfileRepository, sessions, hasher, logger),
		NoteService:    NewNoteService(storages.NoteRepository, storages.ImageRepository, storages.Files, sessions, logger),
		ProfileService: NewProfileService(storages.UserRepository, storages.ProfileRepository, storages.Files, logger),
		AppInfoService: appInfoService,
	}, nil
}
