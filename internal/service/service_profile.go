package service

import (
	"context"
	"fmt"

	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/internal/store"
	"github.com/notelock/notelock/internal/utils"
	"github.com/notelock/notelock/internal/validators"
	"github.com/notelock/notelock/models"
)

// profileService is the concrete implementation of ProfileService.
// It joins the account identity with the profile settings and stores
// uploaded profile pictures in the same file store as note images.
type profileService struct {
	userRepository    store.UserRepository
	profileRepository store.ProfileRepository
	files             store.FileStore

	// ids generates stored file names for uploaded pictures.
	ids *utils.UUIDGenerator

	logger *logger.Logger
}

// NewProfileService constructs a ProfileService over the given repositories.
// The returned service is safe for concurrent use.
func NewProfileService(userRepository store.UserRepository, profileRepository store.ProfileRepository, files store.FileStore, logger *logger.Logger) ProfileService {
	return &profileService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		files:             files,
		ids:               utils.NewUUIDGenerator(),
		logger:            logger,
	}
}

// GetProfile returns the public view of the account and its settings. The
// response reveals whether a PIN exists, never the hash.
func (p *profileService) GetProfile(ctx context.Context, userID int64) (models.ProfileResponse, error) {
	log := logger.FromContext(ctx)

	user, err := p.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("user search by id failed")
		return models.ProfileResponse{}, fmt.Errorf("user search by id failed: %w", err)
	}

	profile, err := p.profileRepository.GetByUserID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("profile search failed")
		return models.ProfileResponse{}, fmt.Errorf("profile search failed: %w", err)
	}

	return models.ProfileResponse{
		Login:       user.Login,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PicturePath: profile.PicturePath,
		HasPin:      profile.HasPin(),
	}, nil
}

// UpdateProfile stores the display names and, when picture is non-nil, the
// uploaded profile picture. A nil picture leaves the stored one untouched.
// Returns the refreshed profile view.
func (p *profileService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest, picture *ImageUpload) (models.ProfileResponse, error) {
	log := logger.FromContext(ctx)

	if err := validators.ValidateProfileUpdate(req); err != nil {
		log.Error().Int64("userID", userID).Err(err).Msg("invalid profile data provided")
		return models.ProfileResponse{}, err
	}

	picturePath := ""
	if picture != nil {
		path, err := p.files.Save(ctx, p.ids.Generate()+storedExtension(picture.Filename), picture.Content)
		if err != nil {
			log.Err(err).Int64("userID", userID).Msg("profile picture save ended with error")
			return models.ProfileResponse{}, fmt.Errorf("profile picture save ended with error: %w", err)
		}
		picturePath = path
	}

	if err := p.profileRepository.UpdateProfile(ctx, userID, req.FirstName, req.LastName, picturePath); err != nil {
		log.Err(err).Int64("userID", userID).Msg("profile update ended with error")
		return models.ProfileResponse{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	return p.GetProfile(ctx, userID)
}
