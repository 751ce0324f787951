package impl

import (
	"context"
	"fmt"
	"log/slog"

	"opencycle/config"
	deliverycontext "opencycle/internal/delivery/context"
	"opencycle/internal/domain/entity"
	domainerrors "opencycle/internal/domain/errors"
	"opencycle/internal/domain/repository"
	"opencycle/internal/domain/service"
	"opencycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultMaxAvatarBytes = 2 << 20

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo       repository.UserRepository
	itemRepo       repository.ItemRepository
	storage        service.ObjectStorage
	maxAvatarBytes int64
	logger         *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	ItemRepo repository.ItemRepository
	Storage  service.ObjectStorage
	Config   *config.Config
	Logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	maxAvatarBytes := int64(defaultMaxAvatarBytes)
	if params.Config != nil && params.Config.Storage != nil && params.Config.Storage.MaxAvatarBytes > 0 {
		maxAvatarBytes = params.Config.Storage.MaxAvatarBytes
	}

	return &profileService{
		userRepo:       params.UserRepo,
		itemRepo:       params.ItemRepo,
		storage:        params.Storage,
		maxAvatarBytes: maxAvatarBytes,
		logger:         params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetOrCreate loads the user with their profile, creating a default profile
// row on first access. Losing the insert race to a concurrent first access is
// benign: the winner's row is refetched.
func (srv *profileService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile access")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	if user.Profile != nil {
		return user, nil
	}

	profile, err := srv.ensureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Profile = profile

	return user, nil
}

func (srv *profileService) ensureProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := srv.userRepo.FindProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	srv.log(ctx).Info("Creating default profile on first access", slog.Any("userID", userID))

	newProfile := &entity.Profile{
		UserID:             userID,
		ContactPreferences: entity.DefaultContactPreferences(),
	}
	createErr := srv.userRepo.CreateProfile(ctx, newProfile)
	if createErr == nil {
		return newProfile, nil
	}
	if errors.Is(createErr, repository.ErrDuplicateProfile) {
		// A concurrent request created it first; use theirs.
		existing, refetchErr := srv.userRepo.FindProfile(ctx, userID)
		if refetchErr != nil {
			return nil, errors.Wrap(refetchErr, "failed to refetch profile after race")
		}

		return existing, nil
	}

	return nil, errors.Wrap(createErr, "failed to create profile")
}

// Update saves the profile fields and optional new avatar, returning the
// refreshed user.
func (srv *profileService) Update(ctx context.Context, userID uuid.UUID, input usecase.UpdateProfileInput) (*entity.User, error) {
	profile, err := srv.ensureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	avatarURL := profile.AvatarURL
	if input.Avatar != nil {
		url, uploadErr := srv.uploadAvatar(ctx, userID, input.Avatar)
		if uploadErr != nil {
			return nil, uploadErr
		}
		avatarURL = url
	}

	profile.Bio = input.Bio
	profile.Location = input.Location
	profile.AvatarURL = avatarURL
	profile.Phone = input.Phone
	profile.WhatsApp = input.WhatsApp
	profile.Instagram = input.Instagram
	profile.ContactPreferences = input.ContactPreferences

	if err := srv.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to save profile")
	}

	if input.Name != "" {
		if err := srv.userRepo.UpdateName(ctx, userID, input.Name); err != nil {
			return nil, errors.Wrap(err, "failed to save display name")
		}
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload user after update")
	}
	if user.Profile == nil {
		user.Profile = profile
	}

	srv.log(ctx).Info("Profile updated", slog.Any("userID", userID))

	return user, nil
}

// uploadAvatar stores the avatar under a stable per-user key so a new upload
// replaces the previous one in place.
func (srv *profileService) uploadAvatar(ctx context.Context, userID uuid.UUID, upload *usecase.FileUpload) (string, error) {
	if err := validateImageUpload(upload, srv.maxAvatarBytes); err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/avatar%s", userID, fileExt(upload.Filename))
	if err := srv.storage.Upload(ctx, service.BucketAvatars, key, upload.ContentType, upload.Data); err != nil {
		srv.log(ctx).Error("Avatar upload failed", slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrUploadFailed, "avatar upload")
	}

	return srv.storage.PublicURL(service.BucketAvatars, key), nil
}

// Dashboard returns the owner's items and counters derived from that exact
// list, never from a separate query that could disagree.
func (srv *profileService) Dashboard(ctx context.Context, userID uuid.UUID) (*usecase.DashboardOutput, error) {
	items, err := srv.itemRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dashboard items")
	}

	return &usecase.DashboardOutput{
		Items: items,
		Stats: entity.ComputeDashboardStats(items),
	}, nil
}

// Stats aggregates lifetime engagement across all of the user's items.
// Failures degrade to absent stats rather than breaking the page.
func (srv *profileService) Stats(ctx context.Context, userID uuid.UUID) (*entity.UserStats, error) {
	stats, err := srv.itemRepo.StatsForOwner(ctx, userID)
	if err != nil {
		srv.log(ctx).Warn("Failed to compute user stats", slog.Any("userID", userID), slog.Any("error", err))

		return nil, nil
	}

	return stats, nil
}
