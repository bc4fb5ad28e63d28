package service

import (
	"context"
	"errors"
	"strings"

	"github.com/foc-sab/ctrlroom/internal/dto"
	"github.com/foc-sab/ctrlroom/internal/model"
	"github.com/foc-sab/ctrlroom/internal/repository"
	"github.com/foc-sab/ctrlroom/pkg/apperror"
	"github.com/foc-sab/ctrlroom/pkg/storage"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input dto.UpdateProfileRequest, picture *dto.ProfilePicture) (*model.User, error)
	// DeleteAccount removes the user and revokes every token issued to them.
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context) ([]*model.User, error)
}

type profileService struct {
	users     repository.UserRepository
	pictures  storage.ImageStorage
	sanitizer *bluemonday.Policy
}

func NewProfileService(users repository.UserRepository, pictures storage.ImageStorage) ProfileService {
	return &profileService{
		users:     users,
		pictures:  pictures,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *profileService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, id uuid.UUID, input dto.UpdateProfileRequest, picture *dto.ProfilePicture) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.ToLower(*input.Email)
		taken, err := s.users.EmailTaken(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.NewValidation("email", "email has already been taken")
		}
		user.Email = email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Location != nil {
		user.Location = input.Location
	}
	if input.Bio != nil {
		bio := s.sanitizer.Sanitize(*input.Bio)
		user.Bio = &bio
	}

	if picture != nil && picture.Reader != nil && s.pictures != nil {
		url, err := s.pictures.UploadImage(ctx, picture.Reader, "profile_pictures", picture.FileName)
		if err != nil {
			return nil, err
		}
		user.ProfilePictureURL = &url
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *profileService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	return s.users.Delete(ctx, id)
}

func (s *profileService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.users.FindAll(ctx)
}
