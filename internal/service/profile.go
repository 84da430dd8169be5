package service

import (
	"context"
	"log/slog"

	"github.com/resonateapp/resonate-server/internal/domain"
	domainerrors "github.com/resonateapp/resonate-server/internal/errors"
	"github.com/resonateapp/resonate-server/internal/media/images"
	"github.com/resonateapp/resonate-server/internal/media/urls"
	"github.com/resonateapp/resonate-server/internal/store"
	"github.com/resonateapp/resonate-server/internal/validation"
)

// ProfileService manages the caller's own account.
type ProfileService struct {
	store     *store.Store
	photos    *images.Processor
	validator *validation.Validator
	rewriter  *urls.Rewriter
	logger    *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(s *store.Store, photos *images.Processor, v *validation.Validator, rw *urls.Rewriter, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:     s,
		photos:    photos,
		validator: v,
		rewriter:  rw,
		logger:    logger,
	}
}

// UpdateProfileRequest is the payload for editing profile fields.
// Password fields are declared so their presence can be detected and
// rejected; credentials change through a dedicated flow, never here.
type UpdateProfileRequest struct {
	Name            string `json:"name" validate:"omitempty,min=2,max=100"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// GetProfile returns the caller's own account view.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*UserView, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := newUserView(user, s.rewriter)
	return &view, nil
}

// UpdateProfile applies name and email changes. Any attempt to smuggle a
// password change through this endpoint is rejected before the store is
// touched.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*UserView, error) {
	if req.Password != "" || req.ConfirmPassword != "" {
		return nil, domainerrors.PasswordChangeRejected("password cannot be changed via profile update")
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.UpdateUserProfile(ctx, userID, func(u *domain.User) error {
		if req.Name != "" {
			u.Name = req.Name
		}
		if req.Email != "" {
			u.Email = req.Email
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", userID)

	view := newUserView(user, s.rewriter)
	return &view, nil
}

// UpdatePhoto processes an uploaded photo and attaches it to the account.
func (s *ProfileService) UpdatePhoto(ctx context.Context, userID string, data []byte) (*UserView, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	result, err := s.photos.Process(ctx, userID, data)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeValidation, "could not process photo")
	}

	user, err := s.store.UpdateUserProfile(ctx, userID, func(u *domain.User) error {
		u.PhotoPath = result.Ref
		u.PhotoHash = result.BlurHash
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := newUserView(user, s.rewriter)
	return &view, nil
}
