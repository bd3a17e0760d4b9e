package service

import (
	"context"
	"time"

	"github.com/paperstack/paperstack/internal/api/dto"
	"github.com/paperstack/paperstack/internal/cache"
	"github.com/paperstack/paperstack/internal/domain/user"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
)

type UserService interface {
	GetProfile(ctx context.Context) (*user.Profile, error)
	// GetProfileByID returns a cached profile, used by the pdf renderer
	GetProfileByID(ctx context.Context, userID string) (*user.Profile, error)
	UpdateBusinessInfo(ctx context.Context, req *dto.UpdateBusinessInfoRequest) (*user.Profile, error)
	UpdateDocumentCustomization(ctx context.Context, req *dto.UpdateDocumentCustomizationRequest) (*user.Profile, error)
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{
		ServiceParams: params,
	}
}

func (s *userService) GetProfile(ctx context.Context) (*user.Profile, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetProfileByID(ctx, userID)
}

func (s *userService) GetProfileByID(ctx context.Context, userID string) (*user.Profile, error) {
	key := cache.GenerateKey(cache.PrefixProfile, userID)
	if profile, ok := cache.GetAs[*user.Profile](ctx, s.Cache, key); ok {
		return profile, nil
	}

	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := u.Profile()
	s.Cache.Set(ctx, key, profile, s.Config.Cache.DefaultExpiration)
	return profile, nil
}

func (s *userService) UpdateBusinessInfo(ctx context.Context, req *dto.UpdateBusinessInfoRequest) (*user.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.update(ctx, func(u *user.User) {
		req.Apply(&u.BusinessInfo)
	})
}

func (s *userService) UpdateDocumentCustomization(ctx context.Context, req *dto.UpdateDocumentCustomizationRequest) (*user.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.update(ctx, func(u *user.User) {
		req.Apply(&u.DocumentCustomization)
	})
}

func (s *userService) update(ctx context.Context, mutate func(*user.User)) (*user.Profile, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	mutate(u)
	u.UpdatedAt = time.Now().UTC()
	u.UpdatedBy = userID

	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixProfile, userID))
	return u.Profile(), nil
}

func requireUser(ctx context.Context) (string, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return "", ierr.NewError("user not authenticated").
			WithHint("Please log in to continue").
			Mark(ierr.ErrUnauthorized)
	}
	return userID, nil
}
