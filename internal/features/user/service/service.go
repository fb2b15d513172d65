package service

import (
	"context"
	"time"

	"slapflip-backend/internal/common/cache"
	apperrors "slapflip-backend/internal/common/errors"
	"slapflip-backend/internal/common/logger"
	"slapflip-backend/internal/common/validation"
	twitter "slapflip-backend/internal/features/twitter/models"
	"slapflip-backend/internal/features/user/models"
	"slapflip-backend/internal/features/user/repository"
	"slapflip-backend/internal/utils/format"
)

type UserService interface {
	// GetUser is best-effort: unknown, malformed or unreadable addresses yield nil.
	GetUser(ctx context.Context, address string) *models.User
	// TouchUser upserts the user and reports whether this call created it.
	TouchUser(ctx context.Context, address string) (*models.User, bool, error)
	LinkTwitter(ctx context.Context, address string, profile twitter.Profile) error
}

type userService struct {
	repo     repository.UserRepository
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewUserService(repo repository.UserRepository, c cache.Cache, cacheTTL time.Duration) UserService {
	if c == nil {
		c = cache.Nop{}
	}
	return &userService{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

func (s *userService) GetUser(ctx context.Context, address string) *models.User {
	addr, err := validation.ValidateAddress(address)
	if err != nil {
		return nil
	}

	var cached models.User
	if found, err := s.cache.Get(ctx, cache.UserKey(addr), &cached); err == nil && found {
		return &cached
	}

	user, err := s.repo.GetByAddress(ctx, addr)
	if err != nil {
		logger.Error().Err(err).Str("address", format.Address(addr)).Msg("Failed to fetch user")
		return nil
	}
	if user == nil {
		return nil
	}

	if _, err := s.cache.Add(ctx, cache.UserKey(addr), user, s.cacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache user")
	}
	return user
}

func (s *userService) TouchUser(ctx context.Context, address string) (*models.User, bool, error) {
	addr, err := validation.ValidateAddress(address)
	if err != nil {
		return nil, false, apperrors.NewValidationError("address", err.Error())
	}

	user, created, err := s.repo.Touch(ctx, addr, s.now().UTC())
	if err != nil {
		return nil, false, apperrors.NewDatabaseError("touch user", err)
	}
	s.store(ctx, addr, user)

	if created {
		logger.Info().Str("address", format.Address(addr)).Msg("User created")
	}
	return user, created, nil
}

func (s *userService) LinkTwitter(ctx context.Context, address string, profile twitter.Profile) error {
	addr := validation.NormalizeAddress(address)
	if err := s.repo.LinkTwitter(ctx, addr, profile, s.now().UTC()); err != nil {
		return apperrors.NewDatabaseError("link twitter to user", err)
	}

	user, err := s.repo.GetByAddress(ctx, addr)
	if err != nil || user == nil {
		s.invalidate(ctx, addr)
		return nil
	}
	s.store(ctx, addr, user)
	return nil
}

// store writes the fresh record through to the cache after a mutation.
func (s *userService) store(ctx context.Context, addr string, user *models.User) {
	if err := s.cache.Set(ctx, cache.UserKey(addr), user, s.cacheTTL); err != nil {
		logger.Warn().Err(err).Str("address", format.Address(addr)).Msg("Failed to update user cache")
		s.invalidate(ctx, addr)
	}
}

func (s *userService) invalidate(ctx context.Context, addr string) {
	if err := s.cache.Delete(ctx, cache.UserKey(addr)); err != nil {
		logger.Warn().Err(err).Str("address", format.Address(addr)).Msg("Failed to invalidate user cache")
	}
}
