package service

import (
	"context"
	"time"

	"slapflip-backend/internal/common/cache"
	apperrors "slapflip-backend/internal/common/errors"
	"slapflip-backend/internal/common/logger"
	"slapflip-backend/internal/common/validation"
	twitter "slapflip-backend/internal/features/twitter/models"
	"slapflip-backend/internal/features/whitelist/models"
	"slapflip-backend/internal/features/whitelist/repository"
	"slapflip-backend/internal/utils/format"
)

type WhitelistService interface {
	Status(ctx context.Context, address string) (*models.StatusResponse, error)
	ConnectTwitter(ctx context.Context, address string, profile twitter.Profile) error
	Join(ctx context.Context, address, tier string) error
	Approve(ctx context.Context, address, tier, admin string) error
	Deny(ctx context.Context, address, admin string) error
	List(ctx context.Context) ([]models.Application, error)
	// FindLinkedAddress returns the address already holding username, other than except, or "".
	FindLinkedAddress(ctx context.Context, username, except string) (string, error)
	Tiers() []models.TierResponse
}

type Options struct {
	AllowRejoinAfterDenial bool
	CacheTTL               time.Duration
}

type whitelistService struct {
	repo  repository.WhitelistRepository
	cache cache.Cache
	opts  Options
	now   func() time.Time
}

func NewWhitelistService(repo repository.WhitelistRepository, c cache.Cache, opts Options) WhitelistService {
	if c == nil {
		c = cache.Nop{}
	}
	return &whitelistService{
		repo:  repo,
		cache: c,
		opts:  opts,
		now:   time.Now,
	}
}

func (s *whitelistService) Status(ctx context.Context, address string) (*models.StatusResponse, error) {
	addr, err := validation.ValidateAddress(address)
	if err != nil {
		return nil, apperrors.NewValidationError("address", err.Error())
	}

	var cached models.StatusResponse
	if found, err := s.cache.Get(ctx, cache.WhitelistStatusKey(addr), &cached); err == nil && found {
		return &cached, nil
	}

	app, err := s.repo.GetByAddress(ctx, addr)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get whitelist status", err)
	}

	status := statusOf(app)
	if _, err := s.cache.Add(ctx, cache.WhitelistStatusKey(addr), status, s.opts.CacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache whitelist status")
	}
	return status, nil
}

func statusOf(app *models.Application) *models.StatusResponse {
	status := &models.StatusResponse{}
	if app != nil {
		status.IsWhitelisted = app.IsWhitelisted
		status.TwitterConnected = app.TwitterConnected
		status.TwitterUsername = app.TwitterUsername
		status.Status = app.Status
		status.AppliedAt = app.AppliedAt
	}
	return status
}

func (s *whitelistService) ConnectTwitter(ctx context.Context, address string, profile twitter.Profile) error {
	addr, err := validation.ValidateAddress(address)
	if err != nil {
		return apperrors.NewValidationError("address", err.Error())
	}
	if err := s.repo.ConnectTwitter(ctx, addr, profile, s.now().UTC()); err != nil {
		return apperrors.NewDatabaseError("connect twitter", err)
	}
	s.refresh(ctx, addr)

	logger.Info().
		Str("address", format.Address(addr)).
		Str("twitter", profile.Username).
		Msg("Twitter connected to whitelist application")
	return nil
}

func (s *whitelistService) Join(ctx context.Context, address, tier string) error {
	addr, err := validation.ValidateAddress(address)
	if err != nil {
		return apperrors.NewValidationError("address", err.Error())
	}
	if tier == "" {
		return apperrors.NewValidationError("tier", "tier selection required")
	}
	if !models.IsValidTier(tier) {
		return apperrors.NewValidationError("tier", "unknown tier").WithDetail("tier", tier)
	}

	blocked := []models.Status{models.StatusApproved}
	if !s.opts.AllowRejoinAfterDenial {
		blocked = append(blocked, models.StatusDenied)
	}

	ok, err := s.repo.Join(ctx, addr, tier, blocked, s.now().UTC())
	if err != nil {
		return apperrors.NewDatabaseError("join whitelist", err)
	}
	if !ok {
		return s.joinRejection(ctx, addr)
	}
	s.refresh(ctx, addr)

	logger.Info().Str("address", format.Address(addr)).Str("tier", tier).Msg("Whitelist application submitted")
	return nil
}

// joinRejection explains why the conditional join update matched nothing.
func (s *whitelistService) joinRejection(ctx context.Context, addr string) error {
	app, err := s.repo.GetByAddress(ctx, addr)
	if err != nil {
		return apperrors.NewDatabaseError("get whitelist application", err)
	}
	switch {
	case app == nil || !app.TwitterConnected:
		return apperrors.NewPreconditionError("Twitter must be connected before joining the whitelist")
	case app.Status == models.StatusApproved:
		return apperrors.NewConflictError("whitelist", "address is already approved")
	case app.Status == models.StatusDenied:
		return apperrors.NewConflictError("whitelist", "application was denied")
	default:
		return apperrors.NewConflictError("whitelist", "application changed concurrently")
	}
}

func (s *whitelistService) Approve(ctx context.Context, address, tier, admin string) error {
	addr, err := validation.ValidateAddress(address)
	if err != nil {
		return apperrors.NewValidationError("address", err.Error())
	}
	if tier != "" && !models.IsValidTier(tier) {
		return apperrors.NewValidationError("tier", "unknown tier").WithDetail("tier", tier)
	}

	ok, err := s.repo.Approve(ctx, addr, tier, admin, s.now().UTC())
	if err != nil {
		return apperrors.NewDatabaseError("approve application", err)
	}
	if !ok {
		return apperrors.NewNotFoundError("whitelist application", addr)
	}
	s.refresh(ctx, addr)

	logger.Info().Str("address", format.Address(addr)).Str("by", admin).Msg("Whitelist application approved")
	return nil
}

func (s *whitelistService) Deny(ctx context.Context, address, admin string) error {
	addr, err := validation.ValidateAddress(address)
	if err != nil {
		return apperrors.NewValidationError("address", err.Error())
	}

	ok, err := s.repo.Deny(ctx, addr, admin, s.now().UTC())
	if err != nil {
		return apperrors.NewDatabaseError("deny application", err)
	}
	if !ok {
		return apperrors.NewNotFoundError("whitelist application", addr)
	}
	s.refresh(ctx, addr)

	logger.Info().Str("address", format.Address(addr)).Str("by", admin).Msg("Whitelist application denied")
	return nil
}

func (s *whitelistService) List(ctx context.Context) ([]models.Application, error) {
	apps, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list applications", err)
	}
	return apps, nil
}

func (s *whitelistService) FindLinkedAddress(ctx context.Context, username, except string) (string, error) {
	if username == "" {
		return "", nil
	}
	addr, err := s.repo.FindAddressByTwitterUsername(ctx, username, validation.NormalizeAddress(except))
	if err != nil {
		return "", apperrors.NewDatabaseError("find linked address", err)
	}
	return addr, nil
}

func (s *whitelistService) Tiers() []models.TierResponse {
	tiers := models.Tiers()
	out := make([]models.TierResponse, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, models.TierResponse{
			ID:       t.ID,
			Name:     t.Name,
			Price:    format.Wei(t.Price, models.PriceDecimals) + " AVAX",
			PriceWei: t.Price.String(),
		})
	}
	return out
}

// refresh writes the post-mutation status through to the cache, falling back
// to deleting the entry when the fresh record cannot be read or stored.
func (s *whitelistService) refresh(ctx context.Context, addr string) {
	key := cache.WhitelistStatusKey(addr)

	app, err := s.repo.GetByAddress(ctx, addr)
	if err == nil {
		err = s.cache.Set(ctx, key, statusOf(app), s.opts.CacheTTL)
	}
	if err == nil {
		return
	}

	logger.Warn().Err(err).Str("address", format.Address(addr)).Msg("Failed to refresh whitelist status")
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Warn().Err(err).Str("address", format.Address(addr)).Msg("Failed to invalidate whitelist status")
	}
}
