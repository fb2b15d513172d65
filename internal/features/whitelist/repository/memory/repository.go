package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	twitter "slapflip-backend/internal/features/twitter/models"
	"slapflip-backend/internal/features/whitelist/models"
	"slapflip-backend/internal/features/whitelist/repository"
)

// Repository keeps applications in process memory.
type Repository struct {
	mu   sync.Mutex
	apps map[string]*models.Application
}

func NewRepository() *Repository {
	return &Repository{apps: make(map[string]*models.Application)}
}

var _ repository.WhitelistRepository = (*Repository)(nil)

func (r *Repository) GetByAddress(_ context.Context, address string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[address]
	if !ok {
		return nil, nil
	}
	cp := *app
	return &cp, nil
}

func (r *Repository) ConnectTwitter(_ context.Context, address string, profile twitter.Profile, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[address]
	if !ok {
		app = &models.Application{Address: address, CreatedAt: now}
		r.apps[address] = app
	}
	app.TwitterConnected = true
	app.TwitterID = profile.ID
	app.TwitterUsername = profile.Username
	app.TwitterName = profile.Name
	app.UpdatedAt = timePtr(now)
	return nil
}

func (r *Repository) Join(_ context.Context, address, tier string, blocked []models.Status, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[address]
	if !ok || !app.TwitterConnected {
		return false, nil
	}
	for _, s := range blocked {
		if app.Status == s {
			return false, nil
		}
	}
	app.Status = models.StatusPending
	app.Tier = tier
	app.AppliedAt = timePtr(now)
	app.UpdatedAt = timePtr(now)
	return true, nil
}

func (r *Repository) Approve(_ context.Context, address, tier, by string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[address]
	if !ok {
		return false, nil
	}
	app.IsWhitelisted = true
	app.Status = models.StatusApproved
	app.ApprovedAt = timePtr(now)
	app.ApprovedBy = by
	app.UpdatedAt = timePtr(now)
	if tier != "" {
		app.Tier = tier
	}
	return true, nil
}

func (r *Repository) Deny(_ context.Context, address, by string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[address]
	if !ok {
		return false, nil
	}
	app.IsWhitelisted = false
	app.Status = models.StatusDenied
	app.DeniedAt = timePtr(now)
	app.DeniedBy = by
	app.UpdatedAt = timePtr(now)
	return true, nil
}

func (r *Repository) List(_ context.Context) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	apps := make([]models.Application, 0, len(r.apps))
	for _, app := range r.apps {
		apps = append(apps, *app)
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps, nil
}

func (r *Repository) FindAddressByTwitterUsername(_ context.Context, username, except string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for addr, app := range r.apps {
		if addr != except && app.TwitterUsername == username {
			return addr, nil
		}
	}
	return "", nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
