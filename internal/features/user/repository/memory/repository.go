package memory

import (
	"context"
	"sync"
	"time"

	twitter "slapflip-backend/internal/features/twitter/models"
	"slapflip-backend/internal/features/user/models"
	"slapflip-backend/internal/features/user/repository"
)

// Repository keeps users in process memory. Used by STORAGE_DRIVER=memory and tests.
type Repository struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewRepository() *Repository {
	return &Repository{users: make(map[string]*models.User)}
}

var _ repository.UserRepository = (*Repository)(nil)

func (r *Repository) GetByAddress(_ context.Context, address string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[address]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *Repository) Touch(_ context.Context, address string, now time.Time) (*models.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[address]
	if !ok {
		u = &models.User{Address: address, CreatedAt: now}
		r.users[address] = u
	}
	u.LastSeen = now
	cp := *u
	return &cp, !ok, nil
}

func (r *Repository) LinkTwitter(_ context.Context, address string, profile twitter.Profile, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[address]
	if !ok {
		u = &models.User{Address: address, CreatedAt: now}
		r.users[address] = u
	}
	u.TwitterConnected = true
	u.TwitterID = profile.ID
	u.TwitterUsername = profile.Username
	u.TwitterName = profile.Name
	updated := now
	u.UpdatedAt = &updated
	return nil
}

// Count is a test helper.
func (r *Repository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}
