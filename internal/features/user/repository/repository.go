package repository

import (
	"context"
	"time"

	twitter "slapflip-backend/internal/features/twitter/models"
	"slapflip-backend/internal/features/user/models"
)

type UserRepository interface {
	// GetByAddress returns nil, nil when no user exists.
	GetByAddress(ctx context.Context, address string) (*models.User, error)
	// Touch atomically upserts lastSeen (and createdAt on insert).
	Touch(ctx context.Context, address string, now time.Time) (*models.User, bool, error)
	// LinkTwitter upserts the twitter identity fields.
	LinkTwitter(ctx context.Context, address string, profile twitter.Profile, now time.Time) error
}
