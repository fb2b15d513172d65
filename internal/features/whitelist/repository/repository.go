package repository

import (
	"context"
	"time"

	twitter "slapflip-backend/internal/features/twitter/models"
	"slapflip-backend/internal/features/whitelist/models"
)

type WhitelistRepository interface {
	// GetByAddress returns nil, nil when no application exists.
	GetByAddress(ctx context.Context, address string) (*models.Application, error)
	// ConnectTwitter upserts the twitter fields and leaves status untouched.
	ConnectTwitter(ctx context.Context, address string, profile twitter.Profile, now time.Time) error
	// Join moves a twitter-connected record whose status is not in blocked to
	// pending. It reports false when no record satisfied those conditions.
	Join(ctx context.Context, address, tier string, blocked []models.Status, now time.Time) (bool, error)
	// Approve and Deny report false when no record exists. They never insert.
	Approve(ctx context.Context, address, tier, by string, now time.Time) (bool, error)
	Deny(ctx context.Context, address, by string, now time.Time) (bool, error)
	// List returns all applications, newest first.
	List(ctx context.Context) ([]models.Application, error)
	// FindAddressByTwitterUsername returns "" when no address other than except holds username.
	FindAddressByTwitterUsername(ctx context.Context, username, except string) (string, error)
}
