package repository

import (
	"context"

	"slapflip-backend/internal/features/twitter/models"
)

type SessionRepository interface {
	// Save replaces any pending session for the same address.
	Save(ctx context.Context, session *models.AuthSession) error
	// Consume atomically removes and returns the session holding state.
	// It returns nil, nil when none exists, so a state can be redeemed once.
	Consume(ctx context.Context, state string) (*models.AuthSession, error)
}
