package repository

import (
	"context"

	"slapflip-backend/internal/features/chat/models"
)

type ChatRepository interface {
	// Insert stores msg and assigns its ID.
	Insert(ctx context.Context, msg *models.Message) error
	// Recent returns the newest limit messages in ascending time order.
	Recent(ctx context.Context, limit int) ([]models.Message, error)
}
