package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"slapflip-backend/internal/features/chat/models"
	"slapflip-backend/internal/features/chat/repository"
)

// Repository is an append-only in-process log. Inserts arrive with
// non-decreasing server timestamps, so insertion order is time order.
type Repository struct {
	mu       sync.RWMutex
	messages []models.Message
}

func NewRepository() *Repository {
	return &Repository{}
}

var _ repository.ChatRepository = (*Repository)(nil)

func (r *Repository) Insert(_ context.Context, msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if msg.ID.IsZero() {
		msg.ID = bson.NewObjectID()
	}
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *Repository) Recent(_ context.Context, limit int) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start := 0
	if len(r.messages) > limit {
		start = len(r.messages) - limit
	}
	out := make([]models.Message, len(r.messages)-start)
	copy(out, r.messages[start:])
	return out, nil
}
