package memory

import (
	"context"
	"sync"

	"slapflip-backend/internal/features/twitter/models"
	"slapflip-backend/internal/features/twitter/repository"
)

// Repository keeps auth sessions in process memory, keyed by address.
type Repository struct {
	mu       sync.Mutex
	sessions map[string]models.AuthSession
}

func NewRepository() *Repository {
	return &Repository{sessions: make(map[string]models.AuthSession)}
}

var _ repository.SessionRepository = (*Repository)(nil)

func (r *Repository) Save(_ context.Context, session *models.AuthSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Address] = *session
	return nil
}

func (r *Repository) Consume(_ context.Context, state string) (*models.AuthSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for addr, s := range r.sessions {
		if s.State == state {
			delete(r.sessions, addr)
			return &s, nil
		}
	}
	return nil, nil
}

// Len is a test helper.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
