package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "slapflip-backend/internal/common/errors"
	"slapflip-backend/internal/features/chat/models"
	"slapflip-backend/internal/features/chat/repository/memory"
)

const sender = "0xABCDEF0123456789abcdef0123456789ABCDEF01"

func newTestService() (*chatService, *memory.Repository) {
	repo := memory.NewRepository()
	svc := NewChatService(repo).(*chatService)
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	return svc, repo
}

func TestPostValidatesContentLength(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Post(ctx, sender, strings.Repeat("a", 501))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	msg, err := svc.Post(ctx, sender, strings.Repeat("a", 500))
	require.NoError(t, err)
	assert.Len(t, msg.Content, 500)

	// length is counted in characters, not bytes
	_, err = svc.Post(ctx, sender, strings.Repeat("é", 500))
	require.NoError(t, err)
}

func TestPostRequiresFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name, sender, content string
	}{
		{name: "missing sender", sender: "", content: "gm"},
		{name: "missing content", sender: sender, content: ""},
		{name: "blank content", sender: sender, content: "   \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Post(ctx, tt.sender, tt.content)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestPostLowercasesSender(t *testing.T) {
	svc, _ := newTestService()

	msg, err := svc.Post(context.Background(), sender, "gm")
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(sender), msg.Sender)
	assert.False(t, msg.ID.IsZero())
	assert.False(t, msg.Timestamp.IsZero())
}

func TestListReturnsLastHundredAscending(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 150; i++ {
		_, err := svc.Post(ctx, sender, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	msgs := svc.List(ctx)
	require.Len(t, msgs, models.RecentLimit)
	assert.Equal(t, "message 50", msgs[0].Content)
	assert.Equal(t, "message 149", msgs[99].Content)
	for i := 1; i < len(msgs); i++ {
		assert.True(t, msgs[i].Timestamp.After(msgs[i-1].Timestamp))
	}
}

type brokenRepo struct{}

func (brokenRepo) Insert(context.Context, *models.Message) error { return errors.New("down") }

func (brokenRepo) Recent(context.Context, int) ([]models.Message, error) {
	return nil, errors.New("down")
}

func TestListDegradesToEmpty(t *testing.T) {
	svc := NewChatService(brokenRepo{})

	msgs := svc.List(context.Background())
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)

	_, err := svc.Post(context.Background(), sender, "gm")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
}
