package service

import (
	"context"
	"time"

	apperrors "slapflip-backend/internal/common/errors"
	"slapflip-backend/internal/common/logger"
	"slapflip-backend/internal/common/validation"
	"slapflip-backend/internal/features/chat/models"
	"slapflip-backend/internal/features/chat/repository"
	"slapflip-backend/internal/utils/format"
)

type ChatService interface {
	// List never fails; a store error yields an empty list.
	List(ctx context.Context) []models.Message
	Post(ctx context.Context, sender, content string) (*models.Message, error)
}

type chatService struct {
	repo repository.ChatRepository
	now  func() time.Time
}

func NewChatService(repo repository.ChatRepository) ChatService {
	return &chatService{repo: repo, now: time.Now}
}

func (s *chatService) List(ctx context.Context) []models.Message {
	msgs, err := s.repo.Recent(ctx, models.RecentLimit)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch chat messages")
		return []models.Message{}
	}
	return msgs
}

func (s *chatService) Post(ctx context.Context, sender, content string) (*models.Message, error) {
	sender = validation.NormalizeAddress(sender)
	if sender == "" {
		return nil, apperrors.NewValidationError("sender", "sender is required")
	}
	if err := validation.ValidateChatContent(content); err != nil {
		return nil, apperrors.NewValidationError("content", err.Error())
	}

	msg := &models.Message{
		Sender:    sender,
		Content:   content,
		Timestamp: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, msg); err != nil {
		return nil, apperrors.NewDatabaseError("insert chat message", err)
	}

	logger.Debug().Str("sender", format.Address(sender)).Int("length", len(msg.Content)).Msg("Chat message posted")
	return msg, nil
}
