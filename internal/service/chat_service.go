package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"meal-tracker/internal/domain"
	"meal-tracker/internal/repository"
)

// ChatClient habla con el servicio externo de chat. Sus errores ya vienen envueltos en ErrUpstream.
type ChatClient interface {
	Chat(ctx context.Context, ownerID, message string) (string, error)
	CalculateCalories(ctx context.Context, ownerID string, recipe domain.UserRecipeFields) (int, error)
}

type ChatReply struct {
	Response string                  `json:"response"`
	Entry    domain.ChatHistoryEntry `json:"entry"`
}

type ChatService struct {
	logger  *zap.Logger
	client  ChatClient
	history repository.ChatHistoryRepository
}

func NewChatService(logger *zap.Logger, client ChatClient, history repository.ChatHistoryRepository) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{logger: logger, client: client, history: history}
}

// Send reenvia el mensaje y guarda el intercambio solo si el servicio respondio.
func (s *ChatService) Send(ctx context.Context, ownerID, message string) (ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatReply{}, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}
	response, err := s.client.Chat(ctx, ownerID, message)
	if err != nil {
		s.logger.Warn("chat service failed", zap.String("owner_id", ownerID), zap.Error(err))
		return ChatReply{}, err
	}
	entry, err := s.history.Create(ctx, ownerID, domain.ChatHistoryFields{Message: message, Response: response})
	if err != nil {
		return ChatReply{}, err
	}
	return ChatReply{Response: response, Entry: entry}, nil
}

func (s *ChatService) CalculateCalories(ctx context.Context, ownerID string, recipe domain.UserRecipeFields) (int, error) {
	calories, err := s.client.CalculateCalories(ctx, ownerID, recipe)
	if err != nil {
		s.logger.Warn("calorie estimate failed", zap.String("owner_id", ownerID), zap.Error(err))
		return 0, err
	}
	return calories, nil
}
