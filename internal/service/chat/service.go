package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dearmind-backend/internal/ai"
	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/model"
	chatRepository "dearmind-backend/internal/repository/chat"
)

const (
	contextSize = 10
	historySize = 20
)

type Service struct {
	repo      chatRepository.IRepository
	assistant ai.Assistant
	now       func() time.Time
}

func New(repo chatRepository.IRepository, assistant ai.Assistant) *Service {
	return &Service{
		repo:      repo,
		assistant: assistant,
		now:       time.Now,
	}
}

// Send stores the user's message and the assistant's reply. The reply is
// generated from the conversation as it stood before this message.
func (s *Service) Send(ctx context.Context, uid, message string) (model.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return model.ChatMessage{}, ierr.BadRequestf("message is required")
	}

	recent, err := s.repo.Recent(ctx, uid, contextSize)
	if err != nil {
		return model.ChatMessage{}, err
	}

	if err := s.repo.Append(ctx, uid, model.ChatMessage{
		Role:      model.RoleUser,
		Content:   message,
		Timestamp: s.now(),
	}); err != nil {
		return model.ChatMessage{}, err
	}

	reply, err := s.assistant.Chat(ctx, message, ai.MessagesFrom(oldestFirst(recent)))
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("chat reply: %w, uid: %s", err, uid)
	}

	return s.saveReply(ctx, uid, reply)
}

func (s *Service) History(ctx context.Context, uid string) ([]model.ChatMessage, error) {
	return s.repo.Recent(ctx, uid, historySize)
}

// Init asks the assistant for an opening line and stores it.
func (s *Service) Init(ctx context.Context, uid string) (model.ChatMessage, error) {
	greeting, err := s.assistant.Init(ctx)
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("chat init: %w, uid: %s", err, uid)
	}
	return s.saveReply(ctx, uid, greeting)
}

func (s *Service) saveReply(ctx context.Context, uid, content string) (model.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return model.ChatMessage{}, fmt.Errorf("assistant returned an empty reply, uid: %s", uid)
	}

	reply := model.ChatMessage{
		Role:      model.RoleAssistant,
		Content:   content,
		Timestamp: s.now(),
	}
	if err := s.repo.Append(ctx, uid, reply); err != nil {
		return model.ChatMessage{}, err
	}
	return reply, nil
}

func oldestFirst(messages []model.ChatMessage) []model.ChatMessage {
	out := make([]model.ChatMessage, len(messages))
	for i, m := range messages {
		out[len(messages)-1-i] = m
	}
	return out
}
