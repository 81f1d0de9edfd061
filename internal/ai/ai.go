// Package ai is the client of the external AI service that chats, classifies
// diary entries and paints streak rewards.
package ai

import (
	"context"

	"dearmind-backend/internal/model"
)

type Message struct {
	Role    model.ChatRole `json:"role"`
	Content string         `json:"content"`
}

// Assistant produces chat replies. History is ordered oldest first.
type Assistant interface {
	Chat(ctx context.Context, message string, history []Message) (string, error)
	Init(ctx context.Context) (string, error)
}

type Analysis struct {
	EmotionType model.EmotionType `json:"emotionType"`
	Severity    *int              `json:"severity,omitempty"`
}

type Analyzer interface {
	Analyze(ctx context.Context, imageUrl string, text *string) (Analysis, error)
}

type RewardRequest struct {
	Style   model.RewardStyle `json:"style"`
	Streak  int               `json:"streak"`
	Diaries []string          `json:"diaries"`
}

// RewardResult carries either a base64 Image or a hosted ImageUrl.
type RewardResult struct {
	Image    string `json:"image,omitempty"`
	ImageUrl string `json:"imageUrl,omitempty"`
	Letter   string `json:"letter"`
}

type RewardPainter interface {
	Paint(ctx context.Context, req RewardRequest) (RewardResult, error)
}

func MessagesFrom(history []model.ChatMessage) []Message {
	out := make([]Message, len(history))
	for i, m := range history {
		out[i] = Message{Role: m.Role, Content: m.Content}
	}
	return out
}
