package chat

import (
	"context"

	"dearmind-backend/internal/model"
)

type IRepository interface {
	Append(ctx context.Context, uid string, msg model.ChatMessage) error
	// Recent returns the newest messages first.
	Recent(ctx context.Context, uid string, limit int) ([]model.ChatMessage, error)
}
