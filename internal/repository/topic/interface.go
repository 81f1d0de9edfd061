package topic

import (
	"context"
	"time"

	"dearmind-backend/internal/model"
)

type IRepository interface {
	All(ctx context.Context) ([]model.Topic, error)
	RecentSince(ctx context.Context, uid string, since time.Time) ([]string, error)
	Record(ctx context.Context, uid string, topic string, at time.Time) error
	PutTopics(ctx context.Context, topics []model.Topic) error
}
