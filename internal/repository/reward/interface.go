package reward

import (
	"context"

	"dearmind-backend/internal/model"
)

type IRepository interface {
	Create(ctx context.Context, uid string, data model.RewardHistory) (string, error)
	List(ctx context.Context, uid string) ([]model.RewardHistory, error)
	Recent(ctx context.Context, uid string, limit int) ([]model.RewardHistory, error)
	GetById(ctx context.Context, uid, id string) (*model.RewardHistory, error)
	SetLiked(ctx context.Context, uid, id string, liked bool) error
}
