package user

import (
	"context"
	"time"

	"dearmind-backend/internal/model"
)

type IRepository interface {
	GetById(ctx context.Context, uid string) (*model.User, error)
	Create(ctx context.Context, data model.User) error
	Upsert(ctx context.Context, uid, email string, name *string, loginAt time.Time) (*model.User, error)
	UpdateStreak(ctx context.Context, uid string, streak int, lastRecordedDate string) error
	SetLastRewardStreak(ctx context.Context, uid string, streak int) error
	Delete(ctx context.Context, uid string) error
}
