package diary

import (
	"context"
	"time"

	"dearmind-backend/internal/model"
)

type IRepository interface {
	Create(ctx context.Context, data model.DiaryEntry) (string, error)
	GetById(ctx context.Context, id string) (*model.DiaryEntry, error)
	ListByUser(ctx context.Context, uid string) ([]model.DiaryEntry, error)
	ListByRange(ctx context.Context, uid string, start, end time.Time) ([]model.DiaryEntry, error)
	LatestInRange(ctx context.Context, uid string, start, end time.Time) (*model.DiaryEntry, error)
	Recent(ctx context.Context, uid string, limit int) ([]model.DiaryEntry, error)
	UpdateEmotion(ctx context.Context, id string, emotionType model.EmotionType, severity *int) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, uid string) error
}
