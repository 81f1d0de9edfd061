package selfcare

import (
	"context"

	"dearmind-backend/internal/model"
)

type IRepository interface {
	Activities(ctx context.Context, emotion model.EmotionType) ([]string, error)
	Latest(ctx context.Context, uid string) (*model.SelfcareRecommendation, error)
	SaveLatest(ctx context.Context, uid string, rec model.SelfcareRecommendation) error
	PutActivities(ctx context.Context, emotion model.EmotionType, activities []string) error
}
