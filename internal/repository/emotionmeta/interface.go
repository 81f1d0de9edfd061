package emotionmeta

import (
	"context"

	"dearmind-backend/internal/model"
)

type IRepository interface {
	Icon(ctx context.Context, emotion model.EmotionType) (*model.EmotionIcon, error)
	// ComboIcon expects emotions already deduplicated and sorted.
	ComboIcon(ctx context.Context, emotions []model.EmotionType) (*model.EmotionComboIcon, error)
	Quotes(ctx context.Context) ([]model.EmotionQuote, error)

	PutIcon(ctx context.Context, icon model.EmotionIcon) error
	PutComboIcon(ctx context.Context, icon model.EmotionComboIcon) error
	PutQuotes(ctx context.Context, quotes []model.EmotionQuote) error
}
