package emotionmeta

import (
	"context"
	"fmt"
	"strings"

	"dearmind-backend/internal/database"
	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/model"
	"dearmind-backend/internal/repository/filter"
	"dearmind-backend/internal/repository/helper"
	"dearmind-backend/internal/repository/ops"
	"dearmind-backend/internal/utils"
)

type EmotionMetaRepository struct {
	db database.Client
}

var _ IRepository = EmotionMetaRepository{}

func New(db database.Client) EmotionMetaRepository {
	return EmotionMetaRepository{
		db: db,
	}
}

func (r EmotionMetaRepository) Icon(ctx context.Context, emotion model.EmotionType) (*model.EmotionIcon, error) {
	docSnap, err := r.db.GetDoc(ctx, r.db.Collection(iconNode).Doc(string(emotion)))
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, ierr.NotFoundf("emotion icon not found")
		}
		return nil, fmt.Errorf("get emotion icon: %w, emotion: %s", err, emotion)
	}

	icon := &model.EmotionIcon{}
	if err := docSnap.DataTo(icon); err != nil {
		return nil, fmt.Errorf("get emotion icon: %w, emotion: %s", err, emotion)
	}
	icon.Emotion = emotion
	return icon, nil
}

func (r EmotionMetaRepository) ComboIcon(ctx context.Context, emotions []model.EmotionType) (*model.EmotionComboIcon, error) {
	query := helper.ApplyWhere(r.db.Collection(combinationNode).Query, []filter.Where{
		filter.New(EmotionsFieldPath, ops.Equal, toStrings(emotions)),
	}).Limit(1)

	docs, err := r.db.QueryDocs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get combo icon: %w, emotions: %v", err, emotions)
	}
	if len(docs) == 0 {
		return nil, ierr.NotFoundf("emotion combination icon not found")
	}

	icon := &model.EmotionComboIcon{}
	if err := docs[0].DataTo(icon); err != nil {
		return nil, fmt.Errorf("get combo icon: %w, id: %s", err, docs[0].Ref.ID)
	}
	return icon, nil
}

func (r EmotionMetaRepository) Quotes(ctx context.Context) ([]model.EmotionQuote, error) {
	docs, err := r.db.QueryDocs(ctx, r.db.Collection(quoteNode).Query)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	quotes := make([]model.EmotionQuote, 0, len(docs))
	for _, doc := range docs {
		q := model.EmotionQuote{}
		if err := doc.DataTo(&q); err != nil {
			return nil, fmt.Errorf("list quotes: %w, id: %s", err, doc.Ref.ID)
		}
		if q.Quote == "" {
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (r EmotionMetaRepository) PutIcon(ctx context.Context, icon model.EmotionIcon) error {
	if icon.Emotion != model.EmotionUnknown && !icon.Emotion.Valid() {
		return fmt.Errorf("put emotion icon: invalid emotion %q", icon.Emotion)
	}
	if _, err := r.db.SetDoc(ctx, r.db.Collection(iconNode).Doc(string(icon.Emotion)), icon); err != nil {
		return fmt.Errorf("put emotion icon: %w, emotion: %s", err, icon.Emotion)
	}
	return nil
}

// PutComboIcon stores the combination under a deterministic id so reseeding overwrites it.
func (r EmotionMetaRepository) PutComboIcon(ctx context.Context, icon model.EmotionComboIcon) error {
	icon.Emotions = model.SortEmotions(icon.Emotions)
	id := strings.Join(toStrings(icon.Emotions), "_")
	if _, err := r.db.SetDoc(ctx, r.db.Collection(combinationNode).Doc(id), icon); err != nil {
		return fmt.Errorf("put combo icon: %w, id: %s", err, id)
	}
	return nil
}

func (r EmotionMetaRepository) PutQuotes(ctx context.Context, quotes []model.EmotionQuote) error {
	batch := make([]database.DataBatch, 0, len(quotes))
	for _, q := range quotes {
		batch = append(batch, database.DataBatch{
			DocRef: r.db.Collection(quoteNode).Doc(utils.Hash(q.Quote)),
			Data:   q,
		})
	}
	if _, err := r.db.SetDocs(ctx, batch); err != nil {
		return fmt.Errorf("put quotes: %w", err)
	}
	return nil
}

func toStrings(emotions []model.EmotionType) []string {
	out := make([]string, len(emotions))
	for i, e := range emotions {
		out[i] = string(e)
	}
	return out
}
