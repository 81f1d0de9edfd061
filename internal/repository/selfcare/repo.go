package selfcare

import (
	"context"
	"fmt"

	"dearmind-backend/internal/database"
	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/model"
	"dearmind-backend/internal/repository/helper"
)

type SelfcareRepository struct {
	db database.Client
}

var _ IRepository = SelfcareRepository{}

func New(db database.Client) SelfcareRepository {
	return SelfcareRepository{
		db: db,
	}
}

func (r SelfcareRepository) Activities(ctx context.Context, emotion model.EmotionType) ([]string, error) {
	docSnap, err := r.db.GetDoc(ctx, r.db.Collection(selfcareNode).Doc(string(emotion)))
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, ierr.NotFoundf("no self-care activities for %s", emotion)
		}
		return nil, fmt.Errorf("get selfcare activities: %w, emotion: %s", err, emotion)
	}

	data := model.SelfcareActivities{}
	if err := docSnap.DataTo(&data); err != nil {
		return nil, fmt.Errorf("get selfcare activities: %w, emotion: %s", err, emotion)
	}
	if len(data.Activities) == 0 {
		return nil, ierr.NotFoundf("no self-care activities for %s", emotion)
	}
	return data.Activities, nil
}

func (r SelfcareRepository) Latest(ctx context.Context, uid string) (*model.SelfcareRecommendation, error) {
	docRef := r.db.Collection(userNode).Doc(uid).Collection(recommendationNode).Doc(latestDocId)
	docSnap, err := r.db.GetDoc(ctx, docRef)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, ierr.NotFoundf("no self-care recommendation yet")
		}
		return nil, fmt.Errorf("get latest selfcare: %w, uid: %s", err, uid)
	}

	rec := &model.SelfcareRecommendation{}
	if err := docSnap.DataTo(rec); err != nil {
		return nil, fmt.Errorf("get latest selfcare: %w, uid: %s", err, uid)
	}
	return rec, nil
}

func (r SelfcareRepository) SaveLatest(ctx context.Context, uid string, rec model.SelfcareRecommendation) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("save latest selfcare: %w", err)
	}

	docRef := r.db.Collection(userNode).Doc(uid).Collection(recommendationNode).Doc(latestDocId)
	if _, err := r.db.SetDoc(ctx, docRef, rec); err != nil {
		return fmt.Errorf("save latest selfcare: %w, uid: %s", err, uid)
	}
	return nil
}

func (r SelfcareRepository) PutActivities(ctx context.Context, emotion model.EmotionType, activities []string) error {
	docRef := r.db.Collection(selfcareNode).Doc(string(emotion))
	if _, err := r.db.SetDoc(ctx, docRef, model.SelfcareActivities{Activities: activities}); err != nil {
		return fmt.Errorf("put selfcare activities: %w, emotion: %s", err, emotion)
	}
	return nil
}
