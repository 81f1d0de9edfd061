package reward

import (
	"context"
	"fmt"
	"time"

	"dearmind-backend/internal/database"
	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/model"
	"dearmind-backend/internal/repository/helper"

	"cloud.google.com/go/firestore"
)

type RewardRepository struct {
	db database.Client
}

var _ IRepository = RewardRepository{}

func New(db database.Client) RewardRepository {
	return RewardRepository{
		db: db,
	}
}

func (r RewardRepository) collection(uid string) *firestore.CollectionRef {
	return r.db.Collection(userNode).Doc(uid).Collection(rewardHistoryNode)
}

func (r RewardRepository) Create(ctx context.Context, uid string, data model.RewardHistory) (string, error) {
	if data.GivenAt.IsZero() {
		data.GivenAt = time.Now().UTC()
	}
	if err := data.Validate(); err != nil {
		return "", fmt.Errorf("create reward: %w", err)
	}

	docRef := r.collection(uid).NewDoc()
	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return "", fmt.Errorf("create reward: %w, uid: %s", err, uid)
	}
	return docRef.ID, nil
}

func (r RewardRepository) List(ctx context.Context, uid string) ([]model.RewardHistory, error) {
	return r.Recent(ctx, uid, 0)
}

func (r RewardRepository) Recent(ctx context.Context, uid string, limit int) ([]model.RewardHistory, error) {
	query := r.collection(uid).OrderBy(GivenAtFieldPath, firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	docs, err := r.db.QueryDocs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w, uid: %s", err, uid)
	}

	rewards := make([]model.RewardHistory, 0, len(docs))
	for _, doc := range docs {
		rw, err := toReward(doc)
		if err != nil {
			return nil, fmt.Errorf("list rewards: %w, id: %s", err, doc.Ref.ID)
		}
		rewards = append(rewards, rw)
	}
	return rewards, nil
}

func (r RewardRepository) GetById(ctx context.Context, uid, id string) (*model.RewardHistory, error) {
	docSnap, err := r.db.GetDoc(ctx, r.collection(uid).Doc(id))
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, ierr.NotFoundf("reward not found")
		}
		return nil, fmt.Errorf("get reward: %w, id: %s", err, id)
	}

	rw, err := toReward(docSnap)
	if err != nil {
		return nil, fmt.Errorf("get reward: %w, id: %s", err, id)
	}
	return &rw, nil
}

func (r RewardRepository) SetLiked(ctx context.Context, uid, id string, liked bool) error {
	updates := []firestore.Update{{Path: LikedFieldPath, Value: liked}}
	if _, err := r.db.UpdateDoc(ctx, r.collection(uid).Doc(id), updates); err != nil {
		if helper.IsNotFound(err) {
			return ierr.NotFoundf("reward not found")
		}
		return fmt.Errorf("set reward liked: %w, id: %s", err, id)
	}
	return nil
}

func toReward(doc *firestore.DocumentSnapshot) (model.RewardHistory, error) {
	rw := model.RewardHistory{}
	if err := doc.DataTo(&rw); err != nil {
		return rw, err
	}
	rw.Id = doc.Ref.ID
	if owner := doc.Ref.Parent.Parent; owner != nil {
		rw.Uid = owner.ID
	}
	return rw, nil
}
