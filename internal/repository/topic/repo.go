package topic

import (
	"context"
	"fmt"
	"time"

	"dearmind-backend/internal/database"
	"dearmind-backend/internal/model"
	"dearmind-backend/internal/repository/filter"
	"dearmind-backend/internal/repository/helper"
	"dearmind-backend/internal/repository/ops"
	"dearmind-backend/internal/utils"
)

type TopicRepository struct {
	db database.Client
}

var _ IRepository = TopicRepository{}

func New(db database.Client) TopicRepository {
	return TopicRepository{
		db: db,
	}
}

func (r TopicRepository) All(ctx context.Context) ([]model.Topic, error) {
	docs, err := r.db.QueryDocs(ctx, r.db.Collection(topicNode).Query)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	topics := make([]model.Topic, 0, len(docs))
	for _, doc := range docs {
		t := model.Topic{}
		if err := doc.DataTo(&t); err != nil {
			return nil, fmt.Errorf("list topics: %w, id: %s", err, doc.Ref.ID)
		}
		if t.Question == "" {
			continue
		}
		t.Id = doc.Ref.ID
		topics = append(topics, t)
	}
	return topics, nil
}

func (r TopicRepository) RecentSince(ctx context.Context, uid string, since time.Time) ([]string, error) {
	coll := r.db.Collection(userNode).Doc(uid).Collection(recommendationNode)
	query := helper.ApplyWhere(coll.Query, []filter.Where{filter.New(RecommendedAtFieldPath, ops.GreaterOrEqual, since)})

	docs, err := r.db.QueryDocs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("recent topics: %w, uid: %s", err, uid)
	}

	recent := make([]string, 0, len(docs))
	for _, doc := range docs {
		rec := model.TopicRecommendation{}
		if err := doc.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("recent topics: %w, id: %s", err, doc.Ref.ID)
		}
		recent = append(recent, rec.Topic)
	}
	return recent, nil
}

// Record stores the topic keyed by its hash so a repeated topic only refreshes its timestamp.
func (r TopicRepository) Record(ctx context.Context, uid string, topic string, at time.Time) error {
	docRef := r.db.Collection(userNode).Doc(uid).Collection(recommendationNode).Doc(utils.Hash(topic))
	rec := model.TopicRecommendation{Topic: topic, RecommendedAt: at}
	if _, err := r.db.SetDoc(ctx, docRef, rec); err != nil {
		return fmt.Errorf("record topic: %w, uid: %s", err, uid)
	}
	return nil
}

func (r TopicRepository) PutTopics(ctx context.Context, topics []model.Topic) error {
	batch := make([]database.DataBatch, 0, len(topics))
	for _, t := range topics {
		id := t.Id
		if id == "" {
			id = utils.Hash(t.Question)
		}
		batch = append(batch, database.DataBatch{
			DocRef: r.db.Collection(topicNode).Doc(id),
			Data:   t,
		})
	}

	if _, err := r.db.SetDocs(ctx, batch); err != nil {
		return fmt.Errorf("put topics: %w", err)
	}
	return nil
}
