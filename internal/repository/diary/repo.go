package diary

import (
	"context"
	"fmt"
	"time"

	"dearmind-backend/internal/database"
	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/model"
	"dearmind-backend/internal/repository/filter"
	"dearmind-backend/internal/repository/helper"
	"dearmind-backend/internal/repository/ops"

	"cloud.google.com/go/firestore"
)

type DiaryRepository struct {
	db database.Client
}

var _ IRepository = DiaryRepository{}

func New(db database.Client) DiaryRepository {
	return DiaryRepository{
		db: db,
	}
}

func (r DiaryRepository) Create(ctx context.Context, data model.DiaryEntry) (string, error) {
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now().UTC()
	}
	if err := data.Validate(); err != nil {
		return "", fmt.Errorf("create diary entry: %w", err)
	}

	docRef := r.db.Collection(diaryNode).NewDoc()
	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return "", fmt.Errorf("create diary entry: %w, uid: %s", err, data.Uid)
	}
	return docRef.ID, nil
}

func (r DiaryRepository) GetById(ctx context.Context, id string) (*model.DiaryEntry, error) {
	docSnap, err := r.db.GetDoc(ctx, r.db.Collection(diaryNode).Doc(id))
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, ierr.NotFoundf("diary entry not found")
		}
		return nil, fmt.Errorf("get diary entry: %w, id: %s", err, id)
	}

	entry, err := toEntry(docSnap)
	if err != nil {
		return nil, fmt.Errorf("get diary entry: %w, id: %s", err, id)
	}
	return &entry, nil
}

func (r DiaryRepository) ListByUser(ctx context.Context, uid string) ([]model.DiaryEntry, error) {
	entries, err := r.list(ctx, []filter.Where{filter.New(UidFieldPath, ops.Equal, uid)}, 0)
	if err != nil {
		return nil, fmt.Errorf("list diary entries: %w, uid: %s", err, uid)
	}
	return entries, nil
}

func (r DiaryRepository) ListByRange(ctx context.Context, uid string, start, end time.Time) ([]model.DiaryEntry, error) {
	entries, err := r.list(ctx, rangeFilter(uid, start, end), 0)
	if err != nil {
		return nil, fmt.Errorf("list diary entries by range: %w, uid: %s", err, uid)
	}
	return entries, nil
}

func (r DiaryRepository) LatestInRange(ctx context.Context, uid string, start, end time.Time) (*model.DiaryEntry, error) {
	entries, err := r.list(ctx, rangeFilter(uid, start, end), 1)
	if err != nil {
		return nil, fmt.Errorf("latest diary entry: %w, uid: %s", err, uid)
	}
	if len(entries) == 0 {
		return nil, ierr.NotFoundf("no diary entry found for this date")
	}
	return &entries[0], nil
}

func (r DiaryRepository) Recent(ctx context.Context, uid string, limit int) ([]model.DiaryEntry, error) {
	entries, err := r.list(ctx, []filter.Where{filter.New(UidFieldPath, ops.Equal, uid)}, limit)
	if err != nil {
		return nil, fmt.Errorf("recent diary entries: %w, uid: %s", err, uid)
	}
	return entries, nil
}

func (r DiaryRepository) UpdateEmotion(ctx context.Context, id string, emotionType model.EmotionType, severity *int) error {
	updates := []firestore.Update{
		{Path: EmotionTypeFieldPath, Value: string(emotionType)},
	}
	if severity != nil {
		updates = append(updates, firestore.Update{Path: SeverityFieldPath, Value: *severity})
	}

	docRef := r.db.Collection(diaryNode).Doc(id)
	if _, err := r.db.UpdateDoc(ctx, docRef, updates); err != nil {
		if helper.IsNotFound(err) {
			return ierr.NotFoundf("diary entry not found")
		}
		return fmt.Errorf("update diary emotion: %w, id: %s", err, id)
	}
	return nil
}

func (r DiaryRepository) Delete(ctx context.Context, id string) error {
	docRef := r.db.Collection(diaryNode).Doc(id)
	if _, err := r.db.DeleteDoc(ctx, docRef); err != nil {
		return fmt.Errorf("delete diary entry: %w, id: %s", err, id)
	}
	return nil
}

func (r DiaryRepository) DeleteByUser(ctx context.Context, uid string) error {
	query := helper.ApplyWhere(r.db.Collection(diaryNode).Query, []filter.Where{filter.New(UidFieldPath, ops.Equal, uid)})
	docs, err := r.db.QueryDocs(ctx, query)
	if err != nil {
		return fmt.Errorf("delete diary entries: %w, uid: %s", err, uid)
	}

	for _, doc := range docs {
		if _, err := r.db.DeleteDoc(ctx, doc.Ref); err != nil {
			return fmt.Errorf("delete diary entries: %w, id: %s", err, doc.Ref.ID)
		}
	}
	return nil
}

func (r DiaryRepository) list(ctx context.Context, where []filter.Where, limit int) ([]model.DiaryEntry, error) {
	query := helper.ApplyWhere(r.db.Collection(diaryNode).Query, where).OrderBy(CreatedAtFieldPath, firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	docs, err := r.db.QueryDocs(ctx, query)
	if err != nil {
		return nil, err
	}

	entries := make([]model.DiaryEntry, 0, len(docs))
	for _, doc := range docs {
		entry, err := toEntry(doc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func rangeFilter(uid string, start, end time.Time) []filter.Where {
	return []filter.Where{
		filter.New(UidFieldPath, ops.Equal, uid),
		filter.New(CreatedAtFieldPath, ops.GreaterOrEqual, start),
		filter.New(CreatedAtFieldPath, ops.Less, end),
	}
}

func toEntry(doc *firestore.DocumentSnapshot) (model.DiaryEntry, error) {
	entry := model.DiaryEntry{}
	if err := doc.DataTo(&entry); err != nil {
		return entry, err
	}
	entry.Id = doc.Ref.ID
	return entry, nil
}
