package user

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

type UserRepository struct {
	db database.Client
}

var _ IRepository = UserRepository{}

func New(db database.Client) UserRepository {
	return UserRepository{
		db: db,
	}
}

func (r UserRepository) GetById(ctx context.Context, uid string) (*model.User, error) {
	docSnap, err := r.db.GetDoc(ctx, r.db.Collection(userNode).Doc(uid))
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, ierr.NotFoundf("user not found")
		}
		return nil, fmt.Errorf("get user: %w, id: %s", err, uid)
	}

	user := &model.User{}
	if err = docSnap.DataTo(user); err != nil {
		return nil, fmt.Errorf("get user: %w, id: %s", err, uid)
	}
	return user, nil
}

func (r UserRepository) Create(ctx context.Context, data model.User) error {
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now().UTC()
	}
	if err := data.Validate(); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	docRef := r.db.Collection(userNode).Doc(data.Uid)
	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return fmt.Errorf("create user: %w, id: %s", err, data.Uid)
	}
	return nil
}

// Upsert records a login. A missing user document is created with a zero streak,
// an existing one only gets its profile fields and lastLoginAt merged.
func (r UserRepository) Upsert(ctx context.Context, uid, email string, name *string, loginAt time.Time) (*model.User, error) {
	existing, err := r.GetById(ctx, uid)
	if err != nil && !ierr.Is(err, ierr.NotFound) {
		return nil, fmt.Errorf("upsert user: %w, id: %s", err, uid)
	}

	if existing == nil {
		data := model.User{
			Uid:         uid,
			Email:       email,
			Name:        name,
			CreatedAt:   loginAt,
			LastLoginAt: &loginAt,
		}
		if err := r.Create(ctx, data); err != nil {
			return nil, err
		}
		return &data, nil
	}

	fields := map[string]interface{}{
		LastLoginAtFieldPath: loginAt,
	}
	if email != "" {
		fields[EmailFieldPath] = email
		existing.Email = email
	}
	if name != nil {
		fields[NameFieldPath] = *name
		existing.Name = name
	}

	docRef := r.db.Collection(userNode).Doc(uid)
	if _, err := r.db.SetDoc(ctx, docRef, fields, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("upsert user: %w, id: %s", err, uid)
	}
	existing.LastLoginAt = &loginAt
	return existing, nil
}

func (r UserRepository) UpdateStreak(ctx context.Context, uid string, streak int, lastRecordedDate string) error {
	fields := map[string]interface{}{
		StreakFieldPath:           streak,
		LastRecordedDateFieldPath: lastRecordedDate,
	}
	docRef := r.db.Collection(userNode).Doc(uid)
	if _, err := r.db.SetDoc(ctx, docRef, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("update streak: %w, id: %s", err, uid)
	}
	return nil
}

func (r UserRepository) SetLastRewardStreak(ctx context.Context, uid string, streak int) error {
	fields := map[string]interface{}{
		LastRewardStreakFieldPath: streak,
	}
	docRef := r.db.Collection(userNode).Doc(uid)
	if _, err := r.db.SetDoc(ctx, docRef, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("set last reward streak: %w, id: %s", err, uid)
	}
	return nil
}

// Delete removes the user document and its sub-collections.
func (r UserRepository) Delete(ctx context.Context, uid string) error {
	docRef := r.db.Collection(userNode).Doc(uid)
	if _, err := r.db.DeleteDoc(ctx, docRef); err != nil {
		return fmt.Errorf("delete user: %w, id: %s", err, uid)
	}
	return nil
}
