package chat

import (
	"context"
	"fmt"
	"time"

	"dearmind-backend/internal/database"
	"dearmind-backend/internal/model"

	"cloud.google.com/go/firestore"
)

type ChatRepository struct {
	db database.Client
}

var _ IRepository = ChatRepository{}

func New(db database.Client) ChatRepository {
	return ChatRepository{
		db: db,
	}
}

func (r ChatRepository) collection(uid string) *firestore.CollectionRef {
	return r.db.Collection(userNode).Doc(uid).Collection(chatHistoryNode)
}

func (r ChatRepository) Append(ctx context.Context, uid string, msg model.ChatMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("append chat message: %w", err)
	}

	if _, err := r.db.SetDoc(ctx, r.collection(uid).NewDoc(), msg); err != nil {
		return fmt.Errorf("append chat message: %w, uid: %s", err, uid)
	}
	return nil
}

func (r ChatRepository) Recent(ctx context.Context, uid string, limit int) ([]model.ChatMessage, error) {
	query := r.collection(uid).OrderBy(TimestampFieldPath, firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	docs, err := r.db.QueryDocs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("recent chat messages: %w, uid: %s", err, uid)
	}

	messages := make([]model.ChatMessage, 0, len(docs))
	for _, doc := range docs {
		msg := model.ChatMessage{}
		if err := doc.DataTo(&msg); err != nil {
			return nil, fmt.Errorf("recent chat messages: %w, id: %s", err, doc.Ref.ID)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
