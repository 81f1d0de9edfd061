package topic

import (
	"context"
	"os"
	"testing"
	"time"

	"dearmind-backend/internal/database"
	"dearmind-backend/internal/model"
	"dearmind-backend/internal/utils"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmulatorRepo(t *testing.T) (TopicRepository, *firestore.Client, database.Client) {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST is not set")
	}

	client, err := firestore.NewClient(context.Background(), "demo-dearmind")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	db := database.New(client, 10*time.Second)
	return New(db), client, db
}

func TestTopicRepositoryRecentWindow(t *testing.T) {
	repo, client, db := newEmulatorRepo(t)
	ctx := context.Background()
	uid := uuid.NewString()
	t.Cleanup(func() { db.DeleteDoc(ctx, client.Collection(userNode).Doc(uid)) })

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(ctx, uid, "what made you smile?", now.AddDate(0, 0, -10)))
	require.NoError(t, repo.Record(ctx, uid, "who did you talk to?", now.AddDate(0, 0, -2)))

	recent, err := repo.RecentSince(ctx, uid, now.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Equal(t, []string{"who did you talk to?"}, recent)

	// Recording the old topic again refreshes the same document.
	require.NoError(t, repo.Record(ctx, uid, "what made you smile?", now.Add(-time.Hour)))
	recent, err = repo.RecentSince(ctx, uid, now.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"who did you talk to?", "what made you smile?"}, recent)

	docs, err := db.QueryDocs(ctx, client.Collection(userNode).Doc(uid).Collection(recommendationNode).Query)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	snap, err := db.GetDoc(ctx, client.Collection(userNode).Doc(uid).Collection(recommendationNode).Doc(utils.Hash("what made you smile?")))
	require.NoError(t, err)
	rec := model.TopicRecommendation{}
	require.NoError(t, snap.DataTo(&rec))
	assert.True(t, rec.RecommendedAt.Equal(now.Add(-time.Hour)))
}

func TestTopicRepositoryPutTopics(t *testing.T) {
	repo, client, db := newEmulatorRepo(t)
	ctx := context.Background()
	question := "what are you grateful for? " + uuid.NewString()
	t.Cleanup(func() { db.DeleteDoc(ctx, client.Collection(topicNode).Doc(utils.Hash(question))) })

	require.NoError(t, repo.PutTopics(ctx, []model.Topic{{Question: question}}))
	// Reseeding the same question must not duplicate it.
	require.NoError(t, repo.PutTopics(ctx, []model.Topic{{Question: question}}))

	topics, err := repo.All(ctx)
	require.NoError(t, err)
	matches := 0
	for _, topic := range topics {
		if topic.Question == question {
			matches++
			assert.Equal(t, utils.Hash(question), topic.Id)
		}
	}
	assert.Equal(t, 1, matches)
}
