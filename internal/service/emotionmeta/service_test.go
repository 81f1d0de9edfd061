package emotionmeta

import (
	"context"
	"math/rand"
	"testing"
	"time"

	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/model"
	"dearmind-backend/internal/repository/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kst = time.FixedZone("KST", 9*60*60)

func newService(t *testing.T) (*Service, *inmemory.Store) {
	t.Helper()
	store := inmemory.NewStore()
	ctx := context.Background()
	meta := store.EmotionMeta()
	for _, e := range []model.EmotionType{model.EmotionHappy, model.EmotionGloomy, model.EmotionUnknown} {
		require.NoError(t, meta.PutIcon(ctx, model.EmotionIcon{Emotion: e, ImageUrl: "https://icons/" + string(e) + ".png"}))
	}
	require.NoError(t, meta.PutComboIcon(ctx, model.EmotionComboIcon{
		Emotions: []model.EmotionType{model.EmotionHappy, model.EmotionAngry},
		ImageUrl: "https://icons/angry_happy.png",
	}))

	s := New(meta, store.Diary(), nil, kst)
	s.now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, kst) }
	s.newRand = func() *rand.Rand { return rand.New(rand.NewSource(1)) }
	return s, store
}

func TestIconFallsBackToUnknown(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	icon, err := s.Icon(ctx, "happy")
	require.NoError(t, err)
	assert.Equal(t, model.EmotionHappy, icon.Emotion)

	for _, in := range []string{"", "CONFUSED"} {
		icon, err = s.Icon(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, model.EmotionUnknown, icon.Emotion)
	}

	_, err = s.Icon(ctx, "ANXIOUS")
	assert.ErrorIs(t, err, ierr.NotFound)
}

func TestTodayIcon(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()

	icon, err := s.TodayIcon(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.EmotionUnknown, icon.Emotion)

	gloomy := model.EmotionGloomy
	_, err = store.Diary().Create(ctx, model.DiaryEntry{Uid: "u1", ImageUrl: "x", CreatedAt: time.Date(2024, 5, 10, 8, 0, 0, 0, kst), EmotionType: &gloomy})
	require.NoError(t, err)
	_, err = store.Diary().Create(ctx, model.DiaryEntry{Uid: "u1", ImageUrl: "y", CreatedAt: time.Date(2024, 5, 9, 22, 0, 0, 0, kst)})
	require.NoError(t, err)

	icon, err = s.TodayIcon(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.EmotionGloomy, icon.Emotion)
}

func TestComboIcon(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	icon, err := s.ComboIcon(ctx, []string{"HAPPY", "angry", "HAPPY"})
	require.NoError(t, err)
	assert.Equal(t, "https://icons/angry_happy.png", icon.ImageUrl)

	_, err = s.ComboIcon(ctx, []string{"HAPPY", "GLOOMY"})
	assert.ErrorIs(t, err, ierr.NotFound)

	_, err = s.ComboIcon(ctx, nil)
	assert.ErrorIs(t, err, ierr.BadRequest)

	_, err = s.ComboIcon(ctx, []string{"HAPPY", "BORED"})
	assert.ErrorIs(t, err, ierr.BadRequest)
}

func TestTodayQuote(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()

	_, err := s.TodayQuote(ctx)
	assert.ErrorIs(t, err, ierr.NotFound)

	require.NoError(t, store.EmotionMeta().PutQuotes(ctx, []model.EmotionQuote{{Quote: "This too shall pass"}}))
	q, err := s.TodayQuote(ctx)
	require.NoError(t, err)
	assert.Equal(t, "This too shall pass", q.Quote)
	assert.Equal(t, "Anonymous", q.Author)
}
