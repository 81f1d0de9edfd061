package diary

import (
	"context"
	"encoding/base64"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"dearmind-backend/internal/ai"
	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/model"
	"dearmind-backend/internal/repository/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kst = time.FixedZone("KST", 9*60*60)

type fakeUploader struct{ n int }

func (u *fakeUploader) Upload(_ context.Context, objectPath, _ string, _ []byte) (string, error) {
	u.n++
	return "https://bucket/" + objectPath, nil
}

type fakeAnalyzer struct {
	analysis ai.Analysis
	err      error
}

func (a fakeAnalyzer) Analyze(context.Context, string, *string) (ai.Analysis, error) {
	return a.analysis, a.err
}

type fakeCombos struct{ got []model.EmotionType }

func (c *fakeCombos) ComboIconFor(_ context.Context, emotions []model.EmotionType) (model.EmotionComboIcon, error) {
	c.got = emotions
	return model.EmotionComboIcon{Emotions: model.SortEmotions(emotions), ImageUrl: "https://icons/combo.png"}, nil
}

type fixture struct {
	s      *Service
	store  *inmemory.Store
	combos *fakeCombos
	clock  *time.Time
}

func newFixture(t *testing.T, analyzer ai.Analyzer) fixture {
	t.Helper()
	store := inmemory.NewStore()
	combos := &fakeCombos{}
	clock := time.Date(2024, 5, 10, 21, 0, 0, 0, kst)

	s := New(Deps{
		DiaryRepo:      store.Diary(),
		UserRepo:       store.Users(),
		TopicRepo:      store.Topics(),
		Uploader:       &fakeUploader{},
		Analyzer:       analyzer,
		ComboIcons:     combos,
		Location:       kst,
		RewardInterval: 3,
	})
	f := fixture{s: s, store: store, combos: combos, clock: &clock}
	s.now = func() time.Time { return *f.clock }
	s.newRand = func() *rand.Rand { return rand.New(rand.NewSource(7)) }
	return f
}

func image() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
}

func severity(v int) *int { return &v }

func TestCreateClassifiesAndRewardsEveryThirdDay(t *testing.T) {
	f := newFixture(t, fakeAnalyzer{analysis: ai.Analysis{EmotionType: model.EmotionHappy, Severity: severity(2)}})
	ctx := context.Background()
	text := "a good day"

	var last CreateResult
	for day := 0; day < 3; day++ {
		res, err := f.s.Create(ctx, "u1", CreateInput{Image: image(), Text: &text})
		require.NoError(t, err)
		assert.Equal(t, day+1, res.Streak)
		last = res
		*f.clock = f.clock.AddDate(0, 0, 1)
	}

	assert.True(t, last.ShouldReward)
	require.NotNil(t, last.EmotionType)
	assert.Equal(t, model.EmotionHappy, *last.EmotionType)
	assert.Equal(t, 2, *last.Severity)
	assert.True(t, strings.HasPrefix(last.ImageUrl, "https://bucket/diary/u1/"))

	user, err := f.store.Users().GetById(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, user.Streak)
	assert.Equal(t, "2024-05-12", *user.LastRecordedDate)
}

func TestCreateSavesUnclassifiedWhenAnalysisFails(t *testing.T) {
	f := newFixture(t, fakeAnalyzer{err: errors.New("ai down")})

	res, err := f.s.Create(context.Background(), "u1", CreateInput{Image: image()})
	require.NoError(t, err)
	assert.Nil(t, res.EmotionType)
	assert.Equal(t, 1, res.Streak)
	assert.False(t, res.ShouldReward)

	entry, err := f.store.Diary().GetById(context.Background(), res.Id)
	require.NoError(t, err)
	assert.Nil(t, entry.EmotionType)
}

func TestCreateRejectsBadInput(t *testing.T) {
	f := newFixture(t, fakeAnalyzer{})
	long := strings.Repeat("가", model.MaxDiaryTextLength+1)

	_, err := f.s.Create(context.Background(), "u1", CreateInput{Image: image(), Text: &long})
	assert.True(t, ierr.Is(err, ierr.BadRequest))

	_, err = f.s.Create(context.Background(), "u1", CreateInput{Image: ""})
	assert.True(t, ierr.Is(err, ierr.BadRequest))
}

func seed(t *testing.T, f fixture, uid string, at time.Time, emotion model.EmotionType) string {
	t.Helper()
	e := emotion
	id, err := f.store.Diary().Create(context.Background(), model.DiaryEntry{
		Uid: uid, ImageUrl: "https://img", CreatedAt: at, EmotionType: &e,
	})
	require.NoError(t, err)
	return id
}

func TestByDateUsesLocalDayBoundary(t *testing.T) {
	f := newFixture(t, fakeAnalyzer{})
	ctx := context.Background()
	// Both fall on 2024-05-09 in UTC but on different local days.
	seed(t, f, "u1", time.Date(2024, 5, 9, 23, 30, 0, 0, kst), model.EmotionGloomy)
	seed(t, f, "u1", time.Date(2024, 5, 10, 0, 30, 0, 0, kst), model.EmotionHappy)

	entries, err := f.s.ByDate(ctx, "u1", "2024-05-10")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.EmotionHappy, *entries[0].EmotionType)

	_, err = f.s.ByDate(ctx, "u1", "2024-05-11")
	assert.True(t, ierr.Is(err, ierr.NotFound))

	_, err = f.s.ByDate(ctx, "u1", "10-05-2024")
	assert.True(t, ierr.Is(err, ierr.BadRequest))

	dates, err := f.s.Dates(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-10", "2024-05-09"}, dates)
}

func TestEmotionTypesAndComboByDate(t *testing.T) {
	f := newFixture(t, fakeAnalyzer{})
	ctx := context.Background()
	base := time.Date(2024, 5, 10, 9, 0, 0, 0, kst)
	seed(t, f, "u1", base, model.EmotionAngry)
	seed(t, f, "u1", base.Add(time.Hour), model.EmotionHappy)
	seed(t, f, "u1", base.Add(2*time.Hour), model.EmotionAngry)

	emotions, err := f.s.EmotionTypesByDate(ctx, "u1", "2024-05-10")
	require.NoError(t, err)
	assert.Equal(t, []model.EmotionType{model.EmotionAngry, model.EmotionHappy}, emotions)

	icon, err := f.s.ComboIconByDate(ctx, "u1", "2024-05-10")
	require.NoError(t, err)
	assert.Equal(t, "https://icons/combo.png", icon.ImageUrl)
	assert.Equal(t, emotions, f.combos.got)

	_, err = f.s.ComboIconByDate(ctx, "u1", "2024-05-11")
	assert.True(t, ierr.Is(err, ierr.NotFound))
}

func TestMonthlyEmotionTypeCount(t *testing.T) {
	f := newFixture(t, fakeAnalyzer{})
	ctx := context.Background()
	seed(t, f, "u1", time.Date(2024, 5, 1, 0, 10, 0, 0, kst), model.EmotionHappy)
	seed(t, f, "u1", time.Date(2024, 5, 2, 10, 0, 0, 0, kst), model.EmotionHappy)
	seed(t, f, "u1", time.Date(2024, 5, 31, 23, 50, 0, 0, kst), model.EmotionAnxious)
	seed(t, f, "u1", time.Date(2024, 6, 1, 0, 10, 0, 0, kst), model.EmotionAngry)
	seed(t, f, "u2", time.Date(2024, 5, 3, 10, 0, 0, 0, kst), model.EmotionAngry)

	counts, err := f.s.MonthlyEmotionTypeCount(ctx, "u1", 2024, 5)
	require.NoError(t, err)
	assert.Equal(t, []EmotionCount{
		{EmotionType: model.EmotionHappy, Count: 2},
		{EmotionType: model.EmotionAnxious, Count: 1},
	}, counts)

	_, err = f.s.MonthlyEmotionTypeCount(ctx, "u1", 2024, 13)
	assert.True(t, ierr.Is(err, ierr.BadRequest))
}

func TestForeignEntryLooksMissing(t *testing.T) {
	f := newFixture(t, fakeAnalyzer{analysis: ai.Analysis{EmotionType: model.EmotionGloomy}})
	ctx := context.Background()
	id := seed(t, f, "owner", *f.clock, model.EmotionHappy)

	assert.True(t, ierr.Is(f.s.Delete(ctx, "intruder", id), ierr.NotFound))
	_, err := f.s.UpdateEmotionType(ctx, "intruder", id, "ANGRY")
	assert.True(t, ierr.Is(err, ierr.NotFound))
	_, err = f.s.Reanalyze(ctx, "intruder", id)
	assert.True(t, ierr.Is(err, ierr.NotFound))

	entry, err := f.store.Diary().GetById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.EmotionHappy, *entry.EmotionType)
}

func TestOwnerMutations(t *testing.T) {
	f := newFixture(t, fakeAnalyzer{analysis: ai.Analysis{EmotionType: model.EmotionGloomy, Severity: severity(4)}})
	ctx := context.Background()
	id := seed(t, f, "u1", *f.clock, model.EmotionHappy)

	_, err := f.s.UpdateEmotionType(ctx, "u1", id, "confused")
	assert.True(t, ierr.Is(err, ierr.BadRequest))

	updated, err := f.s.UpdateEmotionType(ctx, "u1", id, "anxious")
	require.NoError(t, err)
	assert.Equal(t, model.EmotionAnxious, updated)

	analysis, err := f.s.Reanalyze(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, model.EmotionGloomy, analysis.EmotionType)

	entry, err := f.store.Diary().GetById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.EmotionGloomy, *entry.EmotionType)
	assert.Equal(t, 4, *entry.Severity)

	require.NoError(t, f.s.Delete(ctx, "u1", id))
	_, err = f.store.Diary().GetById(ctx, id)
	assert.True(t, ierr.Is(err, ierr.NotFound))
}

func TestRandomTopicAvoidsRecentQuestions(t *testing.T) {
	f := newFixture(t, fakeAnalyzer{})
	ctx := context.Background()

	_, err := f.s.RandomTopic(ctx, "u1")
	assert.True(t, ierr.Is(err, ierr.NotFound))

	require.NoError(t, f.store.Topics().PutTopics(ctx, []model.Topic{
		{Id: "1", Question: "q1"}, {Id: "2", Question: "q2"}, {Id: "3", Question: "q3"},
	}))

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		q, err := f.s.RandomTopic(ctx, "u1")
		require.NoError(t, err)
		assert.False(t, seen[q], "question %s repeated within the window", q)
		seen[q] = true
	}

	q, err := f.s.RandomTopic(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, []string{"q1", "q2", "q3"}, q)
}

func TestCreateStoresBlankTextAsNull(t *testing.T) {
	f := newFixture(t, fakeAnalyzer{analysis: ai.Analysis{EmotionType: model.EmotionHappy}})
	blank := "   "

	res, err := f.s.Create(context.Background(), "u1", CreateInput{Image: image(), Text: &blank})
	require.NoError(t, err)
	assert.Nil(t, res.Text)
}
