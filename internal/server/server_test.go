package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dearmind-backend/internal/ai"
	ierr "dearmind-backend/internal/errors"
	authHandler "dearmind-backend/internal/handler/auth"
	chatHandler "dearmind-backend/internal/handler/chat"
	diaryHandler "dearmind-backend/internal/handler/diary"
	emergencyHandler "dearmind-backend/internal/handler/emergency"
	metaHandler "dearmind-backend/internal/handler/emotionmeta"
	rewardHandler "dearmind-backend/internal/handler/reward"
	selfcareHandler "dearmind-backend/internal/handler/selfcare"
	"dearmind-backend/internal/identity"
	"dearmind-backend/internal/middleware"
	"dearmind-backend/internal/model"
	"dearmind-backend/internal/places"
	"dearmind-backend/internal/repository/inmemory"
	authService "dearmind-backend/internal/service/auth"
	chatService "dearmind-backend/internal/service/chat"
	diaryService "dearmind-backend/internal/service/diary"
	emergencyService "dearmind-backend/internal/service/emergency"
	metaService "dearmind-backend/internal/service/emotionmeta"
	rewardService "dearmind-backend/internal/service/reward"
	selfcareService "dearmind-backend/internal/service/selfcare"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kst = time.FixedZone("KST", 9*60*60)

// fakeIdentity accepts "token-<uid>" bearer tokens.
type fakeIdentity struct{}

func (fakeIdentity) VerifyIDToken(_ context.Context, token string) (identity.Identity, error) {
	uid, ok := strings.CutPrefix(token, "token-")
	if !ok || uid == "" {
		return identity.Identity{}, ierr.Unauthorizedf("invalid or expired token")
	}
	return identity.Identity{UID: uid, Email: uid + "@example.com", Token: token}, nil
}

func (fakeIdentity) CreateUser(_ context.Context, email, _, name string) (identity.Identity, error) {
	return identity.Identity{UID: "new-user", Email: email, Name: name}, nil
}

func (fakeIdentity) UpdatePassword(context.Context, string, string) error { return nil }
func (fakeIdentity) DeleteUser(context.Context, string) error { return nil }
func (fakeIdentity) SendPasswordReset(context.Context, string) error { return nil }
func (fakeIdentity) SignInWithPassword(_ context.Context, email, _ string) (string, error) {
	return "token-" + email, nil
}

type fakeUploader struct{}

func (fakeUploader) Upload(_ context.Context, objectPath, _ string, _ []byte) (string, error) {
	return "https://bucket/" + objectPath, nil
}

type fakeAI struct{}

func (fakeAI) Analyze(context.Context, string, *string) (ai.Analysis, error) {
	return ai.Analysis{EmotionType: model.EmotionHappy}, nil
}

func (fakeAI) Chat(_ context.Context, message string, _ []ai.Message) (string, error) {
	return "I hear you: " + message, nil
}

func (fakeAI) Init(context.Context) (string, error) { return "hi there", nil }

func (fakeAI) Paint(context.Context, ai.RewardRequest) (ai.RewardResult, error) {
	return ai.RewardResult{ImageUrl: "https://painted.png", Letter: "well done"}, nil
}

type fakePlaces struct{}

func (fakePlaces) Nearby(context.Context, float64, float64) ([]places.Place, error) {
	return []places.Place{}, nil
}

type testServer struct {
	*httptest.Server
	clock *time.Time
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	store := inmemory.NewStore()
	clock := time.Date(2024, 5, 10, 20, 0, 0, 0, kst)
	now := func() time.Time { return clock }

	meta := metaService.New(store.EmotionMeta(), store.Diary(), nil, kst)
	diary := diaryService.New(diaryService.Deps{
		DiaryRepo:      store.Diary(),
		UserRepo:       store.Users(),
		TopicRepo:      store.Topics(),
		Uploader:       fakeUploader{},
		Analyzer:       fakeAI{},
		ComboIcons:     meta,
		Location:       kst,
		RewardInterval: 3,
		Now:            now,
	})
	reward := rewardService.New(rewardService.Deps{
		RewardRepo: store.Rewards(),
		UserRepo:   store.Users(),
		DiaryRepo:  store.Diary(),
		Uploader:   fakeUploader{},
		Painter:    fakeAI{},
	})

	handlers := Handlers{
		Auth:        authHandler.New(authService.New(fakeIdentity{}, store.Users(), store.Diary())),
		Diary:       diaryHandler.New(diary),
		Chat:        chatHandler.New(chatService.New(store.Chat(), fakeAI{})),
		Selfcare:    selfcareHandler.New(selfcareService.New(store.Selfcare())),
		Reward:      rewardHandler.New(reward),
		Emergency:   emergencyHandler.New(emergencyService.New(fakePlaces{})),
		EmotionMeta: metaHandler.New(meta),
	}

	srv := httptest.NewServer(NewRouter(zerolog.Nop(), handlers, fakeIdentity{}, middleware.NewRateLimiter(0, 0)))
	t.Cleanup(srv.Close)
	return testServer{Server: srv, clock: &clock}
}

func (s testServer) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.Bytes()
}

func image() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png"))
}

func TestHealthAndAuthGate(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body := s.do(t, http.MethodGet, "/diary", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), "Authorization header required")

	status, _ = s.do(t, http.MethodGet, "/diary", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodGet, "/emergency/online-centers", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestMalformedBodiesAreRejected(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/diary", "token-u1", "{not json")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"invalid JSON body"}`, string(body))

	status, _ = s.do(t, http.MethodPost, "/diary", "token-u1", map[string]string{"text": "no image"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPost, "/emergency/nearby-centers", "", map[string]float64{"latitude": 37.5})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodGet, "/diary/by-month?year=2024&month=13", "token-u1", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestImageOnlyEntryListedByDate(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 2; i++ {
		status, body := s.do(t, http.MethodPost, "/diary", "token-u1", map[string]string{"image": image()})
		require.Equal(t, http.StatusCreated, status, string(body))
		*s.clock = s.clock.Add(time.Hour)
	}

	status, body := s.do(t, http.MethodGet, "/diary/by-date?date=2024-05-10", "token-u1", nil)
	require.Equal(t, http.StatusOK, status)
	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &entries))
	require.Len(t, entries, 2)
	text, present := entries[0]["text"]
	assert.True(t, present)
	assert.Nil(t, text)

	status, body = s.do(t, http.MethodGet, "/diary/dates", "token-u1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `["2024-05-10"]`, string(body))

	status, _ = s.do(t, http.MethodGet, "/diary/by-date?date=2024-05-10", "token-u2", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestThreeConsecutiveDaysEarnReward(t *testing.T) {
	s := newTestServer(t)

	var res struct {
		Id           string `json:"id"`
		Streak       int    `json:"streak"`
		ShouldReward bool   `json:"shouldReward"`
	}
	for day := 0; day < 3; day++ {
		status, body := s.do(t, http.MethodPost, "/diary", "token-u1", map[string]string{"image": image(), "text": "today"})
		require.Equal(t, http.StatusCreated, status, string(body))
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Equal(t, day+1, res.Streak)
		assert.Equal(t, day == 2, res.ShouldReward)
		*s.clock = s.clock.AddDate(0, 0, 1)
	}

	status, body := s.do(t, http.MethodGet, "/diary/streak", "token-u1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"streak":3}`, string(body))

	status, body = s.do(t, http.MethodPost, "/reward", "token-u1", map[string]int{"streak": res.Streak})
	require.Equal(t, http.StatusCreated, status, string(body))
	var reward model.RewardHistory
	require.NoError(t, json.Unmarshal(body, &reward))
	assert.Equal(t, "https://painted.png", reward.ImageUrl)

	for _, want := range []bool{true, false} {
		status, body = s.do(t, http.MethodPatch, "/reward/"+reward.Id+"/like", "token-u1", nil)
		require.Equal(t, http.StatusOK, status)
		var like struct {
			Liked bool `json:"liked"`
		}
		require.NoError(t, json.Unmarshal(body, &like))
		assert.Equal(t, want, like.Liked)
	}

	status, _ = s.do(t, http.MethodDelete, "/diary/"+res.Id, "token-u2", nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = s.do(t, http.MethodDelete, "/diary/"+res.Id, "token-u1", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestChatRoundTrip(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/chat", "token-u1", map[string]string{"message": "rough day"})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "I hear you: rough day")

	status, body = s.do(t, http.MethodGet, "/chat/history", "token-u1", nil)
	require.Equal(t, http.StatusOK, status)
	var history []model.ChatMessage
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history, 2)
	assert.Equal(t, model.RoleAssistant, history[0].Role)
}
