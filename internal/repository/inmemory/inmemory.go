// Package inmemory implements the repository interfaces over maps. It backs
// service and router tests that must not depend on a Firestore emulator.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/model"
	chatRepository "dearmind-backend/internal/repository/chat"
	diaryRepository "dearmind-backend/internal/repository/diary"
	metaRepository "dearmind-backend/internal/repository/emotionmeta"
	rewardRepository "dearmind-backend/internal/repository/reward"
	selfcareRepository "dearmind-backend/internal/repository/selfcare"
	topicRepository "dearmind-backend/internal/repository/topic"
	userRepository "dearmind-backend/internal/repository/user"
)

// Store holds every collection behind one lock.
type Store struct {
	mu  sync.Mutex
	seq int

	users       map[string]model.User
	diary       map[string]model.DiaryEntry
	chats       map[string][]model.ChatMessage
	topics      []model.Topic
	shownTopics map[string]map[string]time.Time
	activities  map[model.EmotionType][]string
	latestCare  map[string]model.SelfcareRecommendation
	rewards     map[string][]model.RewardHistory
	icons       map[model.EmotionType]model.EmotionIcon
	combos      []model.EmotionComboIcon
	quotes      []model.EmotionQuote
}

func NewStore() *Store {
	return &Store{
		users:       map[string]model.User{},
		diary:       map[string]model.DiaryEntry{},
		chats:       map[string][]model.ChatMessage{},
		shownTopics: map[string]map[string]time.Time{},
		activities:  map[model.EmotionType][]string{},
		latestCare:  map[string]model.SelfcareRecommendation{},
		rewards:     map[string][]model.RewardHistory{},
		icons:       map[model.EmotionType]model.EmotionIcon{},
	}
}

func (s *Store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

type Users struct{ *Store }
type Diary struct{ *Store }
type Chat struct{ *Store }
type Topics struct{ *Store }
type Selfcare struct{ *Store }
type Rewards struct{ *Store }
type EmotionMeta struct{ *Store }

var (
	_ userRepository.IRepository     = Users{}
	_ diaryRepository.IRepository    = Diary{}
	_ chatRepository.IRepository     = Chat{}
	_ topicRepository.IRepository    = Topics{}
	_ selfcareRepository.IRepository = Selfcare{}
	_ rewardRepository.IRepository   = Rewards{}
	_ metaRepository.IRepository     = EmotionMeta{}
)

func (s *Store) Users() Users             { return Users{s} }
func (s *Store) Diary() Diary             { return Diary{s} }
func (s *Store) Chat() Chat               { return Chat{s} }
func (s *Store) Topics() Topics           { return Topics{s} }
func (s *Store) Selfcare() Selfcare       { return Selfcare{s} }
func (s *Store) Rewards() Rewards         { return Rewards{s} }
func (s *Store) EmotionMeta() EmotionMeta { return EmotionMeta{s} }

// users

func (r Users) GetById(_ context.Context, uid string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return nil, ierr.NotFoundf("user not found")
	}
	return &u, nil
}

func (r Users) Create(_ context.Context, data model.User) error {
	if err := data.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[data.Uid] = data
	return nil
}

func (r Users) Upsert(_ context.Context, uid, email string, name *string, loginAt time.Time) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		u = model.User{Uid: uid, CreatedAt: loginAt}
	}
	if email != "" {
		u.Email = email
	}
	if name != nil {
		u.Name = name
	}
	u.LastLoginAt = &loginAt
	r.users[uid] = u
	return &u, nil
}

func (r Users) UpdateStreak(_ context.Context, uid string, streak int, lastRecordedDate string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[uid]
	u.Uid = uid
	u.Streak = streak
	u.LastRecordedDate = &lastRecordedDate
	r.users[uid] = u
	return nil
}

func (r Users) SetLastRewardStreak(_ context.Context, uid string, streak int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[uid]
	u.Uid = uid
	u.LastRewardStreak = streak
	r.users[uid] = u
	return nil
}

func (r Users) Delete(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, uid)
	delete(r.chats, uid)
	delete(r.shownTopics, uid)
	delete(r.latestCare, uid)
	delete(r.rewards, uid)
	return nil
}

// diary

func (r Diary) Create(_ context.Context, data model.DiaryEntry) (string, error) {
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now().UTC()
	}
	if err := data.Validate(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	data.Id = r.nextID("diary")
	r.diary[data.Id] = data
	return data.Id, nil
}

func (r Diary) GetById(_ context.Context, id string) (*model.DiaryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.diary[id]
	if !ok {
		return nil, ierr.NotFoundf("diary entry not found")
	}
	return &e, nil
}

func (r Diary) filter(keep func(model.DiaryEntry) bool) []model.DiaryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.DiaryEntry{}
	for _, e := range r.diary {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r Diary) ListByUser(_ context.Context, uid string) ([]model.DiaryEntry, error) {
	return r.filter(func(e model.DiaryEntry) bool { return e.Uid == uid }), nil
}

func (r Diary) ListByRange(_ context.Context, uid string, start, end time.Time) ([]model.DiaryEntry, error) {
	return r.filter(func(e model.DiaryEntry) bool {
		return e.Uid == uid && !e.CreatedAt.Before(start) && e.CreatedAt.Before(end)
	}), nil
}

func (r Diary) LatestInRange(ctx context.Context, uid string, start, end time.Time) (*model.DiaryEntry, error) {
	entries, _ := r.ListByRange(ctx, uid, start, end)
	if len(entries) == 0 {
		return nil, ierr.NotFoundf("no diary entry found for this date")
	}
	return &entries[0], nil
}

func (r Diary) Recent(ctx context.Context, uid string, limit int) ([]model.DiaryEntry, error) {
	entries, _ := r.ListByUser(ctx, uid)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (r Diary) UpdateEmotion(_ context.Context, id string, emotionType model.EmotionType, severity *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.diary[id]
	if !ok {
		return ierr.NotFoundf("diary entry not found")
	}
	e.EmotionType = &emotionType
	if severity != nil {
		e.Severity = severity
	}
	r.diary[id] = e
	return nil
}

func (r Diary) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.diary, id)
	return nil
}

func (r Diary) DeleteByUser(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.diary {
		if e.Uid == uid {
			delete(r.diary, id)
		}
	}
	return nil
}

// chat

func (r Chat) Append(_ context.Context, uid string, msg model.ChatMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats[uid] = append(r.chats[uid], msg)
	return nil
}

func (r Chat) Recent(_ context.Context, uid string, limit int) ([]model.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.chats[uid]
	out := make([]model.ChatMessage, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, all[i])
	}
	return out, nil
}

// topics

func (r Topics) All(context.Context) ([]model.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Topic{}, r.topics...), nil
}

func (r Topics) RecentSince(_ context.Context, uid string, since time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []string{}
	for topic, at := range r.shownTopics[uid] {
		if !at.Before(since) {
			out = append(out, topic)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r Topics) Record(_ context.Context, uid string, topic string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.shownTopics[uid] == nil {
		r.shownTopics[uid] = map[string]time.Time{}
	}
	r.shownTopics[uid][topic] = at
	return nil
}

func (r Topics) PutTopics(_ context.Context, topics []model.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topics...)
	return nil
}

// selfcare

func (r Selfcare) Activities(_ context.Context, emotion model.EmotionType) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.activities[emotion]
	if !ok || len(a) == 0 {
		return nil, ierr.NotFoundf("no self-care activities for %s", emotion)
	}
	return append([]string{}, a...), nil
}

func (r Selfcare) Latest(_ context.Context, uid string) (*model.SelfcareRecommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.latestCare[uid]
	if !ok {
		return nil, ierr.NotFoundf("no self-care recommendation yet")
	}
	return &rec, nil
}

func (r Selfcare) SaveLatest(_ context.Context, uid string, rec model.SelfcareRecommendation) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latestCare[uid] = rec
	return nil
}

func (r Selfcare) PutActivities(_ context.Context, emotion model.EmotionType, activities []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities[emotion] = activities
	return nil
}

// rewards

func (r Rewards) Create(_ context.Context, uid string, data model.RewardHistory) (string, error) {
	if data.GivenAt.IsZero() {
		data.GivenAt = time.Now().UTC()
	}
	if err := data.Validate(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	data.Id = r.nextID("reward")
	data.Uid = uid
	r.rewards[uid] = append(r.rewards[uid], data)
	return data.Id, nil
}

func (r Rewards) List(ctx context.Context, uid string) ([]model.RewardHistory, error) {
	return r.Recent(ctx, uid, 0)
}

func (r Rewards) Recent(_ context.Context, uid string, limit int) ([]model.RewardHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]model.RewardHistory{}, r.rewards[uid]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].GivenAt.After(out[j].GivenAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r Rewards) GetById(_ context.Context, uid, id string) (*model.RewardHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rw := range r.rewards[uid] {
		if rw.Id == id {
			return &rw, nil
		}
	}
	return nil, ierr.NotFoundf("reward not found")
}

func (r Rewards) SetLiked(_ context.Context, uid, id string, liked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rw := range r.rewards[uid] {
		if rw.Id == id {
			r.rewards[uid][i].Liked = liked
			return nil
		}
	}
	return ierr.NotFoundf("reward not found")
}

// emotion metadata

func (r EmotionMeta) Icon(_ context.Context, emotion model.EmotionType) (*model.EmotionIcon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	icon, ok := r.icons[emotion]
	if !ok {
		return nil, ierr.NotFoundf("emotion icon not found")
	}
	return &icon, nil
}

func (r EmotionMeta) ComboIcon(_ context.Context, emotions []model.EmotionType) (*model.EmotionComboIcon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.combos {
		if equalEmotions(c.Emotions, emotions) {
			return &c, nil
		}
	}
	return nil, ierr.NotFoundf("emotion combination icon not found")
}

func (r EmotionMeta) Quotes(context.Context) ([]model.EmotionQuote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.EmotionQuote{}, r.quotes...), nil
}

func (r EmotionMeta) PutIcon(_ context.Context, icon model.EmotionIcon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.icons[icon.Emotion] = icon
	return nil
}

func (r EmotionMeta) PutComboIcon(_ context.Context, icon model.EmotionComboIcon) error {
	icon.Emotions = model.SortEmotions(icon.Emotions)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.combos = append(r.combos, icon)
	return nil
}

func (r EmotionMeta) PutQuotes(_ context.Context, quotes []model.EmotionQuote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes = append(r.quotes, quotes...)
	return nil
}

func equalEmotions(a, b []model.EmotionType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
