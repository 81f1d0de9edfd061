package diary

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"dearmind-backend/internal/ai"
	"dearmind-backend/internal/authz"
	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/model"
	diaryRepository "dearmind-backend/internal/repository/diary"
	topicRepository "dearmind-backend/internal/repository/topic"
	userRepository "dearmind-backend/internal/repository/user"
	"dearmind-backend/internal/selection"
	"dearmind-backend/internal/storage"
	"dearmind-backend/internal/streak"
	"dearmind-backend/internal/utils"

	"github.com/rs/zerolog/log"
)

const (
	imagePrefix      = "diary"
	imageContentType = "image/png"
	topicWindow      = 7 * 24 * time.Hour
)

type ComboIconLookup interface {
	ComboIconFor(ctx context.Context, emotions []model.EmotionType) (model.EmotionComboIcon, error)
}

type Deps struct {
	DiaryRepo      diaryRepository.IRepository
	UserRepo       userRepository.IRepository
	TopicRepo      topicRepository.IRepository
	Uploader       storage.Uploader
	Analyzer       ai.Analyzer
	ComboIcons     ComboIconLookup
	Location       *time.Location
	RewardInterval int
	// Now defaults to time.Now.
	Now func() time.Time
}

type Service struct {
	Deps
	now     func() time.Time
	newRand func() *rand.Rand
}

func New(deps Deps) *Service {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Service{
		Deps:    deps,
		now:     deps.Now,
		newRand: func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) },
	}
}

type CreateInput struct {
	Image string  `json:"image"`
	Text  *string `json:"text"`
}

type CreateResult struct {
	Id           string             `json:"id"`
	ImageUrl     string             `json:"imageUrl"`
	Text         *string            `json:"text"`
	EmotionType  *model.EmotionType `json:"emotionType,omitempty"`
	Severity     *int               `json:"severity,omitempty"`
	Streak       int                `json:"streak"`
	ShouldReward bool               `json:"shouldReward"`
}

// Create stores a new entry, classifies it when the AI service answers, and
// recomputes the caller's streak.
func (s *Service) Create(ctx context.Context, uid string, in CreateInput) (CreateResult, error) {
	if in.Text != nil && utf8.RuneCountInString(*in.Text) > model.MaxDiaryTextLength {
		return CreateResult{}, ierr.BadRequestf("text must be at most %d characters", model.MaxDiaryTextLength)
	}
	if in.Text != nil {
		in.Text = utils.NonEmptyStringPointer(*in.Text)
	}
	image, err := storage.DecodeDataURL(in.Image)
	if err != nil {
		return CreateResult{}, err
	}

	imageUrl, err := s.Uploader.Upload(ctx, storage.ImagePath(imagePrefix, uid), imageContentType, image)
	if err != nil {
		return CreateResult{}, fmt.Errorf("create diary entry: %w", err)
	}

	now := s.now()
	entry := model.DiaryEntry{
		Uid:       uid,
		ImageUrl:  imageUrl,
		Text:      in.Text,
		CreatedAt: now,
	}

	if analysis, err := s.Analyzer.Analyze(ctx, imageUrl, in.Text); err != nil {
		log.Warn().Err(err).Msgf("emotion analysis failed, saving entry unclassified - uid %s", uid)
	} else {
		entry.EmotionType = &analysis.EmotionType
		entry.Severity = analysis.Severity
	}

	id, err := s.DiaryRepo.Create(ctx, entry)
	if err != nil {
		return CreateResult{}, err
	}

	current, err := s.recomputeStreak(ctx, uid, now)
	if err != nil {
		return CreateResult{}, err
	}

	return CreateResult{
		Id:           id,
		ImageUrl:     imageUrl,
		Text:         entry.Text,
		EmotionType:  entry.EmotionType,
		Severity:     entry.Severity,
		Streak:       current,
		ShouldReward: streak.ShouldReward(current, s.RewardInterval),
	}, nil
}

// recomputeStreak is a plain read-then-write; concurrent submissions are last writer wins.
func (s *Service) recomputeStreak(ctx context.Context, uid string, now time.Time) (int, error) {
	entries, err := s.DiaryRepo.ListByUser(ctx, uid)
	if err != nil {
		return 0, err
	}

	times := make([]time.Time, len(entries))
	for i, e := range entries {
		times[i] = e.CreatedAt
	}

	current := streak.Calculate(times, now, s.Location)
	if err := s.UserRepo.UpdateStreak(ctx, uid, current, streak.DateKey(now, s.Location)); err != nil {
		return 0, err
	}
	return current, nil
}

func (s *Service) List(ctx context.Context, uid string) ([]model.DiaryEntry, error) {
	entries, err := s.DiaryRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ierr.NotFoundf("no diary entries yet")
	}
	return entries, nil
}

func (s *Service) ByDate(ctx context.Context, uid, date string) ([]model.DiaryEntry, error) {
	entries, err := s.entriesOn(ctx, uid, date)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ierr.NotFoundf("no diary entries for %s", date)
	}
	return entries, nil
}

func (s *Service) ByMonth(ctx context.Context, uid string, year, month int) ([]model.DiaryEntry, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}
	start, end := streak.MonthRange(year, time.Month(month), s.Location)
	return s.DiaryRepo.ListByRange(ctx, uid, start, end)
}

// Dates lists every local date holding at least one entry, newest first.
func (s *Service) Dates(ctx context.Context, uid string) ([]string, error) {
	entries, err := s.DiaryRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ierr.NotFoundf("no diary entries yet")
	}

	seen := map[string]struct{}{}
	dates := []string{}
	for _, e := range entries {
		key := streak.DateKey(e.CreatedAt, s.Location)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// Streak returns the stored streak value.
func (s *Service) Streak(ctx context.Context, uid string) (int, error) {
	user, err := s.UserRepo.GetById(ctx, uid)
	if err != nil {
		return 0, err
	}
	return user.Streak, nil
}

// EmotionTypesByDate returns distinct classifications of the day in the order they were recorded.
func (s *Service) EmotionTypesByDate(ctx context.Context, uid, date string) ([]model.EmotionType, error) {
	entries, err := s.entriesOn(ctx, uid, date)
	if err != nil {
		return nil, err
	}

	seen := map[model.EmotionType]struct{}{}
	out := []model.EmotionType{}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i].EmotionType
		if e == nil {
			continue
		}
		if _, ok := seen[*e]; ok {
			continue
		}
		seen[*e] = struct{}{}
		out = append(out, *e)
	}
	return out, nil
}

func (s *Service) ComboIconByDate(ctx context.Context, uid, date string) (model.EmotionComboIcon, error) {
	emotions, err := s.EmotionTypesByDate(ctx, uid, date)
	if err != nil {
		return model.EmotionComboIcon{}, err
	}
	if len(emotions) == 0 {
		return model.EmotionComboIcon{}, ierr.NotFoundf("no classified diary entries for %s", date)
	}
	return s.ComboIcons.ComboIconFor(ctx, emotions)
}

type EmotionCount struct {
	EmotionType model.EmotionType `json:"emotionType"`
	Count       int               `json:"count"`
}

func (s *Service) MonthlyEmotionTypeCount(ctx context.Context, uid string, year, month int) ([]EmotionCount, error) {
	entries, err := s.ByMonth(ctx, uid, year, month)
	if err != nil {
		return nil, err
	}

	counts := map[model.EmotionType]int{}
	for _, e := range entries {
		if e.EmotionType != nil {
			counts[*e.EmotionType]++
		}
	}

	out := make([]EmotionCount, 0, len(counts))
	for e, c := range counts {
		out = append(out, EmotionCount{EmotionType: e, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].EmotionType < out[j].EmotionType
	})
	return out, nil
}

// RandomTopic picks a journaling question not shown in the last week when possible.
func (s *Service) RandomTopic(ctx context.Context, uid string) (string, error) {
	topics, err := s.TopicRepo.All(ctx)
	if err != nil {
		return "", err
	}
	if len(topics) == 0 {
		return "", ierr.NotFoundf("no topics registered")
	}

	questions := make([]string, len(topics))
	for i, t := range topics {
		questions[i] = t.Question
	}

	now := s.now()
	recent, err := s.TopicRepo.RecentSince(ctx, uid, now.Add(-topicWindow))
	if err != nil {
		return "", err
	}

	picked := selection.Pick(questions, recent, 1, s.newRand())
	if len(picked) == 0 {
		return "", ierr.NotFoundf("no topics registered")
	}
	if err := s.TopicRepo.Record(ctx, uid, picked[0], now); err != nil {
		return "", err
	}
	return picked[0], nil
}

// Reanalyze asks the AI service again. Unlike Create, a failure is reported.
func (s *Service) Reanalyze(ctx context.Context, uid, id string) (ai.Analysis, error) {
	entry, err := s.owned(ctx, uid, id)
	if err != nil {
		return ai.Analysis{}, err
	}

	analysis, err := s.Analyzer.Analyze(ctx, entry.ImageUrl, entry.Text)
	if err != nil {
		return ai.Analysis{}, fmt.Errorf("reanalyze diary entry: %w, id: %s", err, id)
	}
	if err := s.DiaryRepo.UpdateEmotion(ctx, id, analysis.EmotionType, analysis.Severity); err != nil {
		return ai.Analysis{}, err
	}
	return analysis, nil
}

func (s *Service) UpdateEmotionType(ctx context.Context, uid, id, emotion string) (model.EmotionType, error) {
	emotionType, err := model.ParseEmotionType(emotion)
	if err != nil {
		return "", ierr.BadRequestf("%s", err.Error())
	}
	if _, err := s.owned(ctx, uid, id); err != nil {
		return "", err
	}
	if err := s.DiaryRepo.UpdateEmotion(ctx, id, emotionType, nil); err != nil {
		return "", err
	}
	return emotionType, nil
}

func (s *Service) Delete(ctx context.Context, uid, id string) error {
	if _, err := s.owned(ctx, uid, id); err != nil {
		return err
	}
	return s.DiaryRepo.Delete(ctx, id)
}

func (s *Service) owned(ctx context.Context, uid, id string) (*model.DiaryEntry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ierr.BadRequestf("id is required")
	}
	entry, err := s.DiaryRepo.GetById(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(entry, uid, "diary entry"); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) entriesOn(ctx context.Context, uid, date string) ([]model.DiaryEntry, error) {
	if date == "" {
		return nil, ierr.BadRequestf("date is required")
	}
	day, err := streak.ParseDate(date, s.Location)
	if err != nil {
		return nil, ierr.BadRequestf("%s", err.Error())
	}
	start, end := streak.DayRange(day, s.Location)
	return s.DiaryRepo.ListByRange(ctx, uid, start, end)
}

func validateMonth(year, month int) error {
	if year < 1970 || year > 9999 {
		return ierr.BadRequestf("year is invalid")
	}
	if month < 1 || month > 12 {
		return ierr.BadRequestf("month must be between 1 and 12")
	}
	return nil
}
