package emotionmeta

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"dearmind-backend/internal/cache"
	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/model"
	diaryRepository "dearmind-backend/internal/repository/diary"
	metaRepository "dearmind-backend/internal/repository/emotionmeta"
	"dearmind-backend/internal/streak"
)

const (
	referenceTTL  = 30 * time.Minute
	defaultAuthor = "Anonymous"
	maxComboSize  = 4
)

type Service struct {
	metaRepo  metaRepository.IRepository
	diaryRepo diaryRepository.IRepository
	cache     cache.Cache
	loc       *time.Location
	now       func() time.Time
	newRand   func() *rand.Rand
}

func New(metaRepo metaRepository.IRepository, diaryRepo diaryRepository.IRepository, c cache.Cache, loc *time.Location) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{
		metaRepo:  metaRepo,
		diaryRepo: diaryRepo,
		cache:     c,
		loc:       loc,
		now:       time.Now,
		newRand:   func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) },
	}
}

// Icon resolves an icon, falling back to UNKNOWN for empty or unrecognised emotions.
func (s *Service) Icon(ctx context.Context, emotion string) (model.EmotionIcon, error) {
	target := model.EmotionType(strings.ToUpper(strings.TrimSpace(emotion)))
	if !target.Valid() {
		target = model.EmotionUnknown
	}

	return cache.Fetch(ctx, s.cache, "emotion-icon:"+string(target), referenceTTL, func(ctx context.Context) (model.EmotionIcon, error) {
		icon, err := s.metaRepo.Icon(ctx, target)
		if err != nil {
			return model.EmotionIcon{}, err
		}
		return *icon, nil
	})
}

// TodayIcon uses the classification of the caller's latest entry today.
func (s *Service) TodayIcon(ctx context.Context, uid string) (model.EmotionIcon, error) {
	start, end := streak.DayRange(s.now(), s.loc)

	emotion := ""
	entry, err := s.diaryRepo.LatestInRange(ctx, uid, start, end)
	switch {
	case err == nil:
		if entry.EmotionType != nil {
			emotion = string(*entry.EmotionType)
		}
	case ierr.Is(err, ierr.NotFound):
	default:
		return model.EmotionIcon{}, err
	}

	return s.Icon(ctx, emotion)
}

func (s *Service) ComboIcon(ctx context.Context, emotions []string) (model.EmotionComboIcon, error) {
	if len(emotions) == 0 {
		return model.EmotionComboIcon{}, ierr.BadRequestf("emotions is required")
	}

	parsed := make([]model.EmotionType, 0, len(emotions))
	for _, e := range emotions {
		t, err := model.ParseEmotionType(e)
		if err != nil {
			return model.EmotionComboIcon{}, ierr.BadRequestf("%s", err.Error())
		}
		parsed = append(parsed, t)
	}

	sorted := model.SortEmotions(parsed)
	if len(sorted) > maxComboSize {
		return model.EmotionComboIcon{}, ierr.BadRequestf("at most %d emotions can be combined", maxComboSize)
	}
	return s.comboIcon(ctx, sorted)
}

// ComboIconFor looks up an already validated emotion set.
func (s *Service) ComboIconFor(ctx context.Context, emotions []model.EmotionType) (model.EmotionComboIcon, error) {
	return s.comboIcon(ctx, model.SortEmotions(emotions))
}

func (s *Service) comboIcon(ctx context.Context, sorted []model.EmotionType) (model.EmotionComboIcon, error) {
	key := make([]string, len(sorted))
	for i, e := range sorted {
		key[i] = string(e)
	}

	return cache.Fetch(ctx, s.cache, "emotion-combo:"+strings.Join(key, ","), referenceTTL, func(ctx context.Context) (model.EmotionComboIcon, error) {
		icon, err := s.metaRepo.ComboIcon(ctx, sorted)
		if err != nil {
			return model.EmotionComboIcon{}, err
		}
		return *icon, nil
	})
}

func (s *Service) TodayQuote(ctx context.Context) (model.EmotionQuote, error) {
	quotes, err := cache.Fetch(ctx, s.cache, "emotion-quotes", referenceTTL, s.metaRepo.Quotes)
	if err != nil {
		return model.EmotionQuote{}, err
	}
	if len(quotes) == 0 {
		return model.EmotionQuote{}, ierr.NotFoundf("no quotes registered")
	}

	q := quotes[s.newRand().Intn(len(quotes))]
	if strings.TrimSpace(q.Author) == "" {
		q.Author = defaultAuthor
	}
	return q, nil
}
