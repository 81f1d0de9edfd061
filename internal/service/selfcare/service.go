package selfcare

import (
	"context"
	"math/rand"
	"time"

	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/model"
	selfcareRepository "dearmind-backend/internal/repository/selfcare"
	"dearmind-backend/internal/selection"
)

const recommendationSize = 3

type Service struct {
	repo    selfcareRepository.IRepository
	now     func() time.Time
	newRand func() *rand.Rand
}

func New(repo selfcareRepository.IRepository) *Service {
	return &Service{
		repo:    repo,
		now:     time.Now,
		newRand: func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) },
	}
}

// Recommend picks activities for emotion, skipping what the previous
// recommendation offered whenever the catalogue is large enough.
func (s *Service) Recommend(ctx context.Context, uid, emotion string) (model.SelfcareRecommendation, error) {
	if emotion == "" {
		return model.SelfcareRecommendation{}, ierr.BadRequestf("emotion is required")
	}
	emotionType, err := model.ParseEmotionType(emotion)
	if err != nil {
		return model.SelfcareRecommendation{}, ierr.BadRequestf("%s", err.Error())
	}

	activities, err := s.repo.Activities(ctx, emotionType)
	if err != nil {
		return model.SelfcareRecommendation{}, err
	}

	var previous []string
	latest, err := s.repo.Latest(ctx, uid)
	switch {
	case err == nil:
		previous = latest.Recommended
	case !ierr.Is(err, ierr.NotFound):
		return model.SelfcareRecommendation{}, err
	}

	rec := model.SelfcareRecommendation{
		Emotion:     emotionType,
		Recommended: selection.Pick(activities, previous, recommendationSize, s.newRand()),
		UpdatedAt:   s.now(),
	}
	if err := s.repo.SaveLatest(ctx, uid, rec); err != nil {
		return model.SelfcareRecommendation{}, err
	}
	return rec, nil
}

func (s *Service) Latest(ctx context.Context, uid string) (*model.SelfcareRecommendation, error) {
	return s.repo.Latest(ctx, uid)
}
