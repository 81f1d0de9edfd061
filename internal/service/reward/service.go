package reward

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"dearmind-backend/internal/ai"
	"dearmind-backend/internal/authz"
	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/model"
	diaryRepository "dearmind-backend/internal/repository/diary"
	rewardRepository "dearmind-backend/internal/repository/reward"
	userRepository "dearmind-backend/internal/repository/user"
	"dearmind-backend/internal/selection"
	"dearmind-backend/internal/storage"
)

const (
	imagePrefix      = "reward"
	imageContentType = "image/png"
	styleMemory      = 3
	diaryContext     = 3
)

type Deps struct {
	RewardRepo rewardRepository.IRepository
	UserRepo   userRepository.IRepository
	DiaryRepo  diaryRepository.IRepository
	Uploader   storage.Uploader
	Painter    ai.RewardPainter
}

type Service struct {
	Deps
	now     func() time.Time
	newRand func() *rand.Rand
}

func New(deps Deps) *Service {
	return &Service{
		Deps:    deps,
		now:     time.Now,
		newRand: func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) },
	}
}

// IssueInput carries an optional client-made image and letter. When both are
// empty the picture is painted by the AI service.
type IssueInput struct {
	Streak int    `json:"streak"`
	Image  string `json:"image"`
	Letter string `json:"letter"`
}

func (s *Service) Issue(ctx context.Context, uid string, in IssueInput) (model.RewardHistory, error) {
	if in.Streak < 1 {
		return model.RewardHistory{}, ierr.BadRequestf("streak must be at least 1")
	}

	reward := model.RewardHistory{
		GivenAt:       s.now(),
		StreakAtGiven: in.Streak,
	}

	switch {
	case in.Image != "":
		image, err := storage.DecodeDataURL(in.Image)
		if err != nil {
			return model.RewardHistory{}, err
		}
		if reward.ImageUrl, err = s.upload(ctx, uid, image); err != nil {
			return model.RewardHistory{}, err
		}
		reward.Letter = in.Letter
	default:
		painted, style, err := s.paint(ctx, uid, in.Streak)
		if err != nil {
			return model.RewardHistory{}, err
		}
		reward.ImageUrl = painted.ImageUrl
		reward.Letter = painted.Letter
		reward.Style = &style
		if painted.Image != "" {
			image, err := storage.DecodeDataURL(painted.Image)
			if err != nil {
				// A bad payload from the AI service is a server failure, not a client one.
				return model.RewardHistory{}, fmt.Errorf("decode painted reward: %v, uid: %s", err, uid)
			}
			if reward.ImageUrl, err = s.upload(ctx, uid, image); err != nil {
				return model.RewardHistory{}, err
			}
		}
	}

	id, err := s.RewardRepo.Create(ctx, uid, reward)
	if err != nil {
		return model.RewardHistory{}, err
	}
	reward.Id = id

	if err := s.UserRepo.SetLastRewardStreak(ctx, uid, in.Streak); err != nil {
		return model.RewardHistory{}, err
	}
	return reward, nil
}

func (s *Service) paint(ctx context.Context, uid string, streak int) (ai.RewardResult, model.RewardStyle, error) {
	recent, err := s.RewardRepo.Recent(ctx, uid, styleMemory)
	if err != nil {
		return ai.RewardResult{}, "", err
	}
	used := make([]model.RewardStyle, 0, len(recent))
	for _, r := range recent {
		if r.Style != nil {
			used = append(used, *r.Style)
		}
	}
	style := selection.Pick(model.RewardStyles, used, 1, s.newRand())[0]

	entries, err := s.DiaryRepo.Recent(ctx, uid, diaryContext)
	if err != nil {
		return ai.RewardResult{}, "", err
	}
	diaries := []string{}
	for _, e := range entries {
		if e.Text != nil && strings.TrimSpace(*e.Text) != "" {
			diaries = append(diaries, *e.Text)
		}
	}

	painted, err := s.Painter.Paint(ctx, ai.RewardRequest{Style: style, Streak: streak, Diaries: diaries})
	if err != nil {
		return ai.RewardResult{}, "", fmt.Errorf("paint reward: %w, uid: %s", err, uid)
	}
	return painted, style, nil
}

func (s *Service) upload(ctx context.Context, uid string, image []byte) (string, error) {
	return s.Uploader.Upload(ctx, storage.ImagePath(imagePrefix, uid), imageContentType, image)
}

func (s *Service) History(ctx context.Context, uid string) ([]model.RewardHistory, error) {
	return s.RewardRepo.List(ctx, uid)
}

// ToggleLike flips the liked flag and returns the new value. Concurrent toggles are last writer wins.
func (s *Service) ToggleLike(ctx context.Context, uid, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, ierr.BadRequestf("id is required")
	}
	reward, err := s.RewardRepo.GetById(ctx, uid, id)
	if err != nil {
		return false, err
	}
	if err := authz.Check(*reward, uid, "reward"); err != nil {
		return false, err
	}
	liked := !reward.Liked
	if err := s.RewardRepo.SetLiked(ctx, uid, id, liked); err != nil {
		return false, err
	}
	return liked, nil
}
