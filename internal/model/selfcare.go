package model

import (
	"fmt"
	"time"
)

type SelfcareActivities struct {
	Activities []string `firestore:"activities" json:"activities"`
}

type SelfcareRecommendation struct {
	Emotion     EmotionType `firestore:"emotion" json:"emotion"`
	Recommended []string    `firestore:"recommended" json:"recommended"`
	UpdatedAt   time.Time   `firestore:"updatedAt" json:"updatedAt"`
}

func (s SelfcareRecommendation) Validate() error {
	if !s.Emotion.Valid() {
		return fmt.Errorf("selfcare recommendation: invalid emotion %q", s.Emotion)
	}
	if len(s.Recommended) == 0 {
		return fmt.Errorf("selfcare recommendation: no activities")
	}
	return nil
}
