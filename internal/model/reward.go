package model

import (
	"fmt"
	"time"
)

type RewardHistory struct {
	Id            string       `firestore:"-" json:"id"`
	Uid           string       `firestore:"-" json:"-"`
	ImageUrl      string       `firestore:"imageUrl" json:"imageUrl"`
	Letter        string       `firestore:"letter" json:"letter"`
	Style         *RewardStyle `firestore:"style,omitempty" json:"style,omitempty"`
	GivenAt       time.Time    `firestore:"givenAt" json:"givenAt"`
	StreakAtGiven int          `firestore:"streakAtGiven" json:"streakAtGiven"`
	Liked         bool         `firestore:"liked" json:"liked"`
}

// OwnerID is the uid whose reward_history collection holds the record.
func (r RewardHistory) OwnerID() string {
	return r.Uid
}

func (r RewardHistory) Validate() error {
	if r.ImageUrl == "" {
		return fmt.Errorf("reward: imageUrl is required")
	}
	if r.StreakAtGiven < 1 {
		return fmt.Errorf("reward: streakAtGiven must be at least 1")
	}
	if r.Style != nil && !r.Style.Valid() {
		return fmt.Errorf("reward: invalid style %q", *r.Style)
	}
	return nil
}
