package model

import (
	"fmt"
	"time"
)

type User struct {
	Uid              string     `firestore:"uid" json:"uid"`
	Email            string     `firestore:"email,omitempty" json:"email,omitempty"`
	Name             *string    `firestore:"name" json:"name"`
	Streak           int        `firestore:"streak" json:"streak"`
	LastRecordedDate *string    `firestore:"lastRecordedDate,omitempty" json:"lastRecordedDate,omitempty"`
	LastRewardStreak int        `firestore:"lastRewardStreak" json:"lastRewardStreak"`
	CreatedAt        time.Time  `firestore:"createdAt,omitempty" json:"createdAt"`
	LastLoginAt      *time.Time `firestore:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
}

func (u User) Validate() error {
	if u.Uid == "" {
		return fmt.Errorf("user: uid is required")
	}
	if u.Streak < 0 {
		return fmt.Errorf("user: streak must not be negative")
	}
	return nil
}
