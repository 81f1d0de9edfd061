package model

import (
	"fmt"
	"time"
	"unicode/utf8"
)

const MaxDiaryTextLength = 300

type DiaryEntry struct {
	Id          string       `firestore:"-" json:"id"`
	Uid         string       `firestore:"uid" json:"-"`
	ImageUrl    string       `firestore:"imageUrl" json:"imageUrl"`
	Text        *string      `firestore:"text" json:"text"`
	CreatedAt   time.Time    `firestore:"createdAt" json:"createdAt"`
	EmotionType *EmotionType `firestore:"emotionType,omitempty" json:"emotionType,omitempty"`
	Severity    *int         `firestore:"severity,omitempty" json:"severity,omitempty"`
}

func (d DiaryEntry) OwnerID() string {
	return d.Uid
}

func (d DiaryEntry) Validate() error {
	if d.Uid == "" {
		return fmt.Errorf("diary entry: uid is required")
	}
	if d.ImageUrl == "" {
		return fmt.Errorf("diary entry: imageUrl is required")
	}
	if d.Text != nil && utf8.RuneCountInString(*d.Text) > MaxDiaryTextLength {
		return fmt.Errorf("diary entry: text exceeds %d characters", MaxDiaryTextLength)
	}
	if d.EmotionType != nil && !d.EmotionType.Valid() {
		return fmt.Errorf("diary entry: invalid emotionType %q", *d.EmotionType)
	}
	if d.CreatedAt.IsZero() {
		return fmt.Errorf("diary entry: createdAt is required")
	}
	return nil
}
