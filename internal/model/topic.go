package model

import "time"

type Topic struct {
	Id       string `firestore:"-" json:"id"`
	Question string `firestore:"question" json:"question"`
}

type TopicRecommendation struct {
	Topic         string    `firestore:"topic" json:"topic"`
	RecommendedAt time.Time `firestore:"recommendedAt" json:"recommendedAt"`
}
