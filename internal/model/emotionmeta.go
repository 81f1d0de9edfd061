package model

type EmotionIcon struct {
	Emotion  EmotionType `firestore:"-" json:"emotion"`
	ImageUrl string      `firestore:"imageUrl" json:"imageUrl"`
}

type EmotionComboIcon struct {
	Emotions []EmotionType `firestore:"emotions" json:"emotions"`
	ImageUrl string        `firestore:"imageUrl" json:"imageUrl"`
}

type EmotionQuote struct {
	Quote  string `firestore:"quote" json:"quote"`
	Author string `firestore:"author,omitempty" json:"author,omitempty"`
}
