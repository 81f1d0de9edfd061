package emotionmeta

const (
	// collection name
	iconNode        string = "emotion_icons"
	combinationNode string = "emotion_combinations"
	quoteNode       string = "emotion_quotes"

	// Fields' name and path
	ImageUrlFieldPath string = "imageUrl"
	EmotionsFieldPath string = "emotions"
	QuoteFieldPath    string = "quote"
	AuthorFieldPath   string = "author"
)
