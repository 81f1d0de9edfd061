package diary

const (
	// collection name
	diaryNode string = "diary"

	// Fields' name and path
	UidFieldPath         string = "uid"
	ImageUrlFieldPath    string = "imageUrl"
	TextFieldPath        string = "text"
	CreatedAtFieldPath   string = "createdAt"
	EmotionTypeFieldPath string = "emotionType"
	SeverityFieldPath    string = "severity"
)
