package topic

const (
	// collection name
	topicNode          string = "topics"
	userNode           string = "users"
	recommendationNode string = "topic_recommendations"

	// Fields' name and path
	QuestionFieldPath      string = "question"
	TopicFieldPath         string = "topic"
	RecommendedAtFieldPath string = "recommendedAt"
)
