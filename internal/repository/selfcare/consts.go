package selfcare

const (
	// collection name
	selfcareNode       string = "selfcare"
	userNode           string = "users"
	recommendationNode string = "selfcare_recommendation"

	latestDocId string = "latest"

	// Fields' name and path
	ActivitiesFieldPath string = "activities"
)
