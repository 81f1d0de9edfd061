package reward

const (
	// collection name
	userNode          string = "users"
	rewardHistoryNode string = "reward_history"

	// Fields' name and path
	ImageUrlFieldPath      string = "imageUrl"
	LetterFieldPath        string = "letter"
	StyleFieldPath         string = "style"
	GivenAtFieldPath       string = "givenAt"
	StreakAtGivenFieldPath string = "streakAtGiven"
	LikedFieldPath         string = "liked"
)
