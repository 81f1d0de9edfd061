package user

const (
	// collection name
	userNode string = "users"

	// Fields' name and path
	UidFieldPath              string = "uid"
	EmailFieldPath            string = "email"
	NameFieldPath             string = "name"
	StreakFieldPath           string = "streak"
	LastRecordedDateFieldPath string = "lastRecordedDate"
	LastRewardStreakFieldPath string = "lastRewardStreak"
	CreatedAtFieldPath        string = "createdAt"
	LastLoginAtFieldPath      string = "lastLoginAt"
)
