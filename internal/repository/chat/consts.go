package chat

const (
	// collection name
	userNode        string = "users"
	chatHistoryNode string = "chat_history"

	// Fields' name and path
	RoleFieldPath      string = "role"
	ContentFieldPath   string = "content"
	TimestampFieldPath string = "timestamp"
)
