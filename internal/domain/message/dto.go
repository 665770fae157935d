package message

// SendMessagesRequest represents a relay request to many users
type SendMessagesRequest struct {
	Users   []int64 `json:"users"`
	Message string  `json:"message"`
}

// FailedRecipient records one recipient the relay could not reach
type FailedRecipient struct {
	UserID int64  `json:"user_id"`
	Reason string `json:"reason"`
}

// SendMessagesResponse reports the outcome of a relay batch. A non-empty
// FailedUsers list with a non-zero Sent count is a partial success.
type SendMessagesResponse struct {
	Sent        int               `json:"sent"`
	FailedUsers []FailedRecipient `json:"failed_users"`
}
