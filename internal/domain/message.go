package domain

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	// RoleSystem only appears in outbound chat requests, never in stored history.
	RoleSystem MessageRole = "system"
)

// Message represents one turn of a therapy conversation
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// UserContent returns the user-authored messages in conversation order
func UserContent(messages []Message) []string {
	var out []string
	for _, m := range messages {
		if m.Role == RoleUser {
			out = append(out, m.Content)
		}
	}
	return out
}
