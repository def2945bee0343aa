package analysis

// ChatMessage is one prior turn of the assistant conversation, replayed into
// the chat prompt for context.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
