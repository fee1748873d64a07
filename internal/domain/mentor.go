package domain

// ChatMessage is one message of a chat completion conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MentorFeedback is the final verdict of the AI mentor on a plan
type MentorFeedback struct {
	ReadyToCode bool
	Message     string
}
