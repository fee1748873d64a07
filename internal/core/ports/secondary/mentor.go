package secondary

import (
	"context"

	"gitlab.com/thinkfirst.net/internal/domain"
)

type ChatCompleter interface {
	// StreamChat sends messages and calls onDelta for every content fragment.
	// It returns the concatenated message.
	StreamChat(ctx context.Context, messages []domain.ChatMessage, onDelta func(string) error) (string, error)
}
