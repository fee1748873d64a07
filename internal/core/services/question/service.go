package question

import (
	"context"

	"gitlab.com/thinkfirst.net/internal/domain"
)

// IQuestionService manages the question bank
type IQuestionService interface {
	Create(ctx context.Context, input *domain.Question, adminID string) (*domain.Question, error)
	ListAll(ctx context.Context) ([]*domain.Question, error)
	ListPublic(ctx context.Context) ([]*domain.Question, error)
	Get(ctx context.Context, id string) (*domain.Question, error)

	// Update applies a partial update. Keys are column names, unknown keys are rejected.
	Update(ctx context.Context, id string, updates map[string]interface{}) (*domain.Question, error)
	Delete(ctx context.Context, id string) error
	TogglePublic(ctx context.Context, id string) (*domain.Question, error)
}
