package secondary

import (
	"context"

	"gitlab.com/thinkfirst.net/internal/domain"
)

type QuestionRepository interface {
	// Create inserts a new question
	Create(ctx context.Context, question *domain.Question) error

	// FindAll returns every question, newest first
	FindAll(ctx context.Context) ([]*domain.Question, error)

	// FindPublic returns public questions, newest first
	FindPublic(ctx context.Context) ([]*domain.Question, error)

	// FindByID returns nil when the question does not exist
	FindByID(ctx context.Context, id string) (*domain.Question, error)

	// Update sets the given columns on a question
	Update(ctx context.Context, id string, updates map[string]interface{}) error

	Delete(ctx context.Context, id string) error

	TogglePublic(ctx context.Context, id string) error
}
