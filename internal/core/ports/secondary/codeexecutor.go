package secondary

import (
	"context"

	"gitlab.com/thinkfirst.net/internal/domain"
)

type CodeExecutor interface {
	// Execute runs source once with stdin on the execution engine
	Execute(ctx context.Context, source string, language domain.Language, stdin string) (*domain.ExecutionResult, error)
}
