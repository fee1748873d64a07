package mentor

import (
	"context"

	"gitlab.com/thinkfirst.net/internal/domain"
)

// IMentorService reviews a student's plan before they code and prompts reflection after failures
type IMentorService interface {
	// EvaluatePlan streams the mentor's reply through onChunk and returns the verdict.
	// Upstream failures are not errors, they produce the fallback feedback.
	EvaluatePlan(ctx context.Context, problem, plan string, onChunk func(string) error) (domain.MentorFeedback, error)

	// ReflectionQuestion returns a question that helps the student relate an error to their plan
	ReflectionQuestion(ctx context.Context, problem, plan, code, errText string) (string, error)
}
