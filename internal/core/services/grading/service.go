package grading

import (
	"context"

	"gitlab.com/thinkfirst.net/internal/domain"
)

// IGradingService runs submissions against their test cases
type IGradingService interface {
	// Grade validates the submission, runs every test case and returns the report.
	// Only invalid submissions produce an error; engine failures are recorded per case.
	Grade(ctx context.Context, submission *domain.Submission) (*domain.SubmissionReport, error)

	// SupportedLanguages lists the accepted languages
	SupportedLanguages() []domain.Language
}
