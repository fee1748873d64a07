package mentor

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strings"

	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/ports/secondary"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

//go:embed prompts/mentor_system.txt
var systemPrompt string

// FallbackMessage is shown whenever the mentor could not produce an answer
const FallbackMessage = "Try rephrasing your approach in simple words."

var readySignals = []string{
	"ready to try coding",
	"ready to code",
	"you can now try coding",
	"you can try coding now",
}

var reflectionQuestions = []string{
	"Looking at your error, which part of your plan might not match what your code is doing?",
	"What did you expect to happen at the point where the error occurred?",
	"Can you trace through your code with a simple example and see where it differs from your plan?",
	"What assumption in your plan might not hold true for this case?",
	"If you had to explain this error to a friend, what would you say went wrong?",
}

var _ IMentorService = (*MentorService)(nil)

type MentorService struct {
	completer secondary.ChatCompleter
	logger    primary.Logger
	pick      func(n int) int
}

func NewMentorService(completer secondary.ChatCompleter, logger primary.Logger) *MentorService {
	return &MentorService{
		completer: completer,
		logger:    logger,
		pick:      rand.IntN,
	}
}

func (s *MentorService) EvaluatePlan(ctx context.Context, problem, plan string, onChunk func(string) error) (domain.MentorFeedback, error) {
	if strings.TrimSpace(problem) == "" {
		return domain.MentorFeedback{}, errs.ProblemRequired
	}
	if strings.TrimSpace(plan) == "" {
		return domain.MentorFeedback{}, errs.PlanRequired
	}

	messages := []domain.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Problem:\n%s\n\nStudent's Plan:\n%s", problem, plan)},
	}
	full, err := s.completer.StreamChat(ctx, messages, onChunk)
	if err != nil {
		s.logger.Warn("Mentor completion failed", "error", err)
		return domain.MentorFeedback{ReadyToCode: false, Message: FallbackMessage}, nil
	}
	if strings.TrimSpace(full) == "" {
		return domain.MentorFeedback{ReadyToCode: false, Message: FallbackMessage}, nil
	}

	return domain.MentorFeedback{
		ReadyToCode: IsReadyToCode(full),
		Message:     full,
	}, nil
}

// IsReadyToCode reports whether the mentor told the student to start coding
func IsReadyToCode(message string) bool {
	lower := strings.ToLower(message)
	for _, signal := range readySignals {
		if strings.Contains(lower, signal) {
			return true
		}
	}
	return false
}

func (s *MentorService) ReflectionQuestion(ctx context.Context, problem, plan, code, errText string) (string, error) {
	switch {
	case strings.TrimSpace(problem) == "":
		return "", errs.ProblemRequired
	case strings.TrimSpace(plan) == "":
		return "", errs.PlanRequired
	case strings.TrimSpace(code) == "":
		return "", errs.CodeRequired
	case strings.TrimSpace(errText) == "":
		return "", errs.ErrorRequired
	}
	return reflectionQuestions[s.pick(len(reflectionQuestions))], nil
}
