package grading

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/ports/secondary"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

var _ IGradingService = (*GradingService)(nil)

const statusError = "Error"

// GradingService grades submissions on a CodeExecutor
type GradingService struct {
	executor     secondary.CodeExecutor
	questionRepo secondary.QuestionRepository
	logger       primary.Logger
	maxParallel  int
}

// NewGradingService creates a grading service. questionRepo may be nil, in which case
// submissions must carry their question. maxParallel below 1 means sequential.
func NewGradingService(
	executor secondary.CodeExecutor,
	questionRepo secondary.QuestionRepository,
	logger primary.Logger,
	maxParallel int,
) *GradingService {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &GradingService{
		executor:     executor,
		questionRepo: questionRepo,
		logger:       logger,
		maxParallel:  maxParallel,
	}
}

func (s *GradingService) SupportedLanguages() []domain.Language {
	langs := make([]domain.Language, len(domain.SupportedLanguages))
	copy(langs, domain.SupportedLanguages)
	return langs
}

// caseUsage is what a test case contributes to the report totals
type caseUsage struct {
	seconds  float64
	memoryKB int64
}

func (s *GradingService) Grade(ctx context.Context, submission *domain.Submission) (*domain.SubmissionReport, error) {
	if submission == nil || strings.TrimSpace(submission.Code) == "" || strings.TrimSpace(submission.Language) == "" {
		return nil, errs.CodeAndLanguageRequired
	}
	lang, ok := domain.ParseLanguage(submission.Language)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.UnsupportedLanguage, submission.Language)
	}

	question, err := s.resolveQuestion(ctx, submission)
	if err != nil {
		return nil, err
	}

	cases := CollectTestCases(question)
	s.logger.Info("Grading submission",
		"language", lang,
		"questionId", submission.QuestionID,
		"testCases", len(cases))

	results := make([]domain.TestCaseResult, len(cases))
	usage := make([]caseUsage, len(cases))

	var g errgroup.Group
	g.SetLimit(s.maxParallel)
	for i, tc := range cases {
		g.Go(func() error {
			results[i], usage[i] = s.gradeCase(ctx, submission.Code, lang, tc)
			return nil
		})
	}
	_ = g.Wait()

	report := &domain.SubmissionReport{Results: results}
	for _, u := range usage {
		report.TotalTimeSeconds += u.seconds
		if u.memoryKB > report.PeakMemoryKB {
			report.PeakMemoryKB = u.memoryKB
		}
	}

	s.logger.Info("Submission graded",
		"language", lang,
		"allPassed", report.AllPassed(),
		"time", report.TotalTimeSeconds,
		"memory", report.PeakMemoryKB)
	return report, nil
}

func (s *GradingService) resolveQuestion(ctx context.Context, submission *domain.Submission) (domain.QuestionSnapshot, error) {
	if submission.Question != nil || submission.QuestionID == "" || s.questionRepo == nil {
		return submission.Question, nil
	}
	question, err := s.questionRepo.FindByID(ctx, submission.QuestionID)
	if err != nil {
		s.logger.Error("Failed to load question for grading", "questionId", submission.QuestionID, "error", err)
		return nil, fmt.Errorf("failed to load question: %w", err)
	}
	if question == nil {
		return nil, errs.QuestionNotFound
	}
	return question.Snapshot(), nil
}

// gradeCase never fails: every problem is folded into a failing result so that
// one broken case cannot affect the others.
func (s *GradingService) gradeCase(ctx context.Context, code string, lang domain.Language, tc domain.TestCase) (result domain.TestCaseResult, usage caseUsage) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Test case panicked", "panic", r)
			result, usage = failedCase(tc, fmt.Errorf("unexpected error: %v", r)), caseUsage{}
		}
	}()

	if err := ctx.Err(); err != nil {
		return failedCase(tc, err), caseUsage{}
	}

	res, err := s.executor.Execute(ctx, Wrap(code, lang), lang, tc.Input)
	if err != nil {
		s.logger.Warn("Test case execution failed", "language", lang, "error", err)
		return failedCase(tc, err), caseUsage{}
	}

	output := strings.TrimSpace(strings.ReplaceAll(res.Stdout, "\x00", ""))
	status := res.StatusDescription
	if status == "" {
		status = "Unknown"
	}
	pass := res.Accepted() && CompareOutput(tc.ExpectedOutput, output)

	result = domain.TestCaseResult{
		Pass:          pass,
		Expected:      tc.ExpectedOutput,
		Output:        output,
		Status:        status,
		Explanation:   explain(res, tc.ExpectedOutput, output, pass, status),
		Stderr:        res.Stderr,
		CompileOutput: res.CompileOutput,
	}
	if res.Time != "" {
		t := res.Time
		result.Time = &t
		usage.seconds, _ = strconv.ParseFloat(t, 64)
	}
	if res.MemoryKB != nil {
		memory := *res.MemoryKB
		result.Memory = &memory
		usage.memoryKB = memory
	}
	return result, usage
}

func explain(res *domain.ExecutionResult, expected, output string, pass bool, status string) string {
	if pass {
		return ""
	}
	if !res.Accepted() {
		for _, detail := range []string{res.CompileOutput, res.Stderr} {
			if detail != "" {
				return detail
			}
		}
		return status
	}
	return fmt.Sprintf(`Expected: "%s", Got: "%s"`, expected, output)
}

func failedCase(tc domain.TestCase, err error) domain.TestCaseResult {
	return domain.TestCaseResult{
		Pass:        false,
		Expected:    tc.ExpectedOutput,
		Output:      "",
		Status:      statusError,
		Explanation: err.Error(),
	}
}
