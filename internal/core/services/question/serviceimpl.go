package question

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/ports/secondary"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

var _ IQuestionService = (*QuestionService)(nil)

type QuestionService struct {
	repo   secondary.QuestionRepository
	logger primary.Logger
	now    func() time.Time
}

func NewQuestionService(repo secondary.QuestionRepository, logger primary.Logger) *QuestionService {
	return &QuestionService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *QuestionService) Create(ctx context.Context, input *domain.Question, adminID string) (*domain.Question, error) {
	if input == nil || strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, errs.TitleRequired
	}

	q := *input
	q.ID = uuid.NewString()
	q.CreatedByAdmin = adminID
	q.CreatedAt = s.now().UTC()
	if q.Difficulty == "" {
		q.Difficulty = domain.DefaultDifficulty
	}
	if q.Category == "" {
		q.Category = domain.DefaultCategory
	}

	if err := s.repo.Create(ctx, &q); err != nil {
		return nil, err
	}
	s.logger.Info("Question created", "questionId", q.ID, "admin", adminID)
	return &q, nil
}

func (s *QuestionService) ListAll(ctx context.Context) ([]*domain.Question, error) {
	return s.repo.FindAll(ctx)
}

func (s *QuestionService) ListPublic(ctx context.Context) ([]*domain.Question, error) {
	return s.repo.FindPublic(ctx)
}

func (s *QuestionService) Get(ctx context.Context, id string) (*domain.Question, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, errs.QuestionNotFound
	}
	return q, nil
}

func (s *QuestionService) Update(ctx context.Context, id string, updates map[string]interface{}) (*domain.Question, error) {
	columns, err := sanitizeUpdates(updates)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, columns); err != nil {
		return nil, err
	}
	s.logger.Info("Question updated", "questionId", id, "fields", len(columns))
	return s.Get(ctx, id)
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Question deleted", "questionId", id)
	return nil
}

func (s *QuestionService) TogglePublic(ctx context.Context, id string) (*domain.Question, error) {
	if err := s.repo.TogglePublic(ctx, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// sanitizeUpdates keeps whitelisted columns and checks value types.
// is_public takes a bool, title and description a non-empty string,
// every other column a string or null.
func sanitizeUpdates(updates map[string]interface{}) (map[string]interface{}, error) {
	if len(updates) == 0 {
		return nil, errs.EmptyQuestionUpdate
	}
	tbl := domain.GetQuestionTable()
	allowed := tbl.UpdatableColumns()

	columns := make(map[string]interface{}, len(updates))
	for key, value := range updates {
		if !allowed.Contains(key) {
			return nil, fmt.Errorf("%w: %s", errs.UnknownQuestionField, key)
		}
		switch key {
		case tbl.IsPublic:
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a boolean", errs.InvalidQuestionField, key)
			}
			columns[key] = b
		case tbl.Title, tbl.Description, tbl.Difficulty, tbl.Category:
			str, ok := value.(string)
			if !ok || strings.TrimSpace(str) == "" {
				return nil, fmt.Errorf("%w: %s must be a non-empty string", errs.InvalidQuestionField, key)
			}
			columns[key] = str
		default:
			if value == nil {
				columns[key] = nil
				continue
			}
			str, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a string", errs.InvalidQuestionField, key)
			}
			columns[key] = str
		}
	}
	return columns, nil
}
