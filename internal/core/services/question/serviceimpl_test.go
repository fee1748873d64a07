package question

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/thinkfirst.net/internal/adapter/logging"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

type memoryRepo struct {
	questions map[string]*domain.Question
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{questions: map[string]*domain.Question{}}
}

func (m *memoryRepo) Create(_ context.Context, q *domain.Question) error {
	stored := *q
	m.questions[q.ID] = &stored
	return nil
}

func (m *memoryRepo) FindAll(context.Context) ([]*domain.Question, error) {
	out := make([]*domain.Question, 0, len(m.questions))
	for _, q := range m.questions {
		out = append(out, q)
	}
	return out, nil
}

func (m *memoryRepo) FindPublic(context.Context) ([]*domain.Question, error) {
	out := make([]*domain.Question, 0)
	for _, q := range m.questions {
		if q.IsPublic {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memoryRepo) FindByID(_ context.Context, id string) (*domain.Question, error) {
	return m.questions[id], nil
}

func (m *memoryRepo) Update(_ context.Context, id string, updates map[string]interface{}) error {
	q, ok := m.questions[id]
	if !ok {
		return errs.QuestionNotFound
	}
	for key, value := range updates {
		switch key {
		case "title":
			q.Title = value.(string)
		case "is_public":
			q.IsPublic = value.(bool)
		case "constraints":
			if value == nil {
				q.Constraints = nil
			} else {
				s := value.(string)
				q.Constraints = &s
			}
		}
	}
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.questions[id]; !ok {
		return errs.QuestionNotFound
	}
	delete(m.questions, id)
	return nil
}

func (m *memoryRepo) TogglePublic(_ context.Context, id string) error {
	q, ok := m.questions[id]
	if !ok {
		return errs.QuestionNotFound
	}
	q.IsPublic = !q.IsPublic
	return nil
}

func newTestService() (*QuestionService, *memoryRepo) {
	repo := newMemoryRepo()
	svc := NewQuestionService(repo, logging.NewNopLogger())
	svc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, repo
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, repo := newTestService()

	q, err := svc.Create(context.Background(), &domain.Question{Title: "Two Sum", Description: "find two"}, "admin-1")

	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "Easy", q.Difficulty)
	assert.Equal(t, "DSA", q.Category)
	assert.False(t, q.IsPublic)
	assert.Equal(t, "admin-1", q.CreatedByAdmin)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), q.CreatedAt)
	assert.Contains(t, repo.questions, q.ID)
}

func TestCreateRequiresTitleAndDescription(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &domain.Question{Title: "  "}, "admin-1")
	assert.ErrorIs(t, err, errs.TitleRequired)
}

func TestGetMissing(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, errs.QuestionNotFound)
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	q, err := svc.Create(ctx, &domain.Question{Title: "Old", Description: "d"}, "admin-1")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, q.ID, map[string]interface{}{
		"title":       "New",
		"is_public":   true,
		"constraints": "1 <= n <= 10",
	})

	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.True(t, updated.IsPublic)
	require.NotNil(t, updated.Constraints)
	assert.Equal(t, "1 <= n <= 10", *updated.Constraints)
}

func TestUpdateRejectsBadInput(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Update(ctx, "q", map[string]interface{}{})
	assert.ErrorIs(t, err, errs.EmptyQuestionUpdate)

	_, err = svc.Update(ctx, "q", map[string]interface{}{"created_by_admin": "me"})
	assert.ErrorIs(t, err, errs.UnknownQuestionField)

	_, err = svc.Update(ctx, "q", map[string]interface{}{"is_public": "yes"})
	assert.ErrorIs(t, err, errs.InvalidQuestionField)

	_, err = svc.Update(ctx, "q", map[string]interface{}{"title": ""})
	assert.ErrorIs(t, err, errs.InvalidQuestionField)
}

func TestTogglePublicAndList(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	q, err := svc.Create(ctx, &domain.Question{Title: "T", Description: "d"}, "admin-1")
	require.NoError(t, err)

	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	toggled, err := svc.TogglePublic(ctx, q.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsPublic)

	public, err = svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Len(t, public, 1)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	q, err := svc.Create(ctx, &domain.Question{Title: "T", Description: "d"}, "admin-1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, q.ID))
	assert.ErrorIs(t, svc.Delete(ctx, q.ID), errs.QuestionNotFound)
}
