package questionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/ports/secondary"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/static/errs"
	querybuilder "gitlab.com/thinkfirst.net/internal/utils"
)

var _ secondary.QuestionRepository = (*QuestionRepository)(nil)

// QuestionRepository stores questions in any sqlx supported database.
// Placeholders are rebound for the driver the DB was opened with.
type QuestionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) *QuestionRepository {
	return &QuestionRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *QuestionRepository) rebind(query string) string {
	return sqlx.Rebind(sqlx.BindType(r.db.DriverName()), query)
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	tbl := domain.GetQuestionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.Columns()...).
		Into(tbl.TableName()).
		Values(
			q.ID, q.Title, q.Description, q.InputFormat, q.OutputFormat, q.Constraints,
			q.Difficulty, q.Category, q.IsPublic,
			q.SampleInput1, q.SampleOutput1, q.SampleInput2, q.SampleOutput2, q.SampleInput3, q.SampleOutput3,
			q.SchemaSQL, q.SampleData, q.CreatedByAdmin, q.CreatedAt,
		).
		Build()

	_, err := r.db.ExecContext(ctx, r.rebind(query), args...)
	if err != nil {
		r.logger.Error("Failed to create question", "title", q.Title, "error", err)
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *QuestionRepository) FindAll(ctx context.Context) ([]*domain.Question, error) {
	tbl := domain.GetQuestionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		OrderBy(tbl.CreatedAt, false).
		Build()
	return r.selectMany(ctx, query, args)
}

func (r *QuestionRepository) FindPublic(ctx context.Context) ([]*domain.Question, error) {
	tbl := domain.GetQuestionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.IsPublic), true).
		OrderBy(tbl.CreatedAt, false).
		Build()
	return r.selectMany(ctx, query, args)
}

func (r *QuestionRepository) selectMany(ctx context.Context, query string, args []interface{}) ([]*domain.Question, error) {
	questions := make([]*domain.Question, 0)
	if err := r.db.SelectContext(ctx, &questions, r.rebind(query), args...); err != nil {
		r.logger.Error("Failed to list questions", "error", err)
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	tbl := domain.GetQuestionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	var question domain.Question
	err := r.db.GetContext(ctx, &question, r.rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get question", "questionId", id, "error", err)
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &question, nil
}

func (r *QuestionRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	tbl := domain.GetQuestionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(tbl.TableName(), querybuilder.UpdateData(updates)).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()
	return r.execOne(ctx, "update", id, query, args)
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	tbl := domain.GetQuestionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()
	return r.execOne(ctx, "delete", id, query, args)
}

func (r *QuestionRepository) TogglePublic(ctx context.Context, id string) error {
	tbl := domain.GetQuestionTable()
	table := tbl.TableName()
	if r.schema != "" {
		table = r.schema + "." + table
	}
	query := fmt.Sprintf("UPDATE %s SET %s = NOT %s WHERE %s = ?", table, tbl.IsPublic, tbl.IsPublic, tbl.ID)
	return r.execOne(ctx, "toggle", id, query, []interface{}{id})
}

// execOne runs a statement that must touch exactly one question
func (r *QuestionRepository) execOne(ctx context.Context, op string, id string, query string, args []interface{}) error {
	if query == "" {
		return fmt.Errorf("failed to %s question: invalid statement", op)
	}
	result, err := r.db.ExecContext(ctx, r.rebind(query), args...)
	if err != nil {
		r.logger.Error("Failed to "+op+" question", "questionId", id, "error", err)
		return fmt.Errorf("failed to %s question: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return errs.QuestionNotFound
	}
	return nil
}

// EnsureTableExists creates the questions table. The DDL is valid for Postgres and MySQL.
func (r *QuestionRepository) EnsureTableExists(ctx context.Context) error {
	table := domain.GetQuestionTable().TableName()
	if r.schema != "" {
		table = r.schema + "." + table
	}
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id VARCHAR(36) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			input_format TEXT,
			output_format TEXT,
			constraints TEXT,
			difficulty VARCHAR(32) NOT NULL DEFAULT 'Easy',
			category VARCHAR(64) NOT NULL DEFAULT 'DSA',
			is_public BOOLEAN NOT NULL DEFAULT false,
			sample_input1 TEXT,
			sample_output1 TEXT,
			sample_input2 TEXT,
			sample_output2 TEXT,
			sample_input3 TEXT,
			sample_output3 TEXT,
			schema_sql TEXT,
			sample_data TEXT,
			created_by_admin VARCHAR(36) NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`, table)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		r.logger.Error("Failed to create questions table", "error", err)
		return fmt.Errorf("failed to create questions table: %w", err)
	}
	return nil
}
