package adminrepository

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

var _ secondary.AdminPort = &adminRepo{}

type adminRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.AdminPort {
	return &adminRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (a adminRepo) rebind(query string) string {
	return sqlx.Rebind(sqlx.BindType(a.db.DriverName()), query)
}

func (a adminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	tbl := domain.GetAdminTable()
	query, args := querybuilder.NewQueryBuilder(a.schema).
		Insert(tbl.ID, tbl.Name, tbl.Email, tbl.PasswordHash, tbl.Role, tbl.CreatedAt).
		Into(tbl.GetTableName()).
		Values(admin.ID, admin.Name, admin.Email, admin.PasswordHash, admin.Role, admin.CreatedAt).
		Build()

	_, err := a.db.ExecContext(ctx, a.rebind(query), args...)
	if err != nil {
		a.logger.Error("Failed to create admin", "email", admin.Email, "error", err)
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (a adminRepo) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	return a.getBy(ctx, domain.GetAdminTable().ID, id)
}

func (a adminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return a.getBy(ctx, domain.GetAdminTable().Email, email)
}

func (a adminRepo) getBy(ctx context.Context, col string, value string) (*domain.Admin, error) {
	tbl := domain.GetAdminTable()
	query, args := querybuilder.NewQueryBuilder(a.schema).
		Select(tbl.ID, tbl.Name, tbl.Email, tbl.PasswordHash, tbl.Role, tbl.CreatedAt).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", col), value).
		Limit(1).
		Build()

	var admin domain.Admin
	err := a.db.GetContext(ctx, &admin, a.rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		a.logger.Error("Failed to get admin", col, value, "error", err)
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

func (a adminRepo) UpdatePassword(ctx context.Context, email string, passwordHash string) error {
	tbl := domain.GetAdminTable()
	query, args := querybuilder.NewQueryBuilder(a.schema).
		Update(tbl.GetTableName(), querybuilder.UpdateData{tbl.PasswordHash: passwordHash}).
		Where(fmt.Sprintf("%s = ?", tbl.Email), email).
		Build()

	result, err := a.db.ExecContext(ctx, a.rebind(query), args...)
	if err != nil {
		a.logger.Error("Failed to update admin password", "email", email, "error", err)
		return fmt.Errorf("failed to update admin password: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return errs.AdminNotFound
	}
	return nil
}

// EnsureTableExists creates the admins table. The DDL is valid for Postgres and MySQL.
func (a adminRepo) EnsureTableExists(ctx context.Context) error {
	table := domain.GetAdminTable().GetTableName()
	if a.schema != "" {
		table = a.schema + "." + table
	}
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL DEFAULT 'admin',
			created_at TIMESTAMP NOT NULL
		)
	`, table)

	if _, err := a.db.ExecContext(ctx, query); err != nil {
		a.logger.Error("Failed to create admins table", "error", err)
		return fmt.Errorf("failed to create admins table: %w", err)
	}
	return nil
}
