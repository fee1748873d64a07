package secondary

import (
	"context"

	"gitlab.com/thinkfirst.net/internal/domain"
)

type AdminPort interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	UpdatePassword(ctx context.Context, email string, passwordHash string) error
}
