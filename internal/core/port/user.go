package port

import (
	"context"

	"todolist/internal/core/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	// Delete removes the user and, through the schema's cascade, every todo
	// the user owns.
	Delete(ctx context.Context, id int) error
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (domain.User, error)
	Authenticate(ctx context.Context, email, password string) (domain.User, error)
}
