package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
	"todolist/internal/core/util"
)

type AuthService struct {
	repo   port.UserRepository
	logger zerolog.Logger
}

func NewAuthService(repo port.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, logger: logger}
}

func (as *AuthService) Register(ctx context.Context, email, password string) (domain.User, error) {
	_, err := as.repo.GetByEmail(ctx, email)

	if err == nil {
		return domain.User{}, domain.ErrDuplicateEmail
	}

	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	encrypted, err := util.HashPassword(password)

	if err != nil {
		return domain.User{}, err
	}

	now := time.Now()

	user := domain.User{
		Email:             email,
		EncryptedPassword: encrypted,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	saved, err := as.repo.Create(ctx, user)

	if err != nil {
		// The unique constraint is the backstop for concurrent signups that
		// pass the pre-check together.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.User{}, domain.ErrDuplicateEmail
		}

		return domain.User{}, err
	}

	as.logger.Info().Int("user_id", saved.ID).Msg("user registered")

	return saved, nil
}

func (as *AuthService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	user, err := as.repo.GetByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrUnauthenticated
		}

		return domain.User{}, err
	}

	if err := util.VerifyPassword(password, user.EncryptedPassword); err != nil {
		as.logger.Debug().Str("email", email).Msg("password mismatch")
		return domain.User{}, domain.ErrUnauthenticated
	}

	if !user.Active {
		return domain.User{}, domain.ErrInactiveAccount
	}

	return user, nil
}
