package service

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"todolist/internal/adapter/database/repository"
	"todolist/internal/core/domain"
	"todolist/internal/core/port"
	"todolist/pkg/test"
	"todolist/pkg/test/factory"
)

type AuthServiceSuite struct {
	suite.Suite
	users port.UserRepository
	svc   *AuthService
}

func (s *AuthServiceSuite) SetupTest() {
	db := test.InitTestDB(s.T())

	s.users = repository.NewUserRepository(db)
	s.svc = NewAuthService(s.users, zerolog.Nop())
}

func TestAuthServiceSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) TestRegisterAndAuthenticate() {
	registered, err := s.svc.Register(context.Background(), "alice@example.com", "s3cretpass")

	Expect(err).NotTo(HaveOccurred())
	Expect(registered.ID).To(BeNumerically(">", 0))
	Expect(registered.Active).To(BeTrue())
	Expect(registered.EncryptedPassword).NotTo(Equal("s3cretpass"))

	authenticated, err := s.svc.Authenticate(context.Background(), "alice@example.com", "s3cretpass")

	Expect(err).NotTo(HaveOccurred())
	Expect(authenticated.ID).To(Equal(registered.ID))
}

func (s *AuthServiceSuite) TestRegisterDuplicateEmail() {
	_, err := s.svc.Register(context.Background(), "alice@example.com", "s3cretpass")

	Expect(err).NotTo(HaveOccurred())

	_, err = s.svc.Register(context.Background(), "alice@example.com", "otherpassword")

	Expect(err).To(MatchError(domain.ErrDuplicateEmail))
}

func (s *AuthServiceSuite) TestAuthenticateWrongPassword() {
	_, err := s.svc.Register(context.Background(), "alice@example.com", "s3cretpass")

	Expect(err).NotTo(HaveOccurred())

	_, err = s.svc.Authenticate(context.Background(), "alice@example.com", "wrongpassword")

	Expect(err).To(MatchError(domain.ErrUnauthenticated))
}

func (s *AuthServiceSuite) TestAuthenticateUnknownEmail() {
	_, err := s.svc.Authenticate(context.Background(), "nobody@example.com", "s3cretpass")

	// Unknown email and wrong password must be indistinguishable.
	Expect(err).To(MatchError(domain.ErrUnauthenticated))
}

func (s *AuthServiceSuite) TestAuthenticateInactiveAccount() {
	_, err := s.users.Create(context.Background(), factory.NewUser(map[string]any{
		"Email":  "inactive@example.com",
		"Active": false,
	}))

	Expect(err).NotTo(HaveOccurred())

	_, err = s.svc.Authenticate(context.Background(), "inactive@example.com", factory.DefaultPassword)

	Expect(err).To(MatchError(domain.ErrInactiveAccount))
}
