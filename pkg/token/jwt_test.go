package token

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"todolist/internal/core/domain"
)

type TokenServiceSuite struct {
	suite.Suite
	svc *Service
}

func (s *TokenServiceSuite) SetupTest() {
	s.svc = NewService("test-secret", time.Minute)
}

func TestTokenServiceSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TokenServiceSuite))
}

func (s *TokenServiceSuite) TestIssueAndVerify() {
	tokenString, err := s.svc.Issue("alice@example.com")

	Expect(err).NotTo(HaveOccurred())
	Expect(tokenString).NotTo(BeEmpty())

	subject, err := s.svc.Verify(tokenString)

	Expect(err).NotTo(HaveOccurred())
	Expect(subject).To(Equal("alice@example.com"))
}

func (s *TokenServiceSuite) TestVerifyExpiredToken() {
	tokenString, err := s.svc.IssueWithTTL("alice@example.com", -time.Second)

	Expect(err).NotTo(HaveOccurred())

	_, err = s.svc.Verify(tokenString)

	Expect(err).To(MatchError(domain.ErrInvalidToken))
}

func (s *TokenServiceSuite) TestVerifyGarbageToken() {
	_, err := s.svc.Verify("not-a-token")

	Expect(err).To(MatchError(domain.ErrInvalidToken))
}

func (s *TokenServiceSuite) TestVerifyWrongSecret() {
	other := NewService("another-secret", time.Minute)

	tokenString, err := other.Issue("alice@example.com")

	Expect(err).NotTo(HaveOccurred())

	_, err = s.svc.Verify(tokenString)

	Expect(err).To(MatchError(domain.ErrInvalidToken))
}

func (s *TokenServiceSuite) TestDefaultTTLApplied() {
	svc := NewService("test-secret", 0)

	tokenString, err := svc.Issue("alice@example.com")

	Expect(err).NotTo(HaveOccurred())

	subject, err := svc.Verify(tokenString)

	Expect(err).NotTo(HaveOccurred())
	Expect(subject).To(Equal("alice@example.com"))
}
