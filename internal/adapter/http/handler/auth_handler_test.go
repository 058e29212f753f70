package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"todolist/internal/adapter/database/repository"
	"todolist/internal/adapter/http/middleware"
	"todolist/internal/core/model/response"
	"todolist/internal/core/service"
	"todolist/pkg/test"
	"todolist/pkg/token"
)

type AuthHandlerSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *AuthHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db := test.InitTestDB(s.T())

	users := repository.NewUserRepository(db)
	tokens := token.NewService("test-secret", time.Minute)
	authService := service.NewAuthService(users, zerolog.Nop())
	authHandler := NewAuthHandler(authService, tokens, zerolog.Nop())

	// Router assembled inline to avoid an import cycle with the routes package.
	s.router = gin.New()
	s.router.POST("/signup", authHandler.Register)
	s.router.POST("/auth", authHandler.Login)
}

func TestAuthHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) post(path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	return rr
}

func (s *AuthHandlerSuite) TestSignUpSuccess() {
	rr := s.post("/signup", `{"email": "alice@example.com", "password": "12345678"}`)

	Expect(rr.Code).To(Equal(http.StatusCreated))

	var data response.SuccessResponse
	Expect(json.Unmarshal(rr.Body.Bytes(), &data)).To(Succeed())

	user := data.Data.(map[string]any)

	Expect(user["email"]).To(Equal("alice@example.com"))
	Expect(user["active"]).To(BeTrue())
}

func (s *AuthHandlerSuite) TestSignUpValidationError() {
	rr := s.post("/signup", `{"email": "not-an-email", "password": "123"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	var data response.ErrorResponse
	Expect(json.Unmarshal(rr.Body.Bytes(), &data)).To(Succeed())

	Expect(data.Error.Code).To(Equal("VALIDATION_ERROR"))
	Expect(len(data.Error.Errors)).To(BeNumerically(">", 0))
}

func (s *AuthHandlerSuite) TestSignUpDuplicateEmail() {
	Expect(s.post("/signup", `{"email": "alice@example.com", "password": "12345678"}`).Code).
		To(Equal(http.StatusCreated))

	rr := s.post("/signup", `{"email": "alice@example.com", "password": "anotherpass"}`)

	Expect(rr.Code).To(Equal(http.StatusConflict))
}

func (s *AuthHandlerSuite) TestLoginSuccessReturnsTokenAndCookie() {
	Expect(s.post("/signup", `{"email": "alice@example.com", "password": "12345678"}`).Code).
		To(Equal(http.StatusCreated))

	rr := s.post("/auth", `{"email": "alice@example.com", "password": "12345678"}`)

	Expect(rr.Code).To(Equal(http.StatusOK))

	var data response.TokenResponse
	Expect(json.Unmarshal(rr.Body.Bytes(), &data)).To(Succeed())

	Expect(data.AccessToken).NotTo(BeEmpty())
	Expect(data.TokenType).To(Equal("bearer"))

	var sessionCookie *http.Cookie

	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == middleware.AccessTokenCookie {
			sessionCookie = cookie
		}
	}

	Expect(sessionCookie).NotTo(BeNil())
	Expect(sessionCookie.Value).To(HavePrefix("Bearer"))
	Expect(sessionCookie.HttpOnly).To(BeTrue())
}

func (s *AuthHandlerSuite) TestLoginWrongPassword() {
	Expect(s.post("/signup", `{"email": "alice@example.com", "password": "12345678"}`).Code).
		To(Equal(http.StatusCreated))

	rr := s.post("/auth", `{"email": "alice@example.com", "password": "wrongpass1"}`)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *AuthHandlerSuite) TestLoginUnknownEmail() {
	rr := s.post("/auth", `{"email": "nobody@example.com", "password": "12345678"}`)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}
