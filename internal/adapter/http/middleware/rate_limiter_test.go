package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type RateLimiterSuite struct {
	suite.Suite
	limiter *RateLimiter
	router  *gin.Engine
}

func (s *RateLimiterSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.limiter = NewRateLimiter(zerolog.Nop())

	s.router = gin.New()
	s.router.Use(s.limiter.Middleware())
	s.router.POST("/auth", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	s.router.GET("/todos", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

func TestRateLimiterSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(RateLimiterSuite))
}

func (s *RateLimiterSuite) hit(method, path, ip string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":12345"

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	return rr
}

func (s *RateLimiterSuite) TestEndpointLimitEnforced() {
	s.limiter.SetConfig("POST /auth", RateLimitConfig{Requests: 2, Window: time.Minute})

	Expect(s.hit("POST", "/auth", "10.0.0.1").Code).To(Equal(http.StatusOK))
	Expect(s.hit("POST", "/auth", "10.0.0.1").Code).To(Equal(http.StatusOK))

	rr := s.hit("POST", "/auth", "10.0.0.1")

	Expect(rr.Code).To(Equal(http.StatusTooManyRequests))
	Expect(rr.Header().Get("X-RateLimit-Remaining")).To(Equal("0"))
}

func (s *RateLimiterSuite) TestLimitsAreKeyedPerClient() {
	s.limiter.SetConfig("POST /auth", RateLimitConfig{Requests: 1, Window: time.Minute})

	Expect(s.hit("POST", "/auth", "10.0.0.1").Code).To(Equal(http.StatusOK))
	Expect(s.hit("POST", "/auth", "10.0.0.1").Code).To(Equal(http.StatusTooManyRequests))

	// A different client still has its own budget.
	Expect(s.hit("POST", "/auth", "10.0.0.2").Code).To(Equal(http.StatusOK))
}

func (s *RateLimiterSuite) TestDefaultLimitAppliesToOtherEndpoints() {
	rr := s.hit("GET", "/todos", "10.0.0.1")

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(rr.Header().Get("X-RateLimit-Limit")).To(Equal("120"))
}

func (s *RateLimiterSuite) TestRateLimitHeadersPresent() {
	rr := s.hit("POST", "/auth", "10.0.0.1")

	Expect(rr.Header().Get("X-RateLimit-Limit")).To(Equal("10"))
	Expect(rr.Header().Get("X-RateLimit-Remaining")).To(Equal("9"))
	Expect(rr.Header().Get("X-RateLimit-Reset")).NotTo(BeEmpty())
}
