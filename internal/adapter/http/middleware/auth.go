package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todolist/internal/adapter/http/helper"
	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

const (
	// AccessTokenCookie holds "Bearer <token>" for the browser surface; the
	// API surface sends the same value in the Authorization header.
	AccessTokenCookie = "access_token"

	bearerPrefix = "Bearer "

	currentUserKey = "current_user"
	userIDKey      = "x-user-id"
)

// Guard resolves a bearer token to an active user record. Both surfaces share
// the same resolution; only the failure behavior differs.
type Guard struct {
	tokens port.TokenVerifier
	users  port.UserRepository
}

func NewGuard(tokens port.TokenVerifier, users port.UserRepository) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// RequireAPI rejects with a 401 body and never redirects.
func (g *Guard) RequireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := g.resolve(c)

		if err != nil {
			if !isAuthFailure(err) {
				// A store failure is not the caller's fault; do not blame
				// the token.
				helper.SendInternalError(c, "Could not resolve credentials")
				c.Abort()
				return
			}

			helper.SendUnauthorizedError(c, guardMessage(err))
			c.Abort()
			return
		}

		setCurrentUser(c, user)
		c.Next()
	}
}

// RequireWeb redirects to the login page and clears any stale session cookie.
func (g *Guard) RequireWeb(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := g.resolve(c)

		if err != nil {
			if !isAuthFailure(err) {
				helper.SendInternalError(c, "Could not resolve credentials")
				c.Abort()
				return
			}

			c.SetCookie(AccessTokenCookie, "", -1, "/", "", false, true)
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		setCurrentUser(c, user)
		c.Next()
	}
}

func (g *Guard) resolve(c *gin.Context) (domain.User, error) {
	tokenString, found := extractToken(c)

	if !found {
		return domain.User{}, domain.ErrUnauthenticated
	}

	subject, err := g.tokens.Verify(tokenString)

	if err != nil {
		return domain.User{}, err
	}

	user, err := g.users.GetByEmail(c.Request.Context(), subject)

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrInvalidToken
		}

		return domain.User{}, err
	}

	if !user.Active {
		return domain.User{}, domain.ErrInactiveAccount
	}

	return user, nil
}

// extractToken checks the Authorization header first, then the session
// cookie. Both carry the "Bearer " prefix.
func extractToken(c *gin.Context) (string, bool) {
	bearer := c.GetHeader("Authorization")

	if bearer == "" {
		if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
			bearer = cookie
		}
	}

	if !strings.HasPrefix(bearer, bearerPrefix) {
		return "", false
	}

	return strings.TrimPrefix(bearer, bearerPrefix), true
}

func isAuthFailure(err error) bool {
	return errors.Is(err, domain.ErrUnauthenticated) ||
		errors.Is(err, domain.ErrInvalidToken) ||
		errors.Is(err, domain.ErrInactiveAccount)
}

func guardMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return "Authentication required"
	case errors.Is(err, domain.ErrInactiveAccount):
		// Deactivated accounts get no partial access and no extra detail.
		return "Unauthorized request"
	default:
		return "Invalid or expired token"
	}
}

func setCurrentUser(c *gin.Context, user domain.User) {
	c.Set(currentUserKey, user)
	c.Set(userIDKey, user.ID)
}

// CurrentUser returns the guard-resolved user for this request.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, ok := c.Get(currentUserKey)

	if !ok {
		return domain.User{}, false
	}

	user, ok := value.(domain.User)

	return user, ok
}
