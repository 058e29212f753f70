package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"todolist/internal/adapter/http/helper"
	"todolist/internal/adapter/http/middleware"
	"todolist/internal/adapter/http/validation"
	"todolist/internal/core/domain"
	"todolist/internal/core/model/request"
	"todolist/internal/core/model/response"
	"todolist/internal/core/port"
	"todolist/pkg/token"
)

type AuthHandler struct {
	svc    port.AuthService
	tokens *token.Service
	logger zerolog.Logger
}

func NewAuthHandler(svc port.AuthService, tokens *token.Service, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		tokens: tokens,
		logger: logger,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.SignUpRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := a.svc.Register(ctx, params.Email, params.Password)

	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helper.SendConflictError(c, "email", "Email is already registered")
			return
		}

		a.logger.Error().Err(err).Msg("registration failed")
		helper.SendInternalError(c, "Could not complete registration")
		return
	}

	helper.SendSuccess(c, http.StatusCreated, toUserResponse(user))
}

// Login returns the bearer token and also sets it as a session cookie so the
// browser surface shares the same credential.
func (a *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.LoginRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := a.svc.Authenticate(ctx, params.Email, params.Password)

	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) || errors.Is(err, domain.ErrInactiveAccount) {
			helper.SendUnauthorizedError(c, "Invalid email or password")
			return
		}

		a.logger.Error().Err(err).Msg("authentication failed")
		helper.SendInternalError(c, "Could not complete authentication")
		return
	}

	accessToken, err := a.tokens.Issue(user.Email)

	if err != nil {
		a.logger.Error().Err(err).Msg("token issuing failed")
		helper.SendInternalError(c, "Could not issue access token")
		return
	}

	c.SetCookie(middleware.AccessTokenCookie, "Bearer "+accessToken, 0, "/", "", false, true)

	c.JSON(http.StatusOK, response.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

func toUserResponse(user domain.User) response.UserResponse {
	return response.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
