package http

import (
	"github.com/rs/zerolog"

	"todolist/internal/adapter/database"
	"todolist/internal/adapter/database/repository"
	"todolist/internal/adapter/http/handler"
	"todolist/internal/adapter/http/middleware"
	"todolist/internal/adapter/storage"
	"todolist/internal/core/port"
	"todolist/internal/core/service"
	"todolist/internal/notify"
	"todolist/pkg/config"
	"todolist/pkg/token"
)

// Container wires repositories, services, and handlers for one process.
type Container struct {
	Users port.UserRepository
	Todos port.TodoRepository

	Tokens   *token.Service
	Guard    *middleware.Guard
	Metrics  *middleware.AppMetrics
	Notifier *notify.LogNotifier

	AuthService *service.AuthService
	TodoService *service.TodoService

	AuthHandler *handler.AuthHandler
	TodoHandler *handler.TodoHandler
}

func NewContainer(db *database.DB, cfg *config.Config, logger zerolog.Logger) (*Container, error) {
	users := repository.NewUserRepository(db)
	todos := repository.NewTodoRepository(db)

	tokens := token.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	guard := middleware.NewGuard(tokens, users)
	metrics := middleware.NewAppMetrics()
	notifier := notify.NewLogNotifier(logger)

	store, err := blobStore(cfg.Storage, logger)

	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(users, logger)
	attachmentService := service.NewAttachmentService(store)
	todoService := service.NewTodoService(todos, attachmentService, notifier, logger)

	return &Container{
		Users:       users,
		Todos:       todos,
		Tokens:      tokens,
		Guard:       guard,
		Metrics:     metrics,
		Notifier:    notifier,
		AuthService: authService,
		TodoService: todoService,
		AuthHandler: handler.NewAuthHandler(authService, tokens, logger),
		TodoHandler: handler.NewTodoHandler(todoService, cfg.Storage.ImageBaseURL, metrics, logger),
	}, nil
}

func (c *Container) Close() {
	c.Notifier.Close()
}

func blobStore(cfg config.Storage, logger zerolog.Logger) (port.BlobStore, error) {
	if !cfg.Enabled() {
		logger.Warn().Msg("no upload directory configured, attachments disabled")
		return storage.NewDisabledStore(), nil
	}

	return storage.NewLocalStore(cfg.UploadDir)
}
