package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"todolist/internal/adapter/http/helper"
	"todolist/internal/adapter/http/middleware"
	"todolist/internal/adapter/http/validation"
	"todolist/internal/adapter/storage"
	"todolist/internal/core/domain"
	"todolist/internal/core/model/request"
	"todolist/internal/core/model/response"
	"todolist/internal/core/port"
)

type TodoHandler struct {
	svc          port.TodoService
	imageBaseURL string
	metrics      *middleware.AppMetrics
	logger       zerolog.Logger
}

func NewTodoHandler(svc port.TodoService, imageBaseURL string, metrics *middleware.AppMetrics, logger zerolog.Logger) *TodoHandler {
	return &TodoHandler{
		svc:          svc,
		imageBaseURL: imageBaseURL,
		metrics:      metrics,
		logger:       logger,
	}
}

func (h *TodoHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Authentication required")
		return
	}

	opts := port.ListOptions{
		Status: c.Query("status"),
		Search: c.Query("search"),
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
	}

	if raw := c.Query("priority"); raw != "" {
		if priority, err := strconv.Atoi(raw); err == nil {
			opts.Priority = priority
		}
	}

	if raw := c.Query("skip"); raw != "" {
		if skip, err := strconv.Atoi(raw); err == nil {
			opts.Skip = skip
		}
	}

	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			opts.Limit = limit
		}
	}

	todos, err := h.svc.List(c.Request.Context(), user.ID, opts)

	if err != nil {
		h.logger.Error().Err(err).Int("owner_id", user.ID).Msg("todo listing failed")
		helper.SendInternalError(c, "Could not list todos")
		return
	}

	items := make([]response.TodoResponse, 0, len(todos))

	for _, todo := range todos {
		items = append(items, h.toTodoResponse(todo))
	}

	h.metrics.RecordTodoOperation("list")
	helper.SendSuccess(c, http.StatusOK, items)
}

func (h *TodoHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Authentication required")
		return
	}

	id, ok := todoID(c)

	if !ok {
		helper.SendNotFoundError(c, "Todo not found")
		return
	}

	todo, err := h.svc.Get(c.Request.Context(), user.ID, id)

	if err != nil {
		h.sendTodoError(c, err, user.ID)
		return
	}

	helper.SendSuccess(c, http.StatusOK, h.toTodoResponse(todo))
}

// Create accepts plain JSON or a multipart form with an optional "photo"
// file part. The photo is stored before the row is written so a storage
// failure never leaves a todo pointing at nothing.
func (h *TodoHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Authentication required")
		return
	}

	var params request.CreateTodoRequest

	if err := c.ShouldBind(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	dueDate, err := parseDueDate(params.DueDate)

	if err != nil {
		helper.SendBadRequestError(c, "due_date", "Invalid due date format")
		return
	}

	input := port.CreateTodoInput{
		Title:       params.Title,
		Description: params.Description,
		Status:      domain.TodoStatus(params.Status),
		Priority:    domain.TodoPriority(params.Priority),
		DueDate:     dueDate,
	}

	upload, err := extractUpload(c)

	if err != nil {
		helper.SendBadRequestError(c, "photo", "Could not read uploaded file")
		return
	}

	if upload != nil {
		defer upload.close()
	}

	todo, err := h.svc.Create(c.Request.Context(), user.ID, input, upload.toPort())

	if err != nil {
		h.sendTodoError(c, err, user.ID)
		return
	}

	h.metrics.RecordTodoOperation("create")
	helper.SendSuccess(c, http.StatusCreated, h.toTodoResponse(todo))
}

func (h *TodoHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Authentication required")
		return
	}

	id, ok := todoID(c)

	if !ok {
		helper.SendNotFoundError(c, "Todo not found")
		return
	}

	var params request.UpdateTodoRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	patch := port.TodoPatch{
		Title:       params.Title,
		Description: params.Description,
	}

	if params.Status != nil {
		status := domain.TodoStatus(*params.Status)
		patch.Status = &status
	}

	if params.Priority != nil {
		priority := domain.TodoPriority(*params.Priority)
		patch.Priority = &priority
	}

	if params.DueDate != nil {
		dueDate, err := parseDueDate(*params.DueDate)

		if err != nil {
			helper.SendBadRequestError(c, "due_date", "Invalid due date format")
			return
		}

		patch.DueDate = dueDate
	}

	todo, err := h.svc.Update(c.Request.Context(), user.ID, id, patch)

	if err != nil {
		h.sendTodoError(c, err, user.ID)
		return
	}

	h.metrics.RecordTodoOperation("update")
	helper.SendSuccess(c, http.StatusOK, h.toTodoResponse(todo))
}

func (h *TodoHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Authentication required")
		return
	}

	id, ok := todoID(c)

	if !ok {
		helper.SendNotFoundError(c, "Todo not found")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user.ID, id); err != nil {
		h.sendTodoError(c, err, user.ID)
		return
	}

	h.metrics.RecordTodoOperation("delete")
	helper.SendSuccess(c, http.StatusOK, nil, "Todo deleted")
}

func (h *TodoHandler) sendTodoError(c *gin.Context, err error, ownerID int) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helper.SendNotFoundError(c, "Todo not found")
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		helper.SendUnsupportedMediaError(c, "Only image uploads are accepted")
	case errors.Is(err, domain.ErrStorageUnavailable):
		helper.SendUnavailableError(c, "Attachment storage is not available")
	default:
		h.logger.Error().Err(err).Int("owner_id", ownerID).Msg("todo operation failed")
		helper.SendInternalError(c, "Could not complete the operation")
	}
}

func (h *TodoHandler) toTodoResponse(todo domain.Todo) response.TodoResponse {
	return response.TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Status:      string(todo.Status),
		Priority:    int(todo.Priority),
		DueDate:     todo.DueDate,
		ImageURL:    storage.DisplayURL(h.imageBaseURL, todo.ImageRef),
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

// todoID treats a malformed id the same as an unknown one.
func todoID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))

	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}

	return nil, errors.New("unrecognized due date format")
}

type requestUpload struct {
	upload port.Upload
	close  func()
}

func (u *requestUpload) toPort() *port.Upload {
	if u == nil {
		return nil
	}

	return &u.upload
}

// extractUpload pulls the optional "photo" part from a multipart request.
// JSON requests and multipart requests without a photo return nil.
func extractUpload(c *gin.Context) (*requestUpload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}

	fileHeader, err := c.FormFile("photo")

	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}

		return nil, err
	}

	file, err := fileHeader.Open()

	if err != nil {
		return nil, err
	}

	return &requestUpload{
		upload: port.Upload{
			Content:     file,
			ContentType: fileHeader.Header.Get("Content-Type"),
		},
		close: func() { file.Close() },
	}, nil
}
