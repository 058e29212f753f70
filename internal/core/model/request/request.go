package request

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// CreateTodoRequest binds from JSON or from multipart form fields; the
// attachment itself travels as the "photo" file part.
type CreateTodoRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=1,max=100"`
	Description string `json:"description,omitempty" form:"description" validate:"max=500"`
	Status      string `json:"status,omitempty" form:"status" validate:"omitempty,oneof=not_started in_progress done"`
	Priority    int    `json:"priority,omitempty" form:"priority" validate:"omitempty,oneof=1 2 3"`
	DueDate     string `json:"due_date,omitempty" form:"due_date"`
}

// UpdateTodoRequest uses pointers so an absent field stays distinguishable
// from a zero value: only supplied fields change.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=not_started in_progress done"`
	Priority    *int    `json:"priority,omitempty" validate:"omitempty,oneof=1 2 3"`
	DueDate     *string `json:"due_date,omitempty"`
}
