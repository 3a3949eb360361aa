package handlers

import (
	"net/http"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	pkgvalidator "github.com/ghuser/taskdeck/pkg/validator"
	appsvcs "github.com/ghuser/taskdeck/services/todo/application/services"
)

// CreateTodoRequest is the request body for POST /todos.
// Title constraints (non-blank, <= 255 chars) are enforced by the domain so
// an empty title maps to 400, not the validator's 422.
type CreateTodoRequest struct {
	Title       string  `json:"title"       example:"Buy milk"`
	Description *string `json:"description" example:"2 liters, whole"`
	Completed   bool    `json:"completed"   example:"false"`
} // @name CreateTodoRequest

// PostTodoHandler handles POST /todos requests.
type PostTodoHandler struct {
	svc *appsvcs.Services
}

// NewPostTodoHandler returns a PostTodoHandler backed by the given services.
func NewPostTodoHandler(svc *appsvcs.Services) *PostTodoHandler {
	return &PostTodoHandler{svc: svc}
}

// Execute creates a new todo owned by the authenticated user.
//
//	@Summary		Create todo
//	@Description	Creates a new todo owned by the authenticated user
//	@Tags			todos
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateTodoRequest	true	"Todo creation request"
//	@Success		201		{object}	TodoResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/todos [post]
func (h *PostTodoHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateTodoRequest](w, r)
	if !ok {
		return
	}

	todo, err := h.svc.Todo.Create(r.Context(), userID, req.Title, req.Description, req.Completed)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toTodoResponse(todo))
}
