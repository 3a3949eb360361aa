package handlers

import (
	"net/http"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	appsvcs "github.com/ghuser/taskdeck/services/todo/application/services"
)

// ToggleTodoHandler handles POST /todos/{id}/toggle requests.
// Convenience shortcut for PATCH {"completed": !current}.
type ToggleTodoHandler struct {
	svc *appsvcs.Services
}

// NewToggleTodoHandler returns a ToggleTodoHandler backed by the given services.
func NewToggleTodoHandler(svc *appsvcs.Services) *ToggleTodoHandler {
	return &ToggleTodoHandler{svc: svc}
}

// Execute flips a todo's completion flag.
//
//	@Summary		Toggle todo
//	@Description	Flips the completion flag of one of the authenticated user's todos
//	@Tags			todos
//	@Produce		json
//	@Param			id	path		string	true	"Todo ID"
//	@Success		200	{object}	TodoResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/todos/{id}/toggle [post]
func (h *ToggleTodoHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, ok := todoIDFromRequest(w, r)
	if !ok {
		return
	}

	todo, err := h.svc.Todo.Toggle(r.Context(), userID, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTodoResponse(todo))
}
