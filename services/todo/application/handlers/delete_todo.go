package handlers

import (
	"net/http"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	appsvcs "github.com/ghuser/taskdeck/services/todo/application/services"
)

// DeleteTodoHandler handles DELETE /todos/{id} requests.
type DeleteTodoHandler struct {
	svc *appsvcs.Services
}

// NewDeleteTodoHandler returns a DeleteTodoHandler backed by the given services.
func NewDeleteTodoHandler(svc *appsvcs.Services) *DeleteTodoHandler {
	return &DeleteTodoHandler{svc: svc}
}

// Execute hard-deletes a todo. Deleting an already-deleted id yields 404.
//
//	@Summary		Delete todo
//	@Description	Removes one of the authenticated user's todos
//	@Tags			todos
//	@Produce		json
//	@Param			id	path		string	true	"Todo ID"
//	@Success		200	{object}	MessageResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/todos/{id} [delete]
func (h *DeleteTodoHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, ok := todoIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.svc.Todo.Delete(r.Context(), userID, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, MessageResponse{Message: "todo deleted"})
}
