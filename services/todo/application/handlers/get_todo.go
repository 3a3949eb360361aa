package handlers

import (
	"net/http"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	appsvcs "github.com/ghuser/taskdeck/services/todo/application/services"
)

// GetTodoHandler handles GET /todos/{id} requests.
type GetTodoHandler struct {
	svc *appsvcs.Services
}

// NewGetTodoHandler returns a GetTodoHandler backed by the given services.
func NewGetTodoHandler(svc *appsvcs.Services) *GetTodoHandler {
	return &GetTodoHandler{svc: svc}
}

// Execute fetches a single todo by id.
//
//	@Summary		Get todo
//	@Description	Fetches one of the authenticated user's todos by id
//	@Tags			todos
//	@Produce		json
//	@Param			id	path		string	true	"Todo ID"
//	@Success		200	{object}	TodoResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/todos/{id} [get]
func (h *GetTodoHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, ok := todoIDFromRequest(w, r)
	if !ok {
		return
	}

	todo, err := h.svc.Todo.Get(r.Context(), userID, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTodoResponse(todo))
}
