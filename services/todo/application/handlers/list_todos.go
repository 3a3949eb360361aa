package handlers

import (
	"net/http"
	"strconv"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	appsvcs "github.com/ghuser/taskdeck/services/todo/application/services"
	"github.com/ghuser/taskdeck/services/todo/domain/repositories"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// ListTodosHandler handles GET /todos requests.
type ListTodosHandler struct {
	svc *appsvcs.Services
}

// NewListTodosHandler returns a ListTodosHandler backed by the given services.
func NewListTodosHandler(svc *appsvcs.Services) *ListTodosHandler {
	return &ListTodosHandler{svc: svc}
}

// Execute lists the authenticated user's todos, newest first.
// The body is a bare JSON array; the total count (ignoring pagination) is
// exposed in the X-Total-Count header.
//
//	@Summary		List todos
//	@Description	Lists the authenticated user's todos, newest first
//	@Tags			todos
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum records to return (default 100, max 500)"
//	@Param			offset	query		int	false	"Records to skip"
//	@Success		200		{array}		TodoResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/todos [get]
func (h *ListTodosHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	opts := queryOptsFromRequest(r)
	todos, total, err := h.svc.Todo.List(r.Context(), userID, opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]TodoResponse, len(todos))
	for i, t := range todos {
		resp[i] = toTodoResponse(t)
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	httpx.JSON(w, http.StatusOK, resp)
}

func queryOptsFromRequest(r *http.Request) repositories.QueryOpts {
	opts := repositories.QueryOpts{Limit: defaultListLimit}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		opts.Limit = min(v, maxListLimit)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		opts.Offset = v
	}
	return opts
}
