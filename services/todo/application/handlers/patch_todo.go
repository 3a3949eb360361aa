package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	appsvcs "github.com/ghuser/taskdeck/services/todo/application/services"
)

// UpdateTodoRequest is the request body for PATCH /todos/{id}.
// Any subset of the fields may be supplied; absent fields are left unchanged.
// `"description": null` explicitly clears the description, which is why the
// raw JSON is inspected rather than relying on pointer zero values.
type UpdateTodoRequest struct {
	Title       *string `json:"title"       example:"Buy oat milk"`
	Description *string `json:"description" example:"2 liters"`
	Completed   *bool   `json:"completed"   example:"true"`
} // @name UpdateTodoRequest

// PatchTodoHandler handles PATCH /todos/{id} requests.
type PatchTodoHandler struct {
	svc *appsvcs.Services
}

// NewPatchTodoHandler returns a PatchTodoHandler backed by the given services.
func NewPatchTodoHandler(svc *appsvcs.Services) *PatchTodoHandler {
	return &PatchTodoHandler{svc: svc}
}

// Execute applies a partial update to a todo.
//
//	@Summary		Update todo
//	@Description	Applies any subset of title/description/completed to one of the authenticated user's todos
//	@Tags			todos
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Todo ID"
//	@Param			request	body		UpdateTodoRequest	true	"Fields to update"
//	@Success		200		{object}	TodoResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/todos/{id} [patch]
func (h *PatchTodoHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, ok := todoIDFromRequest(w, r)
	if !ok {
		return
	}

	patch, ok := patchFromBody(w, r)
	if !ok {
		return
	}

	todo, err := h.svc.Todo.Update(r.Context(), userID, id, patch)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTodoResponse(todo))
}

// patchFromBody decodes the request body into a TodoPatch, tracking which
// keys were present so "description": null can clear the field.
func patchFromBody(w http.ResponseWriter, r *http.Request) (appsvcs.TodoPatch, bool) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return appsvcs.TodoPatch{}, false
	}

	var req UpdateTodoRequest
	var patch appsvcs.TodoPatch

	if v, ok := raw["title"]; ok {
		if err := json.Unmarshal(v, &req.Title); err != nil || req.Title == nil {
			httpx.JSONError(w, http.StatusBadRequest, "title must be a string")
			return appsvcs.TodoPatch{}, false
		}
		patch.Title = req.Title
	}
	if v, ok := raw["description"]; ok {
		if err := json.Unmarshal(v, &req.Description); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "description must be a string or null")
			return appsvcs.TodoPatch{}, false
		}
		patch.Description = req.Description
		patch.DescriptionSet = true
	}
	if v, ok := raw["completed"]; ok {
		if err := json.Unmarshal(v, &req.Completed); err != nil || req.Completed == nil {
			httpx.JSONError(w, http.StatusBadRequest, "completed must be a boolean")
			return appsvcs.TodoPatch{}, false
		}
		patch.Completed = req.Completed
	}

	return patch, true
}
