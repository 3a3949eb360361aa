package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/httpx"
	"github.com/ghuser/taskdeck/pkg/logger"
)

// MessageResponse is returned by operations with no record to echo back.
type MessageResponse struct {
	Message string `json:"message" example:"signed out"`
} // @name UserMessageResponse

// PostLogoutHandler handles POST /auth/logout requests.
type PostLogoutHandler struct {
	store sessions.Store
	log   logger.Logger
}

// NewPostLogoutHandler returns a PostLogoutHandler using the given session store.
func NewPostLogoutHandler(store sessions.Store, log logger.Logger) *PostLogoutHandler {
	return &PostLogoutHandler{store: store, log: log}
}

// Execute expires the session cookie and deletes the server-side session.
//
//	@Summary		Logout
//	@Description	Expires the session cookie
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	UserMessageResponse
//	@Failure		401	{object}	UserErrorResponse
//	@Router			/auth/logout [post]
func (h *PostLogoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(h.store, w, r); err != nil {
		h.log.ErrorContext(r.Context(), "failed to clear session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "failed to sign out")
		return
	}
	httpx.JSON(w, http.StatusOK, MessageResponse{Message: "signed out"})
}
