package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	"github.com/ghuser/taskdeck/pkg/logger"
	pkgvalidator "github.com/ghuser/taskdeck/pkg/validator"
	appsvcs "github.com/ghuser/taskdeck/services/user/application/services"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required"       example:"correct horse battery"`
} // @name LoginRequest

// PostLoginHandler handles POST /auth/login requests.
type PostLoginHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
	log   logger.Logger
}

// NewPostLoginHandler returns a PostLoginHandler backed by the given services
// and session store.
func NewPostLoginHandler(svc *appsvcs.Services, store sessions.Store, log logger.Logger) *PostLoginHandler {
	return &PostLoginHandler{svc: svc, store: store, log: log}
}

// Execute verifies credentials and establishes a session cookie.
//
//	@Summary		Login
//	@Description	Verifies credentials and sets the session cookie
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Login request"
//	@Success		200		{object}	UserResponse
//	@Failure		401		{object}	UserErrorResponse
//	@Failure		422		{object}	UserErrorResponse
//	@Router			/auth/login [post]
func (h *PostLoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}

	user, err := h.svc.User.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if err := auth.SignIn(h.store, w, r, user.ID); err != nil {
		h.log.ErrorContext(r.Context(), "failed to establish session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "failed to establish session")
		return
	}

	httpx.JSON(w, http.StatusOK, toUserResponse(user))
}
