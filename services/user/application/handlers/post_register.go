package handlers

import (
	"net/http"

	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	pkgvalidator "github.com/ghuser/taskdeck/pkg/validator"
	appsvcs "github.com/ghuser/taskdeck/services/user/application/services"
)

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"  example:"ada@example.com"`
	Password string `json:"password" validate:"required,min=8"  example:"correct horse battery"`
} // @name RegisterRequest

// PostRegisterHandler handles POST /auth/register requests.
type PostRegisterHandler struct {
	svc *appsvcs.Services
}

// NewPostRegisterHandler returns a PostRegisterHandler backed by the given services.
func NewPostRegisterHandler(svc *appsvcs.Services) *PostRegisterHandler {
	return &PostRegisterHandler{svc: svc}
}

// Execute creates a new account. Registration does not sign the user in;
// clients follow up with POST /auth/login.
//
//	@Summary		Register
//	@Description	Creates a new user account
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Registration request"
//	@Success		201		{object}	UserResponse
//	@Failure		400		{object}	UserErrorResponse
//	@Failure		409		{object}	UserErrorResponse
//	@Failure		422		{object}	UserErrorResponse
//	@Router			/auth/register [post]
func (h *PostRegisterHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RegisterRequest](w, r)
	if !ok {
		return
	}

	user, err := h.svc.User.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toUserResponse(user))
}
