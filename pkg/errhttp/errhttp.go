// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/taskdeck/pkg/httpx"
	tododomain "github.com/ghuser/taskdeck/services/todo/domain"
	userdomain "github.com/ghuser/taskdeck/services/user/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, tododomain.ErrTodoNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, tododomain.ErrNotOwner):
		return http.StatusForbidden // 403
	case errors.Is(err, tododomain.ErrInvalidTitle):
		return http.StatusBadRequest // 400
	case errors.Is(err, userdomain.ErrUserNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, userdomain.ErrEmailTaken):
		return http.StatusConflict // 409
	case errors.Is(err, userdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized // 401
	case errors.Is(err, userdomain.ErrInvalidEmail), errors.Is(err, userdomain.ErrWeakPassword):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
