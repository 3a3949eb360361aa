package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/taskdeck/pkg/app"
	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/services/user/application/handlers"
	appsvcs "github.com/ghuser/taskdeck/services/user/application/services"
)

// UserRoutes registers authentication endpoints on the provided chi router.
// Register and login are public; logout and me require a session.
func UserRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handlers.NewPostRegisterHandler(svcs).Execute)
		r.Post("/login", handlers.NewPostLoginHandler(svcs, a.SessionStore, a.Logger).Execute)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
			r.Post("/logout", handlers.NewPostLogoutHandler(a.SessionStore, a.Logger).Execute)
			r.Get("/me", handlers.NewGetMeHandler(svcs).Execute)
		})
	})
}
