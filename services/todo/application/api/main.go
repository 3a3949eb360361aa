package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/taskdeck/pkg/app"
	"github.com/ghuser/taskdeck/services/todo/application/handlers"
	appsvcs "github.com/ghuser/taskdeck/services/todo/application/services"
)

// TodoRoutes registers todo endpoints on the provided chi router.
// The caller mounts these behind auth.RequireAuth.
func TodoRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/todos", func(r chi.Router) {
			r.Get("/", handlers.NewListTodosHandler(svcs).Execute)
			r.Post("/", handlers.NewPostTodoHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetTodoHandler(svcs).Execute)
			r.Patch("/{id}", handlers.NewPatchTodoHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteTodoHandler(svcs).Execute)
			r.Post("/{id}/toggle", handlers.NewToggleTodoHandler(svcs).Execute)
		})
	})
}
