package services

import (
	"github.com/ghuser/taskdeck/pkg/app"
	"github.com/ghuser/taskdeck/pkg/cache"
	"github.com/ghuser/taskdeck/services/todo/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Todo *TodoService
}

// New wires all todo application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewTodoRepository(a.Db, a.EventBus)
	todoCache := cache.NewTodoCache(a.Redis)
	return &Services{
		Todo: NewTodoService(repo, todoCache),
	}
}
