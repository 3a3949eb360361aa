// Package workflows contains Temporal workflows for the todo bounded context.
package workflows

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/taskdeck/services/todo/domain/repositories"
)

// TaskQueue is the Temporal task queue the retention worker listens on.
const TaskQueue = "taskdeck-retention"

// PurgeWorkflowID is the fixed workflow ID for the cron-scheduled purge.
const PurgeWorkflowID = "completed-todo-purge"

// PurgeInput parameterizes a purge run.
type PurgeInput struct {
	// Retention is how long completed todos are kept after their last update.
	Retention time.Duration
}

// PurgeResult reports the outcome of a purge run.
type PurgeResult struct {
	Purged int64
	Cutoff time.Time
}

// PurgeCompletedTodos is a cron-scheduled workflow that hard-deletes completed
// todos older than the retention window. The heavy lifting happens in the
// activity; the workflow only supplies retry policy and timeouts.
func PurgeCompletedTodos(ctx workflow.Context, input PurgeInput) (PurgeResult, error) {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var result PurgeResult
	var a *PurgeActivities
	if err := workflow.ExecuteActivity(ctx, a.PurgeCompleted, input).Get(ctx, &result); err != nil {
		return PurgeResult{}, err
	}

	workflow.GetLogger(ctx).Info("completed-todo purge finished",
		"purged", result.Purged, "cutoff", result.Cutoff)
	return result, nil
}

// PurgeActivities holds dependencies for the purge activity.
type PurgeActivities struct {
	Repo repositories.TodoRepository
}

// NewPurgeActivities returns activities bound to the given repository.
func NewPurgeActivities(repo repositories.TodoRepository) *PurgeActivities {
	return &PurgeActivities{Repo: repo}
}

// PurgeCompleted deletes completed todos last updated before now-Retention.
// Idempotent: re-running with the same cutoff deletes nothing extra.
func (a *PurgeActivities) PurgeCompleted(ctx context.Context, input PurgeInput) (PurgeResult, error) {
	cutoff := time.Now().UTC().Add(-input.Retention)
	purged, err := a.Repo.PurgeCompleted(ctx, cutoff)
	if err != nil {
		return PurgeResult{}, err
	}
	return PurgeResult{Purged: purged, Cutoff: cutoff}, nil
}
