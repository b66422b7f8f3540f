package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// HandlePublishScheduledTask never asks asynq to retry: the outcome, failure
// included, is recorded on the scheduled post, and a retry would find the post
// already handled.
func (q *Queue) HandlePublishScheduledTask(ctx context.Context, task *asynq.Task) error {
	var payload ScheduledPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	out, err := q.runner.DispatchScheduled(ctx, payload.ScheduledPostID)
	if err != nil {
		slog.Warn("scheduled publish failed", "id", payload.ScheduledPostID, "error", err)
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	if out == nil {
		return nil
	}

	if !out.Result.Success {
		slog.Warn("scheduled publish rejected", "id", payload.ScheduledPostID, "platform", out.Platform, "message", out.Result.Message)
		return nil
	}
	slog.Info("scheduled post published", "id", payload.ScheduledPostID, "platform", out.Platform)
	return nil
}

// Register wires the task handlers into mux.
func (q *Queue) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskTypePublishScheduled, q.HandlePublishScheduledTask)
}
