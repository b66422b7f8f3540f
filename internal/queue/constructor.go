package queue

import (
	"context"

	"github.com/maheshrc27/content-studio/internal/publish"
)

// Runner fires one scheduled post.
type Runner interface {
	DispatchScheduled(ctx context.Context, scheduledID string) (*publish.Outcome, error)
}

type Queue struct {
	runner Runner
}

func NewQueue(runner Runner) *Queue {
	return &Queue{
		runner: runner,
	}
}

const TaskTypePublishScheduled = "publish:scheduled"

type ScheduledPostPayload struct {
	ScheduledPostID string `json:"scheduled_post_id"`
}
