package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/content-studio/internal/models"
)

const (
	defaultMaxRetry = 3
	defaultQueue    = "default"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskDeleter is satisfied by *asynq.Inspector.
type TaskDeleter interface {
	DeleteTask(queue, id string) error
}

// Dispatcher queues scheduled posts so the worker fires them at their time.
// The task id is the scheduled post id plus its time, so queueing the same post
// twice for the same time is a no-op while a new time gets its own task.
type Dispatcher struct {
	client Enqueuer
	tasks  TaskDeleter
	now    func() time.Time
}

// NewDispatcher builds a Dispatcher. tasks may be nil, in which case Cancel
// does nothing and a stale task is dropped by the worker when it fires.
func NewDispatcher(client Enqueuer, tasks TaskDeleter) *Dispatcher {
	return &Dispatcher{client: client, tasks: tasks, now: time.Now}
}

func TaskID(sp *models.ScheduledPost) string {
	return fmt.Sprintf("%s@%d", sp.ID, sp.ScheduledFor.Unix())
}

func (d *Dispatcher) Dispatch(ctx context.Context, sp *models.ScheduledPost) error {
	taskPayload, err := json.Marshal(ScheduledPostPayload{ScheduledPostID: sp.ID})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypePublishScheduled, taskPayload)

	delay := max(sp.ScheduledFor.Sub(d.now()), 0)
	_, err = d.client.EnqueueContext(ctx, task,
		asynq.TaskID(TaskID(sp)),
		asynq.Queue(defaultQueue),
		asynq.ProcessIn(delay),
		asynq.MaxRetry(defaultMaxRetry),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		slog.Info("scheduled post already queued", "id", sp.ID)
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("task scheduled", "id", sp.ID, "platform", sp.Platform, "in", delay.Round(time.Second))
	return nil
}

// Cancel deletes the task queued for sp at sp.ScheduledFor. A task that is
// already gone is not an error.
func (d *Dispatcher) Cancel(_ context.Context, sp *models.ScheduledPost) error {
	if d.tasks == nil {
		return nil
	}
	err := d.tasks.DeleteTask(defaultQueue, TaskID(sp))
	if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	slog.Info("stale task removed", "id", sp.ID, "was", sp.ScheduledFor)
	return nil
}
