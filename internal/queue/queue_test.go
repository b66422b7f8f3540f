package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{}, nil
}

func optionValue(opts []asynq.Option, typ asynq.OptionType) any {
	for _, o := range opts {
		if o.Type() == typ {
			return o.Value()
		}
	}
	return nil
}

func TestDispatcher_Dispatch(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	enq := &fakeEnqueuer{}
	d := NewDispatcher(enq, nil)
	d.now = func() time.Time { return now }

	sp := &models.ScheduledPost{ID: "scheduled-1", Platform: models.PlatformTwitter, ScheduledFor: now.Add(90 * time.Minute)}
	require.NoError(t, d.Dispatch(context.Background(), sp))

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TaskTypePublishScheduled, enq.tasks[0].Type())
	var payload ScheduledPostPayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &payload))
	assert.Equal(t, "scheduled-1", payload.ScheduledPostID)

	assert.Equal(t, TaskID(sp), optionValue(enq.opts[0], asynq.TaskIDOpt))
	assert.Equal(t, 90*time.Minute, optionValue(enq.opts[0], asynq.ProcessInOpt))
	assert.Equal(t, defaultQueue, optionValue(enq.opts[0], asynq.QueueOpt))
}

func TestDispatcher_NewTimeGetsNewTask(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	sp := &models.ScheduledPost{ID: "scheduled-1", ScheduledFor: now.Add(time.Hour)}
	first := TaskID(sp)
	assert.Equal(t, first, TaskID(&models.ScheduledPost{ID: "scheduled-1", ScheduledFor: now.Add(time.Hour)}))

	sp.ScheduledFor = now.Add(48 * time.Hour)
	assert.NotEqual(t, first, TaskID(sp))
}

type fakeDeleter struct {
	deleted []string
	err     error
}

func (f *fakeDeleter) DeleteTask(qname, id string) error {
	f.deleted = append(f.deleted, qname+"/"+id)
	return f.err
}

func TestDispatcher_Cancel(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	sp := &models.ScheduledPost{ID: "scheduled-1", ScheduledFor: at}

	del := &fakeDeleter{}
	d := NewDispatcher(&fakeEnqueuer{}, del)
	require.NoError(t, d.Cancel(ctx, sp))
	assert.Equal(t, []string{"default/" + TaskID(sp)}, del.deleted)

	del.err = asynq.ErrTaskNotFound
	assert.NoError(t, d.Cancel(ctx, sp))

	del.err = errors.New("redis down")
	assert.Error(t, d.Cancel(ctx, sp))

	assert.NoError(t, NewDispatcher(&fakeEnqueuer{}, nil).Cancel(ctx, sp))
}

func TestDispatcher_OverdueRunsNow(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	enq := &fakeEnqueuer{}
	d := NewDispatcher(enq, nil)
	d.now = func() time.Time { return now }

	require.NoError(t, d.Dispatch(context.Background(), &models.ScheduledPost{ID: "late", ScheduledFor: now.Add(-time.Hour)}))
	assert.Equal(t, time.Duration(0), optionValue(enq.opts[0], asynq.ProcessInOpt))
}

func TestDispatcher_ConflictIsQueued(t *testing.T) {
	d := NewDispatcher(&fakeEnqueuer{err: asynq.ErrTaskIDConflict}, nil)
	assert.NoError(t, d.Dispatch(context.Background(), &models.ScheduledPost{ID: "dup"}))

	d = NewDispatcher(&fakeEnqueuer{err: errors.New("redis down")}, nil)
	assert.Error(t, d.Dispatch(context.Background(), &models.ScheduledPost{ID: "x"}))
}

type fakeRunner struct {
	got []string
	out *publish.Outcome
	err error
}

func (f *fakeRunner) DispatchScheduled(_ context.Context, id string) (*publish.Outcome, error) {
	f.got = append(f.got, id)
	return f.out, f.err
}

func task(t *testing.T, id string) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(ScheduledPostPayload{ScheduledPostID: id})
	require.NoError(t, err)
	return asynq.NewTask(TaskTypePublishScheduled, b)
}

func TestHandlePublishScheduledTask(t *testing.T) {
	t.Run("published", func(t *testing.T) {
		r := &fakeRunner{out: &publish.Outcome{Platform: models.PlatformTwitter, Result: models.PublishResult{Success: true}}}
		require.NoError(t, NewQueue(r).HandlePublishScheduledTask(context.Background(), task(t, "sp-1")))
		assert.Equal(t, []string{"sp-1"}, r.got)
	})

	t.Run("rejected result is not retried", func(t *testing.T) {
		r := &fakeRunner{out: &publish.Outcome{Platform: models.PlatformTwitter, Result: models.PublishResult{Message: "nope"}}}
		assert.NoError(t, NewQueue(r).HandlePublishScheduledTask(context.Background(), task(t, "sp-1")))
	})

	t.Run("already handled", func(t *testing.T) {
		assert.NoError(t, NewQueue(&fakeRunner{}).HandlePublishScheduledTask(context.Background(), task(t, "sp-1")))
	})

	t.Run("errors skip retry", func(t *testing.T) {
		r := &fakeRunner{err: models.ErrScheduledPostNotFound}
		err := NewQueue(r).HandlePublishScheduledTask(context.Background(), task(t, "gone"))
		assert.ErrorIs(t, err, asynq.SkipRetry)
		assert.ErrorIs(t, err, models.ErrScheduledPostNotFound)
	})

	t.Run("bad payload", func(t *testing.T) {
		r := &fakeRunner{}
		err := NewQueue(r).HandlePublishScheduledTask(context.Background(), asynq.NewTask(TaskTypePublishScheduled, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
		assert.Empty(t, r.got)
	})
}
