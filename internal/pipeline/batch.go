package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// MaxConcurrentTasks bounds how many tailoring runs a collector executes at
// once.
const MaxConcurrentTasks = 4

// TaskStatus is the lifecycle state of a batch task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskSucceeded TaskStatus = "succeeded"
	TaskFailed    TaskStatus = "failed"
	TaskCanceled  TaskStatus = "canceled"
)

// Task is a snapshot of one batch run.
type Task struct {
	ID     string
	JobURL string
	Status TaskStatus
	JobID  string
	Output string
	Err    error
}

type taskState struct {
	task   Task
	cancel context.CancelFunc
}

// Collector runs tailoring pipelines as isolated background tasks. Each
// task gets its own cancellable context; one failure never affects the
// others.
type Collector struct {
	pipeline *Pipeline
	sem      *semaphore.Weighted

	mu    sync.Mutex
	tasks map[string]*taskState
	wg    sync.WaitGroup
}

// NewCollector creates a collector bound to MaxConcurrentTasks parallel
// runs.
func NewCollector(p *Pipeline) *Collector {
	return &Collector{
		pipeline: p,
		sem:      semaphore.NewWeighted(MaxConcurrentTasks),
		tasks:    make(map[string]*taskState),
	}
}

// Submit schedules a run and returns its task ID immediately.
func (c *Collector) Submit(ctx context.Context, opts RunOptions) string {
	id := uuid.NewString()
	taskCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.tasks[id] = &taskState{
		task:   Task{ID: id, JobURL: opts.JobURL, Status: TaskPending},
		cancel: cancel,
	}
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		c.run(taskCtx, id, opts)
	}()

	return id
}

// run executes one task under the concurrency bound.
func (c *Collector) run(ctx context.Context, id string, opts RunOptions) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		c.finish(id, nil, err)
		return
	}
	defer c.sem.Release(1)

	if ctx.Err() != nil {
		c.finish(id, nil, ctx.Err())
		return
	}

	c.setStatus(id, TaskRunning)

	result, err := c.pipeline.Run(ctx, opts)
	c.finish(id, result, err)
}

// Cancel stops a task. Pending tasks never start; running tasks see their
// context canceled.
func (c *Collector) Cancel(id string) bool {
	c.mu.Lock()
	state, ok := c.tasks[id]
	c.mu.Unlock()
	if !ok {
		return false
	}
	state.cancel()
	return true
}

// Wait blocks until every submitted task has finished.
func (c *Collector) Wait() {
	c.wg.Wait()
}

// Get returns a snapshot of one task.
func (c *Collector) Get(id string) (Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, ok := c.tasks[id]
	if !ok {
		return Task{}, false
	}
	return state.task, true
}

// Tasks returns a snapshot of every task.
func (c *Collector) Tasks() []Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Task, 0, len(c.tasks))
	for _, state := range c.tasks {
		out = append(out, state.task)
	}
	return out
}

func (c *Collector) setStatus(id string, status TaskStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if state, ok := c.tasks[id]; ok {
		state.task.Status = status
	}
}

func (c *Collector) finish(id string, result *Result, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, ok := c.tasks[id]
	if !ok {
		return
	}
	switch {
	case err == nil:
		state.task.Status = TaskSucceeded
		state.task.JobID = result.JobID
		state.task.Output = result.OutputPath
	case errors.Is(err, context.Canceled):
		state.task.Status = TaskCanceled
		state.task.Err = err
	default:
		state.task.Status = TaskFailed
		state.task.Err = err
	}
}
