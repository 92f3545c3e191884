package server

import (
	"sync"
	"time"

	"hiresight/internal/errors"
	"hiresight/internal/types"

	"github.com/google/uuid"
)

// Task statuses reported to polling clients.
const (
	TaskStatusPending   = "pending"
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)

// Task tracks one asynchronous generation request.
type Task struct {
	ID        string               `json:"task_id"`
	Status    string               `json:"status"`
	Progress  int                  `json:"progress"`
	Result    *types.HiringPackage `json:"result,omitempty"`
	Error     string               `json:"error,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// TaskStore holds in-flight and recently finished tasks. Finished tasks
// are evicted after the retention period.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[string]*Task
	done   chan struct{}
	logger *errors.Logger
}

// NewTaskStore creates a task store and starts its eviction routine.
func NewTaskStore(logger *errors.Logger) *TaskStore {
	ts := &TaskStore{
		tasks:  make(map[string]*Task),
		done:   make(chan struct{}),
		logger: logger,
	}
	go ts.cleanupRoutine(10*time.Minute, time.Hour)
	return ts
}

// Create registers a new pending task and returns its ID.
func (ts *TaskStore) Create() *Task {
	now := time.Now()
	task := &Task{
		ID:        uuid.NewString(),
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ts.mu.Lock()
	ts.tasks[task.ID] = task
	ts.mu.Unlock()

	return task
}

// Get returns a snapshot of the task with the given ID.
func (ts *TaskStore) Get(id string) (Task, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	task, ok := ts.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// SetProgress advances a running task.
func (ts *TaskStore) SetProgress(id string, progress int) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if task, ok := ts.tasks[id]; ok {
		task.Status = TaskStatusRunning
		task.Progress = progress
		task.UpdatedAt = time.Now()
	}
}

// Complete marks a task finished with its result.
func (ts *TaskStore) Complete(id string, result *types.HiringPackage) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if task, ok := ts.tasks[id]; ok {
		task.Status = TaskStatusCompleted
		task.Progress = 100
		task.Result = result
		task.UpdatedAt = time.Now()
	}
}

// Fail marks a task failed with an error message.
func (ts *TaskStore) Fail(id string, errMsg string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if task, ok := ts.tasks[id]; ok {
		task.Status = TaskStatusFailed
		task.Error = errMsg
		task.UpdatedAt = time.Now()
	}
}

// Count returns the number of tracked tasks.
func (ts *TaskStore) Count() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return len(ts.tasks)
}

func (ts *TaskStore) cleanupRoutine(interval, retention time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ts.cleanup(retention)
		case <-ts.done:
			return
		}
	}
}

// cleanup evicts finished tasks older than the retention period.
func (ts *TaskStore) cleanup(retention time.Duration) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	now := time.Now()
	for id, task := range ts.tasks {
		finished := task.Status == TaskStatusCompleted || task.Status == TaskStatusFailed
		if finished && now.Sub(task.UpdatedAt) > retention {
			delete(ts.tasks, id)
		}
	}

	if ts.logger != nil {
		ts.logger.Debug("Task store cleanup completed", "remaining_tasks", len(ts.tasks))
	}
}

// Close stops the eviction routine. Should be called on server shutdown.
func (ts *TaskStore) Close() {
	close(ts.done)
}
