package server

import (
	"testing"
	"time"

	"hiresight/internal/types"
)

func TestTaskLifecycle(t *testing.T) {
	ts := NewTaskStore(nil)
	defer ts.Close()

	task := ts.Create()
	if task.ID == "" {
		t.Fatal("Create() should assign a task ID")
	}
	if task.Status != TaskStatusPending {
		t.Errorf("new task status = %q, want %q", task.Status, TaskStatusPending)
	}

	ts.SetProgress(task.ID, 50)
	got, ok := ts.Get(task.ID)
	if !ok {
		t.Fatal("Get() should find the task")
	}
	if got.Status != TaskStatusRunning || got.Progress != 50 {
		t.Errorf("after SetProgress: status = %q progress = %d, want running/50", got.Status, got.Progress)
	}

	pkg := &types.HiringPackage{JobDescription: &types.GeneratedJobDescription{}}
	ts.Complete(task.ID, pkg)
	got, _ = ts.Get(task.ID)
	if got.Status != TaskStatusCompleted {
		t.Errorf("after Complete: status = %q, want %q", got.Status, TaskStatusCompleted)
	}
	if got.Progress != 100 {
		t.Errorf("after Complete: progress = %d, want 100", got.Progress)
	}
	if got.Result == nil || got.Result.JobDescription == nil {
		t.Error("after Complete: result should carry the hiring package")
	}
}

func TestTaskFail(t *testing.T) {
	ts := NewTaskStore(nil)
	defer ts.Close()

	task := ts.Create()
	ts.Fail(task.ID, "start date must be in YYYY-MM-DD format")

	got, _ := ts.Get(task.ID)
	if got.Status != TaskStatusFailed {
		t.Errorf("status = %q, want %q", got.Status, TaskStatusFailed)
	}
	if got.Error == "" {
		t.Error("failed task should carry an error message")
	}
	if got.Result != nil {
		t.Error("failed task should not carry a result")
	}
}

func TestTaskGetUnknown(t *testing.T) {
	ts := NewTaskStore(nil)
	defer ts.Close()

	if _, ok := ts.Get("no-such-task"); ok {
		t.Error("Get() should report missing tasks")
	}
}

func TestTaskCleanupEvictsFinished(t *testing.T) {
	ts := NewTaskStore(nil)
	defer ts.Close()

	finished := ts.Create()
	ts.Complete(finished.ID, nil)
	pending := ts.Create()

	// Backdate the finished task past the retention window
	ts.mu.Lock()
	ts.tasks[finished.ID].UpdatedAt = time.Now().Add(-2 * time.Hour)
	ts.mu.Unlock()

	ts.cleanup(time.Hour)

	if _, ok := ts.Get(finished.ID); ok {
		t.Error("finished task past retention should be evicted")
	}
	if _, ok := ts.Get(pending.ID); !ok {
		t.Error("pending task should survive cleanup")
	}
	if ts.Count() != 1 {
		t.Errorf("Count() = %d, want 1", ts.Count())
	}
}
