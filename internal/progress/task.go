// Package progress tracks named long-running operations and renders
// their state through pluggable bar styles.
package progress

import "time"

// Status enumerates the lifecycle of a tracked task.
type Status int

const (
	StatusRunning Status = iota
	StatusCompleted
	StatusCancelled
	StatusFailed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task is one tracked operation. Total is fixed at creation; Current
// only ever advances towards it.
type Task struct {
	ID       string
	Title    string
	Total    int
	Current  int
	Status   Status
	Note     string
	Started  time.Time
	Ended    *time.Time
	Metadata map[string]string
}

// Percent returns completion in [0, 100]; a zero total reports 0.
func (t *Task) Percent() float64 {
	if t.Total <= 0 {
		return 0
	}
	return float64(t.Current) / float64(t.Total) * 100
}

// Elapsed is the wall time spent on the task so far, frozen once the
// task has ended.
func (t *Task) Elapsed() time.Duration {
	end := time.Now()
	if t.Ended != nil {
		end = *t.Ended
	}
	return end.Sub(t.Started)
}

// EstimatedRemaining extrapolates time left from the observed rate.
// It reports false until at least one unit of progress exists.
func (t *Task) EstimatedRemaining() (time.Duration, bool) {
	if t.Current <= 0 || t.Total <= 0 {
		return 0, false
	}
	elapsed := t.Elapsed()
	if elapsed <= 0 {
		return 0, false
	}
	remaining := time.Duration(float64(elapsed) * float64(t.Total-t.Current) / float64(t.Current))
	return remaining, true
}
