// Package host defines the capability surface the console expects from
// the scraping application. Every call is synchronous and fallible; the
// console catches and renders errors, it never crashes on them.
package host

import "time"

// Task is a scraping task as reported by the engine.
type Task struct {
	ID        string
	Status    string
	SiteID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Priority orders tasks in the engine queue.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

// EngineStatus summarises the scraping engine.
type EngineStatus struct {
	Status         string
	ActiveTasks    int
	QueueSize      int
	CompletedTasks int
}

// ApplicationStatus summarises the host application.
type ApplicationStatus struct {
	Initialized       bool
	Running           bool
	SiteConfigsLoaded int
	Components        map[string]bool
	Engine            *EngineStatus
}

// ComponentHealth is one component's health report.
type ComponentHealth struct {
	Healthy bool
	Status  string
}

// Health is the application-wide health report.
type Health struct {
	Status     string
	CheckedAt  time.Time
	Components map[string]ComponentHealth
}

// EngineMetrics aggregates engine performance counters.
type EngineMetrics struct {
	TasksCompleted  int
	TasksFailed     int
	SuccessRate     float64
	AverageTaskTime time.Duration
	Uptime          time.Duration
}

// StorageMetrics aggregates storage usage.
type StorageMetrics struct {
	TotalFiles int
	TotalSize  uint64
}

// Metrics bundles all host metrics.
type Metrics struct {
	Engine  EngineMetrics
	Storage StorageMetrics
}

// Backup describes a created backup.
type Backup struct {
	ID        string
	FileCount int
	TotalSize uint64
	CreatedAt time.Time
}

// CleanupResults reports what a cleanup pass removed.
type CleanupResults struct {
	DeletedFiles    int
	FreedBytes      uint64
	ArchivedFiles   int
	OldTasksRemoved int
}

// SiteConfig identifies a configured scraping target.
type SiteConfig struct {
	Name        string
	Description string
}

// Application is the inbound capability set.
type Application interface {
	ActiveTasks() (map[string]Task, error)
	CompletedTasks() (map[string]Task, error)
	EngineStatus() (EngineStatus, error)
	Status() (ApplicationStatus, error)
	HealthCheck() (Health, error)
	Metrics() (Metrics, error)
	SiteConfigs() (map[string]SiteConfig, error)
	CreateScrapingTask(siteID string, priority Priority) (Task, error)
	CreateBackup(description string) (Backup, error)
	CleanupOldData() (CleanupResults, error)
}

// TaskState classifies a task id against the engine registries.
type TaskState int

const (
	TaskStateActive TaskState = iota
	TaskStateCompleted
	TaskStatePending
	TaskStateUnknown
)

// String implements fmt.Stringer.
func (s TaskState) String() string {
	switch s {
	case TaskStateActive:
		return "active"
	case TaskStateCompleted:
		return "completed"
	case TaskStatePending:
		return "pending"
	default:
		return "unknown"
	}
}

// LookupTaskState resolves an id against both registries. An id present
// in neither is reported as unknown, a distinct observable state: the
// host may have evicted it independently of completion, so it must not
// be conflated with pending.
func LookupTaskState(id string, active, completed map[string]Task) TaskState {
	if _, ok := active[id]; ok {
		return TaskStateActive
	}
	if _, ok := completed[id]; ok {
		return TaskStateCompleted
	}
	return TaskStateUnknown
}
