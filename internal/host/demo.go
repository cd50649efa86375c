package host

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Demo is an in-memory Application used when the console runs without a
// real scraping engine behind it.
type Demo struct {
	mu        sync.Mutex
	started   time.Time
	active    map[string]Task
	completed map[string]Task
	sites     map[string]SiteConfig
	failed    int
}

// NewDemo seeds a demo host with a few sites and finished tasks.
func NewDemo() *Demo {
	d := &Demo{
		started:   time.Now(),
		active:    map[string]Task{},
		completed: map[string]Task{},
		sites: map[string]SiteConfig{
			"news":    {Name: "news", Description: "Daily news portal"},
			"prices":  {Name: "prices", Description: "Price comparison listings"},
			"reviews": {Name: "reviews", Description: "Product review pages"},
		},
	}
	for i := 0; i < 3; i++ {
		id := uuid.NewString()
		now := time.Now().Add(-time.Duration(i+1) * time.Minute)
		d.completed[id] = Task{ID: id, Status: "completed", SiteID: "news", CreatedAt: now, UpdatedAt: now.Add(30 * time.Second)}
	}
	return d
}

func (d *Demo) ActiveTasks() (map[string]Task, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return copyTasks(d.active), nil
}

func (d *Demo) CompletedTasks() (map[string]Task, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return copyTasks(d.completed), nil
}

func (d *Demo) EngineStatus() (EngineStatus, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return EngineStatus{
		Status:         "running",
		ActiveTasks:    len(d.active),
		QueueSize:      0,
		CompletedTasks: len(d.completed),
	}, nil
}

func (d *Demo) Status() (ApplicationStatus, error) {
	engine, _ := d.EngineStatus()
	d.mu.Lock()
	defer d.mu.Unlock()
	return ApplicationStatus{
		Initialized:       true,
		Running:           true,
		SiteConfigsLoaded: len(d.sites),
		Components: map[string]bool{
			"engine":  true,
			"storage": true,
			"network": true,
		},
		Engine: &engine,
	}, nil
}

func (d *Demo) HealthCheck() (Health, error) {
	return Health{
		Status:    "healthy",
		CheckedAt: time.Now(),
		Components: map[string]ComponentHealth{
			"engine":  {Healthy: true, Status: "ok"},
			"storage": {Healthy: true, Status: "ok"},
			"network": {Healthy: true, Status: "ok"},
		},
	}, nil
}

func (d *Demo) Metrics() (Metrics, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	total := len(d.completed) + d.failed
	rate := 1.0
	if total > 0 {
		rate = float64(len(d.completed)) / float64(total)
	}
	return Metrics{
		Engine: EngineMetrics{
			TasksCompleted:  len(d.completed),
			TasksFailed:     d.failed,
			SuccessRate:     rate,
			AverageTaskTime: 28 * time.Second,
			Uptime:          time.Since(d.started),
		},
		Storage: StorageMetrics{
			TotalFiles: 142 + len(d.completed)*7,
			TotalSize:  uint64(1<<26 + len(d.completed)*1<<20),
		},
	}, nil
}

func (d *Demo) SiteConfigs() (map[string]SiteConfig, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]SiteConfig, len(d.sites))
	for k, v := range d.sites {
		out[k] = v
	}
	return out, nil
}

func (d *Demo) CreateScrapingTask(siteID string, priority Priority) (Task, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.sites[siteID]; !ok {
		return Task{}, fmt.Errorf("unknown site %q", siteID)
	}
	now := time.Now()
	task := Task{ID: uuid.NewString(), Status: "queued", SiteID: siteID, CreatedAt: now, UpdatedAt: now}
	d.active[task.ID] = task
	return task, nil
}

func (d *Demo) CreateBackup(description string) (Backup, error) {
	_ = description
	d.mu.Lock()
	defer d.mu.Unlock()
	return Backup{
		ID:        uuid.NewString(),
		FileCount: 142 + len(d.completed)*7,
		TotalSize: uint64(1<<26 + len(d.completed)*1<<20),
		CreatedAt: time.Now(),
	}, nil
}

func (d *Demo) CleanupOldData() (CleanupResults, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	removed := 0
	cutoff := time.Now().Add(-time.Hour)
	for id, task := range d.completed {
		if task.UpdatedAt.Before(cutoff) {
			delete(d.completed, id)
			removed++
		}
	}
	return CleanupResults{
		DeletedFiles:    removed * 7,
		FreedBytes:      uint64(removed) * 1 << 20,
		ArchivedFiles:   removed,
		OldTasksRemoved: removed,
	}, nil
}

func copyTasks(in map[string]Task) map[string]Task {
	out := make(map[string]Task, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
