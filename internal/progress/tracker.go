package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scrapeworks/scrape-console/internal/logging/events"
)

// reapGrace is how long a completed task stays visible before it is
// dropped from the registry.
const reapGrace = 5 * time.Second

// Tracker is the registry of tracked operations. All mutation goes
// through Start/Update/Complete/Fail; readers get copies and must
// tolerate a task disappearing between calls.
type Tracker struct {
	mu       sync.Mutex
	tasks    map[string]*Task
	out      io.Writer
	renderer *Renderer
	style    Style
	grace    time.Duration
	timers   map[string]*time.Timer
}

// NewTracker writes bars to out using the given style.
func NewTracker(out io.Writer, style Style) *Tracker {
	return &Tracker{
		tasks:    make(map[string]*Task),
		out:      out,
		renderer: NewRenderer(50),
		style:    style,
		grace:    reapGrace,
		timers:   make(map[string]*time.Timer),
	}
}

// SetStyle switches the active rendering strategy.
func (tr *Tracker) SetStyle(style Style) {
	tr.mu.Lock()
	tr.style = style
	tr.mu.Unlock()
}

// SetWidth resizes the rendered bar; called on terminal resize.
func (tr *Tracker) SetWidth(width int) {
	tr.mu.Lock()
	if width < 10 {
		width = 10
	}
	tr.renderer.Width = width
	tr.mu.Unlock()
}

// Start registers a new running task and returns its handle. An empty
// id gets a generated one.
func (tr *Tracker) Start(id, title string, total int) string {
	if id == "" {
		id = uuid.NewString()
	}
	task := &Task{
		ID:       id,
		Title:    title,
		Total:    total,
		Status:   StatusRunning,
		Started:  time.Now(),
		Metadata: make(map[string]string),
	}
	tr.mu.Lock()
	if timer, ok := tr.timers[id]; ok {
		timer.Stop()
		delete(tr.timers, id)
	}
	tr.tasks[id] = task
	tr.mu.Unlock()
	events.Progress.Start(id, title, total)
	return id
}

// Update advances a task and re-renders its bar. Progress is monotonic:
// a current below the recorded value is ignored, and values are clamped
// to total. Unknown ids are ignored.
func (tr *Tracker) Update(id string, current int, note string) {
	tr.mu.Lock()
	task, ok := tr.tasks[id]
	if !ok || task.Status != StatusRunning {
		tr.mu.Unlock()
		return
	}
	if current > task.Current {
		task.Current = current
	}
	if task.Total > 0 && task.Current > task.Total {
		task.Current = task.Total
	}
	if note != "" {
		task.Note = note
	}
	line := tr.renderer.Render(task, tr.style)
	out := tr.out
	tr.mu.Unlock()
	if out != nil {
		fmt.Fprintf(out, "\r%s", line)
	}
}

// Complete freezes the task at full progress, prints the terminal
// success line, and schedules removal after the grace delay so monitor
// views can catch the final snapshot.
func (tr *Tracker) Complete(id string) {
	tr.finish(id, StatusCompleted)
}

// Fail marks the task failed and schedules its removal.
func (tr *Tracker) Fail(id string) {
	tr.finish(id, StatusFailed)
}

func (tr *Tracker) finish(id string, status Status) {
	tr.mu.Lock()
	task, ok := tr.tasks[id]
	if !ok {
		tr.mu.Unlock()
		return
	}
	now := time.Now()
	if status == StatusCompleted {
		task.Current = task.Total
	}
	task.Status = status
	task.Ended = &now
	out := tr.out
	title := task.Title
	tr.timers[id] = time.AfterFunc(tr.grace, func() { tr.reap(id) })
	tr.mu.Unlock()

	if out != nil {
		if status == StatusCompleted {
			fmt.Fprintf(out, "\r✓ %s - done\n", title)
		} else {
			fmt.Fprintf(out, "\r✗ %s - failed\n", title)
		}
	}
	events.Progress.Finish(id, status.String())
}

func (tr *Tracker) reap(id string) {
	tr.mu.Lock()
	delete(tr.tasks, id)
	delete(tr.timers, id)
	tr.mu.Unlock()
}

// Snapshot returns a copy of the task. Missing ids report ok=false;
// callers treat that as unknown, not as an error.
func (tr *Tracker) Snapshot(id string) (Task, bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	task, ok := tr.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// Running returns copies of every task still in flight.
func (tr *Tracker) Running() []Task {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]Task, 0, len(tr.tasks))
	for _, task := range tr.tasks {
		if task.Status == StatusRunning {
			out = append(out, *task)
		}
	}
	return out
}

// All returns copies of every registered task, including recently
// finished ones still inside the grace window.
func (tr *Tracker) All() []Task {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]Task, 0, len(tr.tasks))
	for _, task := range tr.tasks {
		out = append(out, *task)
	}
	return out
}

// CancelRunning marks every running task cancelled with an end
// timestamp. Used on shutdown; returns how many tasks were cancelled.
func (tr *Tracker) CancelRunning() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	n := 0
	now := time.Now()
	for _, task := range tr.tasks {
		if task.Status != StatusRunning {
			continue
		}
		end := now
		task.Status = StatusCancelled
		task.Ended = &end
		n++
	}
	return n
}

// Render returns the current bar for a task, or "" when unknown.
func (tr *Tracker) Render(id string) string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	task, ok := tr.tasks[id]
	if !ok {
		return ""
	}
	return tr.renderer.Render(task, tr.style)
}

// RenderAll renders every task in flight, one entry per task.
func (tr *Tracker) RenderAll() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]string, 0, len(tr.tasks))
	for _, task := range tr.tasks {
		out = append(out, tr.renderer.Render(task, tr.style))
	}
	return out
}
