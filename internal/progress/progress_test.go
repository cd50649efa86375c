package progress

import (
	"strings"
	"testing"
	"time"
)

func TestPercent(t *testing.T) {
	cases := []struct {
		total, current int
		want           float64
	}{
		{4, 1, 25.0},
		{4, 4, 100.0},
		{0, 0, 0.0},
		{0, 3, 0.0},
	}
	for _, tc := range cases {
		task := &Task{Total: tc.total, Current: tc.current}
		if got := task.Percent(); got != tc.want {
			t.Fatalf("percent(%d/%d) = %v, want %v", tc.current, tc.total, got, tc.want)
		}
	}
}

func TestEstimatedRemaining(t *testing.T) {
	task := &Task{Total: 4, Current: 0, Started: time.Now().Add(-time.Second)}
	if _, ok := task.EstimatedRemaining(); ok {
		t.Fatalf("expected no estimate at zero progress")
	}
	end := task.Started.Add(10 * time.Second)
	task.Current = 2
	task.Ended = &end
	remaining, ok := task.EstimatedRemaining()
	if !ok {
		t.Fatalf("expected an estimate")
	}
	if remaining != 10*time.Second {
		t.Fatalf("expected 10s remaining, got %s", remaining)
	}
}

func TestCompleteClampsAndTimestamps(t *testing.T) {
	tr := NewTracker(nil, StyleSimple)
	id := tr.Start("", "demo", 10)
	tr.Update(id, 4, "")
	tr.Complete(id)
	task, ok := tr.Snapshot(id)
	if !ok {
		t.Fatalf("expected task still visible inside grace window")
	}
	if task.Current != task.Total {
		t.Fatalf("expected current frozen at total, got %d/%d", task.Current, task.Total)
	}
	if task.Status != StatusCompleted {
		t.Fatalf("expected completed status, got %s", task.Status)
	}
	if task.Ended == nil {
		t.Fatalf("expected end timestamp set")
	}
}

func TestUpdateIsMonotonic(t *testing.T) {
	tr := NewTracker(nil, StyleSimple)
	id := tr.Start("t1", "demo", 10)
	tr.Update(id, 5, "halfway")
	tr.Update(id, 3, "")
	task, _ := tr.Snapshot(id)
	if task.Current != 5 {
		t.Fatalf("expected regression ignored, got %d", task.Current)
	}
	if task.Note != "halfway" {
		t.Fatalf("expected note preserved, got %q", task.Note)
	}
	tr.Update(id, 99, "")
	task, _ = tr.Snapshot(id)
	if task.Current != 10 {
		t.Fatalf("expected clamp to total, got %d", task.Current)
	}
}

func TestUpdateUnknownIDIgnored(t *testing.T) {
	tr := NewTracker(nil, StyleSimple)
	tr.Update("missing", 1, "")
	tr.Complete("missing")
	if _, ok := tr.Snapshot("missing"); ok {
		t.Fatalf("expected unknown id to stay unknown")
	}
}

func TestCancelRunning(t *testing.T) {
	tr := NewTracker(nil, StyleSimple)
	a := tr.Start("a", "first", 5)
	b := tr.Start("b", "second", 5)
	tr.Complete(b)
	if n := tr.CancelRunning(); n != 1 {
		t.Fatalf("expected 1 cancellation, got %d", n)
	}
	task, _ := tr.Snapshot(a)
	if task.Status != StatusCancelled || task.Ended == nil {
		t.Fatalf("expected cancelled with end timestamp, got %s ended=%v", task.Status, task.Ended)
	}
	task, _ = tr.Snapshot(b)
	if task.Status != StatusCompleted {
		t.Fatalf("expected completed task untouched, got %s", task.Status)
	}
}

func TestReapAfterGrace(t *testing.T) {
	tr := NewTracker(nil, StyleSimple)
	tr.grace = 10 * time.Millisecond
	id := tr.Start("r", "reaped", 1)
	tr.Complete(id)
	deadline := time.Now().Add(time.Second)
	for {
		if _, ok := tr.Snapshot(id); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("task was not reaped after grace delay")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRenderStyles(t *testing.T) {
	r := NewRenderer(10)
	task := &Task{Title: "dl", Total: 4, Current: 1, Status: StatusRunning, Started: time.Now()}

	simple := r.Render(task, StyleSimple)
	if !strings.Contains(simple, "25.0%") || !strings.Contains(simple, "(1/4)") {
		t.Fatalf("unexpected simple render: %q", simple)
	}
	if !strings.Contains(simple, "██░░░░░░░░") {
		t.Fatalf("expected 2 of 10 cells filled: %q", simple)
	}

	minimal := r.Render(task, StyleMinimal)
	if minimal != "dl: 25% (1/4)" {
		t.Fatalf("unexpected minimal render: %q", minimal)
	}

	detailed := r.Render(task, StyleDetailed)
	if !strings.Contains(detailed, "Progress: 1/4") || !strings.Contains(detailed, "Elapsed:") {
		t.Fatalf("unexpected detailed render: %q", detailed)
	}

	animated := r.Render(task, StyleAnimated)
	if !strings.Contains(animated, "▶") {
		t.Fatalf("expected leading-edge marker: %q", animated)
	}
	zero := &Task{Title: "dl", Total: 4, Current: 0, Status: StatusRunning}
	if got := r.Render(zero, StyleAnimated); !strings.Contains(got, "▷") {
		t.Fatalf("expected hollow marker at zero fill: %q", got)
	}
}

func TestRenderSpinnerGlyphs(t *testing.T) {
	r := NewRenderer(10)
	running := &Task{Title: "dl", Total: 4, Current: 1, Status: StatusRunning}
	out := r.Render(running, StyleSpinner)
	if !strings.ContainsAny(out, "⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏") {
		t.Fatalf("expected a spinner frame: %q", out)
	}
	done := &Task{Title: "dl", Total: 4, Current: 4, Status: StatusCompleted}
	if out := r.Render(done, StyleSpinner); !strings.HasPrefix(out, "✓") {
		t.Fatalf("expected check glyph: %q", out)
	}
	failed := &Task{Title: "dl", Total: 4, Current: 1, Status: StatusFailed}
	if out := r.Render(failed, StyleSpinner); !strings.HasPrefix(out, "✗") {
		t.Fatalf("expected cross glyph: %q", out)
	}
}

func TestParseStyle(t *testing.T) {
	for i, name := range StyleNames {
		style, err := ParseStyle(name)
		if err != nil || style != Style(i) {
			t.Fatalf("ParseStyle(%q) = %v, %v", name, style, err)
		}
	}
	if _, err := ParseStyle("bogus"); err == nil {
		t.Fatalf("expected error for unknown style")
	}
}
