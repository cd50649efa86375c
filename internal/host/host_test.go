package host

import "testing"

func TestLookupTaskState(t *testing.T) {
	active := map[string]Task{"a": {ID: "a"}}
	completed := map[string]Task{"c": {ID: "c"}}

	cases := []struct {
		id   string
		want TaskState
	}{
		{"a", TaskStateActive},
		{"c", TaskStateCompleted},
		{"missing", TaskStateUnknown},
	}
	for _, tc := range cases {
		if got := LookupTaskState(tc.id, active, completed); got != tc.want {
			t.Fatalf("LookupTaskState(%q) = %s, want %s", tc.id, got, tc.want)
		}
	}
}

func TestDemoCreateTask(t *testing.T) {
	d := NewDemo()
	task, err := d.CreateScrapingTask("news", PriorityNormal)
	if err != nil {
		t.Fatalf("CreateScrapingTask: %v", err)
	}
	if task.ID == "" || task.SiteID != "news" {
		t.Fatalf("unexpected task %+v", task)
	}
	active, err := d.ActiveTasks()
	if err != nil {
		t.Fatalf("ActiveTasks: %v", err)
	}
	if _, ok := active[task.ID]; !ok {
		t.Fatalf("expected task registered as active")
	}
	if got := LookupTaskState(task.ID, active, nil); got != TaskStateActive {
		t.Fatalf("expected active state, got %s", got)
	}
}

func TestDemoRejectsUnknownSite(t *testing.T) {
	d := NewDemo()
	if _, err := d.CreateScrapingTask("nope", PriorityHigh); err == nil {
		t.Fatalf("expected error for unknown site")
	}
}
