package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/scrapeworks/scrape-console/internal/host"
	"github.com/scrapeworks/scrape-console/internal/logging"
	"github.com/scrapeworks/scrape-console/internal/menu"
	"github.com/scrapeworks/scrape-console/internal/progress"
	"github.com/scrapeworks/scrape-console/internal/theme"
	"github.com/scrapeworks/scrape-console/internal/validate"
)

var errCancelled = errors.New("operation cancelled")

// buildMainMenu assembles the whole console tree. Monitor items carry a
// tag so the full-screen UI can swap in a live view; their Action is
// the single-snapshot fallback used in line mode.
func (s *Session) buildMainMenu() *menu.Menu {
	root := menu.New("Scrape Console").WithSubtitle("web scraping control panel")
	// Tall enough to show the whole tree in line mode; the full-screen
	// UI resizes the window from the terminal height regardless.
	root.MaxVisible = 20

	root.AddSeparator("Monitoring")
	root.AddItem(&menu.Item{
		Key: "status", Title: "Application status", Kind: menu.KindAction,
		Action: s.statusAction(), Enabled: true, Visible: true,
	})
	root.AddItem(&menu.Item{
		Key: "health", Title: "Health check", Kind: menu.KindAction,
		Action: s.healthAction(), Enabled: true, Visible: true,
	})
	root.AddItem(&menu.Item{
		Key: "metrics", Title: "Metrics", Kind: menu.KindAction,
		Action: s.metricsAction(), Enabled: true, Visible: true,
	})
	root.AddItem(&menu.Item{
		Key: "sysmon", Title: "System monitor", Kind: menu.KindAction, Tag: "monitor:system",
		Action: s.systemSnapshotAction(), Enabled: true, Visible: true,
	})
	root.AddItem(&menu.Item{
		Key: "logview", Title: "Recent logs", Kind: menu.KindAction, Tag: "monitor:logs",
		Action: s.logSnapshotAction(), Enabled: true, Visible: true,
	})
	root.AddItem(&menu.Item{
		Key: "taskview", Title: "Task overview", Kind: menu.KindAction, Tag: "monitor:tasks",
		Action: s.taskOverviewAction(), Enabled: true, Visible: true,
	})

	root.AddSeparator("Scraping")
	root.AddSubmenu("scrape", "New scraping task", s.buildScrapeMenu())
	root.AddItem(&menu.Item{
		Key: "demo", Title: "Run demo batch", Kind: menu.KindAction, Tag: "work",
		Description: "staged progress across fetch/parse/store",
		Action:      s.demoBatchAction(), Enabled: true, Visible: true,
	})

	root.AddSeparator("Configuration")
	root.AddSubmenu("settings", "Settings", s.buildSettingsMenu())

	root.AddSeparator("Maintenance")
	root.AddSubmenu("maintenance", "Maintenance", s.buildMaintenanceMenu())

	root.AddSeparator("")
	root.AddItem(&menu.Item{
		Key: "exit", Title: "Exit", Kind: menu.KindExit,
		Shortcut: "q", Enabled: true, Visible: true,
	})
	return root
}

func (s *Session) buildScrapeMenu() *menu.Menu {
	app := s.opts.App
	m := menu.New("New Scraping Task").WithSubtitle("pick a configured site")
	sites, err := app.SiteConfigs()
	if err != nil || len(sites) == 0 {
		m.AddItem(&menu.Item{
			Key: "nosites", Title: "No site configurations available",
			Kind: menu.KindAction, Visible: true,
		})
	} else {
		names := make([]string, 0, len(sites))
		for name := range sites {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			site := sites[name]
			m.AddItem(&menu.Item{
				Key: "site_" + name, Title: site.Name, Kind: menu.KindAction, Tag: "work",
				Description: site.Description,
				Action:      s.scrapeSiteAction(m, name),
				Enabled:     true, Visible: true,
			})
		}
	}
	m.AddSeparator("")
	m.AddItem(&menu.Item{
		Key: "priority", Title: "Task priority", Kind: menu.KindInput,
		Input: menu.InputChoice, Choices: []string{"low", "normal", "high"},
		Default: "normal", Enabled: true, Visible: true,
	})
	m.AddBack()
	return m
}

func (s *Session) buildSettingsMenu() *menu.Menu {
	m := menu.New("Settings")
	m.AddItem(&menu.Item{
		Key: "progress_style", Title: "Progress style", Kind: menu.KindInput,
		Input: menu.InputChoice, Choices: progress.StyleNames,
		Default: s.progressStyle.String(), Enabled: true, Visible: true,
	})
	m.AddItem(&menu.Item{
		Key: "theme", Title: "Theme", Kind: menu.KindInput,
		Input: menu.InputChoice, Choices: theme.Names(),
		Default: "default", Enabled: true, Visible: true,
	})
	m.AddItem(&menu.Item{
		Key: "max_workers", Title: "Max workers", Kind: menu.KindInput,
		Input: menu.InputNumber, Rules: []validate.Rule{validate.IntRange(1, 20)},
		Default: "4", Enabled: true, Visible: true,
	})
	m.AddItem(&menu.Item{
		Key: "notify_email", Title: "Notification email", Kind: menu.KindInput,
		Input: menu.InputEmail, Enabled: true, Visible: true,
	})
	m.AddItem(&menu.Item{
		Key: "webhook_url", Title: "Webhook URL", Kind: menu.KindInput,
		Input: menu.InputURL, Enabled: true, Visible: true,
	})
	m.AddItem(&menu.Item{
		Key: "output_dir", Title: "Output directory", Kind: menu.KindInput,
		Input: menu.InputPath, Default: ".", Enabled: true, Visible: true,
	})
	m.AddItem(&menu.Item{
		Key: "api_key", Title: "API key", Kind: menu.KindInput,
		Input: menu.InputPassword, Rules: []validate.Rule{validate.TextLength(8, 128)},
		Enabled: true, Visible: true,
	})
	m.AddToggle("auto_refresh", "Auto-refresh monitors", true)
	m.AddToggle("verbose_logs", "Verbose logging", false)
	m.AddItem(&menu.Item{
		Key: "log_level", Title: "Log level", Kind: menu.KindInput,
		Input: menu.InputChoice, Choices: []string{"debug", "info", "warn", "error"},
		Default: "info", Enabled: true, Visible: true,
	})
	m.AddBack()
	return m
}

func (s *Session) buildMaintenanceMenu() *menu.Menu {
	app := s.opts.App
	m := menu.New("Maintenance")
	m.AddItem(&menu.Item{
		Key: "backup_note", Title: "Backup description", Kind: menu.KindInput,
		Input: menu.InputText, Default: "console backup",
		Rules:   []validate.Rule{validate.TextLength(1, 120)},
		Enabled: true, Visible: true,
	})
	m.AddItem(&menu.Item{
		Key: "backup", Title: "Create backup", Kind: menu.KindAction, Tag: "work",
		Action: s.backupAction(m), Enabled: true, Visible: true,
	})
	m.AddItem(&menu.Item{
		Key: "confirm_cleanup", Title: "Confirm data cleanup", Kind: menu.KindInput,
		Input: menu.InputConfirmation, Default: "n", Enabled: true, Visible: true,
	})
	m.AddItem(&menu.Item{
		Key: "cleanup", Title: "Clean old data", Kind: menu.KindAction,
		Description: "requires confirmation above",
		Action: func() (string, error) {
			if confirmed, _ := m.Results["confirm_cleanup"].(bool); !confirmed {
				return "", errors.New("cleanup not confirmed")
			}
			results, err := app.CleanupOldData()
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("removed %d tasks, %d files, freed %s",
				results.OldTasksRemoved, results.DeletedFiles, humanize.Bytes(results.FreedBytes)), nil
		},
		Enabled: true, Visible: true,
	})
	m.AddBack()
	return m
}

func (s *Session) statusAction() menu.ActionFunc {
	app := s.opts.App
	return func() (string, error) {
		status, err := app.Status()
		if err != nil {
			return "", err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "initialized=%t running=%t sites=%d",
			status.Initialized, status.Running, status.SiteConfigsLoaded)
		if status.Engine != nil {
			fmt.Fprintf(&b, "\nengine: %s · active %d · queued %d · completed %d",
				status.Engine.Status, status.Engine.ActiveTasks,
				status.Engine.QueueSize, status.Engine.CompletedTasks)
		}
		names := make([]string, 0, len(status.Components))
		for name := range status.Components {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			state := "down"
			if status.Components[name] {
				state = "up"
			}
			fmt.Fprintf(&b, "\n  %s: %s", name, state)
		}
		return b.String(), nil
	}
}

func (s *Session) healthAction() menu.ActionFunc {
	app := s.opts.App
	return func() (string, error) {
		health, err := app.HealthCheck()
		if err != nil {
			return "", err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "health: %s (checked %s)", health.Status, health.CheckedAt.Format("15:04:05"))
		names := make([]string, 0, len(health.Components))
		for name := range health.Components {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			comp := health.Components[name]
			mark := "✗"
			if comp.Healthy {
				mark = "✓"
			}
			fmt.Fprintf(&b, "\n  %s %s: %s", mark, name, comp.Status)
		}
		return b.String(), nil
	}
}

func (s *Session) metricsAction() menu.ActionFunc {
	app := s.opts.App
	return func() (string, error) {
		metrics, err := app.Metrics()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"tasks: %d completed, %d failed (%.0f%% success)\navg task time: %s · uptime: %s\nstorage: %d files, %s",
			metrics.Engine.TasksCompleted, metrics.Engine.TasksFailed,
			metrics.Engine.SuccessRate*100,
			metrics.Engine.AverageTaskTime.Round(time.Second),
			metrics.Engine.Uptime.Round(time.Second),
			metrics.Storage.TotalFiles, humanize.Bytes(metrics.Storage.TotalSize),
		), nil
	}
}

func (s *Session) systemSnapshotAction() menu.ActionFunc {
	return func() (string, error) {
		prev := s.state.Swap(StateMonitoring)
		defer s.state.Store(prev)
		stats := s.sampler.Stats()
		if stats.SampledAt.IsZero() {
			return "no sample collected yet", nil
		}
		return fmt.Sprintf("cpu %.1f%% · mem %.1f%% · disk %.1f%% · net ↑%s ↓%s (sampled %s)",
			stats.CPUPercent, stats.MemoryPercent, stats.DiskPercent,
			humanize.Bytes(stats.NetBytesSent), humanize.Bytes(stats.NetBytesRecv),
			stats.SampledAt.Format("15:04:05")), nil
	}
}

func (s *Session) logSnapshotAction() menu.ActionFunc {
	return func() (string, error) {
		lines := s.logs.Formatted()
		if len(lines) == 0 {
			return "(no recent log entries)", nil
		}
		return strings.Join(lines, "\n"), nil
	}
}

func (s *Session) taskOverviewAction() menu.ActionFunc {
	app := s.opts.App
	return func() (string, error) {
		active, err := app.ActiveTasks()
		if err != nil {
			return "", err
		}
		completed, err := app.CompletedTasks()
		if err != nil {
			return "", err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%d active · %d completed", len(active), len(completed))
		ids := make([]string, 0, len(active))
		for id := range active {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			task := active[id]
			fmt.Fprintf(&b, "\n  %s %s [%s] %s",
				shortID(id), task.SiteID,
				host.LookupTaskState(id, active, completed), task.Status)
		}
		return b.String(), nil
	}
}

func (s *Session) scrapeSiteAction(m *menu.Menu, siteID string) menu.ActionFunc {
	app := s.opts.App
	return func() (string, error) {
		priority := host.PriorityNormal
		if v, ok := m.Results["priority"].(string); ok {
			priority = parsePriority(v)
		}
		task, err := app.CreateScrapingTask(siteID, priority)
		if err != nil {
			return "", err
		}
		return s.runStaged("scrape "+siteID,
			[]string{"queued", "fetching", "parsing", "storing"},
			func() string {
				return fmt.Sprintf("task %s finished for %s", shortID(task.ID), siteID)
			})
	}
}

func (s *Session) demoBatchAction() menu.ActionFunc {
	return func() (string, error) {
		return s.runStaged("demo batch",
			[]string{"fetch", "parse", "store", "index", "report"},
			func() string { return "demo batch complete" })
	}
}

func (s *Session) backupAction(m *menu.Menu) menu.ActionFunc {
	app := s.opts.App
	return func() (string, error) {
		description := "console backup"
		if v, ok := m.Results["backup_note"].(string); ok && v != "" {
			description = v
		}
		info, err := s.runStaged("backup",
			[]string{"collecting", "compressing", "writing"},
			func() string { return "" })
		if err != nil {
			return info, err
		}
		backup, err := app.CreateBackup(description)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("backup %s: %d files, %s",
			shortID(backup.ID), backup.FileCount, humanize.Bytes(backup.TotalSize)), nil
	}
}

// runStaged walks a task through named stages on the shared tracker.
// An interrupt leaves the task running so teardown can cancel it and
// reports errCancelled to the caller. A shutdown request that arrived
// mid-operation is honoured here, at the first point the operation is
// no longer updating the terminal.
func (s *Session) runStaged(title string, stages []string, done func() string) (string, error) {
	prev := s.state.Swap(StateWorking)
	defer func() {
		if s.state.Load() == StateWorking {
			s.setState(prev)
		}
		if s.shutdownRequested.Load() {
			s.quitUI()
		}
	}()
	id := s.tracker.Start("", title, len(stages))
	for i, stage := range stages {
		if s.interrupted.Load() {
			return "", errCancelled
		}
		time.Sleep(s.stageDelay)
		s.tracker.Update(id, i+1, stage)
	}
	s.tracker.Complete(id)
	logging.Info(title + " finished")
	return done(), nil
}

func parsePriority(v string) host.Priority {
	switch strings.ToLower(v) {
	case "low":
		return host.PriorityLow
	case "high":
		return host.PriorityHigh
	default:
		return host.PriorityNormal
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
