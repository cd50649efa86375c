package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/scrapeworks/scrape-console/internal/menu"
	"github.com/scrapeworks/scrape-console/internal/monitor"
	"github.com/scrapeworks/scrape-console/internal/progress"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	lines := make([]styledLine, 0, 24)
	if header := m.header(); header != "" {
		lines = append(lines, styledLine{text: header, style: m.styles.Header})
	}
	switch m.mode {
	case ModePrompt:
		lines = append(lines, m.promptLines()...)
	case ModeChoice:
		lines = append(lines, m.choiceLines()...)
	case ModeWorking:
		lines = append(lines, m.workingLines()...)
	case ModeMonitor:
		lines = append(lines, m.monitorLines()...)
	default:
		lines = append(lines, m.menuLines()...)
	}
	if m.errMsg != "" {
		lines = append(lines, styledLine{text: m.errMsg, style: m.styles.Error})
	}
	if m.infoMsg != "" && time.Now().Before(m.infoExpire) {
		lines = append(lines, styledLine{text: m.infoMsg, style: m.styles.Success})
	}
	if m.showFooter {
		lines = append(lines, styledLine{text: m.footerHint(), style: m.styles.Footer})
	}
	return m.renderLines(lines)
}

func (m *Model) header() string {
	titles := make([]string, 0, len(m.stack))
	for _, lvl := range m.stack {
		titles = append(titles, lvl.menu.Title)
	}
	return strings.Join(titles, headerSeparator)
}

func (m *Model) menuLines() []styledLine {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	current.menu.MaxVisible = m.maxVisibleItems()
	current.menu.EnsureVisible()

	lines := make([]styledLine, 0, current.menu.MaxVisible+4)
	if current.menu.Subtitle != "" {
		lines = append(lines, styledLine{text: current.menu.Subtitle, style: m.styles.Subtitle})
	}
	if current.filter != "" {
		lines = append(lines, styledLine{text: "filter: " + current.filter, style: m.styles.Filter})
	}
	window, above, below := current.menu.VisibleWindow()
	if above {
		lines = append(lines, styledLine{text: "  ↑", style: m.styles.Subtitle})
	}
	for _, idx := range window {
		lines = append(lines, m.menuItemLine(current, idx))
	}
	if below {
		lines = append(lines, styledLine{text: "  ↓", style: m.styles.Subtitle})
	}
	if len(window) == 0 {
		msg := "(no entries)"
		if current.filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.filter)
		}
		lines = append(lines, styledLine{text: msg, style: m.styles.Info})
	}
	return lines
}

func (m *Model) menuItemLine(current *level, idx int) styledLine {
	item := current.menu.Items[idx]
	if item.Kind == menu.KindSeparator {
		text := "  ────────"
		if item.Title != "" {
			text = "  ── " + item.Title + " ──"
		}
		return styledLine{text: text, style: m.styles.Separator}
	}
	label := item.Title
	if item.Icon != "" {
		label = item.Icon + " " + label
	}
	if item.Kind == menu.KindToggle {
		state := "off"
		if item.On {
			state = "on"
		}
		label = fmt.Sprintf("%s [%s]", label, state)
	}
	if item.Description != "" {
		label += "  " + item.Description
	}
	dimmed := current.filter != "" && !menu.MatchFilter(item, current.filter)
	switch {
	case !item.Enabled:
		return styledLine{text: "    " + label, style: m.styles.Disabled}
	case idx == current.menu.Selected:
		return styledLine{text: "  > " + label, style: m.styles.SelectedItem}
	case dimmed:
		return styledLine{text: "    " + label, style: m.styles.Disabled}
	default:
		return styledLine{text: "    " + label, style: m.styles.Item}
	}
}

func (m *Model) promptLines() []styledLine {
	p := m.prompt
	if p == nil {
		return nil
	}
	lines := []styledLine{
		{text: p.item.Title, style: m.styles.Title},
	}
	if p.item.Description != "" {
		lines = append(lines, styledLine{text: p.item.Description, style: m.styles.Subtitle})
	}
	lines = append(lines, styledLine{text: p.input.View()})
	if p.errMsg != "" {
		lines = append(lines, styledLine{text: p.errMsg, style: m.styles.Error})
	}
	return lines
}

func (m *Model) choiceLines() []styledLine {
	c := m.choice
	if c == nil {
		return nil
	}
	lines := []styledLine{{text: c.item.Title, style: m.styles.Title}}
	for i, choice := range c.item.Choices {
		prefix := "    "
		if c.multi {
			mark := " "
			if c.selected[i] {
				mark = "x"
			}
			prefix = fmt.Sprintf("  [%s] ", mark)
		}
		text := prefix + choice
		if i == c.cursor {
			lines = append(lines, styledLine{text: "> " + text[2:], style: m.styles.SelectedItem})
		} else {
			lines = append(lines, styledLine{text: text, style: m.styles.Item})
		}
	}
	return lines
}

func (m *Model) workingLines() []styledLine {
	lines := []styledLine{{text: "Working…", style: m.styles.Title}}
	for _, task := range m.sortedTasks() {
		rendered := m.renderer.Render(&task, m.progressStyle)
		for _, line := range strings.Split(rendered, "\n") {
			lines = append(lines, styledLine{text: line, style: m.styles.Item})
		}
	}
	return lines
}

func (m *Model) monitorLines() []styledLine {
	switch m.monitorView {
	case "logs":
		return m.logLines()
	case "tasks":
		return m.taskLines()
	default:
		return m.systemLines()
	}
}

func (m *Model) systemLines() []styledLine {
	if m.sampler == nil {
		return []styledLine{{text: "(system monitor unavailable)", style: m.styles.Info}}
	}
	stats := m.sampler.Stats()
	lines := []styledLine{
		{text: "System", style: m.styles.Title},
		{text: fmt.Sprintf("  CPU:    %5.1f%%", stats.CPUPercent), style: m.styles.Item},
		{text: fmt.Sprintf("  Memory: %5.1f%%", stats.MemoryPercent), style: m.styles.Item},
		{text: fmt.Sprintf("  Disk:   %5.1f%%", stats.DiskPercent), style: m.styles.Item},
		{text: fmt.Sprintf("  Net:    ↑ %s  ↓ %s", humanize.Bytes(stats.NetBytesSent), humanize.Bytes(stats.NetBytesRecv)), style: m.styles.Item},
	}
	if stats.SampledAt.IsZero() {
		lines = append(lines, styledLine{text: "  (waiting for first sample)", style: m.styles.Subtitle})
	} else {
		lines = append(lines, styledLine{text: "  sampled " + stats.SampledAt.Format("15:04:05"), style: m.styles.Subtitle})
	}
	return lines
}

func (m *Model) logLines() []styledLine {
	lines := []styledLine{{text: "Recent logs", style: m.styles.Title}}
	if m.logs == nil {
		return append(lines, styledLine{text: "  (no log buffer)", style: m.styles.Info})
	}
	entries := m.logs.Entries()
	if len(entries) == 0 {
		return append(lines, styledLine{text: "  (empty)", style: m.styles.Info})
	}
	for _, entry := range entries {
		text := fmt.Sprintf("  [%s] %s: %s", entry.Time.Format("15:04:05"), entry.Level, entry.Message)
		lines = append(lines, styledLine{text: text, style: m.logStyle(entry)})
	}
	return lines
}

func (m *Model) logStyle(entry monitor.Entry) *lipgloss.Style {
	switch strings.ToUpper(entry.Level) {
	case "ERROR":
		return m.styles.LogError
	case "WARN", "WARNING":
		return m.styles.LogWarn
	case "DEBUG":
		return m.styles.LogDebug
	default:
		return m.styles.LogInfo
	}
}

func (m *Model) taskLines() []styledLine {
	lines := []styledLine{{text: "Tasks", style: m.styles.Title}}
	tasks := m.sortedTasks()
	if len(tasks) == 0 {
		return append(lines, styledLine{text: "  (no tracked tasks)", style: m.styles.Info})
	}
	for _, task := range tasks {
		text := "  " + m.renderer.Render(&task, progress.StyleMinimal)
		style := m.styles.Item
		switch task.Status {
		case progress.StatusFailed:
			style = m.styles.Error
		case progress.StatusCompleted:
			style = m.styles.Success
		}
		lines = append(lines, styledLine{text: text, style: style})
	}
	return lines
}

func (m *Model) sortedTasks() []progress.Task {
	if m.tracker == nil {
		return nil
	}
	tasks := m.tracker.All()
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Started.Equal(tasks[j].Started) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].Started.Before(tasks[j].Started)
	})
	return tasks
}

func (m *Model) footerHint() string {
	switch m.mode {
	case ModePrompt:
		return "enter accept · esc cancel"
	case ModeChoice:
		if m.choice != nil && m.choice.multi {
			return "space toggle · enter accept · esc cancel"
		}
		return "enter accept · esc cancel"
	case ModeWorking:
		return "ctrl+c cancel"
	case ModeMonitor:
		return "s system · l logs · t tasks · q back"
	default:
		return "↑/↓ move · enter select · esc back · type to filter"
	}
}

func (m *Model) renderLines(lines []styledLine) string {
	var b strings.Builder
	for i, line := range lines {
		text := line.text
		if m.width > 0 {
			text = truncate.String(text, uint(m.width))
		}
		if line.style != nil {
			text = line.style.Render(text)
		}
		b.WriteString(text)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
