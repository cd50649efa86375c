package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scrapeworks/scrape-console/internal/logging/events"
	"github.com/scrapeworks/scrape-console/internal/menu"
)

const monitorTagPrefix = "monitor:"

// workTag marks an action whose Action drives the progress tracker and
// should run behind the working view instead of blocking the loop.
const workTag = "work"

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.String() == "ctrl+c" {
		m.interrupted = true
		m.quitting = true
		return tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKey(key)
	case ModeChoice:
		return m.handleChoiceKey(key)
	case ModeWorking:
		// The keyboard is parked until the background action reports in.
		return nil
	case ModeMonitor:
		return m.handleMonitorKey(key)
	default:
		return m.handleMenuKey(key)
	}
}

func (m *Model) handleMenuKey(key tea.KeyMsg) tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return tea.Quit
	}
	switch key.String() {
	case "esc":
		return m.popLevel()
	case "enter":
		return m.activateSelected()
	case "up", "ctrl+p":
		m.moveCursor(current, -1)
	case "down", "ctrl+n":
		m.moveCursor(current, 1)
	case "pgup":
		m.moveCursor(current, -m.maxVisibleItems())
	case "pgdown":
		m.moveCursor(current, m.maxVisibleItems())
	case "home":
		m.moveCursorEdge(current, true)
	case "end":
		m.moveCursorEdge(current, false)
	case "backspace":
		if current.filter != "" {
			current.filter = current.filter[:len(current.filter)-1]
			m.snapToFilter(current)
		}
	default:
		if key.Type == tea.KeyRunes {
			text := string(key.Runes)
			if current.filter == "" && len(text) == 1 && text >= "0" && text <= "9" {
				return m.selectByDigit(current, text)
			}
			current.filter += text
			m.snapToFilter(current)
		}
	}
	return nil
}

func (m *Model) handleMonitorKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "q", "esc", "enter":
		m.mode = ModeMenu
	case "s":
		m.monitorView = "system"
	case "l":
		m.monitorView = "logs"
	case "t":
		m.monitorView = "tasks"
	}
	return nil
}

// popLevel leaves the current menu. The parent's cursor and scroll
// state were never touched while the child was on top, so backing out
// restores the previous selection as-is.
func (m *Model) popLevel() tea.Cmd {
	current := m.currentLevel()
	if current == nil || len(m.stack) <= 1 {
		m.quitting = true
		return tea.Quit
	}
	events.UI.MenuBack(current.menu.Title)
	m.stack = m.stack[:len(m.stack)-1]
	m.clearMessages()
	return nil
}

// goBack is the Back action: one level up, or a no-op at the root.
// Only esc, ctrl+c, and the explicit Exit item leave the session.
func (m *Model) goBack() tea.Cmd {
	if len(m.stack) <= 1 {
		m.setInfo("Already at the main menu.")
		return nil
	}
	return m.popLevel()
}

func (m *Model) activateSelected() tea.Cmd {
	current := m.currentLevel()
	if current == nil || m.loading {
		return nil
	}
	item := current.menu.SelectedItem()
	if item == nil || !item.Enabled || !item.Visible {
		return nil
	}
	if current.filter != "" && !menu.MatchFilter(item, current.filter) {
		return nil
	}
	current.filter = ""
	return m.activate(current, item)
}

func (m *Model) selectByDigit(current *level, digit string) tea.Cmd {
	if digit == "0" {
		return m.goBack()
	}
	num, _ := strconv.Atoi(digit)
	item, idx, ok := current.menu.SelectableAt(num)
	if !ok {
		return nil
	}
	current.menu.Selected = idx
	current.menu.EnsureVisible()
	return m.activate(current, item)
}

func (m *Model) activate(current *level, item *menu.Item) tea.Cmd {
	m.clearMessages()
	switch item.Kind {
	case menu.KindSubmenu:
		if item.Submenu == nil {
			return nil
		}
		events.UI.MenuEnter(current.menu.Title, item.Key, item.Title)
		item.Submenu.ResetCursor()
		m.stack = append(m.stack, &level{menu: item.Submenu})
	case menu.KindBack:
		return m.goBack()
	case menu.KindExit:
		m.quitting = true
		return tea.Quit
	case menu.KindToggle:
		item.On = !item.On
		current.menu.SetResult(item.Key, item.On)
		m.values[item.Key] = item.On
	case menu.KindInput:
		switch item.Input {
		case menu.InputChoice, menu.InputMultiChoice:
			m.startChoice(current, item)
		default:
			return m.startPrompt(current, item)
		}
	case menu.KindAction:
		events.UI.MenuEnter(current.menu.Title, item.Key, item.Title)
		if strings.HasPrefix(item.Tag, monitorTagPrefix) {
			m.mode = ModeMonitor
			m.monitorView = strings.TrimPrefix(item.Tag, monitorTagPrefix)
			return m.monitorTick()
		}
		if item.Action == nil {
			return nil
		}
		if item.Tag == workTag {
			m.mode = ModeWorking
			return tea.Batch(runAction(item), workingTick())
		}
		m.loading = true
		return runAction(item)
	}
	return nil
}

func (m *Model) moveCursor(current *level, delta int) {
	include := m.filterPredicate(current)
	current.menu.MoveSelectionWithin(delta, include)
	events.UI.MenuCursor(current.menu.Title, current.menu.Selected)
}

func (m *Model) moveCursorEdge(current *level, home bool) {
	indices := current.menu.Selectable(m.filterPredicate(current))
	if len(indices) == 0 {
		return
	}
	if home {
		current.menu.Selected = indices[0]
	} else {
		current.menu.Selected = indices[len(indices)-1]
	}
	current.menu.EnsureVisible()
	events.UI.MenuCursor(current.menu.Title, current.menu.Selected)
}

func (m *Model) filterPredicate(current *level) func(*menu.Item) bool {
	if current.filter == "" {
		return nil
	}
	filter := current.filter
	return func(item *menu.Item) bool {
		return menu.MatchFilter(item, filter)
	}
}

// snapToFilter moves the cursor to the best match for the filter text,
// leaving it in place when nothing matches.
func (m *Model) snapToFilter(current *level) {
	if current.filter == "" {
		return
	}
	if idx := current.menu.BestMatchIndex(current.filter); idx >= 0 {
		current.menu.Selected = idx
		current.menu.EnsureVisible()
	}
}

// maxVisibleItems derives the menu window from the terminal height,
// leaving room for the header, messages, and footer.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return menu.DefaultMaxVisible
	}
	visible := m.height - 7
	if visible < 3 {
		visible = 3
	}
	return visible
}
