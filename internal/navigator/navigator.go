// Package navigator drives the menu tree in plain line-oriented mode:
// numbered items, one prompt per screen, no full-screen terminal state.
// It is the fallback when stdout is not a terminal and the explicit
// mode for scripted use.
package navigator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/scrapeworks/scrape-console/internal/logging/events"
	"github.com/scrapeworks/scrape-console/internal/menu"
	"github.com/scrapeworks/scrape-console/internal/theme"
)

// ErrInterrupted reports that the run loop stopped because the session
// flagged an interrupt.
var ErrInterrupted = errors.New("interrupted")

// Navigator walks a menu tree over a line-based reader/writer pair.
type Navigator struct {
	in     *bufio.Reader
	out    io.Writer
	styles *theme.Styles

	interrupted func() bool
	readSecret  func() (string, error)

	values map[string]any
	stack  []*menu.Menu
}

// New creates a navigator reading commands from in and rendering to out.
func New(in io.Reader, out io.Writer, styles *theme.Styles) *Navigator {
	if styles == nil {
		styles = theme.Default()
	}
	return &Navigator{
		in:     bufio.NewReader(in),
		out:    out,
		styles: styles,
		values: make(map[string]any),
	}
}

// SetInterruptCheck installs a predicate polled once per loop iteration.
// When it reports true the run loop stops with ErrInterrupted.
func (n *Navigator) SetInterruptCheck(fn func() bool) {
	n.interrupted = fn
}

// SetSecretReader installs a no-echo reader for password inputs. Without
// one, passwords fall back to a plain line read.
func (n *Navigator) SetSecretReader(fn func() (string, error)) {
	n.readSecret = fn
}

// Values returns the result map accumulated so far.
func (n *Navigator) Values() map[string]any { return n.values }

// Run walks the tree from root until an exit item, EOF, or interrupt.
// EOF is a normal end of input, not an error.
func (n *Navigator) Run(root *menu.Menu) (map[string]any, error) {
	n.stack = []*menu.Menu{root}
	root.ResetCursor()
	for {
		if n.interrupted != nil && n.interrupted() {
			return n.values, ErrInterrupted
		}
		current := n.stack[len(n.stack)-1]
		n.render(current)
		line, err := n.readLine()
		if err != nil {
			return n.values, nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "0" {
			n.back(current)
			continue
		}
		item := n.resolve(current, line)
		if item == nil {
			n.errorf("Invalid option: %s", line)
			continue
		}
		exit, err := n.activate(current, item)
		if err != nil {
			return n.values, err
		}
		if exit {
			return n.values, nil
		}
	}
}

func (n *Navigator) back(current *menu.Menu) {
	if len(n.stack) <= 1 {
		n.info("Already at the main menu.")
		return
	}
	events.UI.MenuBack(current.Title)
	n.stack = n.stack[:len(n.stack)-1]
}

// resolve maps a typed token to an item: a 1-based ordinal among
// selectable entries, or a shortcut letter.
func (n *Navigator) resolve(current *menu.Menu, token string) *menu.Item {
	if num, err := strconv.Atoi(token); err == nil {
		item, idx, ok := current.SelectableAt(num)
		if !ok {
			return nil
		}
		current.Selected = idx
		current.EnsureVisible()
		return item
	}
	for _, idx := range current.Selectable(nil) {
		item := current.Items[idx]
		if item.Shortcut != "" && strings.EqualFold(item.Shortcut, token) {
			current.Selected = idx
			current.EnsureVisible()
			return item
		}
	}
	return nil
}

// activate dispatches an item by kind. Action errors are rendered, not
// propagated; only an interrupt ends the run loop with an error.
func (n *Navigator) activate(current *menu.Menu, item *menu.Item) (exit bool, err error) {
	switch item.Kind {
	case menu.KindAction:
		events.UI.MenuEnter(current.Title, item.Key, item.Title)
		if item.Action == nil {
			return false, nil
		}
		info, actionErr := item.Action()
		if actionErr != nil {
			events.UI.ActionError(item.Key, actionErr)
			n.errorf("%s failed: %v", item.Title, actionErr)
			return false, nil
		}
		if info != "" {
			n.info(info)
		}
	case menu.KindSubmenu:
		if item.Submenu == nil {
			return false, nil
		}
		events.UI.MenuEnter(current.Title, item.Key, item.Title)
		item.Submenu.ResetCursor()
		n.stack = append(n.stack, item.Submenu)
	case menu.KindInput:
		value, accepted, inputErr := n.promptInput(item)
		if inputErr != nil {
			return false, inputErr
		}
		if accepted {
			current.SetResult(item.Key, value)
			n.values[item.Key] = value
			events.UI.InputAccepted(item.Key)
		}
	case menu.KindToggle:
		item.On = !item.On
		current.SetResult(item.Key, item.On)
		n.values[item.Key] = item.On
		n.info(fmt.Sprintf("%s: %s", item.Title, onOff(item.On)))
	case menu.KindBack:
		n.back(current)
	case menu.KindExit:
		return true, nil
	}
	return false, nil
}

func (n *Navigator) render(m *menu.Menu) {
	fmt.Fprintf(n.out, "\n%s\n", n.styles.Title.Render("=== "+m.Title+" ==="))
	if m.Subtitle != "" {
		fmt.Fprintln(n.out, n.styles.Subtitle.Render(m.Subtitle))
	}
	ordinals := make(map[int]int, len(m.Items))
	for ord, idx := range m.Selectable(nil) {
		ordinals[idx] = ord + 1
	}
	window, above, below := m.VisibleWindow()
	if above {
		fmt.Fprintln(n.out, n.styles.Subtitle.Render("  ↑ more"))
	}
	for _, idx := range window {
		fmt.Fprintln(n.out, n.renderItem(m.Items[idx], ordinals[idx]))
	}
	if below {
		fmt.Fprintln(n.out, n.styles.Subtitle.Render("  ↓ more"))
	}
	if len(n.stack) > 1 {
		fmt.Fprintln(n.out, n.styles.Item.Render("  0) Back"))
	}
	fmt.Fprint(n.out, "Select an option: ")
}

func (n *Navigator) renderItem(item *menu.Item, ordinal int) string {
	if item.Kind == menu.KindSeparator {
		if item.Title != "" {
			return n.styles.Separator.Render("  ── " + item.Title + " ──")
		}
		return n.styles.Separator.Render("  ────────")
	}
	label := item.Title
	if item.Icon != "" {
		label = item.Icon + " " + label
	}
	if item.Kind == menu.KindToggle {
		label = fmt.Sprintf("%s [%s]", label, onOff(item.On))
	}
	if item.Description != "" {
		label = fmt.Sprintf("%s - %s", label, item.Description)
	}
	if !item.Enabled {
		return n.styles.Disabled.Render("     " + label + " (unavailable)")
	}
	line := fmt.Sprintf("  %2d) %s", ordinal, label)
	if item.Shortcut != "" {
		line += n.styles.Shortcut.Render(" [" + item.Shortcut + "]")
	}
	return n.styles.Item.Render(line)
}

func (n *Navigator) readLine() (string, error) {
	line, err := n.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (n *Navigator) info(msg string) {
	fmt.Fprintln(n.out, n.styles.Success.Render(msg))
}

func (n *Navigator) errorf(format string, args ...any) {
	fmt.Fprintln(n.out, n.styles.Error.Render(fmt.Sprintf(format, args...)))
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
