// Package menu models the hierarchical menu tree: item kinds, display
// metadata, per-menu selection and scroll state, and the result map
// accumulated by input and toggle items.
package menu

import (
	"fmt"

	"github.com/scrapeworks/scrape-console/internal/validate"
)

// Kind discriminates the closed set of menu item variants.
type Kind int

const (
	KindAction Kind = iota
	KindSubmenu
	KindInput
	KindToggle
	KindSeparator
	KindBack
	KindExit
)

// InputKind selects the capture protocol for an input item.
type InputKind int

const (
	InputText InputKind = iota
	InputNumber
	InputFloat
	InputEmail
	InputURL
	InputPath
	InputPassword
	InputChoice
	InputMultiChoice
	InputConfirmation
)

// ActionFunc executes an action item. The info string is shown to the
// user on success; a non-nil error is displayed and never propagated.
type ActionFunc func() (info string, err error)

// Item is a single menu entry. Per-kind payload lives in the variant
// fields; only the fields matching Kind are consulted.
type Item struct {
	Key         string
	Title       string
	Kind        Kind
	Description string
	Icon        string
	Shortcut    string
	Enabled     bool
	Visible     bool

	// Tag lets the rendering layer intercept an action for a live
	// full-screen view (e.g. "monitor:system") instead of invoking
	// Action directly. Line-mode callers ignore it.
	Tag string

	Action  ActionFunc
	Submenu *Menu

	Input   InputKind
	Rules   []validate.Rule
	Default string
	Choices []string

	// On holds a toggle's current value.
	On bool
}

// DefaultMaxVisible bounds the item window when a menu does not set its
// own limit.
const DefaultMaxVisible = 10

// Menu is one logical screen: an ordered item list plus navigation
// state. Only the navigator mutates Selected and Offset, and only while
// the menu is top of stack.
type Menu struct {
	Title      string
	Subtitle   string
	Items      []*Item
	Selected   int
	Offset     int
	MaxVisible int

	// Results accumulates values produced by input/toggle items on
	// this menu. The session merges them into its own map as well.
	Results map[string]any

	parent *Menu
}

// New creates an empty menu with the default window size.
func New(title string) *Menu {
	return &Menu{
		Title:      title,
		MaxVisible: DefaultMaxVisible,
		Results:    make(map[string]any),
	}
}

// WithSubtitle sets the subtitle and returns the menu for chaining.
func (m *Menu) WithSubtitle(subtitle string) *Menu {
	m.Subtitle = subtitle
	return m
}

// Parent reports the menu this one was attached to as a submenu. It
// exists only for stack identity checks, never for navigation.
func (m *Menu) Parent() *Menu { return m.parent }

// AddItem appends an item, recording the parent link for submenus and
// normalising the selection onto the first selectable entry.
func (m *Menu) AddItem(item *Item) *Menu {
	m.Items = append(m.Items, item)
	if item.Submenu != nil {
		item.Submenu.parent = m
	}
	m.normalizeSelection()
	return m
}

// AddAction appends an action item bound to fn.
func (m *Menu) AddAction(key, title string, fn ActionFunc) *Menu {
	return m.AddItem(&Item{Key: key, Title: title, Kind: KindAction, Action: fn, Enabled: true, Visible: true})
}

// AddSubmenu appends a submenu item owning child.
func (m *Menu) AddSubmenu(key, title string, child *Menu) *Menu {
	return m.AddItem(&Item{Key: key, Title: title, Kind: KindSubmenu, Submenu: child, Enabled: true, Visible: true})
}

// AddInput appends an input item; rules and choices may be nil.
func (m *Menu) AddInput(key, title string, kind InputKind, rules []validate.Rule) *Menu {
	return m.AddItem(&Item{Key: key, Title: title, Kind: KindInput, Input: kind, Rules: rules, Enabled: true, Visible: true})
}

// AddToggle appends a boolean toggle.
func (m *Menu) AddToggle(key, title string, on bool) *Menu {
	return m.AddItem(&Item{Key: key, Title: title, Kind: KindToggle, On: on, Enabled: true, Visible: true})
}

// AddSeparator appends a visual separator, optionally titled.
func (m *Menu) AddSeparator(title string) *Menu {
	key := fmt.Sprintf("sep_%d", len(m.Items))
	return m.AddItem(&Item{Key: key, Title: title, Kind: KindSeparator, Visible: true})
}

// AddBack appends a back item.
func (m *Menu) AddBack() *Menu {
	return m.AddItem(&Item{Key: "back", Title: "Back", Kind: KindBack, Enabled: true, Visible: true})
}

// AddExit appends an exit item.
func (m *Menu) AddExit(title string) *Menu {
	if title == "" {
		title = "Exit"
	}
	return m.AddItem(&Item{Key: "exit", Title: title, Kind: KindExit, Enabled: true, Visible: true})
}

// SetResult records a collected value on this menu.
func (m *Menu) SetResult(key string, value any) {
	if m.Results == nil {
		m.Results = make(map[string]any)
	}
	m.Results[key] = value
}

// SelectedItem returns the item under the cursor, or nil when the menu
// is empty.
func (m *Menu) SelectedItem() *Item {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return nil
	}
	return m.Items[m.Selected]
}

func (m *Menu) normalizeSelection() {
	if item := m.SelectedItem(); item != nil && selectable(item) {
		return
	}
	for i, item := range m.Items {
		if selectable(item) {
			m.Selected = i
			return
		}
	}
}

func selectable(item *Item) bool {
	return item.Visible && item.Enabled && item.Kind != KindSeparator
}
