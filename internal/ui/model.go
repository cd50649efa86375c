package ui

import (
	"reflect"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scrapeworks/scrape-console/internal/menu"
	"github.com/scrapeworks/scrape-console/internal/monitor"
	"github.com/scrapeworks/scrape-console/internal/progress"
	"github.com/scrapeworks/scrape-console/internal/theme"
)

// Mode selects which interaction loop currently owns the keyboard.
type Mode int

const (
	ModeMenu Mode = iota
	ModePrompt
	ModeChoice
	ModeWorking
	ModeMonitor
)

const (
	headerSeparator   = " → "
	infoDisplayWindow = 4 * time.Second
	workingFrameRate  = 100 * time.Millisecond
)

// level pairs a menu with its transient filter text. Cursor and scroll
// state live on the menu itself so they survive push/pop.
type level struct {
	menu   *menu.Menu
	filter string
}

type msgHandler func(tea.Msg) tea.Cmd

type (
	workingTickMsg time.Time
	monitorTickMsg time.Time

	// actionDoneMsg reports a background action's result.
	actionDoneMsg struct {
		key   string
		title string
		info  string
		err   error
	}
)

// Options configures a Model. Root is required; zero values elsewhere
// fall back to sane defaults.
type Options struct {
	Root            *menu.Menu
	Styles          *theme.Styles
	Width           int
	Height          int
	ShowFooter      bool
	ProgressStyle   progress.Style
	Tracker         *progress.Tracker
	Sampler         *monitor.SystemSampler
	Logs            *monitor.LogBuffer
	MonitorInterval time.Duration
}

// Model implements the Bubble Tea model for the scraping console.
type Model struct {
	stack  []*level
	mode   Mode
	styles *theme.Styles

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time
	loading    bool

	tracker       *progress.Tracker
	renderer      *progress.Renderer
	progressStyle progress.Style

	sampler         *monitor.SystemSampler
	logs            *monitor.LogBuffer
	monitorInterval time.Duration
	monitorView     string

	prompt *promptState
	choice *choiceState

	values      map[string]any
	interrupted bool
	quitting    bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state with the root menu and configuration.
func NewModel(opts Options) *Model {
	styles := opts.Styles
	if styles == nil {
		styles = theme.Default()
	}
	interval := opts.MonitorInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	root := opts.Root
	root.ResetCursor()
	m := &Model{
		stack:           []*level{{menu: root}},
		mode:            ModeMenu,
		styles:          styles,
		showFooter:      opts.ShowFooter,
		tracker:         opts.Tracker,
		renderer:        progress.NewRenderer(0),
		progressStyle:   opts.ProgressStyle,
		sampler:         opts.Sampler,
		logs:            opts.Logs,
		monitorInterval: interval,
		monitorView:     "system",
		values:          make(map[string]any),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(actionDoneMsg{}):     m.handleActionDoneMsg,
		reflect.TypeOf(workingTickMsg{}):    m.handleWorkingTickMsg,
		reflect.TypeOf(monitorTickMsg{}):    m.handleMonitorTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// Values returns the result map accumulated by input and toggle items.
func (m *Model) Values() map[string]any { return m.values }

// Interrupted reports whether the program ended on ctrl+c rather than a
// normal exit.
func (m *Model) Interrupted() bool { return m.interrupted }

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth && size.Width > 0 {
		m.width = size.Width
	}
	if !m.fixedHeight && size.Height > 0 {
		m.height = size.Height
	}
	if m.tracker != nil && m.width > 0 {
		m.tracker.SetWidth(m.width - 30)
	}
	return nil
}

func (m *Model) handleActionDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(actionDoneMsg)
	if !ok {
		return nil
	}
	m.loading = false
	if m.mode == ModeWorking {
		m.mode = ModeMenu
	}
	if done.err != nil {
		m.errMsg = done.title + " failed: " + done.err.Error()
		return nil
	}
	m.errMsg = ""
	if done.info != "" {
		m.setInfo(done.info)
	}
	return nil
}

func (m *Model) handleWorkingTickMsg(tea.Msg) tea.Cmd {
	if m.mode != ModeWorking {
		return nil
	}
	return workingTick()
}

func (m *Model) handleMonitorTickMsg(tea.Msg) tea.Cmd {
	if m.mode != ModeMonitor {
		return nil
	}
	return m.monitorTick()
}

func (m *Model) setInfo(msg string) {
	m.infoMsg = msg
	m.infoExpire = time.Now().Add(infoDisplayWindow)
}

func (m *Model) clearMessages() {
	m.errMsg = ""
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func workingTick() tea.Cmd {
	return tea.Tick(workingFrameRate, func(t time.Time) tea.Msg {
		return workingTickMsg(t)
	})
}

func (m *Model) monitorTick() tea.Cmd {
	return tea.Tick(m.monitorInterval, func(t time.Time) tea.Msg {
		return monitorTickMsg(t)
	})
}

func runAction(item *menu.Item) tea.Cmd {
	return func() tea.Msg {
		info, err := item.Action()
		return actionDoneMsg{key: item.Key, title: item.Title, info: info, err: err}
	}
}
