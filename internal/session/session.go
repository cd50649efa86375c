// Package session owns the terminal lifecycle around the menu tree:
// mode selection, signal handling, the shared progress tracker and
// monitors, and the final teardown that cancels whatever is still
// running.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/scrapeworks/scrape-console/internal/host"
	"github.com/scrapeworks/scrape-console/internal/logging"
	"github.com/scrapeworks/scrape-console/internal/logging/events"
	"github.com/scrapeworks/scrape-console/internal/monitor"
	"github.com/scrapeworks/scrape-console/internal/navigator"
	"github.com/scrapeworks/scrape-console/internal/progress"
	"github.com/scrapeworks/scrape-console/internal/theme"
	"github.com/scrapeworks/scrape-console/internal/ui"
)

// Options describes user-provided session configuration.
type Options struct {
	App             host.Application
	In              io.Reader
	Out             io.Writer
	Width           int
	Height          int
	ShowFooter      bool
	Theme           string
	ProgressStyle   string
	MonitorInterval time.Duration
	ForceLineMode   bool
}

// Result is what a finished session reports back to main.
type Result struct {
	Values      map[string]any
	Interrupted bool
	Err         error
}

// Session wires the menu tree, progress tracker, and monitors together
// and runs them in either full-screen or line mode.
type Session struct {
	opts          Options
	styles        *theme.Styles
	progressStyle progress.Style

	tracker *progress.Tracker
	sampler *monitor.SystemSampler
	logs    *monitor.LogBuffer

	state             atomicState
	interrupted       atomic.Bool
	shutdownRequested atomic.Bool

	// stageDelay paces the synthetic stages of long operations;
	// shortened in tests.
	stageDelay time.Duration

	signals chan os.Signal
	program atomic.Pointer[tea.Program]
}

// New validates options and assembles a session. The sampler is not
// started until Run.
func New(opts Options) (*Session, error) {
	if opts.App == nil {
		return nil, errors.New("session requires a host application")
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	styles, err := theme.ByName(opts.Theme)
	if err != nil {
		return nil, err
	}
	style, err := progress.ParseStyle(opts.ProgressStyle)
	if err != nil {
		return nil, err
	}
	s := &Session{
		opts:          opts,
		styles:        styles,
		progressStyle: style,
		sampler:       monitor.NewSystemSampler(opts.MonitorInterval),
		logs:          monitor.NewLogBuffer(monitor.DefaultLogCapacity),
		stageDelay:    120 * time.Millisecond,
	}
	s.state.Store(StateIdle)
	return s, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state.Load() }

// Interrupted reports whether a signal or ctrl+c ended the session.
func (s *Session) Interrupted() bool { return s.interrupted.Load() }

func (s *Session) setState(next State) {
	prev := s.state.Swap(next)
	if prev != next {
		events.Session.StateChange(prev.String(), next.String())
	}
}

// Run executes the session until exit, EOF, or interrupt, then tears
// everything down. It always returns a Result, never panics the
// terminal into a half-drawn state.
func (s *Session) Run() Result {
	lineMode := s.lineMode()
	mode := "keyed"
	if lineMode {
		mode = "line"
	}
	events.Session.Start(mode)
	logging.SetMirror(s.logs.Append)
	defer logging.SetMirror(nil)
	logging.Info("session started in " + mode + " mode")

	trackOut := io.Writer(io.Discard)
	if lineMode {
		trackOut = s.opts.Out
	}
	s.tracker = progress.NewTracker(trackOut, s.progressStyle)
	if s.opts.Width > 0 {
		s.tracker.SetWidth(s.opts.Width - 30)
	}

	s.installSignalHandler()
	defer s.removeSignalHandler()

	s.sampler.Start()
	s.setState(StateMenu)

	var result Result
	if lineMode {
		result = s.runLine()
	} else {
		result = s.runKeyed()
	}
	result.Interrupted = result.Interrupted || s.interrupted.Load()
	s.shutdown(result.Interrupted)
	return result
}

// lineMode picks plain line mode when forced or when the session is not
// talking to a real terminal.
func (s *Session) lineMode() bool {
	if s.opts.ForceLineMode {
		return true
	}
	out, ok := s.opts.Out.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd())
}

func (s *Session) runLine() Result {
	root := s.buildMainMenu()
	s.printWelcome()
	nav := navigator.New(s.opts.In, s.opts.Out, s.styles)
	nav.SetInterruptCheck(s.interrupted.Load)
	if in, ok := s.opts.In.(*os.File); ok && isatty.IsTerminal(in.Fd()) {
		fd := int(in.Fd())
		nav.SetSecretReader(func() (string, error) {
			secret, err := term.ReadPassword(fd)
			return string(secret), err
		})
	}
	values, err := nav.Run(root)
	if errors.Is(err, navigator.ErrInterrupted) {
		return Result{Values: values, Interrupted: true}
	}
	return Result{Values: values, Err: err}
}

func (s *Session) runKeyed() Result {
	root := s.buildMainMenu()
	model := ui.NewModel(ui.Options{
		Root:            root,
		Styles:          s.styles,
		Width:           s.opts.Width,
		Height:          s.opts.Height,
		ShowFooter:      s.opts.ShowFooter,
		ProgressStyle:   s.progressStyle,
		Tracker:         s.tracker,
		Sampler:         s.sampler,
		Logs:            s.logs,
		MonitorInterval: s.opts.MonitorInterval,
	})
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithInput(s.opts.In),
		tea.WithOutput(s.opts.Out),
	)
	s.program.Store(program)
	_, err := program.Run()
	s.program.Store(nil)
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	if model.Interrupted() {
		s.interrupted.Store(true)
	}
	return Result{Values: model.Values(), Interrupted: model.Interrupted(), Err: err}
}

func (s *Session) installSignalHandler() {
	s.signals = make(chan os.Signal, 4)
	signal.Notify(s.signals, os.Interrupt, syscall.SIGTERM, syscall.SIGWINCH)
	go func() {
		for sig := range s.signals {
			s.handleSignal(sig)
		}
	}()
}

func (s *Session) removeSignalHandler() {
	if s.signals != nil {
		signal.Stop(s.signals)
		close(s.signals)
		s.signals = nil
	}
}

// handleSignal reacts to one OS signal. Interrupts during a long
// operation defer teardown to the end of that operation instead of
// ripping the terminal away mid-render.
func (s *Session) handleSignal(sig os.Signal) {
	switch sig {
	case syscall.SIGWINCH:
		s.handleResize()
		return
	case os.Interrupt, syscall.SIGTERM:
		events.Session.Signal(sig.String())
		s.interrupted.Store(true)
		if s.state.Load() == StateWorking {
			s.shutdownRequested.Store(true)
			return
		}
		s.shutdownRequested.Store(true)
		s.quitUI()
	}
}

// quitUI asks the running full-screen program, if any, to exit. Work
// checkpoints call this once a deferred shutdown request can be
// honoured.
func (s *Session) quitUI() {
	if p := s.program.Load(); p != nil {
		p.Quit()
	}
}

func (s *Session) handleResize() {
	out, ok := s.opts.Out.(*os.File)
	if !ok {
		return
	}
	width, _, err := term.GetSize(int(out.Fd()))
	if err != nil || width <= 0 {
		return
	}
	if s.tracker != nil {
		s.tracker.SetWidth(width - 30)
	}
}

// shutdown moves the session into its terminal state, stops the
// monitors, and cancels any task still running on the tracker.
func (s *Session) shutdown(interrupted bool) {
	s.setState(StateShuttingDown)
	s.sampler.Stop()
	s.sampler.Wait()
	cancelled := 0
	if s.tracker != nil {
		cancelled = s.tracker.CancelRunning()
	}
	if cancelled > 0 {
		logging.Warn(fmt.Sprintf("cancelled %d running task(s) on shutdown", cancelled))
	}
	events.Session.Shutdown(cancelled, interrupted)
	if interrupted {
		fmt.Fprintln(s.opts.Out, "\nInterrupted. Goodbye.")
		return
	}
	fmt.Fprintln(s.opts.Out, "\nGoodbye.")
}

func (s *Session) printWelcome() {
	fmt.Fprintln(s.opts.Out, s.styles.Title.Render("Scrape Console"))
	status, err := s.opts.App.Status()
	if err != nil {
		fmt.Fprintln(s.opts.Out, s.styles.Warning.Render("host status unavailable: "+err.Error()))
		return
	}
	line := fmt.Sprintf("%d site configs loaded", status.SiteConfigsLoaded)
	if status.Engine != nil {
		line += fmt.Sprintf(" · engine %s · %d active / %d completed tasks",
			status.Engine.Status, status.Engine.ActiveTasks, status.Engine.CompletedTasks)
	}
	fmt.Fprintln(s.opts.Out, s.styles.Subtitle.Render(line))
}
