package navigator

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/scrapeworks/scrape-console/internal/menu"
	"github.com/scrapeworks/scrape-console/internal/theme"
	"github.com/scrapeworks/scrape-console/internal/validate"
)

func newNavigator(input string) (*Navigator, *bytes.Buffer) {
	out := &bytes.Buffer{}
	styles, _ := theme.ByName("minimal")
	return New(strings.NewReader(input), out, styles), out
}

func TestRunSelectsActionAndExits(t *testing.T) {
	root := menu.New("Main")
	root.AddAction("ping", "Ping", func() (string, error) { return "pong", nil })
	root.AddExit("")

	n, out := newNavigator("1\n2\n")
	if _, err := n.Run(root); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "pong") {
		t.Fatalf("expected action output, got %q", out.String())
	}
}

func TestActionErrorIsRenderedNotPropagated(t *testing.T) {
	root := menu.New("Main")
	root.AddAction("boom", "Boom", func() (string, error) {
		return "", errors.New("engine offline")
	})
	root.AddExit("")

	n, out := newNavigator("1\n2\n")
	if _, err := n.Run(root); err != nil {
		t.Fatalf("expected action error swallowed, got %v", err)
	}
	if !strings.Contains(out.String(), "Boom failed") {
		t.Fatalf("expected failure message, got %q", out.String())
	}
}

func TestSubmenuEnterAndBack(t *testing.T) {
	child := menu.New("Settings")
	child.AddAction("noop", "Noop", func() (string, error) { return "", nil })
	root := menu.New("Main")
	root.AddSubmenu("settings", "Settings", child)

	n, out := newNavigator("1\n0\n")
	if _, err := n.Run(root); err != nil {
		t.Fatalf("Run: %v", err)
	}
	rendered := out.String()
	if !strings.Contains(rendered, "=== Settings ===") {
		t.Fatalf("expected submenu rendered, got %q", rendered)
	}
	if strings.Count(rendered, "=== Main ===") < 2 {
		t.Fatalf("expected return to main menu, got %q", rendered)
	}
}

func TestBackAtRootIsNoop(t *testing.T) {
	root := menu.New("Main")
	root.AddAction("noop", "Noop", func() (string, error) { return "", nil })

	n, out := newNavigator("0\n")
	if _, err := n.Run(root); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Already at the main menu") {
		t.Fatalf("expected root back to be a no-op, got %q", out.String())
	}
}

func TestNumberInputValidation(t *testing.T) {
	root := menu.New("Main")
	root.AddInput("count", "Worker count", menu.InputNumber, []validate.Rule{validate.IntRange(1, 10)})

	n, out := newNavigator("1\nabc\n50\n5\n")
	values, err := n.Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if values["count"] != 5 {
		t.Fatalf("expected count=5, got %v", values["count"])
	}
	if strings.Count(out.String(), "Invalid value") != 2 {
		t.Fatalf("expected two rejections, got %q", out.String())
	}
}

func TestInputDefaultApplied(t *testing.T) {
	root := menu.New("Main")
	root.AddItem(&menu.Item{
		Key: "port", Title: "Port", Kind: menu.KindInput,
		Input: menu.InputNumber, Default: "8080",
		Enabled: true, Visible: true,
	})

	n, _ := newNavigator("1\n\n")
	values, err := n.Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if values["port"] != 8080 {
		t.Fatalf("expected default 8080, got %v", values["port"])
	}
}

func TestConfirmationVocabulary(t *testing.T) {
	root := menu.New("Main")
	root.AddInput("ok", "Proceed", menu.InputConfirmation, nil)

	n, out := newNavigator("1\ntalvez\nsim\n")
	values, err := n.Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if values["ok"] != true {
		t.Fatalf("expected confirmation true, got %v", values["ok"])
	}
	if !strings.Contains(out.String(), "Answer yes or no") {
		t.Fatalf("expected reprompt, got %q", out.String())
	}
}

func TestChoiceByNumberOnly(t *testing.T) {
	root := menu.New("Main")
	root.AddItem(&menu.Item{
		Key: "style", Title: "Style", Kind: menu.KindInput,
		Input: menu.InputChoice, Choices: []string{"simple", "detailed", "minimal"},
		Enabled: true, Visible: true,
	})
	root.AddItem(&menu.Item{
		Key: "theme", Title: "Theme", Kind: menu.KindInput,
		Input: menu.InputChoice, Choices: []string{"dark", "light"},
		Default: "dark", Enabled: true, Visible: true,
	})

	// Free text reprompts; only a listed index is accepted. An empty
	// line takes the configured default.
	n, out := newNavigator("1\n2\n2\nlight\n\n")
	values, err := n.Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if values["style"] != "detailed" {
		t.Fatalf("expected numeric pick, got %v", values["style"])
	}
	if !strings.Contains(out.String(), "Enter the number of an option") {
		t.Fatalf("expected text pick rejected, got %q", out.String())
	}
	if values["theme"] != "dark" {
		t.Fatalf("expected default applied on empty line, got %v", values["theme"])
	}
}

func TestMultiChoiceDropsInvalidTokens(t *testing.T) {
	root := menu.New("Main")
	root.AddItem(&menu.Item{
		Key: "sites", Title: "Sites", Kind: menu.KindInput,
		Input: menu.InputMultiChoice, Choices: []string{"news", "prices", "reviews"},
		Enabled: true, Visible: true,
	})

	n, _ := newNavigator("1\n1, 9, 3, 1, bogus\n")
	values, err := n.Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"news", "reviews"}
	if !reflect.DeepEqual(values["sites"], want) {
		t.Fatalf("expected %v, got %v", want, values["sites"])
	}
}

func TestMultiChoiceEmptySelection(t *testing.T) {
	root := menu.New("Main")
	root.AddItem(&menu.Item{
		Key: "sites", Title: "Sites", Kind: menu.KindInput,
		Input: menu.InputMultiChoice, Choices: []string{"news"},
		Enabled: true, Visible: true,
	})

	n, _ := newNavigator("1\n\n")
	values, err := n.Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	selected, ok := values["sites"].([]string)
	if !ok || len(selected) != 0 {
		t.Fatalf("expected empty selection, got %v", values["sites"])
	}
}

func TestToggleFlipsAndRecords(t *testing.T) {
	root := menu.New("Main")
	root.AddToggle("verbose", "Verbose output", false)

	n, _ := newNavigator("1\n1\n1\n")
	values, err := n.Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if values["verbose"] != true {
		t.Fatalf("expected three flips to land on true, got %v", values["verbose"])
	}
	if !root.Items[0].On {
		t.Fatalf("expected item state flipped")
	}
}

func TestInterruptStopsRun(t *testing.T) {
	root := menu.New("Main")
	root.AddAction("noop", "Noop", func() (string, error) { return "", nil })

	n, _ := newNavigator("1\n1\n1\n")
	n.SetInterruptCheck(func() bool { return true })
	if _, err := n.Run(root); err != ErrInterrupted {
		t.Fatalf("expected ErrInterrupted, got %v", err)
	}
}

func TestShortcutSelection(t *testing.T) {
	root := menu.New("Main")
	root.AddItem(&menu.Item{
		Key: "quit", Title: "Quit", Kind: menu.KindExit,
		Shortcut: "q", Enabled: true, Visible: true,
	})

	n, _ := newNavigator("q\n")
	if _, err := n.Run(root); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestDisabledItemsNotNumbered(t *testing.T) {
	root := menu.New("Main")
	root.AddItem(&menu.Item{Key: "off", Title: "Off", Kind: menu.KindAction, Visible: true})
	root.AddAction("on", "On", func() (string, error) { return "ran", nil })

	n, out := newNavigator("1\n")
	if _, err := n.Run(root); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "ran") {
		t.Fatalf("expected ordinal 1 to hit the enabled item, got %q", out.String())
	}
}
