package progress

import (
	"fmt"
	"strings"
	"time"
)

// Style selects a bar rendering strategy.
type Style int

const (
	StyleSimple Style = iota
	StyleDetailed
	StyleMinimal
	StyleAnimated
	StyleSpinner
)

// StyleNames lists the accepted style identifiers, in menu order.
var StyleNames = []string{"simple", "detailed", "minimal", "animated", "spinner"}

// String implements fmt.Stringer.
func (s Style) String() string {
	if s < 0 || int(s) >= len(StyleNames) {
		return "detailed"
	}
	return StyleNames[s]
}

// ParseStyle resolves a style identifier.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "simple":
		return StyleSimple, nil
	case "detailed", "":
		return StyleDetailed, nil
	case "minimal":
		return StyleMinimal, nil
	case "animated":
		return StyleAnimated, nil
	case "spinner":
		return StyleSpinner, nil
	default:
		return StyleDetailed, fmt.Errorf("unknown progress style %q", name)
	}
}

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

const spinnerInterval = 100 * time.Millisecond

// Renderer formats tasks as text. The spinner frame is keyed by wall
// clock time so concurrent renders stay in step.
type Renderer struct {
	Width int
	now   func() time.Time
}

// NewRenderer returns a renderer with the given bar width.
func NewRenderer(width int) *Renderer {
	if width <= 0 {
		width = 50
	}
	return &Renderer{Width: width, now: time.Now}
}

// Render formats the task using the requested style.
func (r *Renderer) Render(t *Task, style Style) string {
	switch style {
	case StyleSimple:
		return r.renderSimple(t)
	case StyleMinimal:
		return r.renderMinimal(t)
	case StyleAnimated:
		return r.renderAnimated(t)
	case StyleSpinner:
		return r.renderSpinner(t)
	default:
		return r.renderDetailed(t)
	}
}

func (r *Renderer) bar(t *Task) string {
	filled := int(float64(r.Width) * t.Percent() / 100)
	if filled > r.Width {
		filled = r.Width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", r.Width-filled)
}

func (r *Renderer) renderSimple(t *Task) string {
	return fmt.Sprintf("%s: [%s] %.1f%% (%d/%d)", t.Title, r.bar(t), t.Percent(), t.Current, t.Total)
}

func (r *Renderer) renderDetailed(t *Task) string {
	eta := ""
	if remaining, ok := t.EstimatedRemaining(); ok {
		eta = fmt.Sprintf(" | ETA: %s", remaining.Round(time.Second))
	}
	return fmt.Sprintf("%s\n[%s] %.1f%%\nProgress: %d/%d | Elapsed: %s%s",
		t.Title, r.bar(t), t.Percent(), t.Current, t.Total, t.Elapsed().Round(time.Second), eta)
}

func (r *Renderer) renderMinimal(t *Task) string {
	return fmt.Sprintf("%s: %.0f%% (%d/%d)", t.Title, t.Percent(), t.Current, t.Total)
}

func (r *Renderer) renderAnimated(t *Task) string {
	filled := int(float64(r.Width) * t.Percent() / 100)
	if filled > r.Width {
		filled = r.Width
	}
	var bar string
	if filled < r.Width && t.Status == StatusRunning {
		if filled > 0 {
			bar = strings.Repeat("█", filled-1) + "▶" + strings.Repeat("░", r.Width-filled)
		} else {
			bar = "▷" + strings.Repeat("░", r.Width-1)
		}
	} else {
		bar = strings.Repeat("█", filled) + strings.Repeat("░", r.Width-filled)
	}
	return fmt.Sprintf("%s: [%s] %.1f%%", t.Title, bar, t.Percent())
}

func (r *Renderer) renderSpinner(t *Task) string {
	var glyph rune
	switch t.Status {
	case StatusRunning:
		frame := int(r.now().UnixNano()/int64(spinnerInterval)) % len(spinnerFrames)
		glyph = spinnerFrames[frame]
	case StatusCompleted:
		glyph = '✓'
	default:
		glyph = '✗'
	}
	return fmt.Sprintf("%c %s: %d/%d", glyph, t.Title, t.Current, t.Total)
}
