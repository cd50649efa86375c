// Package theme holds the named Lip Gloss style sets selectable from
// the settings menu.
package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title        *lipgloss.Style
	Subtitle     *lipgloss.Style
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	Disabled     *lipgloss.Style
	Separator    *lipgloss.Style
	Shortcut     *lipgloss.Style
	Error        *lipgloss.Style
	Info         *lipgloss.Style
	Success      *lipgloss.Style
	Warning      *lipgloss.Style
	Header       *lipgloss.Style
	Footer       *lipgloss.Style
	Filter       *lipgloss.Style
	Cursor       *lipgloss.Style
	LogDebug     *lipgloss.Style
	LogInfo      *lipgloss.Style
	LogWarn      *lipgloss.Style
	LogError     *lipgloss.Style
}

var themes = map[string]*Styles{
	"default":  defaultStyles(),
	"dark":     darkStyles(),
	"light":    lightStyles(),
	"colorful": colorfulStyles(),
	"minimal":  minimalStyles(),
}

// Names lists the selectable theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName resolves a theme name, case-insensitive. Empty picks default.
func ByName(name string) (*Styles, error) {
	if name == "" {
		name = "default"
	}
	styles, ok := themes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return styles, nil
}

// Default exposes the standard style set.
func Default() *Styles {
	return themes["default"]
}

func defaultStyles() *Styles {
	return &Styles{
		Title:        ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)),
		Subtitle:     ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245"))),
		Item:         ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
		SelectedItem: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true)),
		Disabled:     ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Faint(true)),
		Separator:    ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))),
		Shortcut:     ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245"))),
		Error:        ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)),
		Info:         ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
		Success:      ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("34"))),
		Warning:      ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("214"))),
		Header:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)),
		Footer:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
		Filter:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
		Cursor:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33"))),
		LogDebug:     ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))),
		LogInfo:      ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
		LogWarn:      ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("214"))),
		LogError:     ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("196"))),
	}
}

func darkStyles() *Styles {
	s := *defaultStyles()
	s.Title = ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true))
	s.Item = ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("252")))
	s.SelectedItem = ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("236")).Bold(true))
	return &s
}

func lightStyles() *Styles {
	s := *defaultStyles()
	s.Title = ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true))
	s.Item = ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("235")))
	s.SelectedItem = ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("254")).Bold(true))
	s.Disabled = ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("250")))
	return &s
}

func colorfulStyles() *Styles {
	s := *defaultStyles()
	s.Title = ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true))
	s.Subtitle = ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("141")))
	s.SelectedItem = ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true))
	s.Success = ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("46")))
	return &s
}

func minimalStyles() *Styles {
	plain := ptr(lipgloss.NewStyle())
	bold := ptr(lipgloss.NewStyle().Bold(true))
	return &Styles{
		Title:        bold,
		Subtitle:     plain,
		Item:         plain,
		SelectedItem: ptr(lipgloss.NewStyle().Reverse(true)),
		Disabled:     ptr(lipgloss.NewStyle().Faint(true)),
		Separator:    plain,
		Shortcut:     plain,
		Error:        bold,
		Info:         plain,
		Success:      plain,
		Warning:      plain,
		Header:       bold,
		Footer:       plain,
		Filter:       plain,
		Cursor:       ptr(lipgloss.NewStyle().Reverse(true)),
		LogDebug:     plain,
		LogInfo:      plain,
		LogWarn:      plain,
		LogError:     bold,
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
