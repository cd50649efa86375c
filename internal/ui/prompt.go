package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scrapeworks/scrape-console/internal/logging/events"
	"github.com/scrapeworks/scrape-console/internal/menu"
	"github.com/scrapeworks/scrape-console/internal/validate"
)

// promptState captures one line-entry input item via bubbles/textinput.
type promptState struct {
	item   *menu.Item
	owner  *menu.Menu
	input  textinput.Model
	errMsg string
}

// choiceState captures a choice or multi-choice input item with its own
// cursor, independent of the menu stack.
type choiceState struct {
	item     *menu.Item
	owner    *menu.Menu
	cursor   int
	selected map[int]bool
	multi    bool
}

func (m *Model) startPrompt(current *level, item *menu.Item) tea.Cmd {
	input := textinput.New()
	input.Prompt = "> "
	if m.styles.Filter != nil {
		input.TextStyle = *m.styles.Filter
	}
	if item.Default != "" {
		input.Placeholder = item.Default
	}
	if item.Input == menu.InputPassword {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '*'
	}
	m.prompt = &promptState{item: item, owner: current.menu, input: input}
	m.mode = ModePrompt
	return input.Focus()
}

func (m *Model) handlePromptKey(key tea.KeyMsg) tea.Cmd {
	p := m.prompt
	if p == nil {
		m.mode = ModeMenu
		return nil
	}
	switch key.String() {
	case "esc":
		m.prompt = nil
		m.mode = ModeMenu
		return nil
	case "enter":
		return m.acceptPrompt(p)
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(key)
	return cmd
}

func (m *Model) acceptPrompt(p *promptState) tea.Cmd {
	raw := strings.TrimSpace(p.input.Value())
	if raw == "" && p.item.Default != "" {
		raw = p.item.Default
	}
	if p.item.Input == menu.InputConfirmation {
		value, ok := menu.ParseConfirmation(raw)
		if !ok {
			p.errMsg = "answer yes or no"
			return nil
		}
		m.recordInput(p.owner, p.item, value)
		return nil
	}
	rules := append(menu.KindRules(p.item.Input), p.item.Rules...)
	if ok, msg := validate.Validate(raw, rules); !ok {
		events.UI.InputRejected(p.item.Key, msg)
		p.errMsg = msg
		return nil
	}
	value, err := menu.ConvertInput(p.item.Input, raw)
	if err != nil {
		events.UI.InputRejected(p.item.Key, err.Error())
		p.errMsg = err.Error()
		return nil
	}
	m.recordInput(p.owner, p.item, value)
	return nil
}

func (m *Model) startChoice(current *level, item *menu.Item) {
	m.choice = &choiceState{
		item:     item,
		owner:    current.menu,
		selected: make(map[int]bool),
		multi:    item.Input == menu.InputMultiChoice,
	}
	if item.Default != "" {
		if _, ok := menu.MatchChoice(item.Choices, item.Default); ok {
			for i, choice := range item.Choices {
				if strings.EqualFold(choice, item.Default) {
					m.choice.cursor = i
					break
				}
			}
		}
	}
	m.mode = ModeChoice
}

func (m *Model) handleChoiceKey(key tea.KeyMsg) tea.Cmd {
	c := m.choice
	if c == nil {
		m.mode = ModeMenu
		return nil
	}
	switch key.String() {
	case "esc":
		m.choice = nil
		m.mode = ModeMenu
	case "up", "ctrl+p":
		if c.cursor > 0 {
			c.cursor--
		} else {
			c.cursor = len(c.item.Choices) - 1
		}
	case "down", "ctrl+n":
		if c.cursor < len(c.item.Choices)-1 {
			c.cursor++
		} else {
			c.cursor = 0
		}
	case " ", "tab":
		if c.multi {
			c.selected[c.cursor] = !c.selected[c.cursor]
		}
	case "enter":
		m.acceptChoice(c)
	}
	return nil
}

func (m *Model) acceptChoice(c *choiceState) {
	if !c.multi {
		if c.cursor >= 0 && c.cursor < len(c.item.Choices) {
			m.recordInput(c.owner, c.item, c.item.Choices[c.cursor])
		}
		return
	}
	selected := make([]string, 0, len(c.selected))
	for i, choice := range c.item.Choices {
		if c.selected[i] {
			selected = append(selected, choice)
		}
	}
	m.recordInput(c.owner, c.item, selected)
}

// recordInput stores an accepted value and returns control to the menu.
func (m *Model) recordInput(owner *menu.Menu, item *menu.Item, value any) {
	owner.SetResult(item.Key, value)
	m.values[item.Key] = value
	events.UI.InputAccepted(item.Key)
	m.prompt = nil
	m.choice = nil
	m.mode = ModeMenu
}
