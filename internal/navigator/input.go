package navigator

import (
	"fmt"
	"strings"

	"github.com/scrapeworks/scrape-console/internal/logging/events"
	"github.com/scrapeworks/scrape-console/internal/menu"
	"github.com/scrapeworks/scrape-console/internal/validate"
)

// promptInput runs the capture protocol for one input item. The bool
// reports whether a value was accepted; EOF aborts the prompt without a
// value and without error.
func (n *Navigator) promptInput(item *menu.Item) (any, bool, error) {
	switch item.Input {
	case menu.InputChoice:
		return n.promptChoice(item)
	case menu.InputMultiChoice:
		return n.promptMultiChoice(item)
	case menu.InputConfirmation:
		return n.promptConfirmation(item)
	default:
		return n.promptLine(item)
	}
}

func (n *Navigator) promptLine(item *menu.Item) (any, bool, error) {
	rules := append(menu.KindRules(item.Input), item.Rules...)
	for {
		if n.interrupted != nil && n.interrupted() {
			return nil, false, ErrInterrupted
		}
		n.printPrompt(item)
		raw, err := n.readValue(item)
		if err != nil {
			return nil, false, nil
		}
		if raw == "" && item.Default != "" {
			raw = item.Default
		}
		if ok, msg := validate.Validate(raw, rules); !ok {
			events.UI.InputRejected(item.Key, msg)
			n.errorf("Invalid value: %s", msg)
			continue
		}
		value, convErr := menu.ConvertInput(item.Input, raw)
		if convErr != nil {
			events.UI.InputRejected(item.Key, convErr.Error())
			n.errorf("Invalid value: %v", convErr)
			continue
		}
		return value, true, nil
	}
}

func (n *Navigator) promptChoice(item *menu.Item) (any, bool, error) {
	for {
		if n.interrupted != nil && n.interrupted() {
			return nil, false, ErrInterrupted
		}
		fmt.Fprintln(n.out, n.styles.Header.Render(item.Title+":"))
		for i, choice := range item.Choices {
			fmt.Fprintf(n.out, "  %d) %s\n", i+1, choice)
		}
		n.printPrompt(item)
		raw, err := n.readValue(item)
		if err != nil {
			return nil, false, nil
		}
		if raw == "" && item.Default != "" {
			// Defaults are configured by name, not index.
			for _, choice := range item.Choices {
				if strings.EqualFold(choice, item.Default) {
					return choice, true, nil
				}
			}
		}
		if choice, ok := menu.MatchChoice(item.Choices, raw); ok {
			return choice, true, nil
		}
		events.UI.InputRejected(item.Key, "not a listed choice")
		n.errorf("Enter the number of an option.")
	}
}

// promptMultiChoice accepts a comma-separated selection. Tokens that
// match nothing are dropped rather than failing the whole line; an
// empty line selects nothing.
func (n *Navigator) promptMultiChoice(item *menu.Item) (any, bool, error) {
	if n.interrupted != nil && n.interrupted() {
		return nil, false, ErrInterrupted
	}
	fmt.Fprintln(n.out, n.styles.Header.Render(item.Title+" (comma-separated):"))
	for i, choice := range item.Choices {
		fmt.Fprintf(n.out, "  %d) %s\n", i+1, choice)
	}
	n.printPrompt(item)
	raw, err := n.readValue(item)
	if err != nil {
		return nil, false, nil
	}
	selected := make([]string, 0, len(item.Choices))
	seen := make(map[string]bool)
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		choice, ok := menu.MatchChoice(item.Choices, token)
		if !ok || seen[choice] {
			continue
		}
		seen[choice] = true
		selected = append(selected, choice)
	}
	return selected, true, nil
}

func (n *Navigator) promptConfirmation(item *menu.Item) (any, bool, error) {
	for {
		if n.interrupted != nil && n.interrupted() {
			return nil, false, ErrInterrupted
		}
		fmt.Fprintf(n.out, "%s (y/n): ", item.Title)
		raw, err := n.readValue(item)
		if err != nil {
			return nil, false, nil
		}
		if raw == "" && item.Default != "" {
			raw = item.Default
		}
		if value, ok := menu.ParseConfirmation(raw); ok {
			return value, true, nil
		}
		n.errorf("Answer yes or no.")
	}
}

func (n *Navigator) printPrompt(item *menu.Item) {
	if item.Default != "" {
		fmt.Fprintf(n.out, "%s [%s]: ", item.Title, item.Default)
		return
	}
	fmt.Fprintf(n.out, "%s: ", item.Title)
}

func (n *Navigator) readValue(item *menu.Item) (string, error) {
	if item.Input == menu.InputPassword && n.readSecret != nil {
		secret, err := n.readSecret()
		fmt.Fprintln(n.out)
		return strings.TrimSpace(secret), err
	}
	line, err := n.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
