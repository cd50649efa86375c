package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scrapeworks/scrape-console/internal/validate"
)

// KindRules returns the checks implied by an input kind itself, applied
// before any item-specific rules.
func KindRules(kind InputKind) []validate.Rule {
	switch kind {
	case InputEmail:
		return []validate.Rule{validate.Email()}
	case InputURL:
		return []validate.Rule{validate.URL()}
	case InputPath:
		return []validate.Rule{validate.PathExists()}
	default:
		return nil
	}
}

// ConvertInput turns a validated raw string into the typed value an
// input kind produces.
func ConvertInput(kind InputKind, raw string) (any, error) {
	switch kind {
	case InputNumber:
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return value, nil
	case InputFloat:
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return value, nil
	default:
		return raw, nil
	}
}

// MatchChoice resolves a 1-based index token against a choice list.
// Free text never matches; selections are made by number only.
func MatchChoice(choices []string, token string) (string, bool) {
	num, err := strconv.Atoi(token)
	if err != nil || num < 1 || num > len(choices) {
		return "", false
	}
	return choices[num-1], true
}

// ParseConfirmation maps a yes/no answer to a bool. The second result
// reports whether the answer was recognised; both English and
// Portuguese forms are accepted.
func ParseConfirmation(raw string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "s", "sim":
		return true, true
	case "n", "no", "nao", "não":
		return false, true
	}
	return false, false
}
