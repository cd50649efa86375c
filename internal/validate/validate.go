// Package validate provides the input validation rules used by menu
// input items. Rules are stateless predicates over a raw string and can
// be shared freely between items.
package validate

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Rule pairs a predicate with the message reported when it fails.
type Rule struct {
	Check   func(string) bool
	Message string
}

// Validate evaluates rules in order and returns the first failure
// message. An empty rule list accepts everything.
func Validate(raw string, rules []Rule) (bool, string) {
	for _, rule := range rules {
		if rule.Check == nil {
			continue
		}
		if !rule.Check(raw) {
			return false, rule.Message
		}
	}
	return true, ""
}

// TextLength accepts input whose trimmed length is within [min, max].
func TextLength(min, max int) Rule {
	return Rule{
		Check: func(raw string) bool {
			n := len(strings.TrimSpace(raw))
			return n >= min && n <= max
		},
		Message: fmt.Sprintf("text must be between %d and %d characters", min, max),
	}
}

// IntRange accepts integers within [min, max].
func IntRange(min, max int) Rule {
	return Rule{
		Check: func(raw string) bool {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			return err == nil && n >= min && n <= max
		},
		Message: fmt.Sprintf("enter a valid number (between %d and %d)", min, max),
	}
}

// IntMin accepts integers greater than or equal to min.
func IntMin(min int) Rule {
	return Rule{
		Check: func(raw string) bool {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			return err == nil && n >= min
		},
		Message: fmt.Sprintf("enter a valid number (minimum %d)", min),
	}
}

// IntMax accepts integers less than or equal to max.
func IntMax(max int) Rule {
	return Rule{
		Check: func(raw string) bool {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			return err == nil && n <= max
		},
		Message: fmt.Sprintf("enter a valid number (maximum %d)", max),
	}
}

// FloatRange accepts decimal numbers within [min, max].
func FloatRange(min, max float64) Rule {
	return Rule{
		Check: func(raw string) bool {
			f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			return err == nil && f >= min && f <= max
		},
		Message: "enter a valid decimal number",
	}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email accepts addresses of the local@domain.tld shape.
func Email() Rule {
	return Rule{
		Check:   emailPattern.MatchString,
		Message: "enter a valid email (user@example.com)",
	}
}

var urlPattern = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)

// URL accepts http:// and https:// URLs with a non-empty host.
func URL() Rule {
	return Rule{
		Check:   urlPattern.MatchString,
		Message: "enter a valid URL (http://example.com)",
	}
}

// PathExists accepts paths present on the local filesystem. This is the
// one rule with an external effect: a stat call.
func PathExists() Rule {
	return Rule{
		Check: func(raw string) bool {
			_, err := os.Stat(strings.TrimSpace(raw))
			return err == nil
		},
		Message: "path does not exist",
	}
}
