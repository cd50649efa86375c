package validate

import (
	"path/filepath"
	"testing"
)

func TestValidateReturnsFirstFailure(t *testing.T) {
	rules := []Rule{TextLength(2, 10), IntRange(1, 5)}
	ok, msg := Validate("x", rules)
	if ok {
		t.Fatalf("expected rejection")
	}
	if msg != rules[0].Message {
		t.Fatalf("expected first rule message, got %q", msg)
	}
}

func TestValidateEmptyRulesAccepts(t *testing.T) {
	if ok, msg := Validate("anything", nil); !ok || msg != "" {
		t.Fatalf("expected acceptance, got ok=%v msg=%q", ok, msg)
	}
}

func TestIntRange(t *testing.T) {
	rule := IntRange(1, 10)
	cases := []struct {
		raw  string
		want bool
	}{
		{"5", true},
		{"1", true},
		{"10", true},
		{"0", false},
		{"11", false},
		{"x", false},
		{" 7 ", true},
	}
	for _, tc := range cases {
		ok, msg := Validate(tc.raw, []Rule{rule})
		if ok != tc.want {
			t.Fatalf("IntRange(1,10) on %q: got %v, want %v", tc.raw, ok, tc.want)
		}
		if !ok && msg != rule.Message {
			t.Fatalf("expected rule message for %q, got %q", tc.raw, msg)
		}
	}
}

func TestIntBounds(t *testing.T) {
	if ok, _ := Validate("3", []Rule{IntMin(4)}); ok {
		t.Fatalf("IntMin(4) accepted 3")
	}
	if ok, _ := Validate("4", []Rule{IntMin(4)}); !ok {
		t.Fatalf("IntMin(4) rejected 4")
	}
	if ok, _ := Validate("9", []Rule{IntMax(8)}); ok {
		t.Fatalf("IntMax(8) accepted 9")
	}
}

func TestFloatRange(t *testing.T) {
	rule := FloatRange(0.5, 2.5)
	if ok, _ := Validate("1.25", []Rule{rule}); !ok {
		t.Fatalf("expected 1.25 accepted")
	}
	if ok, _ := Validate("2.6", []Rule{rule}); ok {
		t.Fatalf("expected 2.6 rejected")
	}
	if ok, _ := Validate("abc", []Rule{rule}); ok {
		t.Fatalf("expected abc rejected")
	}
}

func TestTextLengthTrims(t *testing.T) {
	rule := TextLength(3, 5)
	if ok, _ := Validate("  abc  ", []Rule{rule}); !ok {
		t.Fatalf("expected trimmed text accepted")
	}
	if ok, _ := Validate("ab", []Rule{rule}); ok {
		t.Fatalf("expected short text rejected")
	}
	if ok, _ := Validate("abcdef", []Rule{rule}); ok {
		t.Fatalf("expected long text rejected")
	}
}

func TestEmail(t *testing.T) {
	rule := Email()
	accepted := []string{"user@example.com", "a.b+c@sub.domain.org"}
	rejected := []string{"user", "user@", "@example.com", "user@example", "a b@example.com"}
	for _, raw := range accepted {
		if ok, _ := Validate(raw, []Rule{rule}); !ok {
			t.Fatalf("expected %q accepted", raw)
		}
	}
	for _, raw := range rejected {
		if ok, _ := Validate(raw, []Rule{rule}); ok {
			t.Fatalf("expected %q rejected", raw)
		}
	}
}

func TestURL(t *testing.T) {
	rule := URL()
	if ok, _ := Validate("https://example.com/path?x=1", []Rule{rule}); !ok {
		t.Fatalf("expected https URL accepted")
	}
	if ok, _ := Validate("http://example.com", []Rule{rule}); !ok {
		t.Fatalf("expected http URL accepted")
	}
	if ok, _ := Validate("ftp://example.com", []Rule{rule}); ok {
		t.Fatalf("expected ftp URL rejected")
	}
	if ok, _ := Validate("http://exa mple.com", []Rule{rule}); ok {
		t.Fatalf("expected URL with space rejected")
	}
}

func TestPathExists(t *testing.T) {
	rule := PathExists()
	dir := t.TempDir()
	if ok, _ := Validate(dir, []Rule{rule}); !ok {
		t.Fatalf("expected existing path accepted")
	}
	missing := filepath.Join(dir, "nope")
	if ok, msg := Validate(missing, []Rule{rule}); ok || msg != rule.Message {
		t.Fatalf("expected missing path rejected with message, got ok=%v msg=%q", ok, msg)
	}
}
