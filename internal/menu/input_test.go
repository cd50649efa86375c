package menu

import "testing"

func TestConvertInput(t *testing.T) {
	if v, err := ConvertInput(InputNumber, "42"); err != nil || v != 42 {
		t.Fatalf("ConvertInput number = %v, %v", v, err)
	}
	if _, err := ConvertInput(InputNumber, "4.2"); err == nil {
		t.Fatalf("expected integer parse failure")
	}
	if v, err := ConvertInput(InputFloat, "4.2"); err != nil || v != 4.2 {
		t.Fatalf("ConvertInput float = %v, %v", v, err)
	}
	if v, err := ConvertInput(InputText, "hello"); err != nil || v != "hello" {
		t.Fatalf("ConvertInput text = %v, %v", v, err)
	}
}

func TestMatchChoice(t *testing.T) {
	choices := []string{"simple", "detailed", "minimal"}
	if c, ok := MatchChoice(choices, "2"); !ok || c != "detailed" {
		t.Fatalf("numeric match = %q, %v", c, ok)
	}
	if _, ok := MatchChoice(choices, "4"); ok {
		t.Fatalf("expected out-of-range index rejected")
	}
	if _, ok := MatchChoice(choices, "0"); ok {
		t.Fatalf("expected zero index rejected")
	}
	if _, ok := MatchChoice(choices, "minimal"); ok {
		t.Fatalf("expected free text rejected")
	}
}

func TestParseConfirmation(t *testing.T) {
	yes := []string{"y", "Yes", "s", "SIM"}
	for _, raw := range yes {
		if v, ok := ParseConfirmation(raw); !ok || !v {
			t.Fatalf("expected %q to confirm", raw)
		}
	}
	no := []string{"n", "no", "nao", "não"}
	for _, raw := range no {
		if v, ok := ParseConfirmation(raw); !ok || v {
			t.Fatalf("expected %q to decline", raw)
		}
	}
	if _, ok := ParseConfirmation("talvez"); ok {
		t.Fatalf("expected unrecognised answer rejected")
	}
}
