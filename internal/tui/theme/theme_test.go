package theme

import "testing"

func TestByNameFallsBackToDefault(t *testing.T) {
	if got := ByName("no-such-theme").Name; got != FlexokiDark.Name {
		t.Fatalf("ByName(unknown) = %q, want %q", got, FlexokiDark.Name)
	}
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Fatalf("ByName(tokyo-night) = %q", got)
	}
}

func TestEveryThemeDefinesVerdictColors(t *testing.T) {
	for _, th := range All {
		if th.Approved == "" || th.Risky == "" || th.Rejected == "" {
			t.Fatalf("theme %s is missing a verdict color", th.Name)
		}
		if th.Surface == "" || th.TextPrimary == "" {
			t.Fatalf("theme %s is missing a base color", th.Name)
		}
		if !Valid(th.Name) {
			t.Fatalf("Valid(%q) = false", th.Name)
		}
	}
	if Valid("") {
		t.Fatal("Valid(\"\") = true")
	}
	if n := len(Names()); n != len(All) {
		t.Fatalf("len(Names()) = %d, want %d", n, len(All))
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)
	SetActive("flexoki-light")
	if Active.Name != "flexoki-light" {
		t.Fatalf("Active = %q, want flexoki-light", Active.Name)
	}
}
