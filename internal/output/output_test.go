package output

import (
	"strings"
	"testing"
)

func TestWordIncludesClass(t *testing.T) {
	got := Word("casa", 120)
	if !strings.Contains(got, "casa") || !strings.Contains(got, "[120]") {
		t.Errorf("Word: got %q", got)
	}
}

func TestDueWordMarker(t *testing.T) {
	got := DueWord("casa")
	if !strings.Contains(got, "casa") || !strings.Contains(got, "(due)") {
		t.Errorf("DueWord: got %q", got)
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	t.Setenv("COLUMNS", "")
	if got := TerminalWidth(72); got <= 0 {
		t.Errorf("width should be positive, got %d", got)
	}

	t.Setenv("COLUMNS", "not a number")
	if got := TerminalWidth(0); got <= 0 {
		t.Errorf("width with bad COLUMNS should fall back, got %d", got)
	}
}

func TestColumnsLayout(t *testing.T) {
	if got := Columns(nil); got != "" {
		t.Errorf("empty input: got %q", got)
	}

	items := []string{"casa", "cane", "pane", "vino"}
	got := Columns(items)
	if !strings.HasSuffix(got, "\n") {
		t.Error("output should end with a newline")
	}
	for _, item := range items {
		if !strings.Contains(got, item) {
			t.Errorf("missing item %q in %q", item, got)
		}
	}
}
