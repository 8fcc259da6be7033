package shared

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestEnsureVisible(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		length   int
		vp       Viewport
		want     int
	}{
		{"already visible", 2, 10, Viewport{Offset: 0, Height: 5}, 0},
		{"scrolls down", 7, 10, Viewport{Offset: 0, Height: 5}, 3},
		{"scrolls up", 1, 10, Viewport{Offset: 4, Height: 5}, 1},
		{"clamps to end", 9, 10, Viewport{Offset: 8, Height: 5}, 5},
		{"short list", 1, 3, Viewport{Offset: 2, Height: 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := tt.vp
			EnsureVisible(tt.selected, tt.length, &vp)
			if vp.Offset != tt.want {
				t.Errorf("Expected offset %d, got %d", tt.want, vp.Offset)
			}
		})
	}
}

func TestGetVisibleRange(t *testing.T) {
	start, end := GetVisibleRange(10, Viewport{Offset: 8, Height: 5})
	if start != 8 || end != 10 {
		t.Errorf("Expected [8,10), got [%d,%d)", start, end)
	}
	if start, end := GetVisibleRange(0, Viewport{Height: 5}); start != 0 || end != 0 {
		t.Errorf("Expected empty range, got [%d,%d)", start, end)
	}
}

func TestClampIndex(t *testing.T) {
	tests := []struct{ i, length, want int }{
		{0, 0, 0},
		{5, 0, 0},
		{-1, 3, 0},
		{2, 3, 2},
		{7, 3, 2},
	}
	for _, tt := range tests {
		if got := ClampIndex(tt.i, tt.length); got != tt.want {
			t.Errorf("ClampIndex(%d, %d) = %d, want %d", tt.i, tt.length, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"orders-service", 20, "orders-service"},
		{"orders-service", 10, "orders-..."},
		{"orders-service", 3, "ord"},
		{"orders-service", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}

	styled := lipgloss.NewStyle().Bold(true).Render("orders-service")
	if w := ansi.StringWidth(Truncate(styled, 10)); w != 10 {
		t.Errorf("Expected styled text to truncate to 10 cells, got %d", w)
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("abc", 6); got != "abc   " {
		t.Errorf("Expected padded string, got %q", got)
	}
	if got := PadRight("abcdefgh", 6); got != "abc..." {
		t.Errorf("Expected truncated string, got %q", got)
	}
}

func TestFitHeight(t *testing.T) {
	if got := FitHeight("a\nb\nc", 2); got != "a\nb" {
		t.Errorf("Expected cut to 2 lines, got %q", got)
	}
	if got := FitHeight("a", 3); got != "a\n\n" {
		t.Errorf("Expected padding to 3 lines, got %q", got)
	}
}

func TestBoxDimensions(t *testing.T) {
	box := Box("Results", "row 1\nrow 2", 30, 6, lipgloss.Color("8"))
	lines := strings.Split(box, "\n")
	if len(lines) != 6 {
		t.Fatalf("Expected 6 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 30 {
			t.Errorf("line %d: expected width 30, got %d", i, w)
		}
	}
	if !strings.Contains(ansi.Strip(lines[0]), "Results") {
		t.Errorf("Expected title on the top border, got %q", ansi.Strip(lines[0]))
	}
}

func TestHelpLine(t *testing.T) {
	got := HelpLine(Keys.Quit, Keys.Search)
	if got != "help: [q] quit, [s] search" {
		t.Errorf("Unexpected help line %q", got)
	}
}

func TestLogo(t *testing.T) {
	if !strings.Contains(Logo(false), "_)") || !strings.Contains(Logo(true), "x)") {
		t.Error("Expected the dazed logo to differ from the normal one")
	}
}
