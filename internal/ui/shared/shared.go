package shared

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Viewport holds scrolling state for list-like views.
type Viewport struct {
	Offset int
	Height int
}

// EnsureVisible adjusts the viewport offset to keep the selected item visible.
func EnsureVisible(selectedIndex, listLength int, vp *Viewport) {
	if listLength == 0 || vp == nil || vp.Height <= 0 {
		return
	}
	if selectedIndex < vp.Offset {
		vp.Offset = selectedIndex
	} else if selectedIndex >= vp.Offset+vp.Height {
		vp.Offset = selectedIndex - vp.Height + 1
	}
	maxOffset := max(listLength-vp.Height, 0)
	vp.Offset = min(max(vp.Offset, 0), maxOffset)
}

// GetVisibleRange returns start and end indices for the current viewport.
func GetVisibleRange(listLength int, vp Viewport) (int, int) {
	if listLength == 0 || vp.Height <= 0 {
		return 0, 0
	}
	start := vp.Offset
	end := min(vp.Offset+vp.Height, listLength)
	return start, end
}

// ClampIndex keeps i within [0, length-1], or 0 for an empty list.
func ClampIndex(i, length int) int {
	if length <= 0 || i < 0 {
		return 0
	}
	return min(i, length-1)
}

// Truncate shortens a string to the given display width with ellipsis.
// ANSI sequences are preserved and not counted.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return ansi.Truncate(s, width, "")
	}
	return ansi.Truncate(s, width, "...")
}

// PadRight pads s with spaces up to the given display width, truncating
// when it is wider.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
