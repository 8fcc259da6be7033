package shared

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding used by the pages.
type KeyMap struct {
	Quit        key.Binding
	Search      key.Binding
	Refresh     key.Binding
	Select      key.Binding
	Insert      key.Binding
	Normal      key.Binding
	Next        key.Binding
	Prev        key.Binding
	OpenConsole key.Binding
}

// Keys is the application key map.
var Keys = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Search: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "search"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open dashboard"),
	),
	Insert: key.NewBinding(
		key.WithKeys("i", "/"),
		key.WithHelp("i", "insert mode"),
	),
	Normal: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "normal mode"),
	),
	Next: key.NewBinding(
		key.WithKeys("ctrl+n", "down"),
		key.WithHelp("ctrl+n", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("ctrl+p", "up"),
		key.WithHelp("ctrl+p", "previous"),
	),
	OpenConsole: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open console"),
	),
}

// HelpLine renders bindings as "help: [q] quit, [s] search".
func HelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, "["+h.Key+"] "+h.Desc)
	}
	return "help: " + strings.Join(parts, ", ")
}
