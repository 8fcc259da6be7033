package search

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/noelruault/shepherd/internal/core"
)

type recorder struct {
	actions []core.Action
}

func (r *recorder) Send(a core.Action) { r.actions = append(r.actions, a) }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(p *Page, s string) {
	for _, r := range s {
		p.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func searchPage(rec *recorder, names ...string) Page {
	return New(core.NewSearchState(functions(names...)), rec)
}

func TestNewFromSearchState(t *testing.T) {
	p := searchPage(&recorder{}, "f1", "f2")
	if len(p.Matches()) != 2 || p.Index() != 0 || p.Mode() != ModeNormal {
		t.Errorf("Unexpected initial page: %d matches, index %d, mode %v", len(p.Matches()), p.Index(), p.Mode())
	}
	if p.Name() != "Search" {
		t.Errorf("Expected name Search, got %q", p.Name())
	}
}

func TestNewFromOtherState(t *testing.T) {
	p := New(core.SplashState{}, &recorder{})
	if len(p.Matches()) != 0 || p.Index() != 0 {
		t.Errorf("Expected empty page, got %d matches", len(p.Matches()))
	}
	if _, ok := p.Selected(); ok {
		t.Error("Expected no selection on an empty page")
	}
}

func TestInsertModeFilters(t *testing.T) {
	p := searchPage(&recorder{}, "foo", "bar", "foobar")

	p.HandleKey(runes("i"))
	if p.Mode() != ModeInsert {
		t.Fatalf("Expected insert mode, got %v", p.Mode())
	}
	typeText(&p, "fo")

	if p.Query() != "fo" {
		t.Errorf("Expected query 'fo', got %q", p.Query())
	}
	got := names(p.Matches())
	if strings.Join(got, ",") != "foo,foobar" {
		t.Errorf("Expected [foo foobar], got %v", got)
	}

	p.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Mode() != ModeNormal {
		t.Errorf("Expected esc to return to normal mode")
	}
}

func TestSlashEntersInsertMode(t *testing.T) {
	p := searchPage(&recorder{}, "foo")
	p.HandleKey(runes("/"))
	if p.Mode() != ModeInsert {
		t.Errorf("Expected / to enter insert mode")
	}
	if p.Query() != "" {
		t.Errorf("Expected the mode key not to be typed, got %q", p.Query())
	}
}

func TestNormalModeKeys(t *testing.T) {
	tests := []struct {
		key  string
		want core.Action
	}{
		{"q", core.QuitAction{}},
		{"r", core.RefreshAction{}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			rec := &recorder{}
			p := searchPage(rec, "foo")
			p.HandleKey(runes(tt.key))
			if len(rec.actions) != 1 || rec.actions[0] != tt.want {
				t.Errorf("Expected %T, got %v", tt.want, rec.actions)
			}
		})
	}
}

func TestQuitKeyTypesInInsertMode(t *testing.T) {
	rec := &recorder{}
	p := searchPage(rec, "queue-worker")
	p.HandleKey(runes("i"))
	p.HandleKey(runes("q"))

	if len(rec.actions) != 0 {
		t.Errorf("Expected no action in insert mode, got %v", rec.actions)
	}
	if p.Query() != "q" {
		t.Errorf("Expected q to be typed, got %q", p.Query())
	}
}

func TestCursorMovementClamps(t *testing.T) {
	p := searchPage(&recorder{}, "a1", "a2", "a3")

	p.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlP})
	if p.Index() != 0 {
		t.Errorf("Expected index to stay at 0, got %d", p.Index())
	}
	for range 5 {
		p.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlN})
	}
	if p.Index() != 2 {
		t.Errorf("Expected index clamped to 2, got %d", p.Index())
	}
	p.HandleKey(tea.KeyMsg{Type: tea.KeyUp})
	if p.Index() != 1 {
		t.Errorf("Expected up to move to 1, got %d", p.Index())
	}
}

func TestSelectSendsPerformSearch(t *testing.T) {
	rec := &recorder{}
	p := searchPage(rec, "f1", "f2")

	p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if len(rec.actions) != 1 {
		t.Fatalf("Expected 1 action, got %d", len(rec.actions))
	}
	action, ok := rec.actions[0].(core.PerformSearchAction)
	if !ok || action.Function.Name != "f1" {
		t.Errorf("Expected PerformSearch for f1, got %#v", rec.actions[0])
	}
}

func TestSelectOnEmptyListSendsNothing(t *testing.T) {
	rec := &recorder{}
	p := searchPage(rec, "foo")
	p.HandleKey(runes("i"))
	typeText(&p, "zzz")
	p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if len(rec.actions) != 0 {
		t.Errorf("Expected no action, got %v", rec.actions)
	}
}

func TestIndexClampedAfterNarrowing(t *testing.T) {
	p := searchPage(&recorder{}, "alpha", "beta", "gamma")
	p.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlN})
	p.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlN})
	p.HandleKey(runes("i"))
	typeText(&p, "alp")

	if len(p.Matches()) != 1 || p.Index() != 0 {
		t.Errorf("Expected index clamped to 0 with 1 match, got %d of %d", p.Index(), len(p.Matches()))
	}
}

func TestWithStateKeepsQuery(t *testing.T) {
	p := searchPage(&recorder{}, "foo", "bar")
	p.HandleKey(runes("i"))
	typeText(&p, "fo")

	p = p.WithState(core.NewSearchState(functions("foo", "bar", "food")))
	if p.Query() != "fo" {
		t.Errorf("Expected query to survive a search rebuild, got %q", p.Query())
	}
	if got := names(p.Matches()); strings.Join(got, ",") != "foo,food" {
		t.Errorf("Expected [foo food], got %v", got)
	}
	if p.Mode() != ModeNormal {
		t.Errorf("Expected rebuild to return to normal mode")
	}
}

func TestWithStateIsIdempotent(t *testing.T) {
	st := core.NewSearchState(functions("foo", "bar", "foobar"))
	p := New(st, &recorder{})
	p.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlN})

	once := p.WithState(st)
	twice := once.WithState(st)

	if once.Index() != twice.Index() || strings.Join(names(once.Matches()), ",") != strings.Join(names(twice.Matches()), ",") {
		t.Error("Expected rebuilding with the same state twice to give the same page")
	}
	if once.View(80, 20) != twice.View(80, 20) {
		t.Error("Expected identical renders")
	}
}

func TestWithSearchingState(t *testing.T) {
	p := searchPage(&recorder{}, "orders")
	p = p.WithState(core.SearchingState{Function: core.FunctionSummary{Name: "orders"}})

	fn, ok := p.Pending()
	if !ok || fn.Name != "orders" {
		t.Fatalf("Expected pending function orders, got %v %v", fn, ok)
	}
	if len(p.Matches()) != 0 {
		t.Errorf("Expected empty list while searching, got %d", len(p.Matches()))
	}
	if !strings.Contains(ansi.Strip(p.View(100, 20)), "loading metrics and triggers for orders") {
		t.Error("Expected the loading line in the view")
	}
}

func TestWithOtherStateResets(t *testing.T) {
	p := searchPage(&recorder{}, "foo")
	p.HandleKey(runes("i"))
	typeText(&p, "fo")

	p = p.WithState(core.ErrorState{Message: "boom"})
	if p.Query() != "" || len(p.Matches()) != 0 || p.Index() != 0 {
		t.Errorf("Expected a full reset, got query %q and %d matches", p.Query(), len(p.Matches()))
	}
}

func TestView(t *testing.T) {
	p := searchPage(&recorder{}, "orders-api", "billing")
	out := p.View(80, 20)
	plain := ansi.Strip(out)

	for _, want := range []string{"Results", "name", "runtime", "memory", ">> billing", "orders-api", "NORMAL", "search:", "help: [q] quit"} {
		if !strings.Contains(plain, want) {
			t.Errorf("Expected %q in search view", want)
		}
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Errorf("Expected 20 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w > 80 {
			t.Errorf("line %d is %d cells wide", i, w)
		}
	}
}

func TestViewScrollsToCursor(t *testing.T) {
	var many []string
	for i := range 30 {
		many = append(many, "fn-"+string(rune('a'+i%26))+strings.Repeat("x", i))
	}
	p := searchPage(&recorder{}, many...)
	for range 25 {
		p.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	}

	selected, _ := p.Selected()
	if !strings.Contains(ansi.Strip(p.View(120, 15)), ">> "+selected.Function.Name) {
		t.Errorf("Expected the selected row %q to be visible", selected.Function.Name)
	}
}

func TestScrollingUpKeepsOffset(t *testing.T) {
	var names []string
	for i := range 30 {
		names = append(names, fmt.Sprintf("fn-%02d", i))
	}
	p := searchPage(&recorder{}, names...)
	p.SetSize(120, 15)
	rows := visibleRows(15)

	for range 25 {
		p.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	}
	wantOffset := 25 - rows + 1
	if p.Offset() != wantOffset {
		t.Fatalf("Expected offset %d after scrolling down, got %d", wantOffset, p.Offset())
	}

	for range 5 {
		p.HandleKey(tea.KeyMsg{Type: tea.KeyUp})
	}
	if p.Index() != 20 || p.Offset() != wantOffset {
		t.Fatalf("Expected index 20 at offset %d, got index %d offset %d", wantOffset, p.Index(), p.Offset())
	}

	lines := strings.Split(ansi.Strip(p.View(120, 15)), "\n")
	first, cursor := -1, -1
	for i, l := range lines {
		if first < 0 && strings.Contains(l, p.Matches()[wantOffset].Function.Name) {
			first = i
		}
		if strings.Contains(l, ">> ") {
			cursor = i
		}
	}
	if first < 0 || cursor-first != 20-wantOffset {
		t.Errorf("Expected the cursor %d rows below the first visible row, got first=%d cursor=%d", 20-wantOffset, first, cursor)
	}

	for range 20 {
		p.HandleKey(tea.KeyMsg{Type: tea.KeyUp})
	}
	if p.Offset() != 0 {
		t.Errorf("Expected offset 0 back at the top, got %d", p.Offset())
	}
}

func TestNarrowingResetsOffset(t *testing.T) {
	var names []string
	for i := range 30 {
		names = append(names, fmt.Sprintf("fn-%02d", i))
	}
	p := searchPage(&recorder{}, names...)
	p.SetSize(120, 15)
	for range 25 {
		p.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	}

	p.HandleKey(runes("i"))
	typeText(&p, "fn-29")
	if p.Offset() != 0 || p.Index() != 0 {
		t.Errorf("Expected offset and index 0 after narrowing, got %d/%d", p.Offset(), p.Index())
	}
}
