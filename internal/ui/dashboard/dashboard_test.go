package dashboard

import (
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

var orders = core.FunctionSummary{Name: "orders", ARN: "arn:aws:lambda:eu-west-1:1:function:orders", Runtime: "go1.x", MemorySize: 256, Timeout: 30}

func series(name, label string, values ...float64) core.MetricSeries {
	s := core.MetricSeries{Name: name, Label: label, Values: make([]float64, 1440), Timestamps: make([]int64, 1440)}
	copy(s.Values, values)
	return s
}

func dashboardState() core.DashboardState {
	return core.NewDashboardState(orders,
		[]core.MetricSeries{
			series("invocations", "Invocations", 1200, 300),
			series("errors", "Errors", 3),
			series("duration", "Duration (ms)", 12.5, 80.3),
			series("concurrent_executions", "Concurrent executions", 4),
		},
		[]core.TriggerMapping{
			core.QueueTrigger{QueueName: "orders-queue", Size: 10, Window: 5, Status: core.TriggerEnabled},
			core.BusTrigger{RuleName: "nightly", Status: core.TriggerDisabled},
		},
	)
}

func TestWithState(t *testing.T) {
	p := New(dashboardState(), &recorder{})
	fn, ok := p.Function()
	if !ok || fn.Name != "orders" {
		t.Fatalf("Expected orders on display, got %v %v", fn, ok)
	}

	p = p.WithState(core.SearchState{})
	if _, ok := p.Function(); ok {
		t.Error("Expected the page to be cleared for a non-dashboard state")
	}
}

func TestWithStateCopiesData(t *testing.T) {
	st := dashboardState()
	p := New(st, &recorder{})

	st.Metrics[0].Values[0] = 99999
	st.Triggers[0] = core.BusTrigger{RuleName: "replaced"}

	if got := p.metrics[0].Values[0]; got != 1200 {
		t.Errorf("Expected the page to keep its own metrics, got %v", got)
	}
	if got := p.triggers[0].Name(); got != "orders-queue" {
		t.Errorf("Expected the page to keep its own triggers, got %q", got)
	}
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		key  string
		want core.Action
	}{
		{"q", core.QuitAction{}},
		{"s", core.SearchAction{}},
		{"o", core.OpenConsoleAction{Function: orders}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			rec := &recorder{}
			p := New(dashboardState(), rec)
			p.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)})
			if len(rec.actions) != 1 || rec.actions[0] != tt.want {
				t.Errorf("Expected %#v, got %v", tt.want, rec.actions)
			}
		})
	}
}

func TestOpenConsoleWithoutFunction(t *testing.T) {
	rec := &recorder{}
	p := New(core.SplashState{}, rec)
	p.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	if len(rec.actions) != 0 {
		t.Errorf("Expected no action without a function, got %v", rec.actions)
	}
}

func TestGridShape(t *testing.T) {
	tests := []struct {
		n, cols, rows int
	}{
		{1, 1, 1},
		{2, 1, 2},
		{3, 1, 3},
		{4, 2, 2},
		{5, 2, 2},
		{6, 2, 3},
		{9, 2, 3},
	}
	for _, tt := range tests {
		cols, rows := gridShape(tt.n)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("gridShape(%d) = %dx%d, want %dx%d", tt.n, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestDownsampleKeepsPeaks(t *testing.T) {
	values := make([]float64, 1440)
	values[700] = 9
	out := downsample(values, 60)
	if len(out) != 60 {
		t.Fatalf("Expected 60 columns, got %d", len(out))
	}
	if out[700*60/1440] != 9 {
		t.Errorf("Expected spike to survive downsampling, got %v", out)
	}
}

func TestSparkline(t *testing.T) {
	out := sparkline([]float64{0, 1, 2, 4}, 4, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(lines))
	}
	for i, l := range lines {
		if n := len([]rune(l)); n != 4 {
			t.Errorf("row %d: expected 4 cells, got %d", i, n)
		}
	}
	bottom := []rune(lines[1])
	if bottom[0] != ' ' || bottom[3] != '█' {
		t.Errorf("Unexpected bottom row %q", lines[1])
	}
	if top := []rune(lines[0]); top[3] != '█' || top[0] != ' ' {
		t.Errorf("Unexpected top row %q", lines[0])
	}
}

func TestSparklineAllZero(t *testing.T) {
	out := sparkline(make([]float64, 1440), 10, 3)
	if strings.TrimSpace(strings.ReplaceAll(out, "\n", "")) != "" {
		t.Errorf("Expected a blank chart for zero values, got %q", out)
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		s    core.MetricSeries
		want string
	}{
		{series("invocations", "Invocations", 1200, 300), "total 1,500"},
		{series("errors", "Errors", 3), "total 3"},
		{series("duration", "Duration (ms)", 12.5, 80.3), "peak 80.3 ms"},
		{series("concurrent_executions", "Concurrent executions", 4, 2), "peak 4"},
	}
	for _, tt := range tests {
		if got := summary(tt.s); got != tt.want {
			t.Errorf("summary(%s) = %q, want %q", tt.s.Name, got, tt.want)
		}
	}
}

func TestView(t *testing.T) {
	p := New(dashboardState(), &recorder{})
	out := p.View(120, 40)
	plain := ansi.Strip(out)

	for _, want := range []string{
		"orders", "go1.x", "256 MB", "30s",
		"Triggers", "Batch Size", "Batch Window",
		"SQS", "orders-queue", "ENABLED",
		"EventBridge (default)", "nightly", "DISABLED",
		"Invocations", "total 1,500", "Errors", "Duration (ms)", "Concurrent executions",
		"help: [q] quit, [s] search, [o] open console",
	} {
		if !strings.Contains(plain, want) {
			t.Errorf("Expected %q in dashboard view", want)
		}
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 40 {
		t.Errorf("Expected 40 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w > 120 {
			t.Errorf("line %d is %d cells wide", i, w)
		}
	}
}

func TestViewWithoutTriggers(t *testing.T) {
	st := core.NewDashboardState(orders, []core.MetricSeries{series("invocations", "Invocations", 1)}, nil)
	plain := ansi.Strip(New(st, &recorder{}).View(80, 20))

	if strings.Contains(plain, "Triggers") {
		t.Error("Expected no trigger table without triggers")
	}
	if !strings.Contains(plain, "Invocations") {
		t.Error("Expected the single chart to be drawn")
	}
}
