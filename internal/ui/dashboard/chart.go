package dashboard

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/noelruault/shepherd/internal/core"
)

var sparkLevels = []rune(" ▁▂▃▄▅▆▇█")

// gridShape returns how many columns and rows of charts fit n series.
func gridShape(n int) (cols, rows int) {
	switch n {
	case 0, 1:
		return 1, 1
	case 2:
		return 1, 2
	case 3:
		return 1, 3
	case 4, 5:
		return 2, 2
	default:
		return 2, 3
	}
}

// downsample reduces values to width columns, keeping the peak of each
// column so short spikes stay visible.
func downsample(values []float64, width int) []float64 {
	if width <= 0 || len(values) == 0 {
		return nil
	}
	if len(values) <= width {
		return values
	}
	out := make([]float64, width)
	for col := range out {
		from := col * len(values) / width
		to := max((col+1)*len(values)/width, from+1)
		peak := values[from]
		for _, v := range values[from:to] {
			peak = max(peak, v)
		}
		out[col] = peak
	}
	return out
}

// sparkline draws values as vertical bars in a width x height block.
func sparkline(values []float64, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	cols := downsample(values, width)
	peak := 0.0
	for _, v := range cols {
		peak = max(peak, v)
	}

	steps := len(sparkLevels) - 1
	rows := make([]string, height)
	for row := range rows {
		// row 0 is the top line
		floor := (height - 1 - row) * steps
		var b strings.Builder
		for _, v := range cols {
			level := 0
			if peak > 0 {
				level = int(v / peak * float64(height*steps))
				if v > 0 && level == 0 {
					level = 1
				}
			}
			b.WriteRune(sparkLevels[min(max(level-floor, 0), steps)])
		}
		rows[row] = b.String() + strings.Repeat(" ", width-len(cols))
	}
	return strings.Join(rows, "\n")
}

// summary describes a series in a chart title.
func summary(s core.MetricSeries) string {
	switch s.Name {
	case "invocations", "errors":
		return "total " + humanize.Comma(int64(s.Sum()))
	case "duration":
		return "peak " + humanize.FtoaWithDigits(s.Max(), 1) + " ms"
	default:
		return "peak " + humanize.Comma(int64(s.Max()))
	}
}
