package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Series is a named run of values plotted left to right.
type Series struct {
	Name   string
	Values []float64
}

// PlotOptions controls the size of a text plot.
type PlotOptions struct {
	// Width and Height are in terminal cells. Zero picks the terminal width
	// and a default height.
	Width  int
	Height int
	// Color forces ANSI colors even when w is not a terminal.
	Color bool
	// Format labels the value axis. It defaults to k/M suffixed counts.
	Format func(float64) string
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelWidth      = 6
	axisSeparator       = " │ "
	lineColor           = "\x1b[36m"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

// brailleDots maps a dot inside a 2x4 braille cell to its bit, indexed
// [row][column].
var brailleDots = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// PlotLine renders s as a braille line chart on a value axis running from
// its smallest to its largest value.
func PlotLine(w io.Writer, title string, s Series, opts PlotOptions) error {
	if len(s.Values) == 0 {
		return nil
	}
	height := opts.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	width := opts.Width
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = max(width, minPlotWidth)
	format := opts.Format
	if format == nil {
		format = formatAxisValue
	}

	values := resampleSeries(s.Values, width)
	lo, hi := valueRange(s.Values)
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	dots := height * 4
	prevX, prevY := -1, -1
	for x, v := range values {
		px, py := x*2, valueToRow(v, lo, hi, dots)
		if prevX < 0 {
			setBrailleDot(cells, px, py)
		} else {
			drawLine(prevX, prevY, px, py, func(dx, dy int) {
				setBrailleDot(cells, dx, dy)
			})
		}
		prevX, prevY = px, py
	}

	labels := make([]string, height)
	labels[0] = format(hi)
	if height > 2 {
		labels[height/2] = format((lo + hi) / 2)
	}
	if height > 1 {
		labels[height-1] = format(lo)
	}
	labelWidth := axisLabelWidth
	for _, label := range labels {
		labelWidth = max(labelWidth, utf8.RuneCountInString(label))
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(title + "\n")
	}
	fmt.Fprintf(&b, "%s: %s to %s\n", s.Name, format(s.Values[0]), format(s.Values[len(s.Values)-1]))
	useColor := shouldUseColor(w, opts.Color)
	for y, row := range cells {
		fmt.Fprintf(&b, "%*s%s", labelWidth, labels[y], axisSeparator)
		line := make([]rune, len(row))
		for x, mask := range row {
			line[x] = rune(0x2800 + int(mask))
		}
		if useColor {
			b.WriteString(lineColor + string(line) + colorReset)
		} else {
			b.WriteString(string(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// PlotWidthFor is the plot width that fits next to the value axis within
// totalWidth terminal cells.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	return max(totalWidth-axisLabelWidth-utf8.RuneCountInString(axisSeparator), minPlotWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// valueRange is the span of values, widened when flat so the axis keeps a
// midline.
func valueRange(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		return lo - 1, hi + 1
	}
	return lo, hi
}

// formatAxisValue prints large values with a k/M suffix.
func formatAxisValue(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e4:
		return fmt.Sprintf("%.0fk", v/1e3)
	case abs >= 100:
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// resampleSeries stretches or squeezes values to exactly width points.
// Squeezing averages buckets; stretching interpolates between neighbours.
func resampleSeries(values []float64, width int) []float64 {
	out := make([]float64, width)
	n := len(values)
	switch {
	case n == width:
		copy(out, values)
	case n > width:
		for i := range out {
			start := i * n / width
			end := max((i+1)*n/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case n == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(n-1) / float64(width-1)
			idx := int(pos)
			if idx >= n-1 {
				out[i] = values[n-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

// valueToRow maps v onto dots rows counted from the top.
func valueToRow(v, lo, hi float64, dots int) int {
	if dots <= 1 {
		return 0
	}
	pos := (v - lo) / (hi - lo)
	row := int(math.Round((1 - pos) * float64(dots-1)))
	return min(max(row, 0), dots-1)
}

// drawLine walks the Bresenham line between two dots.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	cellY, cellX := y/4, x/2
	if x < 0 || y < 0 || cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDots[y%4][x%2]
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
