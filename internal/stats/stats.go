// Package stats derives the chart views from the dataset and renders them as
// text reports.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/language"

	"github.com/verte-zerg/glyphscope/internal/charindex"
	"github.com/verte-zerg/glyphscope/internal/classify"
	"github.com/verte-zerg/glyphscope/internal/layout"
	"github.com/verte-zerg/glyphscope/internal/model"
)

const (
	sparkChars    = " .:-=+*#%@"
	barBlocks     = " ▏▎▍▌▋▊▉█"
	barWidth      = 24
	unknownYear   = "unknown"
	noCountryText = "none"
)

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Bar renders frac of width cells with eighth-block precision.
func Bar(frac float64, width int) string {
	if width <= 0 || frac <= 0 || math.IsNaN(frac) {
		return ""
	}
	if frac > 1 {
		frac = 1
	}
	blocks := []rune(barBlocks)
	eighths := int(math.Round(frac * float64(width) * 8))
	var b strings.Builder
	b.WriteString(strings.Repeat(string(blocks[8]), eighths/8))
	if rem := eighths % 8; rem > 0 {
		b.WriteRune(blocks[rem])
	}
	return b.String()
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable prints an aligned table followed by a blank line.
func WriteTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	if err := writeLines(w, formatTable(headers, rows, rightAlign)...); err != nil {
		return err
	}
	return writeLines(w, "")
}

// RenderASCII prints the 1963 frequency chart as a table with bars.
func RenderASCII(w io.Writer, chart ASCIIChart) error {
	if len(chart.Bars) == 0 {
		_, err := fmt.Fprintln(w, "No characters selected.")
		return err
	}
	if err := writeLines(w, "Character frequency in English text (1963 ASCII printable range)"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(chart.Bars))
	for _, b := range chart.Bars {
		frac := 0.0
		if chart.AxisMax > 0 {
			frac = b.Frequency / chart.AxisMax
		}
		rows = append(rows, []string{
			b.Glyph,
			fmt.Sprintf("%d", b.CodePoint),
			string(b.Type),
			fmt.Sprintf("%.4f", b.Frequency),
			Bar(frac, barWidth),
		})
	}
	return WriteTable(w, []string{"Char", "Code", "Type", "Frequency", ""}, rows, map[int]bool{1: true, 3: true})
}

// RenderEmoji prints the emoji chart. A positive limit caps the rows.
func RenderEmoji(w io.Writer, chart EmojiChart, limit int, tag language.Tag) error {
	if err := writeLines(w, chart.Label); err != nil {
		return err
	}
	if len(chart.Bubbles) == 0 {
		_, err := fmt.Fprintln(w, "No emoji match the current filters.")
		return err
	}
	bubbles := chart.Bubbles
	if limit > 0 && len(bubbles) > limit {
		bubbles = bubbles[:limit]
	}
	rows := make([][]string, 0, len(bubbles))
	for _, b := range bubbles {
		rows = append(rows, []string{
			fmt.Sprintf("#%d", b.Rank),
			b.Glyph,
			b.Name,
			b.Category,
			fmt.Sprintf("%g", b.Version),
			FormatCount(b.Count, tag),
		})
	}
	return WriteTable(w, []string{"Rank", "Emoji", "Name", "Category", "Version", "Uses"}, rows, map[int]bool{0: true, 4: true, 5: true})
}

// RenderScripts prints the script list with relative size bars.
func RenderScripts(w io.Writer, scripts []ScriptRow, tag language.Tag) error {
	if len(scripts) == 0 {
		_, err := fmt.Fprintln(w, "No scripts match the current filters.")
		return err
	}
	if err := writeLines(w, fmt.Sprintf("%s scripts", FormatCount(len(scripts), tag))); err != nil {
		return err
	}
	rows := make([][]string, 0, len(scripts))
	for _, s := range scripts {
		rows = append(rows, []string{
			s.Name,
			FormatCount(s.CharCount, tag),
			string(s.Region),
			string(s.Category),
			fmt.Sprintf("%.2f%%", s.Percentage),
			Bar(s.BarWidth/100, barWidth),
		})
	}
	return WriteTable(w, []string{"Script", "Characters", "Region", "Category", "Share", ""}, rows, map[int]bool{1: true, 4: true})
}

// RenderScriptDetail prints one script with its map highlight and samples.
func RenderScriptDetail(w io.Writer, s model.Script, highlight classify.Highlight, samples []charindex.Sample, tag language.Tag) error {
	year := unknownYear
	if s.YearFirstEncoded != 0 {
		year = fmt.Sprintf("%d", s.YearFirstEncoded)
	}
	countries := noCountryText
	switch {
	case highlight.All:
		countries = "worldwide"
	case len(highlight.Countries) > 0:
		countries = strings.Join(highlight.Countries, ", ")
	}
	rows := [][]string{
		{"Characters", FormatCount(s.CharCount, tag)},
		{"Share", fmt.Sprintf("%.2f%%", s.Percentage)},
		{"Unicode version", fmt.Sprintf("%g", s.UnicodeVersion)},
		{"First encoded", year},
		{"Region", string(s.Region)},
		{"Category", string(s.Category)},
		{"ISO code", s.ISOCode},
		{"Languages", s.Languages},
		{"Geography", s.Geography},
		{"Countries", countries},
	}
	if err := writeLines(w, s.Name); err != nil {
		return err
	}
	if err := WriteTable(w, nil, rows, nil); err != nil {
		return err
	}
	if len(samples) == 0 {
		return nil
	}
	if err := writeLines(w, "Sample characters"); err != nil {
		return err
	}
	sampleRows := make([][]string, 0, len(samples))
	for _, sm := range samples {
		if sm.Note != "" {
			sampleRows = append(sampleRows, []string{sm.Glyph, "", sm.Note, ""})
			continue
		}
		sampleRows = append(sampleRows, []string{
			sm.Glyph,
			"U+" + sm.Hex,
			sm.Info.DisplayName(),
			charindex.CategoryName(sm.Info.Category),
		})
	}
	return WriteTable(w, []string{"Char", "Code", "Name", "Category"}, sampleRows, nil)
}

// RenderSankey prints the release summary and the category flows.
func RenderSankey(w io.Writer, summary SankeySummary, g layout.Graph, year int, tag language.Tag) error {
	if err := writeLines(w,
		fmt.Sprintf("Unicode up to %d", year),
		fmt.Sprintf("Total characters: %s", FormatCount(summary.TotalChars, tag)),
		fmt.Sprintf("Versions released: %d", summary.VersionsShown),
		fmt.Sprintf("Scripts encoded: %d", summary.ScriptsCount),
		"",
	); err != nil {
		return err
	}
	if len(g.Links) == 0 {
		_, err := fmt.Fprintln(w, "No releases before this year.")
		return err
	}
	rows := make([][]string, 0, len(g.Links))
	for _, l := range g.Links {
		rows = append(rows, []string{
			g.Nodes[l.Source].Name,
			g.Nodes[l.Target].Name,
			FormatCount(int(math.Round(l.Raw)), tag),
		})
	}
	if err := WriteTable(w, []string{"Release", "Category", "Characters"}, rows, map[int]bool{2: true}); err != nil {
		return err
	}
	return writeLines(w, g.Note, "")
}

// RenderBreakdown prints the script breakdown. The bar view lists the
// largest scripts; treemap and sunburst print the category tree.
func RenderBreakdown(w io.Writer, view model.BreakdownView, root *layout.Node, bars []model.Script, tag language.Tag) error {
	if view == model.ViewBar {
		if len(bars) == 0 {
			_, err := fmt.Fprintln(w, "No scripts above the minimum size.")
			return err
		}
		maxChars := float64(bars[0].CharCount)
		rows := make([][]string, 0, len(bars))
		for _, s := range bars {
			frac := 0.0
			if maxChars > 0 {
				frac = float64(s.CharCount) / maxChars
			}
			rows = append(rows, []string{s.Name, string(s.Category), FormatCount(s.CharCount, tag), Bar(frac, barWidth)})
		}
		return WriteTable(w, []string{"Script", "Category", "Characters", ""}, rows, map[int]bool{2: true})
	}
	if root == nil || len(root.Children) == 0 {
		_, err := fmt.Fprintln(w, "No scripts above the minimum size.")
		return err
	}
	var rows [][]string
	for _, cat := range root.Children {
		rows = append(rows, []string{cat.Name, FormatCount(int(cat.Value), tag), share(cat.Value, root.Value)})
		for _, leaf := range cat.Children {
			rows = append(rows, []string{"  " + leaf.Name, FormatCount(int(leaf.Value), tag), share(leaf.Value, cat.Value)})
		}
	}
	if err := writeLines(w, fmt.Sprintf("%s (%s characters)", root.Name, FormatCount(int(root.Value), tag))); err != nil {
		return err
	}
	return WriteTable(w, []string{"Name", "Characters", "Share"}, rows, map[int]bool{1: true, 2: true})
}

func share(part, total float64) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", part/total*100)
}

// RenderGrowth plots cumulative characters by year and a sparkline of the
// yearly additions.
func RenderGrowth(w io.Writer, points []GrowthPoint, opts PlotOptions) error {
	if len(points) == 0 {
		_, err := fmt.Fprintln(w, "No releases found.")
		return err
	}
	totals := make([]float64, len(points))
	added := make([]float64, len(points))
	for i, p := range points {
		totals[i] = float64(p.TotalChars)
		added[i] = float64(p.Added)
	}
	first, last := points[0], points[len(points)-1]
	title := fmt.Sprintf("Unicode characters, %d to %d", first.Year, last.Year)
	if err := PlotLine(w, title, Series{Name: "Characters", Values: totals}, opts); err != nil {
		return err
	}
	return writeLines(w, "Added per year: "+Sparkline(added), "")
}

// RenderTimeline prints the road to Unicode.
func RenderTimeline(w io.Writer, events []model.TimelineEvent) error {
	for _, e := range events {
		if err := writeLines(w, fmt.Sprintf("%d  %s", e.Year, e.Title), "      "+e.Text); err != nil {
			return err
		}
	}
	return writeLines(w, "")
}

// RenderLookup prints the metadata of one code point.
func RenderLookup(w io.Writer, key string, info charindex.Info, ok bool) error {
	if !ok {
		_, err := fmt.Fprintf(w, "U+%s  Unknown\n", key)
		return err
	}
	_, err := fmt.Fprintf(w, "U+%s  %s  %s\n", key, info.DisplayName(), charindex.CategoryName(info.Category))
	return err
}
