package stats

import (
	"sort"
	"strings"

	morestats "github.com/aclements/go-moremath/stats"
	"golang.org/x/text/language"

	"github.com/verte-zerg/glyphscope/internal/model"
)

// ASCIIBar is one bar of the 1963 frequency chart.
type ASCIIBar struct {
	CodePoint int            `json:"code"`
	Glyph     string         `json:"glyph"`
	Type      model.CharType `json:"type"`
	Frequency float64        `json:"frequency"`
}

// ASCIIChart is the derived frequency chart.
type ASCIIChart struct {
	Bars []ASCIIBar `json:"bars"`
	// AxisMax is 1.1 times the largest rendered frequency.
	AxisMax float64 `json:"axisMax"`
}

// ASCIIView filters, sorts and scales the frequency table.
func ASCIIView(freqs []model.CharFrequency, filter ASCIIFilter, order model.SortMode) ASCIIChart {
	bars := make([]ASCIIBar, 0, ASCIILast-ASCIIFirst+1)
	for _, f := range freqs {
		if !filter.Keep(f.CodePoint) {
			continue
		}
		bars = append(bars, ASCIIBar{
			CodePoint: f.CodePoint,
			Glyph:     Glyph(f.CodePoint),
			Type:      CharType(f.CodePoint),
			Frequency: f.Frequency,
		})
	}
	switch order {
	case model.SortByFrequency:
		sort.SliceStable(bars, func(i, j int) bool {
			return bars[i].Frequency > bars[j].Frequency
		})
	default:
		sort.SliceStable(bars, func(i, j int) bool {
			return bars[i].CodePoint < bars[j].CodePoint
		})
	}

	chart := ASCIIChart{Bars: bars}
	if len(bars) > 0 {
		values := make([]float64, len(bars))
		for i, b := range bars {
			values[i] = b.Frequency
		}
		_, maxVal := morestats.Bounds(values)
		chart.AxisMax = maxVal * 1.1
	}
	return chart
}

// EmojiBubble is one emoji in the bubble chart.
type EmojiBubble struct {
	model.Emoji
	// Rank is the 1-based position in the active usage table.
	Rank int `json:"rank"`
}

// EmojiChart is the derived bubble chart data.
type EmojiChart struct {
	Bubbles []EmojiBubble `json:"bubbles"`
	// Total counts the version-windowed table before category filtering.
	Total    int    `json:"total"`
	Label    string `json:"label"`
	MaxCount int    `json:"maxCount"`
}

// EmojiView windows the usage table by version, applies the category filter
// and keeps the most used emoji.
func EmojiView(table []model.Emoji, filter EmojiFilter, tag language.Tag) EmojiChart {
	ranks := make(map[string]int, len(table))
	for i, e := range table {
		if _, ok := ranks[e.Glyph]; !ok {
			ranks[e.Glyph] = i + 1
		}
	}
	windowed := WindowByVersion(table, filter.MaxVersion, func(e model.Emoji) float64 { return e.Version })
	selected := Filter(windowed, filter.Keep)
	top := TopN(selected, BubbleLimit, func(e model.Emoji) int { return e.Count })

	chart := EmojiChart{
		Bubbles: make([]EmojiBubble, 0, len(top)),
		Total:   len(windowed),
		Label:   FormatCount(len(windowed), tag) + " emojis",
	}
	for _, e := range top {
		chart.Bubbles = append(chart.Bubbles, EmojiBubble{Emoji: e, Rank: ranks[e.Glyph]})
		if e.Count > chart.MaxCount {
			chart.MaxCount = e.Count
		}
	}
	return chart
}

// EmojiRank returns the 1-based position of glyph in the table, or 0.
func EmojiRank(table []model.Emoji, glyph string) int {
	for i, e := range table {
		if e.Glyph == glyph {
			return i + 1
		}
	}
	return 0
}

// ScriptRow is one entry of the script list.
type ScriptRow struct {
	model.Script
	// BarWidth is the size relative to the largest script, in percent.
	BarWidth float64 `json:"barWidth"`
}

// ScriptView lists encoded scripts largest first, filtered by region and
// search text. Bar widths are relative to the largest script overall.
func ScriptView(scripts []model.Script, filter ScriptFilter) []ScriptRow {
	encoded := Filter(scripts, func(s model.Script) bool { return s.CharCount > 0 })
	ordered := TopN(encoded, -1, func(s model.Script) int { return s.CharCount })
	maxValue := 1
	if len(ordered) > 0 {
		maxValue = ordered[0].CharCount
	}
	rows := make([]ScriptRow, 0, len(ordered))
	for _, s := range ordered {
		if !filter.Keep(s) {
			continue
		}
		rows = append(rows, ScriptRow{
			Script:   s,
			BarWidth: float64(s.CharCount) / float64(maxValue) * 100,
		})
	}
	return rows
}

// FindScript returns the script with the given name, ignoring case.
func FindScript(scripts []model.Script, name string) (model.Script, bool) {
	for _, s := range scripts {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return model.Script{}, false
}

// SankeySummary holds the headline numbers shown next to the flow diagram.
type SankeySummary struct {
	Versions      []model.UnicodeVersion `json:"-"`
	TotalChars    int                    `json:"totalChars"`
	VersionsShown int                    `json:"versionsShown"`
	ScriptsCount  int                    `json:"scriptsCount"`
}

// SankeyStats windows the release history by year and counts the scripts
// encoded by then. When no script has a usable year every script counts.
func SankeyStats(versions []model.UnicodeVersion, scripts []model.Script, maxYear int) SankeySummary {
	windowed := WindowByVersion(versions, maxYear, func(v model.UnicodeVersion) int { return v.Year })
	summary := SankeySummary{Versions: windowed, VersionsShown: len(windowed)}
	if len(windowed) > 0 {
		summary.TotalChars = windowed[len(windowed)-1].TotalChars
	}
	for _, s := range scripts {
		if s.YearFirstEncoded != 0 && s.YearFirstEncoded <= maxYear {
			summary.ScriptsCount++
		}
	}
	if summary.ScriptsCount == 0 {
		summary.ScriptsCount = len(scripts)
	}
	return summary
}

// BreakdownBars returns the largest scripts with at least minChars characters.
func BreakdownBars(scripts []model.Script, minChars int) []model.Script {
	kept := Filter(scripts, func(s model.Script) bool { return s.CharCount >= minChars })
	return TopN(kept, BarLimit, func(s model.Script) int { return s.CharCount })
}

// GrowthPoint is the cumulative character count at the end of a year.
type GrowthPoint struct {
	Year       int    `json:"year"`
	Version    string `json:"version"`
	TotalChars int    `json:"totalChars"`
	Added      int    `json:"added"`
}

// GrowthSeries collapses the release history to one point per year, keeping
// the last release of each year.
func GrowthSeries(versions []model.UnicodeVersion) []GrowthPoint {
	var out []GrowthPoint
	prev := 0
	for _, v := range versions {
		p := GrowthPoint{Year: v.Year, Version: v.Version, TotalChars: v.TotalChars, Added: v.TotalChars - prev}
		if n := len(out); n > 0 && out[n-1].Year == v.Year {
			p.Added += out[n-1].Added
			out[n-1] = p
		} else {
			out = append(out, p)
		}
		prev = v.TotalChars
	}
	return out
}
