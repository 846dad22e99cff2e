package stats

import (
	"reflect"
	"testing"

	"golang.org/x/text/language"

	"github.com/verte-zerg/glyphscope/internal/model"
)

func TestWindowByVersionMonotonic(t *testing.T) {
	versions := []float64{0.6, 1.0, 5.0, 13.0}
	key := func(v float64) float64 { return v }
	if got := WindowByVersion(versions, 5.0, key); len(got) != 3 {
		t.Fatalf("expected 3 records at 5.0, got %v", got)
	}
	prev := 0
	for _, limit := range []float64{0, 0.6, 1, 4, 5, 13, 20} {
		n := len(WindowByVersion(versions, limit, key))
		if n < prev {
			t.Fatalf("window shrank from %d to %d at %v", prev, n, limit)
		}
		prev = n
	}
}

func TestTopNStable(t *testing.T) {
	type rec struct {
		name  string
		count int
	}
	in := []rec{{"a", 5}, {"b", 9}, {"c", 5}, {"d", 1}, {"e", 5}}
	got := TopN(in, 4, func(r rec) int { return r.count })
	var names []string
	for _, r := range got {
		names = append(names, r.name)
	}
	if want := []string{"b", "a", "c", "e"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	if in[0].name != "a" || in[1].name != "b" {
		t.Fatalf("expected input untouched, got %v", in)
	}
	if got := TopN(in, -1, func(r rec) int { return r.count }); len(got) != len(in) {
		t.Fatalf("expected no truncation for negative n, got %d", len(got))
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(1234567, language.English); got != "1,234,567" {
		t.Fatalf("expected 1,234,567, got %q", got)
	}
	if got := FormatCount(42, language.English); got != "42" {
		t.Fatalf("expected 42, got %q", got)
	}
}

func testFrequencies() []model.CharFrequency {
	return []model.CharFrequency{
		{CodePoint: 65, Frequency: 0.06},
		{CodePoint: 32, Frequency: 0.18},
		{CodePoint: 48, Frequency: 0.01},
		{CodePoint: 44, Frequency: 0.02},
		{CodePoint: 97, Frequency: 0.5},
	}
}

func TestASCIIViewOutlier(t *testing.T) {
	filter := ASCIIFilter{Latin: true, Digits: true, Punctuation: true}
	chart := ASCIIView(testFrequencies(), filter, model.SortByCode)
	if len(chart.Bars) != 4 {
		t.Fatalf("expected lowercase excluded, got %d bars", len(chart.Bars))
	}
	if chart.Bars[0].CodePoint != 32 || chart.Bars[0].Glyph != "␣" {
		t.Fatalf("expected space first in code order, got %+v", chart.Bars[0])
	}
	if chart.AxisMax < 0.198-1e-9 || chart.AxisMax > 0.198+1e-9 {
		t.Fatalf("expected axis max 0.198, got %v", chart.AxisMax)
	}

	filter.RemoveOutlier = true
	chart = ASCIIView(testFrequencies(), filter, model.SortByCode)
	for _, b := range chart.Bars {
		if b.CodePoint == 32 {
			t.Fatalf("expected space removed")
		}
	}
	if chart.AxisMax < 0.066-1e-9 || chart.AxisMax > 0.066+1e-9 {
		t.Fatalf("expected axis max 0.066 without the outlier, got %v", chart.AxisMax)
	}
}

func TestASCIIViewFiltersAndSort(t *testing.T) {
	chart := ASCIIView(testFrequencies(), ASCIIFilter{Digits: true, Punctuation: true}, model.SortByFrequency)
	var codes []int
	for _, b := range chart.Bars {
		codes = append(codes, b.CodePoint)
	}
	if want := []int{32, 44, 48}; !reflect.DeepEqual(codes, want) {
		t.Fatalf("expected %v, got %v", want, codes)
	}
	if chart := ASCIIView(testFrequencies(), ASCIIFilter{}, model.SortByCode); len(chart.Bars) != 0 || chart.AxisMax != 0 {
		t.Fatalf("expected empty chart, got %+v", chart)
	}
}

func testEmoji() []model.Emoji {
	return []model.Emoji{
		{Glyph: "😂", Category: "Smileys & Emotion", Version: 0.6, Count: 3000},
		{Glyph: "🥺", Category: "Smileys & Emotion", Version: 11.0, Count: 2000},
		{Glyph: "🐶", Category: "Animals & Nature", Version: 0.6, Count: 2500},
		{Glyph: "🫠", Category: "Smileys & Emotion", Version: 14.0, Count: 100},
	}
}

func TestEmojiView(t *testing.T) {
	filter := EmojiFilter{Categories: map[string]bool{"Smileys & Emotion": true}, MaxVersion: 13}
	chart := EmojiView(testEmoji(), filter, language.English)
	if chart.Total != 3 || chart.Label != "3 emojis" {
		t.Fatalf("expected windowed total before category filter, got %d %q", chart.Total, chart.Label)
	}
	if len(chart.Bubbles) != 2 || chart.Bubbles[0].Glyph != "😂" || chart.Bubbles[1].Rank != 2 {
		t.Fatalf("unexpected bubbles: %+v", chart.Bubbles)
	}
	if chart.MaxCount != 3000 {
		t.Fatalf("expected max count 3000, got %d", chart.MaxCount)
	}
	if got := EmojiRank(testEmoji(), "🐶"); got != 3 {
		t.Fatalf("expected rank 3, got %d", got)
	}
	if got := EmojiRank(testEmoji(), "🦄"); got != 0 {
		t.Fatalf("expected rank 0 for absent emoji, got %d", got)
	}
}

func testScripts() []model.Script {
	return []model.Script{
		{Name: "Latin", CharCount: 1487, Region: model.RegionEurope, Languages: "English, French", YearFirstEncoded: 1991},
		{Name: "Han", CharCount: 98682, Region: model.RegionAsia, Languages: "Chinese", YearFirstEncoded: 1991},
		{Name: "Empty", CharCount: 0, Region: model.RegionAsia},
		{Name: "Adlam", CharCount: 88, Region: model.RegionAfrica, Languages: "Fula", YearFirstEncoded: 2016},
	}
}

func TestScriptView(t *testing.T) {
	rows := ScriptView(testScripts(), ScriptFilter{Region: "all"})
	if len(rows) != 3 || rows[0].Name != "Han" || rows[0].BarWidth != 100 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	rows = ScriptView(testScripts(), ScriptFilter{Region: "europe", Search: "  FRENCH "})
	if len(rows) != 1 || rows[0].Name != "Latin" {
		t.Fatalf("expected latin via language search, got %+v", rows)
	}
	if rows[0].BarWidth >= 2 {
		t.Fatalf("expected width relative to the largest script, got %v", rows[0].BarWidth)
	}
	if _, ok := FindScript(testScripts(), "han"); !ok {
		t.Fatalf("expected case-insensitive find")
	}
}

func TestSankeyStats(t *testing.T) {
	versions := []model.UnicodeVersion{
		{Version: "1.0", Year: 1991, TotalChars: 7096},
		{Version: "2.0", Year: 1996, TotalChars: 38885},
		{Version: "9.0", Year: 2016, TotalChars: 128172},
	}
	summary := SankeyStats(versions, testScripts(), 2000)
	if summary.VersionsShown != 2 || summary.TotalChars != 38885 || summary.ScriptsCount != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	summary = SankeyStats(versions, testScripts(), 1900)
	if summary.TotalChars != 0 || summary.ScriptsCount != len(testScripts()) {
		t.Fatalf("expected fallback to every script, got %+v", summary)
	}
}

func TestBreakdownBars(t *testing.T) {
	bars := BreakdownBars(testScripts(), 100)
	if len(bars) != 2 || bars[0].Name != "Han" {
		t.Fatalf("unexpected bars: %+v", bars)
	}
}

func TestGrowthSeriesMergesYears(t *testing.T) {
	points := GrowthSeries([]model.UnicodeVersion{
		{Version: "6.0", Year: 2010, TotalChars: 109384},
		{Version: "6.1", Year: 2012, TotalChars: 110116},
		{Version: "6.2", Year: 2012, TotalChars: 110117},
	})
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %+v", points)
	}
	if points[1].Version != "6.2" || points[1].Added != 733 {
		t.Fatalf("expected merged 2012 point, got %+v", points[1])
	}
}
