package stats

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/verte-zerg/glyphscope/internal/assets"
	"github.com/verte-zerg/glyphscope/internal/charindex"
	"github.com/verte-zerg/glyphscope/internal/classify"
	"github.com/verte-zerg/glyphscope/internal/dataset"
	"github.com/verte-zerg/glyphscope/internal/model"
)

func testDataset() *dataset.Dataset {
	return dataset.FromText(map[string]string{
		assets.ASCIIFreq: `[{"Char":32,"Freq":0.18},{"Char":65,"Freq":0.06},{"Char":69,"Freq":0.1}]`,
		assets.UnicodeInfo: "Code value,Character name,General category,Decimal digit value\n" +
			"0041,LATIN CAPITAL LETTER A,Lu,\n",
		assets.UnicodeScripts: "script,characters_in_script_today,unicode_version,year_first_encoded,geography_summary,languages_examples,iso_code\n" +
			"Han,98682,1.0,1991,\"China, Japan\",\"Chinese, Japanese\",Hani\n" +
			"Latin,1487,1.0,1991,Europe,English,Latn\n" +
			"Greek,518,1.0,1991,Europe,Greek,Grek\n",
		assets.EmojiAll: "emoji,name,category,subgroup,version,count\n" +
			"😂,face with tears of joy,Smileys & Emotion,face-smiling,0.6,3207\n" +
			"🐶,dog face,Animals & Nature,animal-mammal,0.6,1500\n",
	})
}

func TestBuildReport(t *testing.T) {
	ds := testDataset()
	state := model.DefaultViewState()
	report := BuildReport(ds, state, language.English, DefaultCanvas)

	if len(report.ASCII.Bars) != 3 {
		t.Fatalf("expected 3 ascii bars, got %d", len(report.ASCII.Bars))
	}
	if len(report.Emoji.Bubbles) != 2 || len(report.Bubbles) != 2 {
		t.Fatalf("expected a body per bubble, got %d/%d", len(report.Emoji.Bubbles), len(report.Bubbles))
	}
	if report.Bubbles[0].Radius <= report.Bubbles[1].Radius {
		t.Fatalf("expected the most used emoji to get the largest bubble")
	}
	if len(report.Scripts) != 3 || report.Scripts[0].Name != "Han" {
		t.Fatalf("unexpected scripts: %+v", report.Scripts)
	}
	if report.Treemap == nil || len(report.Treemap.Children) != 2 {
		t.Fatalf("expected two categories in the treemap")
	}
	if len(report.Flow.Links) == 0 || report.Flow.Note == "" {
		t.Fatalf("expected flow links with a note")
	}
	if len(report.Growth) == 0 || len(report.Timeline) == 0 {
		t.Fatalf("expected growth and timeline")
	}

	again := BuildReport(ds, state, language.English, DefaultCanvas)
	if !reflect.DeepEqual(report, again) {
		t.Fatalf("expected identical reports for identical input")
	}
}

func TestRenderers(t *testing.T) {
	ds := testDataset()
	report := BuildReport(ds, model.DefaultViewState(), language.English, DefaultCanvas)

	var buf bytes.Buffer
	if err := RenderASCII(&buf, report.ASCII); err != nil {
		t.Fatalf("render ascii: %v", err)
	}
	if err := RenderEmoji(&buf, report.Emoji, 1, language.English); err != nil {
		t.Fatalf("render emoji: %v", err)
	}
	if err := RenderScripts(&buf, report.Scripts, language.English); err != nil {
		t.Fatalf("render scripts: %v", err)
	}
	if err := RenderSankey(&buf, report.Sankey, report.Flow, 2025, language.English); err != nil {
		t.Fatalf("render sankey: %v", err)
	}
	if err := RenderBreakdown(&buf, model.ViewTreemap, report.Treemap, report.Breakdown, language.English); err != nil {
		t.Fatalf("render breakdown: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"␣", "2 emojis", "#1", "98,682", "Han/CJK", "  Han"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "dog face") {
		t.Fatalf("expected emoji rows capped at 1")
	}
}

func TestRenderScriptDetail(t *testing.T) {
	ds := testDataset()
	han, ok := FindScript(ds.Scripts, "Han")
	if !ok {
		t.Fatalf("expected Han")
	}
	samples := []charindex.Sample{{Glyph: "?", Note: charindex.PlaceholderNote}}
	var buf bytes.Buffer
	if err := RenderScriptDetail(&buf, han, classify.Countries(han.Geography), samples, language.English); err != nil {
		t.Fatalf("render detail: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "China, Japan") || !strings.Contains(out, "1991") {
		t.Fatalf("unexpected detail:\n%s", out)
	}
}

func TestRenderLookup(t *testing.T) {
	idx := testDataset().Index
	var buf bytes.Buffer
	info, ok := idx.Lookup("41")
	if err := RenderLookup(&buf, "0041", info, ok); err != nil {
		t.Fatalf("render lookup: %v", err)
	}
	info, ok = idx.Lookup("FFFF")
	if err := RenderLookup(&buf, "FFFF", info, ok); err != nil {
		t.Fatalf("render lookup: %v", err)
	}
	want := "U+0041  LATIN CAPITAL LETTER A  " + charindex.CategoryName("Lu") + "\nU+FFFF  Unknown\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestBar(t *testing.T) {
	if got := Bar(1, 3); got != "███" {
		t.Fatalf("expected full bar, got %q", got)
	}
	if got := Bar(0.5, 1); got != "▌" {
		t.Fatalf("expected half block, got %q", got)
	}
	if got := Bar(0, 10); got != "" {
		t.Fatalf("expected empty bar, got %q", got)
	}
}
