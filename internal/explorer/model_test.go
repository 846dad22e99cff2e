package explorer

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/verte-zerg/glyphscope/internal/assets"
	"github.com/verte-zerg/glyphscope/internal/dataset"
	"github.com/verte-zerg/glyphscope/internal/model"
)

func testDataset(missing ...string) *dataset.Dataset {
	ds := dataset.FromText(map[string]string{
		assets.ASCIIFreq: `[{"Char":32,"Freq":0.18},{"Char":65,"Freq":0.06}]`,
		assets.UnicodeInfo: "Code value,Character name,General category,Decimal digit value\n" +
			"0041,LATIN CAPITAL LETTER A,Lu,\n",
		assets.UnicodeScripts: "script,characters_in_script_today,unicode_version,year_first_encoded,geography_summary,languages_examples,iso_code\n" +
			"Han,98682,1.0,1991,\"China, Japan\",\"Chinese, Japanese\",Hani\n" +
			"Latin,1487,1.0,1991,Europe,English,Latn\n",
		assets.EmojiAll: "emoji,name,category,subgroup,version,count\n" +
			"😂,face with tears of joy,Smileys & Emotion,face-smiling,0.6,3207\n",
	})
	ds.Missing = missing
	return ds
}

func newLoaded(t *testing.T, ds *dataset.Dataset) *Model {
	t.Helper()
	m := NewModel(func(context.Context) (*dataset.Dataset, error) { return ds, nil }, model.DefaultViewState(), language.English)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(loadedMsg{ds: ds})
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoadingView(t *testing.T) {
	m := NewModel(func(context.Context) (*dataset.Dataset, error) { return nil, nil }, model.DefaultViewState(), language.English)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	if !strings.Contains(m.View(), loadingText) {
		t.Fatalf("expected loading view before data arrives")
	}
}

func TestInitLoadsData(t *testing.T) {
	ds := testDataset()
	m := NewModel(func(context.Context) (*dataset.Dataset, error) { return ds, nil }, model.DefaultViewState(), language.English)
	msg := m.Init()().(tea.BatchMsg)
	var loaded bool
	for _, cmd := range msg {
		if out, ok := cmd().(loadedMsg); ok {
			loaded = out.ds == ds && out.err == nil
		}
	}
	if !loaded {
		t.Fatalf("expected init to run the loader")
	}
}

func TestLoadFailureShowsError(t *testing.T) {
	m := NewModel(nil, model.DefaultViewState(), language.English)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m.Update(loadedMsg{err: errors.New("failed to fetch unicode_language.csv")})
	view := m.View()
	if !strings.Contains(view, loadFailedMsg) || !strings.Contains(view, "unicode_language.csv") {
		t.Fatalf("expected error view, got:\n%s", view)
	}
}

func TestDegradedNotice(t *testing.T) {
	m := newLoaded(t, testDataset(assets.EmojiUK))
	if !strings.Contains(m.View(), "Some data could not be loaded: "+assets.EmojiUK) {
		t.Fatalf("expected degraded notice")
	}
	m = newLoaded(t, testDataset())
	if strings.Contains(m.View(), "Some data could not be loaded") {
		t.Fatalf("expected no notice for a complete dataset")
	}
}

func TestControlsUpdateState(t *testing.T) {
	m := newLoaded(t, testDataset())
	m.Update(key("o"))
	if !m.state.RemoveOutlier {
		t.Fatalf("expected outlier toggle")
	}
	if len(m.report.ASCII.Bars) != 1 {
		t.Fatalf("expected report rebuilt without the outlier, got %d bars", len(m.report.ASCII.Bars))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabEmoji {
		t.Fatalf("expected emoji tab, got %d", m.activeTab)
	}
	m.Update(key("1"))
	if m.state.EmojiCategories["Smileys & Emotion"] || len(m.report.Emoji.Bubbles) != 0 {
		t.Fatalf("expected smileys hidden")
	}
	m.Update(key("-"))
	if m.state.EmojiVersion != 17 {
		t.Fatalf("expected version 17, got %v", m.state.EmojiVersion)
	}
	m.Update(key("r"))
	if m.state.EmojiRegion != model.EmojiUS {
		t.Fatalf("expected us region, got %s", m.state.EmojiRegion)
	}
}

func TestScriptSearchAndDetail(t *testing.T) {
	m := newLoaded(t, testDataset())
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(key("/"))
	if !m.searchMode {
		t.Fatalf("expected search mode")
	}
	m.Update(key("lat"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state.ScriptSearch != "lat" || len(m.report.Scripts) != 1 {
		t.Fatalf("expected one script for search, got %q %d", m.state.ScriptSearch, len(m.report.Scripts))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.detail == nil || m.detail.Name != "Latin" {
		t.Fatalf("expected latin detail")
	}
	if !strings.Contains(m.View(), "Europe") {
		t.Fatalf("expected detail modal in view")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.detail != nil {
		t.Fatalf("expected detail closed")
	}
}

func TestStepAndCycle(t *testing.T) {
	if got := step(minCharSteps, 100, 1); got != 250 {
		t.Fatalf("expected 250, got %d", got)
	}
	if got := step(minCharSteps, 0, -1); got != 0 {
		t.Fatalf("expected to stop at 0, got %d", got)
	}
	if got := step(emojiVersions, 18, 1); got != 18 {
		t.Fatalf("expected to stop at 18, got %v", got)
	}
	if got := cycle(breakdownViews, model.ViewSunburst, 1); got != model.ViewTreemap {
		t.Fatalf("expected wrap to treemap, got %s", got)
	}
}
