package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/glyphscope/internal/config"
	"github.com/verte-zerg/glyphscope/internal/model"
	"github.com/verte-zerg/glyphscope/internal/quiz"
)

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("expected template to decode, got %v", err)
	}
	if cfg.Data.Dir != nil || cfg.View.Sort != nil {
		t.Fatalf("expected every template value to be commented out")
	}
}

func TestApplyViewDefaults(t *testing.T) {
	year := 2001
	view := "sunburst"
	state := model.DefaultViewState()
	applyViewDefaults(&state, config.ViewConfig{Year: &year, View: &view})
	if state.SankeyYear != 2001 || state.Breakdown != model.ViewSunburst {
		t.Fatalf("unexpected state: %+v", state)
	}
	if state.MinChars != model.DefaultViewState().MinChars {
		t.Fatalf("expected unset values to keep defaults")
	}
}

func TestParseSelection(t *testing.T) {
	selected, err := parseSelection("1, 3 6\n", 6)
	if err != nil {
		t.Fatalf("parse selection: %v", err)
	}
	if len(selected) != 3 || !selected[0] || !selected[2] || !selected[5] {
		t.Fatalf("unexpected selection: %v", selected)
	}
	if _, err := parseSelection("7", 6); err == nil {
		t.Fatalf("expected out of range choice to fail")
	}
	if _, err := parseSelection("two", 6); err == nil {
		t.Fatalf("expected non-numeric choice to fail")
	}
	empty, err := parseSelection("\n", 6)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty selection, got %v %v", empty, err)
	}
}

func TestWriteQuizResult(t *testing.T) {
	q := quiz.Quiz{Items: []quiz.Item{
		{CodePoint: 65, Glyph: "A", ASCII: true},
		{CodePoint: 0x3B1, Glyph: "α"},
		{CodePoint: 32, Glyph: " ", ASCII: true},
	}}
	var buf bytes.Buffer
	if err := writeQuizResult(&buf, q, q.Score(map[int]bool{0: true, 1: true})); err != nil {
		t.Fatalf("write result: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"1) A  correct", "2) α  wrong, added later", "3) ␣  missed", "1 correct, 1 wrong, 1 missed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Perfect") {
		t.Fatalf("expected imperfect result")
	}
}

func TestCategorySet(t *testing.T) {
	set, err := categorySet([]string{"flags", " Food & Drink "})
	if err != nil {
		t.Fatalf("category set: %v", err)
	}
	if len(set) != 2 || !set["Flags"] || !set["Food & Drink"] {
		t.Fatalf("unexpected set: %v", set)
	}
	if _, err := categorySet([]string{"Vehicles"}); err == nil {
		t.Fatalf("expected unknown category to fail")
	}
}

func TestValidScriptRegion(t *testing.T) {
	if !validScriptRegion("all") || !validScriptRegion("asia") {
		t.Fatalf("expected known regions to be valid")
	}
	if validScriptRegion("mars") {
		t.Fatalf("expected unknown region to be invalid")
	}
}

func TestFilterCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"filter1963", "héllo", "wörld!"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("filter1963: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "HLLO WRLD!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPersonalityCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"personality",
		"--energy", "low", "--social", "solo", "--head", "zen",
		"--weather", "cloudy", "--focus", "locked", "--curve", "lol",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("personality: %v", err)
	}
	if !strings.Contains(out.String(), "The Focused Robot") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestPersonalityCommandIncomplete(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"personality", "--energy", "low"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected incomplete answers to fail")
	}
}
