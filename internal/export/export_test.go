package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"

	"github.com/verte-zerg/glyphscope/internal/assets"
	"github.com/verte-zerg/glyphscope/internal/dataset"
	"github.com/verte-zerg/glyphscope/internal/model"
	"github.com/verte-zerg/glyphscope/internal/stats"
)

func TestWrite(t *testing.T) {
	ds := dataset.FromText(map[string]string{
		assets.ASCIIFreq: `[{"Char":65,"Freq":0.06}]`,
		assets.UnicodeScripts: "script,characters_in_script_today,unicode_version,year_first_encoded,geography_summary,languages_examples,iso_code\n" +
			"Latin,1487,1.0,1991,Europe,English,Latn\n",
		assets.EmojiAll: "emoji,name,category,subgroup,version,count\n😂,face with tears of joy,Smileys & Emotion,face-smiling,0.6,3207\n",
	})
	ds.Missing = []string{assets.EmojiUK}
	state := model.DefaultViewState()
	report := stats.BuildReport(ds, state, language.English, stats.DefaultCanvas)

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := Write(dir, report, state)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(paths) != len(Documents(report, state))+1 {
		t.Fatalf("expected a file per document plus the manifest, got %v", paths)
	}

	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(m.Documents) != 7 || m.Documents[0] != "ascii.json" || len(m.Missing) != 1 {
		t.Fatalf("unexpected manifest: %+v", m)
	}

	data, err = os.ReadFile(filepath.Join(dir, "sankey.json"))
	if err != nil {
		t.Fatalf("read sankey: %v", err)
	}
	var doc struct {
		Year  int `json:"year"`
		Graph struct {
			Nodes []json.RawMessage `json:"nodes"`
			Note  string            `json:"note"`
		} `json:"graph"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode sankey: %v", err)
	}
	if doc.Year != state.SankeyYear || len(doc.Graph.Nodes) == 0 || doc.Graph.Note == "" {
		t.Fatalf("unexpected sankey document: %+v", doc)
	}
}

func TestWriteEmptyDir(t *testing.T) {
	if _, err := Write("", stats.Report{}, model.DefaultViewState()); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}
