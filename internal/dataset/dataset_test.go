package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/glyphscope/internal/assets"
	"github.com/verte-zerg/glyphscope/internal/model"
)

var fixtures = map[string]string{
	assets.ASCIIFreq:   `[{"Char":32,"Freq":0.18},{"Char":65,"Freq":0.06}]`,
	assets.UnicodeInfo: "Code value,Character name,General category,Decimal digit value\n0041,LATIN CAPITAL LETTER A,Lu,\n",
	assets.UnicodeScripts: "script,characters_in_script_today,unicode_version,year_first_encoded,geography_summary,languages_examples,iso_code\n" +
		"Han,98682,1.0,1991,\"China, Japan\",\"Chinese, Japanese\",Hani\n" +
		"Latin,1487,1.0,1991,Europe,English,Latn\n",
	assets.EmojiAll: "emoji,name,category,subgroup,version,count\n😂,face with tears of joy,Smileys & Emotion,face-smiling,0.6,3207\n",
	assets.EmojiUS:  "emoji,name,category,subgroup,version,count\n❤️,red heart,Smileys & Emotion,heart,0.6,1200\n",
	assets.EmojiUK:  "emoji,name,category,subgroup,version,count\n🙏,folded hands,People & Body,hands,0.6,900\n",
}

func writeFixtures(t *testing.T, skip ...string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range fixtures {
		skipped := false
		for _, s := range skip {
			if s == name {
				skipped = true
			}
		}
		if skipped {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeFixtures(t)
	ds, err := Load(context.Background(), assets.DirSource{Root: dir}, Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Degraded() {
		t.Fatalf("expected complete dataset, missing %v", ds.Missing)
	}
	if len(ds.Scripts) != 2 || ds.Scripts[0].Category != model.CategoryCJK {
		t.Fatalf("unexpected scripts: %+v", ds.Scripts)
	}
	if _, ok := ds.Index.Lookup("41"); !ok {
		t.Fatalf("expected index to contain 0041")
	}
	if got := ds.EmojiTable(model.EmojiUK); len(got) != 1 || got[0].Name != "folded hands" {
		t.Fatalf("unexpected uk table: %+v", got)
	}
	if got := ds.EmojiTable("mars"); len(got) != 1 || got[0].Name != "face with tears of joy" {
		t.Fatalf("expected fallback to all-regions table, got %+v", got)
	}
	if len(ds.Versions) != 30 || len(ds.Timeline) != 8 {
		t.Fatalf("expected static tables to be attached")
	}
}

func TestLoadOptionalFailureDegrades(t *testing.T) {
	dir := writeFixtures(t, assets.EmojiUK, assets.ASCIIFreq)
	ds, err := Load(context.Background(), assets.DirSource{Root: dir}, Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ds.Degraded() {
		t.Fatalf("expected degraded dataset")
	}
	want := map[string]bool{assets.EmojiUK: true, assets.ASCIIFreq: true}
	if len(ds.Missing) != 2 || !want[ds.Missing[0]] || !want[ds.Missing[1]] {
		t.Fatalf("unexpected missing list: %v", ds.Missing)
	}
	if len(ds.Emoji[model.EmojiUK]) != 0 || len(ds.Frequencies) != 0 {
		t.Fatalf("expected empty tables for missing assets")
	}
}

func TestLoadRequiredFailure(t *testing.T) {
	dir := writeFixtures(t, assets.UnicodeScripts, assets.EmojiUS)
	_, err := Load(context.Background(), assets.DirSource{Root: dir}, Options{})
	if err == nil {
		t.Fatalf("expected error for missing required asset")
	}
	if !errors.Is(err, assets.ErrNotFound) {
		t.Fatalf("expected wrapped ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), assets.UnicodeScripts) {
		t.Fatalf("expected error to name the asset, got %v", err)
	}
}

// stallingSource fails one asset and holds every other fetch until the
// context is done.
type stallingSource struct {
	failing string
}

func (s stallingSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if name == s.failing {
		return nil, errors.New("upstream returned 503")
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestLoadRequiredFailureOmitsCanceledSiblings(t *testing.T) {
	_, err := Load(context.Background(), stallingSource{failing: assets.UnicodeInfo}, Options{})
	if err == nil {
		t.Fatalf("expected error for failed required asset")
	}
	if !strings.Contains(err.Error(), assets.UnicodeInfo) || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected error to name the failed asset, got %v", err)
	}
	if errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "context canceled") {
		t.Fatalf("expected canceled sibling fetches to be left out, got %v", err)
	}
	if strings.Contains(err.Error(), assets.EmojiAll) {
		t.Fatalf("expected only the failed asset in the error, got %v", err)
	}
}

func TestLoadMinElapsed(t *testing.T) {
	dir := writeFixtures(t)
	start := time.Now()
	if _, err := Load(context.Background(), assets.DirSource{Root: dir}, Options{MinElapsed: 50 * time.Millisecond}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("expected load to take at least 50ms, took %s", elapsed)
	}
}

func TestLoadCanceled(t *testing.T) {
	dir := writeFixtures(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, assets.DirSource{Root: dir}, Options{}); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}

func TestVersionsIncreasing(t *testing.T) {
	for i := 1; i < len(Versions); i++ {
		prev, cur := Versions[i-1], Versions[i]
		if cur.Year < prev.Year || cur.TotalChars <= prev.TotalChars {
			t.Fatalf("version table not increasing at %s", cur.Version)
		}
	}
}
