// Package export writes the derived views as JSON documents for external
// renderers.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/verte-zerg/glyphscope/internal/layout"
	"github.com/verte-zerg/glyphscope/internal/model"
	"github.com/verte-zerg/glyphscope/internal/stats"
)

// ManifestName lists the written documents.
const ManifestName = "index.json"

type sankeyDoc struct {
	Year    int                 `json:"year"`
	Summary stats.SankeySummary `json:"summary"`
	Graph   layout.Graph        `json:"graph"`
}

type breakdownDoc struct {
	View     model.BreakdownView `json:"view"`
	MinChars int                 `json:"minChars"`
	Bars     []model.Script      `json:"bars"`
	Treemap  *layout.Node        `json:"treemap"`
	Sunburst *layout.Node        `json:"sunburst"`
}

type emojiDoc struct {
	stats.EmojiChart
	Region  model.EmojiRegion `json:"region"`
	Version float64           `json:"version"`
	Layout  []layout.Body     `json:"layout"`
}

type manifest struct {
	Documents []string `json:"documents"`
	Missing   []string `json:"missing,omitempty"`
}

// Documents maps file names to the document written there.
func Documents(r stats.Report, state model.ViewState) map[string]any {
	return map[string]any{
		"ascii.json":   r.ASCII,
		"emoji.json":   emojiDoc{EmojiChart: r.Emoji, Region: state.EmojiRegion, Version: state.EmojiVersion, Layout: r.Bubbles},
		"scripts.json": r.Scripts,
		"sankey.json":  sankeyDoc{Year: state.SankeyYear, Summary: r.Sankey, Graph: r.Flow},
		"breakdown.json": breakdownDoc{
			View:     state.Breakdown,
			MinChars: state.MinChars,
			Bars:     r.Breakdown,
			Treemap:  r.Treemap,
			Sunburst: r.Sunburst,
		},
		"growth.json":   r.Growth,
		"timeline.json": r.Timeline,
	}
}

// Write creates dir and writes every document plus a manifest. It returns
// the written paths in name order.
func Write(dir string, r stats.Report, state model.ViewState) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("export directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	docs := Documents(r, state)
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names)+1)
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := writeJSON(path, docs[name]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	path := filepath.Join(dir, ManifestName)
	if err := writeJSON(path, manifest{Documents: names, Missing: r.Missing}); err != nil {
		return paths, err
	}
	return append(paths, path), nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
