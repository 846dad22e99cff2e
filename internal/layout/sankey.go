// Package layout derives renderer-ready geometry: the Sankey flow graph,
// bubble positions and hierarchy rectangles. Nothing here draws.
package layout

import (
	"strings"

	"github.com/verte-zerg/glyphscope/internal/model"
)

// Sankey parameters.
const (
	SankeyNodeWidth     = 20
	SankeyNodePadding   = 15
	SankeyMaxMilestones = 8
	SankeyMinFlow       = 100
	milestoneMinDelta   = 1000
)

// SankeyCategories are the flow targets in display order.
var SankeyCategories = []string{
	"Han/CJK",
	"Latin Extended",
	"Arabic/Hebrew",
	"Indic Scripts",
	"Symbols/Emoji",
	"Historic Scripts",
	"Other Scripts",
}

// SankeyColors matches SankeyCategories by index.
var SankeyColors = []string{"#e06b9a", "#72c9cd", "#8fa55d", "#d4a574", "#f4d03f", "#9b9b9b", "#6fcf97"}

// SankeyShares splits each release's additions across SankeyCategories. The
// split is a fixed illustration, not measured history.
var SankeyShares = []float64{0.60, 0.08, 0.05, 0.08, 0.07, 0.06, 0.06}

// SankeyNote labels the flow values as an approximation.
const SankeyNote = "Category flows use a fixed illustrative split of each release's additions, not historical attribution."

// Node kinds.
const (
	KindVersion  = "version"
	KindCategory = "category"
)

// SankeyNode is a release or a category. Geometry is set by SankeyLayout.
type SankeyNode struct {
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Color string  `json:"color,omitempty"`
	Value float64 `json:"value"`
	X0    float64 `json:"x0"`
	X1    float64 `json:"x1"`
	Y0    float64 `json:"y0"`
	Y1    float64 `json:"y1"`
}

// SankeyLink is a flow from a release to a category.
type SankeyLink struct {
	Source int `json:"source"`
	Target int `json:"target"`
	// Raw is the share of the release's additions; Value floors it at
	// SankeyMinFlow so thin flows stay visible.
	Raw   float64 `json:"raw"`
	Value float64 `json:"value"`
	// Width and the vertical centres at both ends are set by SankeyLayout.
	Width float64 `json:"width"`
	Y0    float64 `json:"y0"`
	Y1    float64 `json:"y1"`
}

// Graph is the flow diagram.
type Graph struct {
	Nodes      []SankeyNode           `json:"nodes"`
	Links      []SankeyLink           `json:"links"`
	Milestones []model.UnicodeVersion `json:"-"`
	Note       string                 `json:"note"`
}

// Milestones picks the releases shown as flow sources: the first release up
// to maxYear, any release that added more than 1000 characters over its
// predecessor and any version containing ".0". Only the last eight are kept.
func Milestones(versions []model.UnicodeVersion, maxYear int) []model.UnicodeVersion {
	var windowed []model.UnicodeVersion
	for _, v := range versions {
		if v.Year <= maxYear {
			windowed = append(windowed, v)
		}
	}
	var out []model.UnicodeVersion
	for i, v := range windowed {
		if i == 0 || v.TotalChars-windowed[i-1].TotalChars > milestoneMinDelta || strings.Contains(v.Version, ".0") {
			out = append(out, v)
		}
	}
	if len(out) > SankeyMaxMilestones {
		out = out[len(out)-SankeyMaxMilestones:]
	}
	return out
}

// SankeyGraph builds the release-to-category flow graph for releases up to
// maxYear. Each milestone's additions over the previous milestone are split by
// SankeyShares; the first milestone contributes its full total.
func SankeyGraph(versions []model.UnicodeVersion, maxYear int) Graph {
	milestones := Milestones(versions, maxYear)
	g := Graph{Milestones: milestones, Note: SankeyNote}
	for _, v := range milestones {
		g.Nodes = append(g.Nodes, SankeyNode{Name: "v" + v.Version, Kind: KindVersion})
	}
	for i, name := range SankeyCategories {
		g.Nodes = append(g.Nodes, SankeyNode{Name: name, Kind: KindCategory, Color: SankeyColors[i]})
	}

	for i, v := range milestones {
		prev := 0
		if i > 0 {
			prev = milestones[i-1].TotalChars
		}
		added := v.TotalChars - prev
		if added <= 0 {
			continue
		}
		for c, share := range SankeyShares {
			raw := float64(added) * share
			value := raw
			if value < SankeyMinFlow {
				value = SankeyMinFlow
			}
			g.Links = append(g.Links, SankeyLink{
				Source: i,
				Target: len(milestones) + c,
				Raw:    raw,
				Value:  value,
			})
		}
	}
	for _, l := range g.Links {
		g.Nodes[l.Source].Value += l.Value
		g.Nodes[l.Target].Value += l.Value
	}
	return g
}

// SankeyLayout positions a graph in a width by height box. Sources sit in the
// left column, categories in the right one. One vertical scale fits the
// fuller column; each column is centred. Links stack at both ends in node
// order. The input graph is not modified.
func SankeyLayout(g Graph, width, height float64) Graph {
	out := Graph{
		Nodes:      append([]SankeyNode(nil), g.Nodes...),
		Links:      append([]SankeyLink(nil), g.Links...),
		Milestones: g.Milestones,
		Note:       g.Note,
	}
	var left, right []int
	for i, n := range out.Nodes {
		if n.Kind == KindVersion {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	ky := 0.0
	for _, col := range [][]int{left, right} {
		total := 0.0
		for _, i := range col {
			total += out.Nodes[i].Value
		}
		if total <= 0 {
			continue
		}
		k := (height - float64(len(col)-1)*SankeyNodePadding) / total
		if ky == 0 || k < ky {
			ky = k
		}
	}
	if ky < 0 {
		ky = 0
	}

	place := func(col []int, x0 float64) {
		used := 0.0
		for _, i := range col {
			used += out.Nodes[i].Value * ky
		}
		if len(col) > 1 {
			used += float64(len(col)-1) * SankeyNodePadding
		}
		y := (height - used) / 2
		if y < 0 {
			y = 0
		}
		for _, i := range col {
			n := &out.Nodes[i]
			n.X0, n.X1 = x0, x0+SankeyNodeWidth
			n.Y0 = y
			n.Y1 = y + n.Value*ky
			y = n.Y1 + SankeyNodePadding
		}
	}
	place(left, 0)
	place(right, width-SankeyNodeWidth)

	sourceOffset := make([]float64, len(out.Nodes))
	targetOffset := make([]float64, len(out.Nodes))
	// Links are ordered by source then target, the stacking order at both ends.
	for i := range out.Links {
		l := &out.Links[i]
		l.Width = l.Value * ky
		src, dst := out.Nodes[l.Source], out.Nodes[l.Target]
		l.Y0 = src.Y0 + sourceOffset[l.Source] + l.Width/2
		l.Y1 = dst.Y0 + targetOffset[l.Target] + l.Width/2
		sourceOffset[l.Source] += l.Width
		targetOffset[l.Target] += l.Width
	}
	return out
}
