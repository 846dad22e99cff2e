package stats

import (
	"math"

	"golang.org/x/text/language"

	"github.com/verte-zerg/glyphscope/internal/dataset"
	"github.com/verte-zerg/glyphscope/internal/layout"
	"github.com/verte-zerg/glyphscope/internal/model"
)

// Canvas is the pixel size the layouts are computed for.
type Canvas struct {
	Width  float64
	Height float64
}

// DefaultCanvas matches the charts of the web presentation.
var DefaultCanvas = Canvas{Width: 800, Height: 600}

// Report contains every derived view for one control state.
type Report struct {
	ASCII     ASCIIChart            `json:"ascii"`
	Emoji     EmojiChart            `json:"emoji"`
	Bubbles   []layout.Body         `json:"bubbles"`
	Scripts   []ScriptRow           `json:"scripts"`
	Sankey    SankeySummary         `json:"sankey"`
	Flow      layout.Graph          `json:"flow"`
	Breakdown []model.Script        `json:"breakdown"`
	Treemap   *layout.Node          `json:"treemap"`
	Sunburst  *layout.Node          `json:"sunburst"`
	Growth    []GrowthPoint         `json:"growth"`
	Timeline  []model.TimelineEvent `json:"timeline"`
	Missing   []string              `json:"missing,omitempty"`
}

// BuildReport derives every view from the dataset and the control state.
// It reads nothing else, so equal inputs give equal reports.
func BuildReport(ds *dataset.Dataset, state model.ViewState, tag language.Tag, canvas Canvas) Report {
	emoji := EmojiView(ds.EmojiTable(state.EmojiRegion), EmojiFilterFor(state), tag)
	treemap := layout.Group(ds.Scripts, state.MinChars, 0)
	layout.Treemap(treemap, canvas.Width, canvas.Height)
	sunburst := layout.Group(ds.Scripts, state.MinChars, SunburstChildLimit)
	layout.Partition(sunburst, 2*math.Pi, math.Min(canvas.Width, canvas.Height)/2)

	return Report{
		ASCII:     ASCIIView(ds.Frequencies, ASCIIFilterFor(state), state.Sort),
		Emoji:     emoji,
		Bubbles:   BubbleLayout(emoji, canvas),
		Scripts:   ScriptView(ds.Scripts, ScriptFilterFor(state)),
		Sankey:    SankeyStats(ds.Versions, ds.Scripts, state.SankeyYear),
		Flow:      layout.SankeyLayout(layout.SankeyGraph(ds.Versions, state.SankeyYear), canvas.Width, canvas.Height),
		Breakdown: BreakdownBars(ds.Scripts, state.MinChars),
		Treemap:   treemap,
		Sunburst:  sunburst,
		Growth:    GrowthSeries(ds.Versions),
		Timeline:  ds.Timeline,
		Missing:   ds.Missing,
	}
}

// BubbleLayout runs the force simulation for the chart's bubbles. Bodies are
// in the same order as chart.Bubbles.
func BubbleLayout(chart EmojiChart, canvas Canvas) []layout.Body {
	radius := layout.RadiusScale(chart.MaxCount)
	radii := make([]float64, len(chart.Bubbles))
	for i, b := range chart.Bubbles {
		radii[i] = radius(b.Count)
	}
	sim := layout.NewSimulation(radii, canvas.Width, canvas.Height, layout.DefaultForceParams())
	sim.Run()
	return sim.Bodies
}
