package layout

import (
	"math"
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/verte-zerg/glyphscope/internal/model"
)

// Treemap padding in pixels. Parents reserve TreemapPaddingTop for a label.
const (
	TreemapPadding    = 3
	TreemapPaddingTop = 20
)

// phi is the target aspect ratio of squarified rows.
var phi = (1 + math.Sqrt(5)) / 2

// Node is a weighted tree node. Treemap sets X/Y as pixel rectangles;
// Partition sets X as an angle span and Y as a radius span.
type Node struct {
	Name     string         `json:"name"`
	Category model.Category `json:"category,omitempty"`
	Color    string         `json:"color,omitempty"`
	Value    float64        `json:"value"`
	Depth    int            `json:"depth"`
	Children []*Node        `json:"children,omitempty"`
	Script   *model.Script  `json:"-"`
	X0       float64        `json:"x0"`
	Y0       float64        `json:"y0"`
	X1       float64        `json:"x1"`
	Y1       float64        `json:"y1"`
}

// Walk visits n and its descendants in pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Leaves returns the childless descendants in pre-order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(node *Node) {
		if len(node.Children) == 0 {
			out = append(out, node)
		}
	})
	return out
}

// Height is the longest distance from n to a leaf.
func (n *Node) Height() int {
	h := 0
	for _, c := range n.Children {
		if ch := c.Height() + 1; ch > h {
			h = ch
		}
	}
	return h
}

// Group builds a root -> category -> script tree from scripts with at least
// minChars characters. Categories are created in first-seen order, then every
// level is sorted by descending value. A positive childLimit keeps only the
// largest scripts per category. Node values are sums of their children.
func Group(scripts []model.Script, minChars, childLimit int) *Node {
	groups := linkedhashmap.New()
	for i := range scripts {
		s := scripts[i]
		if s.CharCount < minChars {
			continue
		}
		var cat *Node
		if v, ok := groups.Get(s.Category); ok {
			cat = v.(*Node)
		} else {
			cat = &Node{Name: string(s.Category), Category: s.Category, Color: model.CategoryColors[s.Category], Depth: 1}
			groups.Put(s.Category, cat)
		}
		cat.Children = append(cat.Children, &Node{
			Name:     s.Name,
			Category: s.Category,
			Color:    cat.Color,
			Value:    float64(s.CharCount),
			Depth:    2,
			Script:   &s,
		})
	}

	root := &Node{Name: "Unicode"}
	for _, v := range groups.Values() {
		cat := v.(*Node)
		sortByValue(cat.Children)
		if childLimit > 0 && len(cat.Children) > childLimit {
			cat.Children = cat.Children[:childLimit]
		}
		for _, c := range cat.Children {
			cat.Value += c.Value
		}
		root.Value += cat.Value
		root.Children = append(root.Children, cat)
	}
	sortByValue(root.Children)
	return root
}

func sortByValue(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Value > nodes[j].Value
	})
}

// Treemap lays the tree out as squarified rectangles in a width by height
// box. Siblings are separated by TreemapPadding, parents keep
// TreemapPaddingTop free for their label and coordinates are rounded.
func Treemap(root *Node, width, height float64) {
	if root == nil {
		return
	}
	root.X0, root.Y0, root.X1, root.Y1 = 0, 0, width, height
	positionTreemap(root, 0)
	root.Walk(func(n *Node) {
		n.X0, n.Y0 = math.Round(n.X0), math.Round(n.Y0)
		n.X1, n.Y1 = math.Round(n.X1), math.Round(n.Y1)
	})
}

func positionTreemap(n *Node, p float64) {
	x0, y0, x1, y1 := n.X0+p, n.Y0+p, n.X1-p, n.Y1-p
	x0, x1 = collapse(x0, x1)
	y0, y1 = collapse(y0, y1)
	n.X0, n.Y0, n.X1, n.Y1 = x0, y0, x1, y1
	if len(n.Children) == 0 {
		return
	}
	inner := TreemapPadding / 2.0
	x0 += TreemapPadding - inner
	y0 += TreemapPaddingTop - inner
	x1 -= TreemapPadding - inner
	y1 -= TreemapPadding - inner
	x0, x1 = collapse(x0, x1)
	y0, y1 = collapse(y0, y1)
	squarify(n.Children, n.Value, x0, y0, x1, y1)
	for _, c := range n.Children {
		positionTreemap(c, inner)
	}
}

func collapse(lo, hi float64) (float64, float64) {
	if hi < lo {
		mid := (lo + hi) / 2
		return mid, mid
	}
	return lo, hi
}

// squarify tiles nodes into rows whose aspect ratios stay close to phi.
func squarify(nodes []*Node, value, x0, y0, x1, y1 float64) {
	n := len(nodes)
	for i0, i1 := 0, 0; i0 < n; i0 = i1 {
		dx, dy := x1-x0, y1-y0

		// Skip empty nodes at the start of a row.
		var sum float64
		for {
			sum = nodes[i1].Value
			i1++
			if sum != 0 || i1 >= n {
				break
			}
		}
		minV, maxV := sum, sum
		alpha := math.Max(dy/dx, dx/dy) / (value * phi)
		beta := sum * sum * alpha
		minRatio := math.Max(maxV/beta, beta/minV)
		for ; i1 < n; i1++ {
			v := nodes[i1].Value
			sum += v
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
			beta = sum * sum * alpha
			ratio := math.Max(maxV/beta, beta/minV)
			if ratio > minRatio {
				sum -= v
				break
			}
			minRatio = ratio
		}

		row := nodes[i0:i1]
		if dx < dy {
			ry0, ry1 := y0, y1
			if value != 0 {
				ry1 = y0 + dy*sum/value
				y0 = ry1
			}
			dice(row, sum, x0, ry0, x1, ry1)
		} else {
			rx0, rx1 := x0, x1
			if value != 0 {
				rx1 = x0 + dx*sum/value
				x0 = rx1
			}
			slice(row, sum, rx0, y0, rx1, y1)
		}
		value -= sum
	}
}

// dice splits a box horizontally in proportion to node values.
func dice(nodes []*Node, value, x0, y0, x1, y1 float64) {
	k := 0.0
	if value != 0 {
		k = (x1 - x0) / value
	}
	for _, n := range nodes {
		n.Y0, n.Y1 = y0, y1
		n.X0 = x0
		x0 += n.Value * k
		n.X1 = x0
	}
}

// slice splits a box vertically in proportion to node values.
func slice(nodes []*Node, value, x0, y0, x1, y1 float64) {
	k := 0.0
	if value != 0 {
		k = (y1 - y0) / value
	}
	for _, n := range nodes {
		n.X0, n.X1 = x0, x1
		n.Y0 = y0
		y0 += n.Value * k
		n.Y1 = y0
	}
}

// Partition lays the tree out as a sunburst: X spans [0, angle] and Y spans
// [0, radius], split into one ring per depth. Children share their parent's
// span in proportion to their values.
func Partition(root *Node, angle, radius float64) {
	if root == nil {
		return
	}
	rings := float64(root.Height() + 1)
	root.X0, root.X1 = 0, angle
	root.Y0, root.Y1 = 0, radius/rings
	root.Walk(func(n *Node) {
		if len(n.Children) == 0 {
			return
		}
		d := float64(n.Depth)
		dice(n.Children, n.Value, n.X0, radius*(d+1)/rings, n.X1, radius*(d+2)/rings)
	})
}
