package layout

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// Bubble radius range in pixels.
const (
	MinRadius = 12
	MaxRadius = 40
)

// RadiusScale maps a usage count to a radius so that bubble area grows
// linearly with the count. A non-positive maxCount is treated as 1.
func RadiusScale(maxCount int) func(count int) float64 {
	if maxCount <= 0 {
		maxCount = 1
	}
	sqrt := scale.Linear{Min: 0, Max: math.Sqrt(float64(maxCount))}
	return func(count int) float64 {
		if count < 0 {
			count = 0
		}
		return MinRadius + sqrt.Map(math.Sqrt(float64(count)))*(MaxRadius-MinRadius)
	}
}

// ForceParams are the strengths of the bubble chart forces.
type ForceParams struct {
	Charge          float64
	Center          float64
	AxisX           float64
	AxisY           float64
	CollidePadding  float64
	CollideStrength float64
	// BoundPadding keeps nodes this far inside the viewport.
	BoundPadding float64
}

// DefaultForceParams returns the bubble chart forces.
func DefaultForceParams() ForceParams {
	return ForceParams{
		Charge:          -30,
		Center:          0.1,
		AxisX:           0.05,
		AxisY:           0.05,
		CollidePadding:  3,
		CollideStrength: 0.9,
		BoundPadding:    10,
	}
}

// Simulation constants, matching the usual velocity Verlet settings.
const (
	restartAlpha  = 0.8
	alphaMin      = 0.001
	velocityDecay = 0.4
	initialRadius = 10
)

var (
	alphaDecay   = 1 - math.Pow(alphaMin, 1.0/300)
	initialAngle = math.Pi * (3 - math.Sqrt(5))
)

// Body is one simulated bubble.
type Body struct {
	Radius float64 `json:"r"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"-"`
	VY     float64 `json:"-"`
}

// Simulation runs a deterministic force layout in a fixed viewport.
type Simulation struct {
	Bodies []Body
	Width  float64
	Height float64
	Params ForceParams
	alpha  float64
}

// NewSimulation places bodies with the given radii on a phyllotaxis spiral
// around the viewport centre.
func NewSimulation(radii []float64, width, height float64, params ForceParams) *Simulation {
	s := &Simulation{
		Bodies: make([]Body, len(radii)),
		Width:  width,
		Height: height,
		Params: params,
		alpha:  restartAlpha,
	}
	for i, r := range radii {
		rad := initialRadius * math.Sqrt(0.5+float64(i))
		angle := float64(i) * initialAngle
		s.Bodies[i] = Body{
			Radius: r,
			X:      width/2 + rad*math.Cos(angle),
			Y:      height/2 + rad*math.Sin(angle),
		}
		s.clamp(&s.Bodies[i])
	}
	return s
}

// Alpha returns the current cooling value.
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// Done reports whether the simulation has cooled down.
func (s *Simulation) Done() bool {
	return s.alpha < alphaMin
}

// Restart reheats the simulation, for example after the viewport changed.
func (s *Simulation) Restart() {
	s.alpha = restartAlpha
}

// Run ticks until the simulation cools down and returns the number of ticks.
func (s *Simulation) Run() int {
	ticks := 0
	for !s.Done() {
		s.Tick()
		ticks++
	}
	return ticks
}

// Tick advances the simulation one step and clamps every body into the
// viewport minus its radius and the bound padding.
func (s *Simulation) Tick() {
	s.alpha += (0 - s.alpha) * alphaDecay
	s.applyCharge()
	s.applyCenter()
	s.applyAxes()
	s.applyCollide()
	for i := range s.Bodies {
		b := &s.Bodies[i]
		b.VX *= 1 - velocityDecay
		b.VY *= 1 - velocityDecay
		b.X += b.VX
		b.Y += b.VY
		s.clamp(b)
	}
}

func (s *Simulation) clamp(b *Body) {
	pad := b.Radius + s.Params.BoundPadding
	b.X = math.Max(pad, math.Min(s.Width-pad, b.X))
	b.Y = math.Max(pad, math.Min(s.Height-pad, b.Y))
}

func (s *Simulation) applyCharge() {
	if s.Params.Charge == 0 {
		return
	}
	for i := range s.Bodies {
		bi := &s.Bodies[i]
		for j := range s.Bodies {
			if i == j {
				continue
			}
			bj := s.Bodies[j]
			x, y := bj.X-bi.X, bj.Y-bi.Y
			if x == 0 {
				x = jiggle(i, j)
			}
			if y == 0 {
				y = jiggle(j, i)
			}
			l := x*x + y*y
			if l < 1 {
				l = math.Sqrt(l)
			}
			w := s.Params.Charge * s.alpha / l
			bi.VX += x * w
			bi.VY += y * w
		}
	}
}

func (s *Simulation) applyCenter() {
	n := len(s.Bodies)
	if n == 0 || s.Params.Center == 0 {
		return
	}
	var sx, sy float64
	for _, b := range s.Bodies {
		sx += b.X
		sy += b.Y
	}
	dx := (sx/float64(n) - s.Width/2) * s.Params.Center
	dy := (sy/float64(n) - s.Height/2) * s.Params.Center
	for i := range s.Bodies {
		s.Bodies[i].X -= dx
		s.Bodies[i].Y -= dy
	}
}

func (s *Simulation) applyAxes() {
	cx, cy := s.Width/2, s.Height/2
	for i := range s.Bodies {
		b := &s.Bodies[i]
		b.VX += (cx - b.X) * s.Params.AxisX * s.alpha
		b.VY += (cy - b.Y) * s.Params.AxisY * s.alpha
	}
}

func (s *Simulation) applyCollide() {
	pad := s.Params.CollidePadding
	for i := range s.Bodies {
		bi := &s.Bodies[i]
		ri := bi.Radius + pad
		ri2 := ri * ri
		xi, yi := bi.X+bi.VX, bi.Y+bi.VY
		for j := i + 1; j < len(s.Bodies); j++ {
			bj := &s.Bodies[j]
			rj := bj.Radius + pad
			r := ri + rj
			x := xi - bj.X - bj.VX
			y := yi - bj.Y - bj.VY
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = jiggle(i, j)
				l += x * x
			}
			if y == 0 {
				y = jiggle(j, i)
				l += y * y
			}
			l = math.Sqrt(l)
			l = (r - l) / l * s.Params.CollideStrength
			x *= l
			y *= l
			rj2 := rj * rj
			ratio := rj2 / (ri2 + rj2)
			bi.VX += x * ratio
			bi.VY += y * ratio
			bj.VX -= x * (1 - ratio)
			bj.VY -= y * (1 - ratio)
		}
	}
}

// jiggle separates coincident bodies by a tiny deterministic offset.
func jiggle(i, j int) float64 {
	return float64(i-j) * 1e-6
}
