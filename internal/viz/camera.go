package viz

import (
	"math"
	"sort"

	"github.com/geodesic-lab/geotrace/internal/geometry"
)

// Camera projects ambient 3D positions onto the 2D canvas with a simple
// perspective model and per-axis rotation controls.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, Near: 0.1, RotX: -0.5, RotY: 0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p geometry.Vec3) geometry.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a 3D position to canvas sub-pixel coordinates.
// Returns x, y, depth, and whether the point is drawable. NaN positions
// and points behind the camera are never drawable, which is how NaN
// path tails get truncated from display. Off-screen coordinates are
// still reported as drawable; line clipping happens at the canvas.
func (c *Camera) Project(p geometry.Vec3, sw, sh int) (int, int, float64, bool) {
	if !p.IsValid() {
		return 0, 0, 0, false
	}
	rot := c.rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	minDim := math.Min(float64(sw), float64(sh))
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, true
}

// Edge is a wireframe segment in world space.
type Edge struct {
	Start, End geometry.Vec3
}

type Wireframe struct {
	Edges []Edge
}

func (w *Wireframe) Add(s, e geometry.Vec3) {
	w.Edges = append(w.Edges, Edge{Start: s, End: e})
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render draws the wireframe back to front (painter's algorithm).
func Render(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.Width*2, c.Height*4
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.End, sw, sh)
		if v1 && v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.Line(e.x1, e.y1, e.x2, e.y2)
	}
}
