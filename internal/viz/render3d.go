package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera orbits the origin. Points are rotated by yaw about Y, then by pitch
// about X, and projected with a pinhole at Distance along +Z.
type Camera struct {
	Yaw, Pitch float64
	Zoom       float64
	Distance   float64
	Near       float64
}

func NewCamera() *Camera {
	return &Camera{Yaw: 0.6, Pitch: 0.35, Zoom: 1, Distance: 3, Near: 0.1}
}

func (c *Camera) RotateYaw(a float64)   { c.Yaw += a }
func (c *Camera) RotatePitch(a float64) { c.Pitch += a }
func (c *Camera) ZoomIn()               { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()              { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) Rotate(p r3.Vec) r3.Vec {
	p = r3.NewRotation(c.Yaw, r3.Vec{Y: 1}).Rotate(p)
	return r3.NewRotation(c.Pitch, r3.Vec{X: 1}).Rotate(p)
}

// Project maps p to pixel coordinates on a sw x sh surface. The unit cube
// centred on the origin fits the surface at zoom 1.
func (c *Camera) Project(p r3.Vec, sw, sh int) (x, y int, depth float64, ok bool) {
	rot := r3.Scale(c.Zoom, c.Rotate(p))
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot.Z)
	unit := float64(min(sw, sh)) / 2.6
	x = int(math.Round(rot.X*persp*unit)) + sw/2
	y = int(math.Round(-rot.Y*persp*unit)) + sh/2
	return x, y, rot.Z, x >= 0 && x < sw && y >= 0 && y < sh
}

type Edge struct {
	Start, End r3.Vec
}

// Wireframe holds edges and points in camera space, where the chamber is the
// unit cube centred on the origin.
type Wireframe struct {
	Edges  []Edge
	Points []r3.Vec
}

func (w *Wireframe) AddEdge(s, e r3.Vec) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p r3.Vec)   { w.Points = append(w.Points, p) }
func (w *Wireframe) ClearPoints()        { w.Points = w.Points[:0] }

// Render3D draws edges as lines and points as blobs.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	pw, ph := c.PixelWidth(), c.PixelHeight()
	for _, e := range w.Edges {
		x1, y1, _, v1 := cam.Project(e.Start, pw, ph)
		x2, y2, _, v2 := cam.Project(e.End, pw, ph)
		if v1 || v2 {
			c.DrawLine(x1, y1, x2, y2)
		}
	}
	for _, p := range w.Points {
		if x, y, _, ok := cam.Project(p, pw, ph); ok {
			c.Blob(x, y)
		}
	}
}

// ChamberWireframe returns the twelve edges of the unit cube.
func ChamberWireframe() *Wireframe {
	const s = 0.5
	v := []r3.Vec{
		{X: -s, Y: -s, Z: -s}, {X: s, Y: -s, Z: -s}, {X: s, Y: s, Z: -s}, {X: -s, Y: s, Z: -s},
		{X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: s, Y: s, Z: s}, {X: -s, Y: s, Z: s},
	}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	w := &Wireframe{}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]])
	}
	return w
}

// ToChamber maps a position in [0, side]^3 onto the unit cube.
func ToChamber(p r3.Vec, side float64) r3.Vec {
	return r3.Sub(r3.Scale(1/side, p), r3.Vec{X: 0.5, Y: 0.5, Z: 0.5})
}
