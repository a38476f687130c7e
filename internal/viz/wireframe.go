package viz

import (
	"github.com/geodesic-lab/geotrace/internal/geodesic"
	"github.com/geodesic-lab/geotrace/internal/geometry"
)

// SurfaceWireframe tessellates the surface over its display ranges into
// an nu x nv grid of quad edges. Grid cells touching an undefined
// (NaN) sample simply drop out of the frame.
func SurfaceWireframe(surf geometry.Surface, uRange, vRange [2]float64, nu, nv int) *Wireframe {
	if nu < 2 {
		nu = 2
	}
	if nv < 2 {
		nv = 2
	}

	grid := make([][]geometry.Vec3, nu)
	for i := range grid {
		grid[i] = make([]geometry.Vec3, nv)
		u := uRange[0] + (uRange[1]-uRange[0])*float64(i)/float64(nu-1)
		for j := range grid[i] {
			v := vRange[0] + (vRange[1]-vRange[0])*float64(j)/float64(nv-1)
			grid[i][j] = surf.At(u, v)
		}
	}

	w := &Wireframe{}
	for i := 0; i < nu; i++ {
		for j := 0; j < nv; j++ {
			if !grid[i][j].IsValid() {
				continue
			}
			if i+1 < nu && grid[i+1][j].IsValid() {
				w.Add(grid[i][j], grid[i+1][j])
			}
			if j+1 < nv && grid[i][j+1].IsValid() {
				w.Add(grid[i][j], grid[i][j+1])
			}
		}
	}
	return w
}

// PathWireframe maps a parameter-space path through the surface into a
// 3D polyline.
func PathWireframe(surf geometry.Surface, path geodesic.Path) *Wireframe {
	w := &Wireframe{}
	for i := 1; i < len(path); i++ {
		w.Add(surf.At(path[i-1].U, path[i-1].V), surf.At(path[i].U, path[i].V))
	}
	return w
}

// FitZoom picks a camera zoom that keeps the wireframe's extent inside
// the unit projection cube.
func FitZoom(w *Wireframe) float64 {
	maxExtent := 0.0
	for _, e := range w.Edges {
		for _, p := range [2]geometry.Vec3{e.Start, e.End} {
			if !p.IsValid() {
				continue
			}
			if n := p.Norm(); n > maxExtent {
				maxExtent = n
			}
		}
	}
	if maxExtent == 0 {
		return 1
	}
	return 1 / maxExtent
}
