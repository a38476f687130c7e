// Package export renders traced geodesics to standalone SVG documents,
// either as a dot-for-dot snapshot of the terminal canvas or as a
// parameter-space polyline.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/geodesic-lab/geotrace/internal/geodesic"
	"github.com/geodesic-lab/geotrace/internal/viz"
)

// brailleBits mirrors the canvas dot layout: 2x4 sub-pixels per cell.
var brailleBits = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasSVG writes the lit sub-pixels of a braille canvas as filled
// circles, one per dot, scaled by scale pixels per sub-pixel.
func CanvasSVG(w io.Writer, c *viz.Canvas, scale float64) error {
	if scale <= 0 {
		scale = 4
	}
	width := float64(c.Width) * scale * 2
	height := float64(c.Height) * scale * 4

	if _, err := fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#5fffaf">
`, width, height, width, height); err != nil {
		return err
	}

	radius := scale * 0.4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&brailleBits[dy][dx] == 0 {
						continue
					}
					cx := float64(col)*scale*2 + float64(dx)*scale + scale/2
					cy := float64(row)*scale*4 + float64(dy)*scale + scale/2
					if _, err := fmt.Fprintf(w, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, radius); err != nil {
						return err
					}
				}
			}
		}
	}

	_, err := fmt.Fprint(w, "</g>\n</svg>\n")
	return err
}

// PathSVG writes the u-v parameter trace of a geodesic as a polyline.
// The drawing stops at the first undefined point, matching how the
// solver treats a path that has left the surface domain.
func PathSVG(w io.Writer, path geodesic.Path, width, height int) error {
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 480
	}

	valid := path
	for i, p := range path {
		if math.IsNaN(p.U) || math.IsNaN(p.V) {
			valid = path[:i]
			break
		}
	}
	if len(valid) < 2 {
		return fmt.Errorf("export: path has %d drawable points, need at least 2", len(valid))
	}

	minU, maxU := valid[0].U, valid[0].U
	minV, maxV := valid[0].V, valid[0].V
	for _, p := range valid {
		minU = math.Min(minU, p.U)
		maxU = math.Max(maxU, p.U)
		minV = math.Min(minV, p.V)
		maxV = math.Max(maxV, p.V)
	}
	spanU := maxU - minU
	spanV := maxV - minV
	if spanU == 0 {
		spanU = 1
	}
	if spanV == 0 {
		spanV = 1
	}

	const margin = 20.0
	sx := (float64(width) - 2*margin) / spanU
	sy := (float64(height) - 2*margin) / spanV

	if _, err := fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<polyline fill="none" stroke="#5fffaf" stroke-width="1.5" points="`, width, height, width, height); err != nil {
		return err
	}

	for i, p := range valid {
		x := margin + (p.U-minU)*sx
		// SVG y grows downward; flip so larger v draws higher.
		y := float64(height) - margin - (p.V-minV)*sy
		sep := " "
		if i == 0 {
			sep = ""
		}
		if _, err := fmt.Fprintf(w, "%s%.2f,%.2f", sep, x, y); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "\"/>\n</svg>\n")
	return err
}
