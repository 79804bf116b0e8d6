package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/gasbox/internal/analysis"
	"github.com/san-kum/gasbox/internal/viz"
	"gonum.org/v1/gonum/floats"
)

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ffff">
`, width, height, width, height)

	dotRadius := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// HistogramSVG draws the histogram density as bars with the reference
// density as a polyline over the same speed axis.
func HistogramSVG(h *analysis.Histogram, speeds, reference []float64, width, height int) string {
	if h == nil || len(h.Density) == 0 {
		return ""
	}

	lo, hi := h.Edges[0], h.Edges[len(h.Edges)-1]
	top := floats.Max(h.Density)
	if len(reference) > 0 {
		top = math.Max(top, floats.Max(reference))
	}
	if top <= 0 || hi <= lo {
		top, hi = 1, lo+1
	}
	top *= 1.1

	w, ht := float64(width), float64(height)
	px := func(v float64) float64 { return (v - lo) / (hi - lo) * w }
	py := func(d float64) float64 { return ht - d/top*ht }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ccff" fill-opacity="0.7">
`, width, height, width, height)

	for i, d := range h.Density {
		x0, x1 := px(h.Edges[i]), px(h.Edges[i+1])
		y := py(d)
		fmt.Fprintf(&sb, "<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\"/>\n", x0, y, x1-x0, ht-y)
	}
	sb.WriteString("</g>\n")

	if n := min(len(speeds), len(reference)); n >= 2 {
		sb.WriteString(`<path fill="none" stroke="#ffcc00" stroke-width="1.5" d="M`)
		for i := 0; i < n; i++ {
			if i > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", px(speeds[i]), py(reference[i]))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteSVG writes svg to w.
func WriteSVG(w io.Writer, svg string) error {
	_, err := io.WriteString(w, svg)
	return err
}
