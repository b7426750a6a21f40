// Package export renders generated tables to image formats.
package export

import (
	"fmt"
	"strings"

	"github.com/sadpig70/PAT-System/internal/sim"
	"github.com/sadpig70/PAT-System/internal/stats"
)

const margin = 40.0

// ScatterSVG plots column y of t against column x, one dot per sample.
// Returns an empty string for an empty table.
func ScatterSVG(t *sim.Table, x, y sim.Column, width, height int) string {
	if t.Len() == 0 {
		return ""
	}

	xs, ys := t.Column(x), t.Column(y)
	minX, maxX := stats.MinMax(xs)
	minY, maxY := stats.MinMax(ys)

	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}

	w, h := float64(width), float64(height)
	plotW, plotH := w-2*margin, h-2*margin

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#444466" stroke-width="1">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
`, width, height, width, height,
		margin, h-margin, w-margin, h-margin,
		margin, margin, margin, h-margin)

	sb.WriteString(`<g fill="#00ccff" fill-opacity="0.6">` + "\n")
	for i := range xs {
		cx := margin + (xs[i]-minX)/rangeX*plotW
		cy := h - margin - (ys[i]-minY)/rangeY*plotH
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="2"/>`+"\n", cx, cy)
	}
	sb.WriteString("</g>\n")

	fmt.Fprintf(&sb, `<g fill="#888899" font-family="monospace" font-size="11">
<text x="%.1f" y="%.1f" text-anchor="middle">%s (%s) [%.4g .. %.4g]</text>
<text x="12" y="%.1f" transform="rotate(-90 12 %.1f)" text-anchor="middle">%s (%s) [%.4g .. %.4g]</text>
</g>
`, w/2, h-10, x, x.Unit(), minX, maxX,
		h/2, h/2, y, y.Unit(), minY, maxY)

	sb.WriteString("</svg>")
	return sb.String()
}
