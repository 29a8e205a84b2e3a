package stats

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	svg "github.com/ajstarks/svgo"
)

const donutStrokeWidth = 28

// SVG renders the donut as an inline SVG ring: one circle per segment, arcs
// drawn with stroke-dasharray/-dashoffset, rotated so the first segment
// starts at twelve o'clock.
func (d Donut) SVG() template.HTML {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(120, 120, `viewBox="0 0 120 120"`, `class="pie-chart"`)
	circ := Circumference()
	for _, seg := range d.Segments {
		canvas.Circle(60, 60, DonutRadius, fmt.Sprintf(
			`fill="none" stroke="%s" stroke-width="%d" stroke-dasharray="%.2f %.2f" stroke-dashoffset="%.2f" transform="rotate(-90 60 60)"`,
			seg.Color, donutStrokeWidth, seg.Length, circ, -seg.Offset))
	}
	canvas.End()
	out := buf.String()
	// Start writes an XML prolog and a generator comment meant for
	// standalone .svg files; inline markup wants only the element itself.
	if i := strings.Index(out, "<svg"); i > 0 {
		out = out[i:]
	}
	return template.HTML(out)
}
