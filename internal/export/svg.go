package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/fibviz/internal/viz"
)

const (
	svgWidth  = 800
	svgHeight = 500
	svgPad    = 32.0
	svgGap    = 4.0
)

// BarsToSVG draws the scaled bar view of seq: one bar per visible value,
// palette colored, with the bar label near its base.
func BarsToSVG(seq []int64, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" rx="16" fill="#020617"/>
`, width, height, width, height))

	heights := viz.BarHeights(seq)
	if len(heights) > 0 {
		plotW := float64(width) - 2*svgPad
		plotH := float64(height) - 2*svgPad
		barW := (plotW - svgGap*float64(len(heights)-1)) / float64(len(heights))

		for i, h := range heights {
			bh := plotH * h / 100
			x := svgPad + float64(i)*(barW+svgGap)
			y := svgPad + plotH - bh
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s"><title>n=%d: %d</title></rect>
`, x, y, barW, bh, string(viz.ColorAt(i)), i, seq[i]))
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="11" font-weight="bold" text-anchor="middle" fill="rgba(0,0,0,0.6)">%s</text>
`, x+barW/2, svgPad+plotH-5, html.EscapeString(viz.BarLabel(seq[i]))))
		}
	}

	sb.WriteString(`<text x="` + fmt.Sprint(width-10) + `" y="20" font-size="12" text-anchor="end" fill="#94a3b8" opacity="0.3">*Logarithmic Scale View</text>
</svg>
`)
	return sb.String()
}
