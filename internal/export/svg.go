// Package export renders recorded trajectories to standalone SVG documents.
package export

import (
	"fmt"
	"strings"
)

// Palette cycles per-body stroke colors.
var Palette = []string{
	"#7494c4", "#6a4d61", "#c3d407",
	"#d9ed92", "#5d737e", "#1e6091", "#8f2d56",
}

// TrajectoriesToSVG draws one path per body over the viewport. States are
// flattened [x, y, vx, vy] per body; rows shorter than a full body record
// are skipped.
func TrajectoriesToSVG(states [][]float64, width, height float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	numBodies := 0
	if len(states) > 0 {
		numBodies = len(states[0]) / 4
	}

	for body := 0; body < numBodies; body++ {
		color := Palette[body%len(Palette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, color))

		started := false
		for _, row := range states {
			if len(row) < (body+1)*4 {
				continue
			}
			x := row[body*4]
			y := row[body*4+1]
			if !started {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
				started = true
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}

		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
