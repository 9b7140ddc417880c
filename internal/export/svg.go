// Package export renders recorded pendulum runs as standalone SVG
// documents, for inspecting a chain's motion outside the terminal.
package export

import (
	"fmt"
	"os"
	"strings"
)

// TrajectorySVG renders one bob's path as an SVG polyline. The physics
// frame already has y growing downward, matching SVG coordinates, so
// points map without flipping.
func TrajectorySVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX = min(minX, xs[i])
		maxX = max(maxX, xs[i])
		minY = min(minY, ys[i])
		maxY = max(maxY, ys[i])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := (ys[i] - minY) / rangeY * float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// WriteTrajectorySVG writes TrajectorySVG output to a file.
func WriteTrajectorySVG(path string, xs, ys []float64, width, height int, strokeColor string) error {
	svg := TrajectorySVG(xs, ys, width, height, strokeColor)
	if svg == "" {
		return fmt.Errorf("not enough points for a trajectory")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
