package plot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/inspector/internal/props"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

type Point struct {
	X, Y float64
}

func Ys(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Y
	}
	return out
}

// Bounds returns the data extents. Degenerate ranges are widened to 1 so
// callers can divide by them.
func Bounds(points []Point) (minX, maxX, minY, maxY float64) {
	if len(points) == 0 {
		return 0, 1, 0, 1
	}
	minX, maxX = points[0].X, points[0].X
	minY, maxY = points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}
	return minX, maxX, minY, maxY
}

// Terminal draws the sweep as an asciigraph line plot.
func Terminal(points []Point, width, height int, caption string) string {
	if len(points) == 0 {
		return ""
	}
	ys := Ys(points)
	for _, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return "plot unavailable: non-finite sample"
		}
	}
	first, last := points[0].X, points[len(points)-1].X
	if caption != "" {
		caption += "  "
	}
	caption += fmt.Sprintf("x %s … %s", props.FormatFloat(first), props.FormatFloat(last))

	return asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// Write renders points to path, as SVG when the extension is .svg and as
// PNG otherwise. Missing parent directories are created.
func Write(path string, points []Point) error {
	return WriteChart(path, points, Options{})
}

// WriteChart is Write with axis labels and size.
func WriteChart(path string, points []Point, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	format := FormatPNG
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		format = FormatSVG
	}
	return renderFile(path, format, points, opts)
}
