package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoPoints is returned when there is nothing finite to draw.
var ErrNoPoints = errors.New("plot: no finite points")

// Format selects the chart renderer.
type Format int

const (
	FormatPNG Format = iota
	FormatSVG
)

var strokeColor = drawing.ColorFromHex("00aa66")

// Options label and size a chart. Zero sizes fall back to the defaults.
type Options struct {
	Title  string
	XName  string
	YName  string
	Width  int
	Height int
}

// Chart builds the line chart for points. Non-finite samples are dropped and
// the axis ranges are fixed from Bounds, so a single point still renders.
func Chart(points []Point, opts Options) (chart.Chart, error) {
	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	kept := make([]Point, 0, len(points))
	for _, p := range points {
		if !finite(p) {
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return chart.Chart{}, ErrNoPoints
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	minX, maxX, minY, maxY := Bounds(kept)
	return chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  opts.XName,
			Range: &chart.ContinuousRange{Min: minX, Max: maxX},
		},
		YAxis: chart.YAxis{
			Name:  opts.YName,
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    opts.YName,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: strokeColor,
					StrokeWidth: 2,
					DotColor:    strokeColor,
					DotWidth:    3,
				},
			},
		},
	}, nil
}

// Render draws points to w in the given format.
func Render(w io.Writer, format Format, points []Point, opts Options) error {
	ch, err := Chart(points, opts)
	if err != nil {
		return err
	}
	rp := chart.PNG
	if format == FormatSVG {
		rp = chart.SVG
	}
	if err := ch.Render(rp, w); err != nil {
		return fmt.Errorf("plot: render: %w", err)
	}
	return nil
}

func renderFile(path string, format Format, points []Point, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, format, points, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
