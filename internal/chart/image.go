package chart

import (
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/suspsim/internal/suspension"
)

// Series is one named line of a Figure.
type Series struct {
	Name   string
	Points []suspension.Point
}

// Figure is a renderable chart, independent of output format.
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

func WeightShiftFigure(samples []suspension.SweepSample) Figure {
	front := make([]suspension.Point, len(samples))
	rear := make([]suspension.Point, len(samples))
	for i, s := range samples {
		front[i] = suspension.Point{X: s.Speed, Y: s.FrontShift}
		rear[i] = suspension.Point{X: s.Speed, Y: s.RearShift}
	}
	return Figure{
		Title:  "Weight Shift During Turning",
		XLabel: "Cornering Speed (m/s)",
		YLabel: "Weight Shift (N)",
		Series: []Series{{"Front Weight Shift", front}, {"Rear Weight Shift", rear}},
	}
}

func AccelerationFigure(points []suspension.Point) Figure {
	return Figure{
		Title:  "Centripetal Acceleration vs Cornering Speed",
		XLabel: "Cornering Speed (m/s)",
		YLabel: "Centripetal Acceleration (g)",
		Series: []Series{{"Centripetal Acceleration", points}},
	}
}

func LateralForceFigure(points []suspension.Point) Figure {
	return Figure{
		Title:  "Lateral Force vs Cornering Speed",
		XLabel: "Cornering Speed (m/s)",
		YLabel: "Lateral Force (N)",
		Series: []Series{{"Lateral Force", points}},
	}
}

var imageFormats = map[string]bool{".png": true, ".svg": true, ".pdf": true, ".jpg": true, ".jpeg": true}

// Save renders fig to path; the extension picks the format.
func Save(path string, fig Figure, widthIn, heightIn float64) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !imageFormats[ext] {
		return fmt.Errorf("unsupported image format: %q", ext)
	}
	if len(fig.Series) == 0 {
		return fmt.Errorf("figure %q has no series", fig.Title)
	}

	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, s := range fig.Series {
		pts := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			pts[j].X, pts[j].Y = pt.X, pt.Y
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("series %s: %w", s.Name, err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	return p.Save(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, path)
}
