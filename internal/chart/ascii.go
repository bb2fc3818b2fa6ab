package chart

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/suspsim/internal/suspension"
)

type Options struct {
	Width  int
	Height int
}

func DefaultOptions() Options {
	return Options{Width: 60, Height: 10}
}

func (o Options) apply(caption string) []asciigraph.Option {
	if o.Width <= 0 {
		o.Width = DefaultOptions().Width
	}
	if o.Height <= 0 {
		o.Height = DefaultOptions().Height
	}
	return []asciigraph.Option{
		asciigraph.Width(o.Width),
		asciigraph.Height(o.Height),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	}
}

// WeightShift plots front and rear shift against swept speed.
func WeightShift(samples []suspension.SweepSample, opts Options) string {
	if len(samples) == 0 {
		return ""
	}
	front := make([]float64, len(samples))
	rear := make([]float64, len(samples))
	for i, s := range samples {
		front[i], rear[i] = s.FrontShift, s.RearShift
	}
	caption := fmt.Sprintf("weight shift (N) vs speed %.2f..%.2f m/s", samples[0].Speed, samples[len(samples)-1].Speed)
	o := append(opts.apply(caption),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
		asciigraph.SeriesLegends("front", "rear"),
	)
	return asciigraph.PlotMany([][]float64{front, rear}, o...)
}

func Acceleration(points []suspension.Point, opts Options) string {
	return series(points, "centripetal acceleration (g)", opts)
}

func LateralForce(points []suspension.Point, opts Options) string {
	return series(points, "lateral force (N)", opts)
}

func series(points []suspension.Point, label string, opts Options) string {
	if len(points) == 0 {
		return ""
	}
	ys := make([]float64, len(points))
	for i, p := range points {
		ys[i] = p.Y
	}
	caption := fmt.Sprintf("%s vs speed %.2f..%.2f m/s", label, points[0].X, points[len(points)-1].X)
	return asciigraph.Plot(ys, opts.apply(caption)...)
}
