// FILE: logtools/src/internal/chart/chart.go

// Package chart renders the per-second entry rate of a log as a line chart.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Bucket is the number of consecutive entries sharing one second.
type Bucket struct {
	Second time.Time
	Count  int
}

// Series groups timestamps into per-second buckets. Only consecutive equal
// seconds share a bucket; input is expected to be time ordered.
type Series struct {
	buckets []Bucket
}

// Add counts one entry at t.
func (s *Series) Add(t time.Time) {
	sec := t.Truncate(time.Second)
	if n := len(s.buckets); n > 0 && s.buckets[n-1].Second.Equal(sec) {
		s.buckets[n-1].Count++
		return
	}
	s.buckets = append(s.buckets, Bucket{Second: sec, Count: 1})
}

// Buckets returns the collected buckets.
func (s *Series) Buckets() []Bucket {
	return s.buckets
}

// Options controls rendering.
type Options struct {
	Width    int
	Height   int
	Colour   string
	MaxValue int // 0 uses the largest bucket
}

// Summary describes a rendered chart.
type Summary struct {
	Width    int
	Height   int
	From     time.Time
	To       time.Time
	MaxValue int
}

var colours = map[string]color.Color{
	"red":   color.RGBA{R: 255, A: 255},
	"blue":  color.RGBA{B: 255, A: 255},
	"green": color.RGBA{G: 255, A: 255},
}

var formats = []string{".svg", ".png", ".pdf", ".eps", ".jpg", ".jpeg", ".tif", ".tiff"}

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no timestamped entries to plot")

// Validate normalises opts for rendering to path.
func (o *Options) Validate(path string) error {
	o.Width -= o.Width % 8
	o.Height -= o.Height % 8
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("chart size must be at least 8x8 pixels")
	}
	if o.Colour == "" {
		o.Colour = "red"
	}
	if _, ok := colours[o.Colour]; !ok {
		return fmt.Errorf("unknown series colour '%s' (valid: red, blue, green)", o.Colour)
	}
	if o.MaxValue < 0 {
		return fmt.Errorf("max value must not be negative")
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range formats {
		if ext == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported chart file type '%s'", ext)
}

// Render draws the buckets as a line chart and saves it to path. The file
// type follows the extension.
func Render(buckets []Bucket, path string, opts Options) (Summary, error) {
	if err := opts.Validate(path); err != nil {
		return Summary{}, err
	}
	if len(buckets) == 0 {
		return Summary{}, ErrNoData
	}

	sum := Summary{
		Width:    opts.Width,
		Height:   opts.Height,
		From:     buckets[0].Second,
		To:       buckets[0].Second,
		MaxValue: opts.MaxValue,
	}
	xys := make(plotter.XYs, len(buckets))
	for i, b := range buckets {
		if b.Second.Before(sum.From) {
			sum.From = b.Second
		}
		if b.Second.After(sum.To) {
			sum.To = b.Second
		}
		if opts.MaxValue == 0 && b.Count > sum.MaxValue {
			sum.MaxValue = b.Count
		}
		xys[i].X = float64(b.Second.Unix())
		xys[i].Y = float64(b.Count)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - %s", sum.From.UTC().Format(time.DateTime), sum.To.UTC().Format(time.DateTime))
	p.X.Label.Text = "time"
	p.Y.Label.Text = "entries per second"
	p.X.Tick.Marker = plot.TimeTicks{Format: "15:04:05"}
	p.X.Min, p.X.Max = float64(sum.From.Unix()), float64(sum.To.Unix())
	p.Y.Min, p.Y.Max = 0, float64(sum.MaxValue)

	line, err := plotter.NewLine(xys)
	if err != nil {
		return Summary{}, fmt.Errorf("building series: %w", err)
	}
	line.LineStyle.Color = colours[opts.Colour]
	line.LineStyle.Width = vg.Points(1)

	p.Add(plotter.NewGrid(), line)

	if err := p.Save(pixels(opts.Width), pixels(opts.Height), path); err != nil {
		return Summary{}, fmt.Errorf("saving chart %s: %w", path, err)
	}
	return sum, nil
}

// pixels converts a pixel count to a length at the default 96 dpi raster
// resolution.
func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / 96
}
