package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// NewPlot creates new time series plot of a filter run from the following data sources:
// truth:   ground truth values; can be nil if truth is not known
// measure: measurement values
// filter:  filter estimates
// std:     filter estimate standard deviations; can be nil
// Estimates are drawn with a band of two standard deviations when std is supplied.
// It returns error if the plot fails to be created. This can be due to either of the following conditions:
// * measure or filter is empty
// * supplied data series have different lengths
// * gonum plot fails to be created
func NewPlot(title string, truth, measure, filter, std []float64) (*plot.Plot, error) {
	n := len(measure)
	if n == 0 || len(filter) == 0 {
		return nil, fmt.Errorf("invalid data supplied")
	}

	if len(filter) != n || (truth != nil && len(truth) != n) || (std != nil && len(std) != n) {
		return nil, fmt.Errorf("invalid data dimensions")
	}

	p := plot.New()

	p.Title.Text = title
	p.X.Label.Text = "step"
	p.Y.Label.Text = "value"

	p.Legend.Top = true

	if truth != nil {
		truthLine, err := plotter.NewLine(makePoints(truth, nil, 0))
		if err != nil {
			return nil, err
		}
		truthLine.LineStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
		truthLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

		p.Add(truthLine)
		p.Legend.Add("truth", truthLine)
	}

	// Make a scatter plotter for measurement data
	measScatter, err := plotter.NewScatter(makePoints(measure, nil, 0))
	if err != nil {
		return nil, err
	}
	measScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 128}
	measScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(measScatter)
	p.Legend.Add("measurement", measScatter)

	// Make a line plotter for filter data
	filterLine, err := plotter.NewLine(makePoints(filter, nil, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to create line: %w", err)
	}
	filterLine.LineStyle.Color = color.RGBA{B: 255, A: 255}
	filterLine.LineStyle.Width = vg.Points(1.5)

	p.Add(filterLine)
	p.Legend.Add("filtered", filterLine)

	if std != nil {
		for _, sign := range []float64{1, -1} {
			band, err := plotter.NewScatter(makePoints(filter, std, 2*sign))
			if err != nil {
				return nil, fmt.Errorf("failed to create band: %w", err)
			}
			band.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169, A: 255}
			band.Shape = draw.CrossGlyph{}
			band.GlyphStyle.Radius = vg.Points(1.5)

			p.Add(band)
			if sign > 0 {
				p.Legend.Add("±2σ", band)
			}
		}
	}

	return p, nil
}

// makePoints returns points of series vals offset by scale multiples of off.
func makePoints(vals, off []float64, scale float64) plotter.XYs {
	pts := make(plotter.XYs, len(vals))
	for i := range vals {
		pts[i].X = float64(i)
		pts[i].Y = vals[i]
		if off != nil {
			pts[i].Y += scale * off[i]
		}
	}

	return pts
}
