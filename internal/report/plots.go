package report

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/brewlytics/cupping/internal/aggregate"
)

// maxBarCountries caps the bar chart at the most-reviewed countries so the
// axis labels stay legible.
const maxBarCountries = 25

// SaveCountryBarChart renders rating counts per country to a PNG file.
func SaveCountryBarChart(summaries []aggregate.CountrySummary, path string) error {
	if len(summaries) > maxBarCountries {
		summaries = summaries[:maxBarCountries]
	}

	p := plot.New()
	p.Title.Text = "Coffee ratings by country of origin"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Ratings"
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.XAlign = -1
	p.X.Tick.Label.YAlign = -0.3

	values := make(plotter.Values, len(summaries))
	names := make([]string, len(summaries))
	for i, s := range summaries {
		values[i] = float64(s.Count)
		names[i] = s.Country
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save bar chart %s: %w", path, err)
	}
	return nil
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ.
type corrGrid struct {
	m *aggregate.CorrelationMatrix
}

func (g corrGrid) Dims() (c, r int) {
	n := len(g.m.Columns)
	return n, n
}

func (g corrGrid) Z(c, r int) float64 {
	v := g.m.At(r, c)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// SaveCorrelationHeatMap renders the correlation matrix to a PNG file.
func SaveCorrelationHeatMap(m *aggregate.CorrelationMatrix, path string) error {
	p := plot.New()
	p.Title.Text = "Sensory score correlations"
	p.Title.TextStyle.Font.Size = vg.Points(14)

	heatMap := plotter.NewHeatMap(corrGrid{m: m}, palette.Heat(12, 1))
	heatMap.Min = -1
	heatMap.Max = 1
	p.Add(heatMap)

	ticks := make([]plot.Tick, len(m.Columns))
	for i, col := range m.Columns {
		ticks[i] = plot.Tick{Value: float64(i), Label: col}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.XAlign = -1
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	if err := p.Save(9*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save heat map %s: %w", path, err)
	}
	return nil
}
