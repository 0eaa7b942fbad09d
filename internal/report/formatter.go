// Package report renders the pipeline's aggregates and model fits for the
// terminal, and saves the accompanying plots.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brewlytics/cupping/internal/aggregate"
	"github.com/brewlytics/cupping/internal/cli"
	"github.com/brewlytics/cupping/internal/model"
	"github.com/brewlytics/cupping/internal/regress"
)

// VIFActionableThreshold is the conventional cutoff above which a variance
// inflation factor flags actionable multicollinearity.
const VIFActionableThreshold = 10

// CLIFormatter renders analysis output for terminal display.
type CLIFormatter struct{}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{}
}

// FormatCountrySummary renders the per-country count and mean-flavor table.
func (f *CLIFormatter) FormatCountrySummary(summaries []aggregate.CountrySummary) string {
	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render("Ratings by country of origin"))
	b.WriteString("\n")
	b.WriteString(cli.TableHeaderStyle.Render(fmt.Sprintf("%-28s %8s %12s", "Country", "Ratings", "Mean flavor")))
	b.WriteString("\n")

	for _, s := range summaries {
		flavor := "—"
		if !math.IsNaN(s.MeanFlavor) {
			flavor = fmt.Sprintf("%.3f", s.MeanFlavor)
		}
		b.WriteString(fmt.Sprintf("%-28s %8d %12s\n", s.Country, s.Count, flavor))
	}
	return b.String()
}

// FormatSpeciesDistribution renders the species breakdown.
func (f *CLIFormatter) FormatSpeciesDistribution(shares []aggregate.SpeciesShare) string {
	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render("Species distribution"))
	b.WriteString("\n")
	for _, s := range shares {
		b.WriteString(fmt.Sprintf("%-12s %6d  (%.1f%%)\n", s.Species, s.Count, s.Percent))
	}
	return b.String()
}

// FormatCorrelation renders the pairwise correlation matrix.
func (f *CLIFormatter) FormatCorrelation(m *aggregate.CorrelationMatrix) string {
	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render("Pairwise Pearson correlations"))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%-14s", ""))
	for _, col := range m.Columns {
		b.WriteString(fmt.Sprintf("%10s", shorten(col, 9)))
	}
	b.WriteString("\n")

	for i, row := range m.Columns {
		b.WriteString(fmt.Sprintf("%-14s", shorten(row, 13)))
		for j := range m.Columns {
			v := m.At(i, j)
			if math.IsNaN(v) {
				b.WriteString(fmt.Sprintf("%10s", "—"))
				continue
			}
			cell := fmt.Sprintf("%10.2f", v)
			if i != j && math.Abs(v) >= 0.7 {
				cell = cli.BoldStyle.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatModel renders one OLS fit: coefficient table, fit statistics, and
// variance inflation factors.
func (f *CLIFormatter) FormatModel(result *regress.Result) string {
	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render(result.Name))
	b.WriteString("\n")

	b.WriteString(cli.TableHeaderStyle.Render(fmt.Sprintf("%-38s %12s %10s %8s %10s",
		"Term", "Estimate", "Std Err", "t", "p-value")))
	b.WriteString("\n")
	for _, c := range result.Coefficients {
		line := fmt.Sprintf("%-38s %12.5f %10.5f %8.2f %10.4g %s",
			shorten(c.Name, 37), c.Estimate, c.StdErr, c.TValue, c.PValue, significanceMarker(c.PValue))
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Observations: %d   Residual df: %d\n", result.Observations, result.DF))
	b.WriteString(fmt.Sprintf("R²: %.4f   Adjusted R²: %.4f\n", result.RSquared, result.AdjRSquared))

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("Variance inflation factors"))
	b.WriteString("\n")
	names := make([]string, 0, len(result.VIF))
	for name := range result.VIF {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := result.VIF[name]
		line := fmt.Sprintf("%-38s %8.2f", shorten(name, 37), v)
		if v > VIFActionableThreshold {
			line = cli.WarningStyle.Render(line + "  high")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatModelError renders a per-fit failure without aborting the report.
func (f *CLIFormatter) FormatModelError(name string, err error) string {
	header := cli.TitleStyle.Render(name)
	body := cli.ErrorStyle.Render(fmt.Sprintf("fit failed: %v", err))
	return lipgloss.JoinVertical(lipgloss.Left, header, body) + "\n"
}

// FormatImportRuns renders the import history, most recent first.
func (f *CLIFormatter) FormatImportRuns(runs []model.ImportRun) string {
	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render("Import history"))
	b.WriteString("\n")
	b.WriteString(cli.TableHeaderStyle.Render(fmt.Sprintf("%-19s %8s %8s %8s  %s",
		"Imported", "Read", "Kept", "Dropped", "Source")))
	b.WriteString("\n")

	for _, r := range runs {
		b.WriteString(fmt.Sprintf("%-19s %8d %8d %8d  %s\n",
			r.ImportedAt.Format("2006-01-02 15:04"),
			r.RowsRead, r.RowsKept, r.RowsDropped, shorten(r.Source, 48)))
	}
	return b.String()
}

// significanceMarker returns the conventional significance stars for a
// two-sided p-value.
func significanceMarker(p float64) string {
	switch {
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	case p < 0.1:
		return "."
	default:
		return ""
	}
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
