package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/sadpig70/PAT-System/internal/sim"
	"github.com/sadpig70/PAT-System/internal/stats"
)

const DefaultBins = 20

// RenderReport formats one line per compared property:
//
//	crystallite_size      PASS  error 1.23%  sim 1012.5 exp 1000
func RenderReport(report sim.AgreementReport) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("experimental agreement"))
	b.WriteString("\n")

	for _, a := range report {
		status := StatusPass.Render("PASS")
		if !a.Within2Percent {
			status = StatusFail.Render("FAIL")
		}
		fmt.Fprintf(&b, "%-22s %s  %s %s  %s %s %s %s\n",
			a.Property,
			status,
			MetricLabel.Render("error"),
			MetricValue.Render(fmt.Sprintf("%.2f%%", a.RelativeError*100)),
			MetricLabel.Render("sim"),
			formatValue(a.SimMean),
			MetricLabel.Render("exp"),
			formatValue(a.ExpMean),
		)
	}
	return b.String()
}

// RenderSummary formats count, mean, standard deviation, range and a
// sparkline of the distribution for every column of t.
func RenderSummary(t *sim.Table) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%d samples", t.Len())))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-22s %-9s %14s %14s %14s %14s  %s\n", "COLUMN", "UNIT", "MEAN", "STD", "MIN", "MAX", "DISTRIBUTION")

	for _, c := range sim.Columns() {
		values := t.Column(c)
		s := stats.Summarize(values)
		h := stats.NewHistogram(values, DefaultBins)
		fmt.Fprintf(&b, "%-22s %-9s %14s %14s %14s %14s  %s\n",
			c, c.Unit(),
			formatValue(s.Mean), formatValue(s.StdDev),
			formatValue(s.Min), formatValue(s.Max),
			Sparkline(h.Floats()),
		)
	}
	return b.String()
}

// Histogram plots the binned distribution of values.
func Histogram(values []float64, bins, width, height int, caption string) string {
	h := stats.NewHistogram(values, bins)
	return asciigraph.Plot(h.Floats(),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}

// ColumnHistogram plots column c of t with its range in the caption.
func ColumnHistogram(t *sim.Table, c sim.Column, bins, width, height int) string {
	lo, hi := stats.MinMax(t.Column(c))
	caption := fmt.Sprintf("%s [%s .. %s] %s", c, formatValue(lo), formatValue(hi), c.Unit())
	return Histogram(t.Column(c), bins, width, height, caption)
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
