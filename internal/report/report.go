package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sdendorfer/nasbudget/internal/analysis"
	"github.com/sdendorfer/nasbudget/internal/stats"
)

// Write renders an analysis bundle in the requested format: "markdown",
// "json", or the default tabwriter table.
func Write(bundle *analysis.Bundle, format string, w io.Writer) error {
	switch format {
	case "markdown":
		return writeMarkdown(bundle, w)
	case "json":
		return writeJSON(bundle, w)
	default:
		return writeTable(bundle, w)
	}
}

func writeTable(bundle *analysis.Bundle, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if len(bundle.Success) > 0 {
		fmt.Fprintln(tw, "DATASET\tTHRESHOLD\tP(SINGLE)\tN\tP(>=1 OF N)")
		fmt.Fprintln(tw, strings.Repeat("-", 60))
		for _, s := range bundle.Success {
			for _, r := range s.Results {
				fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%d\t%.4f\n",
					s.Dataset, s.Threshold, r.ProbabilitySingle, r.N, r.ProbabilityAtLeastOne)
			}
		}
		fmt.Fprintln(tw)
	}

	if len(bundle.CLT) > 0 {
		fmt.Fprintln(tw, "DATASET\tMETRIC\tMEAN\tSTD DEV\tSTD ERR\tSAMPLES")
		fmt.Fprintln(tw, strings.Repeat("-", 60))
		for _, c := range bundle.CLT {
			fmt.Fprintf(tw, "%s\t%s\t%.5f\t%.5f\t%.5f\t%d\n",
				c.Dataset, c.Metric, c.Params.Mean, c.Params.StdDev, c.StdErr, c.Params.SampleSize)
		}
		fmt.Fprintln(tw)
	}

	if len(bundle.Budget) > 0 {
		fmt.Fprintln(tw, "COMPARISON\tTARGET\tE[COST] A\tE[COST] B\tFINAL E[BEST] A\tFINAL E[BEST] B")
		fmt.Fprintln(tw, strings.Repeat("-", 80))
		for _, b := range bundle.Budget {
			fmt.Fprintf(tw, "%s\t%.4f\t%s\t%s\t%.4f\t%.4f\n",
				b.Name, b.TargetAccuracy,
				formatCost(b.CostToTargetA), formatCost(b.CostToTargetB),
				finalAccuracy(b.CurveA), finalAccuracy(b.CurveB))
		}
	}
	return tw.Flush()
}

func writeMarkdown(bundle *analysis.Bundle, w io.Writer) error {
	if len(bundle.Success) > 0 {
		fmt.Fprintln(w, "| Dataset | Threshold | P(single) | N | P(>=1 of N) |")
		fmt.Fprintln(w, "|---|---|---|---|---|")
		for _, s := range bundle.Success {
			for _, r := range s.Results {
				fmt.Fprintf(w, "| %s | %.4f | %.4f | %d | %.4f |\n",
					s.Dataset, s.Threshold, r.ProbabilitySingle, r.N, r.ProbabilityAtLeastOne)
			}
		}
		fmt.Fprintln(w)
	}

	if len(bundle.CLT) > 0 {
		fmt.Fprintln(w, "| Dataset | Metric | Mean | Std Dev | Std Err | Samples |")
		fmt.Fprintln(w, "|---|---|---|---|---|---|")
		for _, c := range bundle.CLT {
			fmt.Fprintf(w, "| %s | %s | %.5f | %.5f | %.5f | %d |\n",
				c.Dataset, c.Metric, c.Params.Mean, c.Params.StdDev, c.StdErr, c.Params.SampleSize)
		}
		fmt.Fprintln(w)
	}

	if len(bundle.Budget) > 0 {
		fmt.Fprintln(w, "| Comparison | Target | E[cost] A | E[cost] B | Final E[best] A | Final E[best] B |")
		fmt.Fprintln(w, "|---|---|---|---|---|---|")
		for _, b := range bundle.Budget {
			fmt.Fprintf(w, "| %s | %.4f | %s | %s | %.4f | %.4f |\n",
				b.Name, b.TargetAccuracy,
				formatCost(b.CostToTargetA), formatCost(b.CostToTargetB),
				finalAccuracy(b.CurveA), finalAccuracy(b.CurveB))
		}
	}
	return nil
}

func writeJSON(bundle *analysis.Bundle, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bundle)
}

func formatCost(cost *float64) string {
	if cost == nil {
		return "unreachable"
	}
	return fmt.Sprintf("%.1f", *cost)
}

func finalAccuracy(curve stats.BudgetCurve) float64 {
	if len(curve) == 0 {
		return 0
	}
	return curve[len(curve)-1].ExpectedBestAccuracy
}
