package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/grou/internal/config"
	"github.com/agbru/grou/internal/format"
	"github.com/agbru/grou/internal/ui"
)

// printCalibrationResults formats and prints one calibration table.
func printCalibrationResults(out io.Writer, title string, results []calibrationResult, best int) {
	fmt.Fprintf(out, "\n--- %s ---\n", title)
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %s │ %s\n", ui.Heading(fmt.Sprintf("%-12s", "Threshold")), ui.Heading("Execution Time"))
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 13), strings.Repeat("─", 25))
	for _, res := range results {
		label := fmt.Sprintf("%d limbs", res.Threshold)
		if res.Threshold == 0 {
			label = "Sequential"
		}
		duration := ui.Error("N/A")
		if res.Err == nil {
			duration = ui.Info(format.FormatExecutionDuration(res.Duration))
		}
		highlight := ""
		if res.Threshold == best && res.Err == nil {
			highlight = " " + ui.Success("(Optimal)")
		}
		fmt.Fprintf(tw, "  %s │ %s%s\n", ui.Primary(fmt.Sprintf("%-12s", label)), duration, highlight)
	}
	tw.Flush()
}

// PrintSummary prints the thresholds of cfg, as adopted after calibration or
// loaded from a cached profile.
func PrintSummary(out io.Writer, cfg config.AppConfig) {
	fmt.Fprintf(out, "%s: karatsuba=%s limbs, parallel=%s limbs\n",
		ui.Success("Calibration"),
		ui.Info(fmt.Sprint(cfg.Threshold)),
		ui.Info(fmt.Sprint(cfg.ParallelThreshold)))
}
