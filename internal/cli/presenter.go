package cli

import (
	"fmt"
	"io"

	"github.com/agbru/grou/internal/eval"
	"github.com/agbru/grou/internal/format"
	"github.com/agbru/grou/internal/metrics"
	"github.com/agbru/grou/internal/sysmon"
	"github.com/agbru/grou/internal/ui"
)

// PresentStrategies displays the products of a cross-check as a table of
// strategy, duration and agreement with the first (reference) strategy. It
// reports whether all strategies agreed.
func PresentStrategies(out io.Writer, results []eval.StrategyResult) bool {
	if len(results) == 0 {
		return true
	}
	fmt.Fprintf(out, "\n--- Cross-check ---\n")

	maxNameLen := len("Strategy")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(format.FormatExecutionDuration(res.Duration)))
	}

	// Pad before coloring so escape codes do not skew the columns.
	fmt.Fprintf(out, "%s   %s   %s\n",
		ui.Heading(padRight("Strategy", maxNameLen)),
		ui.Heading(padRight("Duration", maxDurationLen)),
		ui.Heading("Status"))

	ref := results[0].Product
	agreed := true
	for _, res := range results {
		status := ui.Success("agrees")
		if !res.Product.Equal(ref) {
			status = ui.Error("MISMATCH")
			agreed = false
		}
		fmt.Fprintf(out, "%s   %s   %s\n",
			ui.Primary(padRight(res.Name, maxNameLen)),
			ui.Info(padRight(format.FormatExecutionDuration(res.Duration), maxDurationLen)),
			status)
	}
	return agreed
}

func padRight(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}

// DisplayMemoryStats shows a runtime memory snapshot.
func DisplayMemoryStats(out io.Writer, snap metrics.MemorySnapshot) {
	fmt.Fprintf(out, "  Heap in use:     %s\n", ui.Info(format.FormatBytes(snap.HeapAlloc)))
	fmt.Fprintf(out, "  From OS:         %s\n", ui.Info(format.FormatBytes(snap.Sys)))
	fmt.Fprintf(out, "  Heap objects:    %s\n", ui.Info(fmt.Sprint(snap.HeapObjects)))
	fmt.Fprintf(out, "  GC cycles:       %s\n", ui.Info(fmt.Sprint(snap.NumGC)))
	fmt.Fprintf(out, "  Goroutines:      %s\n", ui.Info(fmt.Sprint(snap.Goroutines)))
}

// DisplaySystemStats shows machine-wide CPU and memory usage.
func DisplaySystemStats(out io.Writer, s sysmon.Stats) {
	fmt.Fprintf(out, "  System CPU:      %s\n", ui.Info(fmt.Sprintf("%.1f%%", s.CPUPercent)))
	fmt.Fprintf(out, "  System memory:   %s of %s (%s)\n",
		ui.Info(format.FormatBytes(s.MemUsed)), ui.Info(format.FormatBytes(s.MemTotal)),
		ui.Info(fmt.Sprintf("%.1f%%", s.MemPercent)))
}
