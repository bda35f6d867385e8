package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/grou/internal/config"
	"github.com/agbru/grou/internal/ui"
)

// PrintExecutionConfig displays the thresholds, timeout and environment an
// evaluation will run with.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Timeout %s per evaluation, cross-check %s.\n",
		ui.Warning(cfg.Timeout.String()), ui.Info(onOff(cfg.Verify)))
	fmt.Fprintf(out, "Environment: %s logical processors, Go %s.\n",
		ui.Info(fmt.Sprint(runtime.NumCPU())), ui.Info(runtime.Version()))
	fmt.Fprintf(out, "Thresholds: Karatsuba=%s limbs, parallel=%s.\n",
		ui.Info(fmt.Sprint(cfg.Threshold)), ui.Info(parallelLabel(cfg.ParallelThreshold)))
}

// parallelLabel renders a parallel threshold; zero and below mean sequential.
func parallelLabel(limbs int) string {
	if limbs <= 0 {
		return "off"
	}
	return fmt.Sprintf("%d limbs", limbs)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
