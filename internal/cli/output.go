package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/agbru/grou"
	"github.com/agbru/grou/internal/eval"
	"github.com/agbru/grou/internal/format"
	"github.com/agbru/grou/internal/ui"
)

const (
	// DisplayLimit is the limb count above which a result is truncated in
	// standard output.
	DisplayLimit = 16
	// DisplayEdges is the number of limbs shown at each end of a truncated
	// result.
	DisplayEdges = 4
)

// FormatLimbs renders limbs least-significant first, e.g. "[255 1]". Lists
// longer than DisplayLimit keep DisplayEdges limbs at each end. A limit <= 0
// disables truncation.
func FormatLimbs(limbs []grou.Limb, limit int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	write := func(ls []grou.Limb) {
		for i, l := range ls {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatUint(l, 10))
		}
	}
	if limit > 0 && len(limbs) > limit {
		write(limbs[:DisplayEdges])
		fmt.Fprintf(&sb, " ... (%d limbs) ... ", len(limbs)-2*DisplayEdges)
		write(limbs[len(limbs)-DisplayEdges:])
	} else {
		write(limbs)
	}
	sb.WriteByte(']')
	return sb.String()
}

// FormatQuietResult returns the untruncated result alone: the sign for a
// comparison, the limb list otherwise. It is meant for scripting.
func FormatQuietResult(x eval.Expression, res eval.Result) string {
	if x.IsComparison() {
		return strconv.Itoa(res.Sign)
	}
	return FormatLimbs(res.Value.Limbs(), 0)
}

// DisplayQuietResult writes FormatQuietResult followed by a newline.
func DisplayQuietResult(out io.Writer, x eval.Expression, res eval.Result) {
	fmt.Fprintln(out, FormatQuietResult(x, res))
}

// DisplayResult writes the result of x with its size and timing. The limb
// list is truncated unless verbose is set.
func DisplayResult(out io.Writer, x eval.Expression, res eval.Result, verbose bool) {
	limit := DisplayLimit
	if verbose {
		limit = 0
	}
	fmt.Fprintf(out, "  %s %s\n", ui.Secondary("expr  "), res.Expr)
	if x.IsComparison() {
		fmt.Fprintf(out, "  %s %s (%s)\n", ui.Secondary("result"), ui.Success(strconv.Itoa(res.Sign)), relation(res.Sign))
	} else {
		fmt.Fprintf(out, "  %s %s\n", ui.Secondary("result"), ui.Success(FormatLimbs(res.Value.Limbs(), limit)))
		fmt.Fprintf(out, "  %s %s\n", ui.Secondary("limbs "), ui.Info(strconv.Itoa(res.Value.Len())))
	}
	fmt.Fprintf(out, "  %s %s\n", ui.Secondary("time  "), ui.Info(format.FormatExecutionDuration(res.Duration)))
}

func relation(sign int) string {
	switch {
	case sign < 0:
		return "lhs < rhs"
	case sign > 0:
		return "lhs > rhs"
	}
	return "lhs = rhs"
}

// DisplayNumber writes a labelled limb list, as used by the parse and split
// commands.
func DisplayNumber(out io.Writer, label string, limbs []grou.Limb, verbose bool) {
	limit := DisplayLimit
	if verbose {
		limit = 0
	}
	fmt.Fprintf(out, "  %s %s %s\n", ui.Secondary(fmt.Sprintf("%-6s", label)), FormatLimbs(limbs, limit), ui.Info(fmt.Sprintf("(%d limbs)", len(limbs))))
}
