package eval

import (
	"strings"

	"github.com/agbru/grou"
	apperrors "github.com/agbru/grou/internal/errors"
)

// Op is a binary operator understood by the evaluator.
type Op string

const (
	OpAdd         Op = "+"
	OpSub         Op = "-"
	OpMul         Op = "*"   // Karatsuba through the configured Multiplier
	OpStraightMul Op = "*s"  // schoolbook multiplication
	OpCmp         Op = "cmp" // three-way comparison
	OpSpaceship   Op = "<=>" // alias of cmp
)

// Ops lists the supported operators in display order.
var Ops = []Op{OpAdd, OpSub, OpMul, OpStraightMul, OpCmp, OpSpaceship}

func (o Op) valid() bool {
	for _, op := range Ops {
		if o == op {
			return true
		}
	}
	return false
}

// IsComparison reports whether o yields a sign rather than a Number.
func (o Op) IsComparison() bool { return o == OpCmp || o == OpSpaceship }

// Expression is a parsed "<a> <op> <b>".
type Expression struct {
	Text string
	LHS  grou.Number
	Op   Op
	RHS  grou.Number
}

// IsComparison reports whether x evaluates to a sign.
func (x Expression) IsComparison() bool { return x.Op.IsComparison() }

// ParseExpression parses text of the form "<a> <op> <b>", separated by
// whitespace. Operands use grou.Parse syntax (decimal, 0x hex, 0b binary).
func ParseExpression(text string) (Expression, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return Expression{}, apperrors.ValidationError{
			Field:   "expr",
			Message: "want \"<a> <op> <b>\", got " + strings.Join(fields, " "),
		}
	}
	op := Op(fields[1])
	if !op.valid() {
		return Expression{}, apperrors.ValidationError{Field: "operator", Message: "unknown operator " + fields[1]}
	}
	lhs, err := grou.Parse(fields[0])
	if err != nil {
		return Expression{}, apperrors.EvaluationError{Expr: text, Cause: err}
	}
	rhs, err := grou.Parse(fields[2])
	if err != nil {
		return Expression{}, apperrors.EvaluationError{Expr: text, Cause: err}
	}
	return Expression{Text: text, LHS: lhs, Op: op, RHS: rhs}, nil
}
