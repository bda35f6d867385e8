package eval

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/grou"
	apperrors "github.com/agbru/grou/internal/errors"
	"github.com/agbru/grou/internal/eval/mocks"
	"github.com/agbru/grou/internal/logging"
)

func quietLogger() logging.Logger {
	return logging.NewStdLoggerAdapter(log.New(io.Discard, "", 0))
}

func newTestEvaluator(opts ...Option) *Evaluator {
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return New(grou.Multiplier{KaratsubaThreshold: 4, ParallelThreshold: 16}, opts...)
}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		expr  string
		value []grou.Limb
		sign  int
	}{
		{"100 + 18446744073709551615", []grou.Limb{99, 1}, 1},
		{"0x10000000000000000 - 1", []grou.Limb{18446744073709551615}, 1},
		{"5 - 5", []grou.Limb{0}, 0},
		{"340282366920938463463374607431768211455 * 2", []grou.Limb{18446744073709551614, 18446744073709551615, 1}, 1},
		{"340282366920938463463374607431768211455 *s 2", []grou.Limb{18446744073709551614, 18446744073709551615, 1}, 1},
		{"0 * 12345", []grou.Limb{0}, 0},
	}
	e := newTestEvaluator()
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			res, err := e.Evaluate(context.Background(), tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.value, res.Value.Limbs())
			assert.Equal(t, tt.sign, res.Sign)
			assert.Equal(t, tt.expr, res.Expr)
		})
	}
}

func TestEvaluateComparison(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()
	for expr, want := range map[string]int{
		"1 cmp 2":                      -1,
		"0x10 <=> 16":                  0,
		"18446744073709551616 cmp 999": 1,
	} {
		res, err := e.Evaluate(context.Background(), expr)
		require.NoError(t, err)
		assert.Equal(t, want, res.Sign, expr)
		assert.Equal(t, 0, res.Value.Len())
	}
}

func TestEvaluateUnderflow(t *testing.T) {
	t.Parallel()
	_, err := newTestEvaluator().Evaluate(context.Background(), "1 - 2")
	var evErr apperrors.EvaluationError
	require.True(t, errors.As(err, &evErr))
	assert.True(t, errors.Is(err, grou.ErrUnderflow))
	assert.Equal(t, "1 - 2", evErr.Expr)
}

func TestEvaluateCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestEvaluator().Evaluate(ctx, "3 * 4")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, apperrors.ExitErrorCanceled, apperrors.ExitCode(err))
}

func TestEvaluateRecordsMetrics(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	rec := mocks.NewMockRecorder(ctrl)

	gomock.InOrder(
		rec.EXPECT().ObserveOperation("*", 2, gomock.Any(), nil),
		rec.EXPECT().ObserveOperation("-", 1, gomock.Any(), gomock.Not(nil)),
	)

	e := newTestEvaluator(WithRecorder(rec))
	_, err := e.Evaluate(context.Background(), "18446744073709551616 * 3")
	require.NoError(t, err)
	_, err = e.Evaluate(context.Background(), "1 - 2")
	require.Error(t, err)
}

func TestEvaluateVerifyRecordsCrossCheck(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	rec := mocks.NewMockRecorder(ctrl)
	rec.EXPECT().ObserveCrossCheck(true)
	rec.EXPECT().ObserveOperation("*", 3, gomock.Any(), nil)

	e := newTestEvaluator(WithRecorder(rec), WithVerify(true))
	res, err := e.Evaluate(context.Background(), "0x1000000000000000000000000000000000000000000 * 0xffffffff")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sign)
}

func TestEvaluateTimeout(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator(WithTimeout(time.Nanosecond))
	_, err := e.Evaluate(context.Background(), "2 * 3")
	if err == nil {
		t.Skip("evaluation finished before the deadline was observed")
	}
	var toErr apperrors.TimeoutError
	require.True(t, errors.As(err, &toErr))
	assert.Equal(t, apperrors.ExitErrorTimeout, apperrors.ExitCode(err))
}
