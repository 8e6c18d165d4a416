package scoring_test

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"
)

const tolerance = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func assertApprox(t *testing.T, got, want float64) {
	t.Helper()
	if !approxEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func fill(n int, v float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = v
	}
	return values
}

func requireFinite(t *testing.T, v float64) {
	t.Helper()
	gt.Bool(t, math.IsNaN(v) || math.IsInf(v, 0)).False()
}
