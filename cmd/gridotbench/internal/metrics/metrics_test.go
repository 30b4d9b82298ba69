package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/gridot/cmd/gridotbench/internal/metrics"
)

func TestSummaryReportsObservedPairs(t *testing.T) {
	rec := metrics.New("gridot_test")
	rec.Observe("classA", 32, "OPTIMAL", 0.012)
	rec.Observe("classA", 32, "OPTIMAL", 0.020)
	rec.Observe("classB", 64, "INFEASIBLE", 0.001)

	summary := rec.Summary()
	assert.Contains(t, summary, "gridot_test_bench_pairs_total")
	assert.Contains(t, summary, "gridot_test_bench_pair_duration_seconds")
	assert.Contains(t, summary, "status=OPTIMAL} count=2")
	assert.Contains(t, summary, "status=INFEASIBLE} count=1")
}
