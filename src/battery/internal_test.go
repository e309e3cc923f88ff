package battery

import "testing"

func TestRunLengthBound(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 0},
		{37, 0},
		{38, 1},
		{78, 1},
		{79, 2},
		{159, 2},
		{160, 3},
		{20000, 9},
		{20971536, 19},
		{20971537, 20},
	}

	for _, tc := range tests {
		if got := runLengthBound(tc.n); got != tc.want {
			t.Fatalf("n=%d got k=%d want %d", tc.n, got, tc.want)
		}
	}
}

func TestJudge(t *testing.T) {
	tests := []struct {
		stat float64
		want Verdict
	}{
		{0, OK},
		{2.706, OK},
		{2.7061, Marginal},
		{10.830, Marginal},
		{10.8301, Failed},
	}

	for _, tc := range tests {
		if got := judge(tc.stat, frequencyCritical.low, frequencyCritical.high); got != tc.want {
			t.Fatalf("stat=%v got %v want %v", tc.stat, got, tc.want)
		}
	}
}

func TestCriticalTablesAscend(t *testing.T) {
	for k := minRunsK; k <= maxRunsK; k++ {
		c := runsCritical[k]
		if c.low <= 0 || c.low > c.high {
			t.Fatalf("k=%d thresholds %v not ascending", k, c)
		}
		if k > minRunsK && c.low <= runsCritical[k-1].low {
			t.Fatalf("k=%d low threshold does not grow with k", k)
		}
	}
}
