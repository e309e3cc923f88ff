package battery

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/lost-woods/randtest/src/bits"
)

const NameRuns = "RUNS"

// expectedRuns is the expected number of gaps (or blocks) of length i in a
// random sequence of n bits.
func expectedRuns(n, i int) float64 {
	return float64(n-i+3) / math.Exp2(float64(i+2))
}

// runLengthBound returns the largest k such that every run length up to k is
// expected at least five times.
func runLengthBound(n int) int {
	i := 1
	for ; i <= n; i++ {
		if expectedRuns(n, i) < 5 {
			break
		}
	}
	return i - 1
}

// Runs counts maximal runs of ones (blocks) and zeros (gaps) by length 1..k
// and compares them with their expected counts. A run is tallied when the
// symbol flips, so the trailing run is not counted; runs longer than k are
// excluded.
func Runs(seq bits.Sequence) Result {
	n := seq.Len()
	if n < 1 {
		return tooShort(NameRuns, n, 1)
	}
	k := runLengthBound(n)

	blocks := make([]float64, k+1)
	gaps := make([]float64, k+1)

	current, length := seq[0], 1
	for i := 1; i < n; i++ {
		if seq[i] == current {
			length++
			continue
		}
		if length <= k {
			if current == 1 {
				blocks[length]++
			} else {
				gaps[length]++
			}
		}
		current, length = seq[i], 1
	}

	observed := make([]float64, 0, 2*k)
	expected := make([]float64, 0, 2*k)
	for i := 1; i <= k; i++ {
		e := expectedRuns(n, i)
		observed = append(observed, blocks[i], gaps[i])
		expected = append(expected, e, e)
	}
	x := stat.ChiSquare(observed, expected)

	if k < minRunsK || k > maxRunsK {
		return Result{
			Name:      NameRuns,
			Statistic: x,
			Verdict:   Unsupported,
			Detail:    fmt.Sprintf("unsupported length. k=%d", k),
			Err:       fmt.Errorf("%w: runs k=%d outside [%d,%d]", ErrUnsupportedRange, k, minRunsK, maxRunsK),
		}
	}

	res := threeWay(NameRuns, x, runsCritical[k], fmt.Sprintf("k=%d", k))
	res.PValue = chiSquareTail(x, 2*k-2)
	return res
}
