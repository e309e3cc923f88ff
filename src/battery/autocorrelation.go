package battery

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/lost-woods/randtest/src/bits"
)

const NameAutocorrelation = "AUTOCORR"

// Autocorrelation compares the sequence with itself shifted by d = 1..n/2.
// Each shift gives x(d) = |2a - n + d| / sqrt(n - d), where a counts the
// disagreeing positions; x(d) is roughly |N(0,1)|. The statistic is the sum of
// x(d) scaled by 2/n, and the detail names the worst shift. Fewer than two
// bits give no shift and an Unsupported result.
func Autocorrelation(seq bits.Sequence) Result {
	n := seq.Len()
	shifts := n / 2
	if shifts == 0 {
		return tooShort(NameAutocorrelation, n, 2)
	}

	xs := make([]float64, shifts)
	for d := 1; d <= shifts; d++ {
		a := 0
		for i := 0; i < n-d; i++ {
			if seq[i] != seq[i+d] {
				a++
			}
		}
		xs[d-1] = math.Abs(float64(2*a-n+d)) / math.Sqrt(float64(n-d))
	}

	worstIdx := floats.MaxIdx(xs)
	worst := xs[worstIdx]
	avg := floats.Sum(xs) / (float64(n) * 0.5)

	res := threeWay(NameAutocorrelation, avg, autocorrelationCritical,
		fmt.Sprintf("worst = %.4f, worstd = %d", worst, worstIdx+1))
	res.PValue = normalTwoSided(worst)
	return res
}
