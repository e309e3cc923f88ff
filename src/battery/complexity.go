package battery

import (
	"github.com/lost-woods/randtest/src/bits"
)

const NameLinearComplexity = "LC"

// BerlekampMassey returns the length of the shortest LFSR over GF(2) that
// generates seq.
func BerlekampMassey(seq bits.Sequence) int {
	n := seq.Len()
	c := make([]uint8, n+1)
	b := make([]uint8, n+1)
	t := make([]uint8, n+1)
	c[0], b[0] = 1, 1

	l, m := 0, -1
	for i := 0; i < n; i++ {
		d := seq[i]
		for j := 1; j <= l; j++ {
			d ^= c[j] & seq[i-j]
		}
		if d == 0 {
			continue
		}

		copy(t, c)
		shift := i - m
		for j := 0; j+shift <= n; j++ {
			c[j+shift] ^= b[j]
		}
		if 2*l <= i {
			l = i + 1 - l
			m = i
			copy(b, t)
		}
	}
	return l
}

// LinearComplexity passes when the linear complexity reaches n/2. It has no
// marginal band. An empty sequence is Unsupported.
func LinearComplexity(seq bits.Sequence) Result {
	if seq.Len() < 1 {
		return tooShort(NameLinearComplexity, 0, 1)
	}
	l := BerlekampMassey(seq)
	half := float64(seq.Len()) / 2

	v := Failed
	if float64(l) >= half {
		v = OK
	}
	return Result{
		Name:         NameLinearComplexity,
		Statistic:    float64(l),
		CriticalLow:  half,
		CriticalHigh: half,
		Verdict:      v,
	}
}
