package battery

import (
	"fmt"

	"github.com/lost-woods/randtest/src/bits"
)

const (
	NameFrequency = "FREQNCY"
	NameSerial    = "SERIAL"
)

// Frequency is the monobit test: (n0-n1)^2/n, approximately χ²(1).
// An empty sequence is Unsupported.
func Frequency(seq bits.Sequence) Result {
	n := seq.Len()
	if n < 1 {
		return tooShort(NameFrequency, n, 1)
	}
	n0, n1 := countSingles(seq)

	d := float64(n0) - float64(n1)
	stat := d * d / float64(n)

	res := threeWay(NameFrequency, stat, frequencyCritical, fmt.Sprintf("0=%d 1=%d", n0, n1))
	res.PValue = chiSquareTail(stat, 1)
	return res
}

// Serial compares overlapping two-bit pattern counts against single-bit
// counts. The last bit only contributes to the single-bit tally. It needs at
// least two bits.
func Serial(seq bits.Sequence) Result {
	n := seq.Len()
	if n < 2 {
		return tooShort(NameSerial, n, 2)
	}
	n0, n1 := countSingles(seq)

	var pairs [4]int
	for i := 0; i < n-1; i++ {
		pairs[seq[i]<<1|seq[i+1]]++
	}

	var sumPairs float64
	for _, c := range pairs {
		sumPairs += float64(c) * float64(c)
	}
	sumSingles := float64(n0)*float64(n0) + float64(n1)*float64(n1)

	stat := 4*sumPairs/float64(n-1) - 2*sumSingles/float64(n) + 1

	detail := fmt.Sprintf("00=%d 01=%d 10=%d 11=%d", pairs[0], pairs[1], pairs[2], pairs[3])
	res := threeWay(NameSerial, stat, serialCritical, detail)
	res.PValue = chiSquareTail(stat, 2)
	return res
}

func countSingles(seq bits.Sequence) (n0, n1 int) {
	for _, b := range seq {
		if b == 0 {
			n0++
		} else {
			n1++
		}
	}
	return n0, n1
}
