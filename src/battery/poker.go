package battery

import (
	"fmt"

	"github.com/lost-woods/randtest/src/bits"
)

const (
	NamePoker8  = "POKER 8"
	NamePoker16 = "POKER 16"
)

func Poker8(seq bits.Sequence) Result {
	return poker(NamePoker8, seq, 8, poker8Critical)
}

func Poker16(seq bits.Sequence) Result {
	return poker(NamePoker16, seq, 16, poker16Critical)
}

// poker splits seq into floor(n/m) blocks of m bits, packs each block
// least-significant bit first and tests the block values for uniformity.
// Bits that do not fill a final block are ignored, and at least one full block
// is required.
func poker(name string, seq bits.Sequence, m int, crit critical) Result {
	k := seq.Len() / m
	if k == 0 {
		return tooShort(name, seq.Len(), m)
	}

	cells := 1 << uint(m)
	table := make([]int, cells)
	for b := 0; b < k; b++ {
		block := seq[b*m : (b+1)*m]
		v := 0
		for j := m - 1; j >= 0; j-- {
			v = v<<1 | int(block[j])
		}
		table[v]++
	}

	var sum float64
	for _, c := range table {
		sum += float64(c) * float64(c)
	}
	stat := float64(cells)/float64(k)*sum - float64(k)

	res := threeWay(name, stat, crit, fmt.Sprintf("k=%d", k))
	res.PValue = chiSquareTail(stat, cells-1)
	return res
}
