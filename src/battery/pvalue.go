package battery

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// chiSquareTail is P(X >= stat) for X ~ χ²(df).
func chiSquareTail(stat float64, df int) *float64 {
	if df <= 0 {
		return nil
	}
	p := distuv.ChiSquared{K: float64(df)}.Survival(stat)
	return &p
}

// normalTwoSided is P(|Z| >= z) for a standard normal Z.
func normalTwoSided(z float64) *float64 {
	if z < 0 {
		z = -z
	}
	p := 2 * distuv.UnitNormal.Survival(z)
	return &p
}
