package battery

// critical holds the 90% and 99.9% cutoffs of a statistic.
type critical struct {
	low  float64
	high float64
}

var (
	frequencyCritical       = critical{2.706, 10.830}
	serialCritical          = critical{4.605, 13.820}
	poker8Critical          = critical{284.3, 330.5}
	poker16Critical         = critical{65999.3936, 66659.4697}
	autocorrelationCritical = critical{1.282, 3.090}
)

const (
	minRunsK = 2
	maxRunsK = 19
)

// runsCritical is indexed by the longest counted run length k.
// Entries below minRunsK are unused.
var runsCritical = [maxRunsK + 1]critical{
	2:  {4.6052, 13.8155},
	3:  {7.7794, 18.4668},
	4:  {10.6446, 22.4577},
	5:  {13.3616, 26.1245},
	6:  {15.9872, 29.5883},
	7:  {18.5493, 32.9095},
	8:  {21.0641, 36.1233},
	9:  {23.5418, 39.2524},
	10: {25.9894, 42.3124},
	11: {28.4120, 45.3147},
	12: {30.8133, 48.2679},
	13: {33.1962, 51.1786},
	14: {35.5632, 54.0520},
	15: {37.9159, 56.8923},
	16: {40.2560, 59.7031},
	17: {42.5847, 62.4872},
	18: {44.9031, 65.2472},
	19: {47.2121, 67.9851},
}
