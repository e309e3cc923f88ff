package battery

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedRange is carried in Result.Err when an analyzer has no
	// critical values for the derived parameter. The rest of the run continues.
	ErrUnsupportedRange = errors.New("unsupported parameter range")

	// ErrResourceExhausted aborts a whole run: the sequence is longer than the
	// configured limit. Autocorrelation cost grows with the square of the
	// length, so the limit bounds run time as well as memory.
	ErrResourceExhausted = errors.New("resource exhausted")
)

type Verdict int

const (
	OK Verdict = iota
	Marginal
	Failed
	Unsupported
)

func (v Verdict) String() string {
	switch v {
	case OK:
		return "OK"
	case Marginal:
		return "MARGINAL"
	case Failed:
		return "FAILED"
	case Unsupported:
		return "UNSUPPORTED"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Result is produced once per analyzer call and never modified afterwards.
type Result struct {
	Name         string   `json:"name"`
	Statistic    float64  `json:"statistic"`
	CriticalLow  float64  `json:"critical_low"`
	CriticalHigh float64  `json:"critical_high"`
	Verdict      Verdict  `json:"verdict"`
	Detail       string   `json:"detail,omitempty"`
	PValue       *float64 `json:"p_value,omitempty"`
	Err          error    `json:"-"`
}

// judge places stat in the three bands delimited by low <= high.
func judge(stat, low, high float64) Verdict {
	switch {
	case stat <= low:
		return OK
	case stat <= high:
		return Marginal
	default:
		return Failed
	}
}

func threeWay(name string, stat float64, crit critical, detail string) Result {
	return Result{
		Name:         name,
		Statistic:    stat,
		CriticalLow:  crit.low,
		CriticalHigh: crit.high,
		Verdict:      judge(stat, crit.low, crit.high),
		Detail:       detail,
	}
}

// tooShort is the result of an analyzer called with fewer bits than it is
// defined for.
func tooShort(name string, n, need int) Result {
	return Result{
		Name:    name,
		Verdict: Unsupported,
		Detail:  fmt.Sprintf("unsupported length. n=%d", n),
		Err:     fmt.Errorf("%w: %s needs at least %d bits, got %d", ErrUnsupportedRange, name, need, n),
	}
}
