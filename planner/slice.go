package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opencae/fil2ensight/errs"
)

// Slice is a half-open [Start, End) range parsed from a configuration value
// slice string (spec §4.4).
type Slice struct {
	Start, End int
}

// Apply returns values[Start:End] with the range clamped to values' bounds,
// or nil if nothing of the clamped range is left.
func (sl Slice) Apply(values []float64) []float64 {
	start, end := sl.Start, sl.End
	if start < 0 {
		start = 0
	}
	if end > len(values) {
		end = len(values)
	}
	if start >= end {
		return nil
	}
	return values[start:end]
}

// ParseSlice parses a slice string: "i" means [i, i+1); "a:b" means [a, b)
// (spec §4.4).
func ParseSlice(s string) (Slice, error) {
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		a, errA := strconv.Atoi(strings.TrimSpace(s[:idx]))
		b, errB := strconv.Atoi(strings.TrimSpace(s[idx+1:]))
		if errA != nil || errB != nil {
			return Slice{}, fmt.Errorf("%w: invalid slice %q", errs.ErrConfigError, s)
		}
		if b < a {
			return Slice{}, fmt.Errorf("%w: invalid slice %q: end before start", errs.ErrConfigError, s)
		}
		return Slice{Start: a, End: b}, nil
	}

	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Slice{}, fmt.Errorf("%w: invalid slice %q", errs.ErrConfigError, s)
	}
	return Slice{Start: i, End: i + 1}, nil
}
