package fil

import "math"

func bitsToFloat64(bits uint64) float64 {
	return math.Float64frombits(bits)
}
