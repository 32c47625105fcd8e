// Package bandmodel combines weighted correlated-k sub-band components back
// into one value per spectral band.
package bandmodel

import "fmt"

// CombineAt sums x over the slices [indices[i], indices[i+1]), with the last
// slice running to the end of x. As with numpy's add.reduceat, a slice whose
// start is not below the next start yields x[indices[i]] alone.
func CombineAt(x []float64, indices []int) ([]float64, error) {
	out := make([]float64, len(indices))
	for i, start := range indices {
		if start < 0 || start >= len(x) {
			return nil, fmt.Errorf("index %d out of range [0, %d)", start, len(x))
		}
		end := len(x)
		if i+1 < len(indices) {
			end = indices[i+1]
		}
		if end <= start {
			out[i] = x[start]
			continue
		}
		if end > len(x) {
			return nil, fmt.Errorf("index %d out of range [0, %d)", end, len(x))
		}
		var sum float64
		for _, v := range x[start:end] {
			sum += v
		}
		out[i] = sum
	}
	return out, nil
}

// CombineByKInt sums x over each band, where a band starts wherever kInt is 1.
func CombineByKInt(x []float64, kInt []int32) ([]float64, error) {
	if len(x) != len(kInt) {
		return nil, fmt.Errorf("length mismatch: %d values, %d k indices", len(x), len(kInt))
	}
	var starts []int
	for i, k := range kInt {
		if k == 1 {
			starts = append(starts, i)
		}
	}
	return CombineAt(x, starts)
}

// CheckKInt reports whether kInt consists of consecutive integer runs that
// each start at 1, the structure CombineByKInt relies on.
func CheckKInt(kInt []int32) bool {
	for i, k := range kInt {
		runStart := i == 0 || k-kInt[i-1] != 1
		if runStart && k != 1 {
			return false
		}
	}
	return true
}
