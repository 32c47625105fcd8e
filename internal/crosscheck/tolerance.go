package crosscheck

import (
	"errors"
	"fmt"
	"math"
)

// Tolerance bounds |actual - desired| by ATol + RTol*|desired|.
type Tolerance struct {
	RTol float64
	ATol float64
}

var (
	// ACDTextBinary compares ACD text against ACD binary.
	ACDTextBinary = Tolerance{RTol: 1e-6, ATol: 5e-6}
	// SLIJSON compares the spectral library against JSON spectra.
	SLIJSON = Tolerance{RTol: 1e-5, ATol: 1e-6}
	// Tape7SLI compares tape7 binary against the spectral library.
	Tape7SLI = Tolerance{RTol: 1e-8, ATol: 1e-14}
)

// ErrLength reports columns of different lengths.
var ErrLength = errors.New("length mismatch")

// Close reports whether actual is within tolerance of desired. NaN matches NaN.
func (t Tolerance) Close(actual, desired float64) bool {
	if math.IsNaN(actual) || math.IsNaN(desired) {
		return math.IsNaN(actual) && math.IsNaN(desired)
	}
	if math.IsInf(actual, 0) || math.IsInf(desired, 0) {
		return actual == desired
	}
	return math.Abs(actual-desired) <= t.ATol+t.RTol*math.Abs(desired)
}

func (t Tolerance) String() string {
	return fmt.Sprintf("rtol=%g atol=%g", t.RTol, t.ATol)
}

// Mismatch is the first element of a column outside tolerance.
type Mismatch struct {
	Field     string
	Index     int
	Actual    float64
	Desired   float64
	Tolerance Tolerance
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s[%d]: %g not close to %g (%s)", m.Field, m.Index, m.Actual, m.Desired, m.Tolerance)
}

// Columns compares two columns element by element.
func (t Tolerance) Columns(field string, actual, desired []float64) error {
	if len(actual) != len(desired) {
		return fmt.Errorf("%s: %w: %d vs %d values", field, ErrLength, len(actual), len(desired))
	}
	for i := range actual {
		if !t.Close(actual[i], desired[i]) {
			return &Mismatch{Field: field, Index: i, Actual: actual[i], Desired: desired[i], Tolerance: t}
		}
	}
	return nil
}
