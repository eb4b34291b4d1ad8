package mathx

import "golang.org/x/exp/constraints"

// RoundDiv returns a/b rounded half up, i.e. floor((a + b/2)/b).
// b == 0 yields 0. Callers pick T wide enough for a + b/2.
func RoundDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}
