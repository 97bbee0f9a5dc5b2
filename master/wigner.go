package master

import "math"

// threeJ evaluates squared Wigner 3j symbols (l1 l2 l3; 0 0 0) from a
// log-factorial table.
type threeJ struct {
	logFact []float64
}

// newThreeJ supports arguments with l1+l2+l3 <= maxSum.
func newThreeJ(maxSum int) *threeJ {
	lf := make([]float64, maxSum+2)
	for n := 2; n < len(lf); n++ {
		lf[n] = lf[n-1] + math.Log(float64(n))
	}
	return &threeJ{logFact: lf}
}

// square returns (l1 l2 l3; 0 0 0)^2. It is zero unless the triangle
// condition holds and l1+l2+l3 is even.
func (w *threeJ) square(l1, l2, l3 int) float64 {
	if l3 < abs(l1-l2) || l3 > l1+l2 {
		return 0
	}
	sum := l1 + l2 + l3
	if sum%2 != 0 {
		return 0
	}
	g := sum / 2
	lf := w.logFact
	logv := lf[sum-2*l1] + lf[sum-2*l2] + lf[sum-2*l3] - lf[sum+1] +
		2*(lf[g]-lf[g-l1]-lf[g-l2]-lf[g-l3])
	return math.Exp(logv)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
