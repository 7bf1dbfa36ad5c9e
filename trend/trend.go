package trend

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Status classifies the reliability of a per-group fit.
type Status int

const (
	// StatusOK marks a fit from enough observations to be ranked.
	StatusOK Status = iota
	// StatusLowSample marks a fit from fewer observations than the
	// caller's minimum. Coefficients are reported but unstable.
	StatusLowSample
	// StatusConstant marks a zero-variance y group: the reported line is
	// horizontal through the mean and R2 is the 0 sentinel.
	StatusConstant
	// StatusInsufficient marks a group with fewer than two observations
	// or a single distinct x. No coefficients are produced.
	StatusInsufficient
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusLowSample:
		return "low sample"
	case StatusConstant:
		return "constant"
	case StatusInsufficient:
		return "insufficient data"
	}
	return "unknown"
}

// Point is one retained (x, y) sample of a group.
type Point struct {
	X, Y float64
}

// Observation ties one (x, y) sample to its group key.
type Observation[K comparable] struct {
	Group K
	X, Y  float64
}

// Fit holds ordinary-least-squares coefficients for one group.
type Fit struct {
	Slope     float64
	Intercept float64
	R2        float64
}

// Group is the per-group result: coefficients, reliability status, sample
// size, and the raw points retained for plotting.
type Group[K comparable] struct {
	Key    K
	Fit    Fit
	Status Status
	N      int
	Points []Point
}

// Reliable reports whether the group's coefficients may be ranked among
// trustworthy trends. Low-sample, constant and insufficient groups are
// surfaced with their status instead of being silently ranked.
func (g Group[K]) Reliable() bool {
	return g.Status == StatusOK
}

// FitGroups partitions obs by group key and fits one line per group.
// minObs is the sample size below which a fit carries StatusLowSample;
// values below 2 are raised to 2. The input slice is never mutated; each
// group's points are copied into the result in input order.
func FitGroups[K comparable](obs []Observation[K], minObs int) map[K]Group[K] {
	byGroup := make(map[K][]Point)
	for _, o := range obs {
		byGroup[o.Group] = append(byGroup[o.Group], Point{X: o.X, Y: o.Y})
	}

	out := make(map[K]Group[K], len(byGroup))
	for k, pts := range byGroup {
		fit, status := FitPoints(pts, minObs)
		out[k] = Group[K]{
			Key:    k,
			Fit:    fit,
			Status: status,
			N:      len(pts),
			Points: pts,
		}
	}
	return out
}

// FitPoints fits y = Slope*x + Intercept through one group of points by
// ordinary least squares and computes R2 = 1 - SSres/SStot. Degenerate
// inputs are reported through the status instead of NaN coefficients.
func FitPoints(pts []Point, minObs int) (Fit, Status) {
	if minObs < 2 {
		minObs = 2
	}
	n := len(pts)
	if n < 2 {
		return Fit{}, StatusInsufficient
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}

	// A single distinct x cannot identify a slope.
	if stat.Variance(xs, nil) == 0 {
		return Fit{}, StatusInsufficient
	}
	if stat.Variance(ys, nil) == 0 {
		return Fit{Slope: 0, Intercept: stat.Mean(ys, nil), R2: 0}, StatusConstant
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		r2 = 0
	}

	status := StatusOK
	if n < minObs {
		status = StatusLowSample
	}
	return Fit{Slope: beta, Intercept: alpha, R2: r2}, status
}
