// Package trend fits per-group ordinary-least-squares lines.
//
// Observations are partitioned by an arbitrary comparable group key, one
// line y = Slope*x + Intercept is fitted per group, and the coefficient of
// determination R2 = 1 - SSres/SStot reports goodness of fit:
//
//	obs := []trend.Observation[string]{
//	    {Group: "Albania", X: 1961, Y: 1532},
//	    {Group: "Albania", X: 1962, Y: 1592},
//	    // ...
//	}
//	fits := trend.FitGroups(obs, 3)
//	for area, g := range fits {
//	    if !g.Reliable() {
//	        continue
//	    }
//	    fmt.Printf("%s: slope=%.1f r2=%.3f n=%d\n", area, g.Fit.Slope, g.Fit.R2, g.N)
//	}
//
// Degenerate groups never abort a run. Groups with fewer than two points,
// or with a single distinct x, carry StatusInsufficient and no
// coefficients. Groups below the caller's minimum sample size are fitted
// but carry StatusLowSample. A constant-y group reports the horizontal
// line through its mean with an R2 sentinel of 0 and StatusConstant. No
// NaN or Inf ever appears in a result.
package trend
