package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitGroupsTwoPointsExactLine(t *testing.T) {
	obs := []Observation[string]{
		{Group: "X", X: 2000, Y: 10},
		{Group: "X", X: 2010, Y: 30},
	}

	fits := FitGroups(obs, 2)
	require.Len(t, fits, 1)

	g := fits["X"]
	assert.Equal(t, StatusOK, g.Status)
	assert.Equal(t, 2, g.N)
	assert.InDelta(t, 2.0, g.Fit.Slope, 1e-9)
	assert.InDelta(t, 10-2.0*2000, g.Fit.Intercept, 1e-6)
	assert.InDelta(t, 1.0, g.Fit.R2, 1e-9)
}

func TestFitGroupsConstantY(t *testing.T) {
	obs := []Observation[string]{
		{Group: "flat", X: 1961, Y: 42},
		{Group: "flat", X: 1962, Y: 42},
		{Group: "flat", X: 1963, Y: 42},
	}

	fits := FitGroups(obs, 2)
	g := fits["flat"]

	assert.Equal(t, StatusConstant, g.Status)
	assert.Equal(t, 0.0, g.Fit.Slope)
	assert.Equal(t, 42.0, g.Fit.Intercept)
	assert.Equal(t, 0.0, g.Fit.R2)
	assert.False(t, g.Reliable())
}

func TestFitGroupsInsufficientData(t *testing.T) {
	obs := []Observation[string]{
		{Group: "lonely", X: 1999, Y: 5},
	}

	fits := FitGroups(obs, 3)
	g := fits["lonely"]

	assert.Equal(t, StatusInsufficient, g.Status)
	assert.Equal(t, Fit{}, g.Fit)
	assert.Equal(t, 1, g.N)
}

func TestFitGroupsSingleDistinctX(t *testing.T) {
	obs := []Observation[string]{
		{Group: "same-year", X: 2005, Y: 1},
		{Group: "same-year", X: 2005, Y: 9},
	}

	fits := FitGroups(obs, 2)
	assert.Equal(t, StatusInsufficient, fits["same-year"].Status)
}

func TestFitGroupsLowSampleFlagged(t *testing.T) {
	obs := []Observation[string]{
		{Group: "A", X: 2000, Y: 1},
		{Group: "A", X: 2001, Y: 2},
		{Group: "B", X: 2000, Y: 1},
		{Group: "B", X: 2001, Y: 2},
		{Group: "B", X: 2002, Y: 3},
	}

	fits := FitGroups(obs, 3)

	a, b := fits["A"], fits["B"]
	assert.Equal(t, StatusLowSample, a.Status)
	assert.False(t, a.Reliable())
	assert.InDelta(t, 1.0, a.Fit.Slope, 1e-9)

	assert.Equal(t, StatusOK, b.Status)
	assert.True(t, b.Reliable())
	assert.InDelta(t, 1.0, b.Fit.Slope, 1e-9)
	assert.InDelta(t, 1.0, b.Fit.R2, 1e-9)
}

func TestFitGroupsDoesNotMutateInput(t *testing.T) {
	obs := []Observation[int]{
		{Group: 1, X: 1, Y: 2},
		{Group: 1, X: 2, Y: 4},
		{Group: 2, X: 1, Y: 3},
		{Group: 2, X: 3, Y: 1},
	}
	before := make([]Observation[int], len(obs))
	copy(before, obs)

	FitGroups(obs, 2)

	assert.Equal(t, before, obs)
}

func TestFitGroupsRetainsPoints(t *testing.T) {
	obs := []Observation[string]{
		{Group: "X", X: 1961, Y: 10},
		{Group: "Y", X: 1961, Y: 7},
		{Group: "X", X: 1962, Y: 12},
	}

	fits := FitGroups(obs, 2)

	require.Len(t, fits["X"].Points, 2)
	assert.Equal(t, Point{X: 1961, Y: 10}, fits["X"].Points[0])
	assert.Equal(t, Point{X: 1962, Y: 12}, fits["X"].Points[1])
	require.Len(t, fits["Y"].Points, 1)
}

func TestFitPointsNoisySeriesR2Bounds(t *testing.T) {
	pts := []Point{
		{X: 1, Y: 2.1}, {X: 2, Y: 3.9}, {X: 3, Y: 6.2},
		{X: 4, Y: 7.8}, {X: 5, Y: 10.1},
	}

	fit, status := FitPoints(pts, 3)

	assert.Equal(t, StatusOK, status)
	assert.InDelta(t, 2.0, fit.Slope, 0.1)
	assert.Greater(t, fit.R2, 0.99)
	assert.LessOrEqual(t, fit.R2, 1.0+1e-9)
}
