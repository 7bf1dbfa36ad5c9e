package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obergmartin/WorldFoodProduction/trend"
)

func TestPercentFeed(t *testing.T) {
	pct, ok := PercentFeed(30, 70)
	require.True(t, ok)
	assert.Equal(t, 30.0, pct)

	pct, ok = PercentFeed(0, 0)
	assert.False(t, ok)
	assert.Equal(t, 0.0, pct)

	pct, ok = PercentFeed(0, 50)
	require.True(t, ok)
	assert.Equal(t, 0.0, pct)
}

func TestBuildFeedSharesScenario(t *testing.T) {
	obs := []Observation{
		{Area: "X", Item: "Maize", Element: ElementFeed, Year: 2000, Value: 10},
		{Area: "X", Item: "Maize", Element: ElementFood, Year: 2000, Value: 90},
	}

	shares := BuildFeedShares(obs)
	require.Len(t, shares, 1)

	s := shares[0]
	assert.Equal(t, "X", s.Area)
	assert.Equal(t, 2000, s.Year)
	assert.Equal(t, 100.0, s.Total)
	require.True(t, s.Defined)
	assert.Equal(t, 10.0, s.PctFeed)
}

func TestBuildFeedSharesUndefinedRatio(t *testing.T) {
	obs := []Observation{
		{Area: "X", Item: "Maize", Element: ElementFood, Year: 2000, Value: 0},
		{Area: "X", Item: "Maize", Element: ElementFeed, Year: 2000, Value: 0},
	}

	shares := BuildFeedShares(obs)
	require.Len(t, shares, 1)
	assert.False(t, shares[0].Defined)
	assert.Equal(t, 0.0, shares[0].Total)
}

func TestBuildFeedSharesSortedByAreaThenYear(t *testing.T) {
	obs := []Observation{
		{Area: "B", Element: ElementFood, Year: 1999, Value: 1},
		{Area: "A", Element: ElementFood, Year: 2001, Value: 1},
		{Area: "A", Element: ElementFood, Year: 2000, Value: 1},
	}

	shares := BuildFeedShares(obs)
	require.Len(t, shares, 3)
	assert.Equal(t, "A", shares[0].Area)
	assert.Equal(t, 2000, shares[0].Year)
	assert.Equal(t, "A", shares[1].Area)
	assert.Equal(t, 2001, shares[1].Year)
	assert.Equal(t, "B", shares[2].Area)
}

func TestBuildGlobalTotals(t *testing.T) {
	shares := []FeedShare{
		{Area: "A", Year: 2001, Total: 5},
		{Area: "B", Year: 2000, Total: 3},
		{Area: "A", Year: 2000, Total: 7},
	}

	totals := BuildGlobalTotals(shares)
	require.Len(t, totals, 2)
	assert.Equal(t, YearTotal{Year: 2000, Total: 10}, totals[0])
	assert.Equal(t, YearTotal{Year: 2001, Total: 5}, totals[1])
}

func TestBuildTopProducers(t *testing.T) {
	obs := []Observation{
		{Area: "A", Item: "Maize", Element: ElementFood, Year: 2000, Value: 100},
		{Area: "B", Item: "Maize", Element: ElementFood, Year: 2000, Value: 80},
		{Area: "C", Item: "Maize", Element: ElementFood, Year: 2000, Value: 60},
		{Area: "D", Item: "Maize", Element: ElementFood, Year: 2000, Value: 40},
		{Area: "B", Item: "Maize", Element: ElementFood, Year: 2001, Value: 120},
		{Area: "A", Item: "Maize", Element: ElementFood, Year: 2001, Value: 110},
	}

	producers := BuildTopProducers(obs)

	byArea := make(map[string]TopProducer)
	for _, tp := range producers {
		byArea[tp.Area] = tp
	}

	// D never makes the top 3.
	assert.NotContains(t, byArea, "D")

	require.Contains(t, byArea, "A")
	assert.Equal(t, 2, byArea["A"].Appearances)
	assert.Equal(t, 1, byArea["A"].BestRank)

	require.Contains(t, byArea, "B")
	assert.Equal(t, 2, byArea["B"].Appearances)
	assert.Equal(t, 1, byArea["B"].BestRank)

	require.Contains(t, byArea, "C")
	assert.Equal(t, 1, byArea["C"].Appearances)
	assert.Equal(t, 3, byArea["C"].BestRank)
}

func TestBuildCountryModels(t *testing.T) {
	shares := []FeedShare{
		{Area: "Grower", Year: 2000, Total: 10},
		{Area: "Grower", Year: 2001, Total: 20},
		{Area: "Grower", Year: 2002, Total: 30},
		{Area: "Lonely", Year: 2000, Total: 5},
	}

	models := BuildCountryModels(shares, 3)
	require.Len(t, models, 2)

	// Reliable trends sort first and carry ranks.
	grower := models[0]
	assert.Equal(t, "Grower", grower.Area)
	assert.Equal(t, 1, grower.Rank)
	assert.Equal(t, trend.StatusOK, grower.Group.Status)
	assert.InDelta(t, 10.0, grower.Group.Fit.Slope, 1e-9)
	assert.InDelta(t, 1.0, grower.Group.Fit.R2, 1e-9)

	lonely := models[1]
	assert.Equal(t, "Lonely", lonely.Area)
	assert.Equal(t, 0, lonely.Rank)
	assert.Equal(t, trend.StatusInsufficient, lonely.Group.Status)
}

func TestFitGlobalTrend(t *testing.T) {
	totals := []YearTotal{
		{Year: 2000, Total: 100},
		{Year: 2001, Total: 110},
		{Year: 2002, Total: 120},
		{Year: 2003, Total: 130},
	}

	fit, status := FitGlobalTrend(totals, 3)
	assert.Equal(t, trend.StatusOK, status)
	assert.InDelta(t, 10.0, fit.Slope, 1e-9)
	assert.InDelta(t, 1.0, fit.R2, 1e-9)
}
