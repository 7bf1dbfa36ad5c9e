package main

import (
	"sort"

	"github.com/obergmartin/WorldFoodProduction/trend"
)

// FeedShare is the food/feed split for one (area, year). PctFeed is only
// meaningful when Defined is true; an area producing nothing in a year has
// no feed share.
type FeedShare struct {
	Area    string
	Year    int
	Food    float64
	Feed    float64
	Total   float64
	PctFeed float64
	Defined bool
}

// PercentFeed returns feed/(feed+food) as a percentage. ok is false when
// total production is zero, the one case where the ratio is undefined.
func PercentFeed(feed, food float64) (pct float64, ok bool) {
	total := feed + food
	if total == 0 {
		return 0, false
	}
	return feed / total * 100, true
}

// BuildFeedShares aggregates observations into per-(area, year) splits,
// sorted by area then year.
func BuildFeedShares(obs []Observation) []FeedShare {
	type key struct {
		area string
		year int
	}
	acc := make(map[key]*FeedShare)
	for _, o := range obs {
		k := key{o.Area, o.Year}
		fs := acc[k]
		if fs == nil {
			fs = &FeedShare{Area: o.Area, Year: o.Year}
			acc[k] = fs
		}
		switch o.Element {
		case ElementFood:
			fs.Food += o.Value
		case ElementFeed:
			fs.Feed += o.Value
		}
	}

	shares := make([]FeedShare, 0, len(acc))
	for _, fs := range acc {
		fs.Total = fs.Food + fs.Feed
		fs.PctFeed, fs.Defined = PercentFeed(fs.Feed, fs.Food)
		shares = append(shares, *fs)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Area != shares[j].Area {
			return shares[i].Area < shares[j].Area
		}
		return shares[i].Year < shares[j].Year
	})
	return shares
}

// YearTotal is worldwide production for one year.
type YearTotal struct {
	Year  int
	Total float64
}

// BuildGlobalTotals sums all areas per year, sorted by year.
func BuildGlobalTotals(shares []FeedShare) []YearTotal {
	acc := make(map[int]float64)
	for _, s := range shares {
		acc[s.Year] += s.Total
	}

	totals := make([]YearTotal, 0, len(acc))
	for y, t := range acc {
		totals = append(totals, YearTotal{Year: y, Total: t})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Year < totals[j].Year })
	return totals
}

// FitGlobalTrend fits one line through the worldwide yearly totals.
func FitGlobalTrend(totals []YearTotal, minObs int) (trend.Fit, trend.Status) {
	pts := make([]trend.Point, len(totals))
	for i, t := range totals {
		pts[i] = trend.Point{X: float64(t.Year), Y: t.Total}
	}
	return trend.FitPoints(pts, minObs)
}

// An area is a top producer of an item when it ranks in the item's top 3
// by total production in at least one year.
const topProducerRank = 3

// TopProducer records one such (area, item) pair.
type TopProducer struct {
	Area        string
	Item        string
	Appearances int // years the area was in the item's top 3
	BestRank    int
}

// BuildTopProducers ranks areas per (item, year) and collects every area
// that makes an item's top 3 at least once. Ties break alphabetically so
// the ranking is deterministic.
func BuildTopProducers(obs []Observation) []TopProducer {
	type itemYear struct {
		item string
		year int
	}
	acc := make(map[itemYear]map[string]float64)
	for _, o := range obs {
		k := itemYear{o.Item, o.Year}
		m := acc[k]
		if m == nil {
			m = make(map[string]float64)
			acc[k] = m
		}
		m[o.Area] += o.Value
	}

	type areaItem struct {
		area, item string
	}
	best := make(map[areaItem]*TopProducer)
	for k, byArea := range acc {
		type ranked struct {
			area  string
			total float64
		}
		rows := make([]ranked, 0, len(byArea))
		for a, t := range byArea {
			rows = append(rows, ranked{a, t})
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].total != rows[j].total {
				return rows[i].total > rows[j].total
			}
			return rows[i].area < rows[j].area
		})

		limit := topProducerRank
		if len(rows) < limit {
			limit = len(rows)
		}
		for pos := 0; pos < limit; pos++ {
			key := areaItem{rows[pos].area, k.item}
			tp := best[key]
			if tp == nil {
				tp = &TopProducer{Area: rows[pos].area, Item: k.item, BestRank: pos + 1}
				best[key] = tp
			}
			tp.Appearances++
			if pos+1 < tp.BestRank {
				tp.BestRank = pos + 1
			}
		}
	}

	out := make([]TopProducer, 0, len(best))
	for _, tp := range best {
		out = append(out, *tp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Appearances != out[j].Appearances {
			return out[i].Appearances > out[j].Appearances
		}
		if out[i].Area != out[j].Area {
			return out[i].Area < out[j].Area
		}
		return out[i].Item < out[j].Item
	})
	return out
}

// CountryModel is one area's production trend over the years it covers.
// Rank is 1-based among reliable trends ordered by slope; flagged areas
// keep Rank 0 and sort after the reliable ones.
type CountryModel struct {
	Area  string
	Group trend.Group[string]
	Rank  int
}

// BuildCountryModels fits one production trend per area from its yearly
// totals. Areas have uneven year coverage, so each group carries its own
// sample size and reliability status.
func BuildCountryModels(shares []FeedShare, minObs int) []CountryModel {
	obs := make([]trend.Observation[string], 0, len(shares))
	for _, s := range shares {
		obs = append(obs, trend.Observation[string]{
			Group: s.Area,
			X:     float64(s.Year),
			Y:     s.Total,
		})
	}
	fits := trend.FitGroups(obs, minObs)

	models := make([]CountryModel, 0, len(fits))
	for area, g := range fits {
		models = append(models, CountryModel{Area: area, Group: g})
	}
	sort.Slice(models, func(i, j int) bool {
		ri, rj := models[i].Group.Reliable(), models[j].Group.Reliable()
		if ri != rj {
			return ri
		}
		if ri && models[i].Group.Fit.Slope != models[j].Group.Fit.Slope {
			return models[i].Group.Fit.Slope > models[j].Group.Fit.Slope
		}
		return models[i].Area < models[j].Area
	})
	for i := range models {
		if models[i].Group.Reliable() {
			models[i].Rank = i + 1
		}
	}
	return models
}
