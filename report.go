package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/obergmartin/WorldFoodProduction/trend"
)

// createNarrativeReport writes the markdown half of the report: prose,
// tables and references to the rendered charts.
func createNarrativeReport(path string, models []CountryModel, shares []FeedShare,
	producers []TopProducer, totals []YearTotal, globalFit trend.Fit,
	globalStatus trend.Status, stats ReshapeStats, minObs, topN int) error {

	var b strings.Builder

	b.WriteString("# World Food and Feed Production\n")
	b.WriteString("## Per-Country Trend Analysis\n\n")

	b.WriteString("### Dataset\n\n")
	fmt.Fprintf(&b, "- **Wide rows read**: %d across %d year columns\n", stats.WideRows, stats.YearColumns)
	fmt.Fprintf(&b, "- **Observations kept**: %d\n", stats.Kept)
	fmt.Fprintf(&b, "- **Dropped cells**: %d empty/NA, %d non-numeric, %d on rows outside Food/Feed\n",
		stats.DroppedEmpty, stats.DroppedBad, stats.DroppedElement)

	if len(totals) > 0 {
		first := totals[0]
		last := totals[len(totals)-1]

		b.WriteString("\n### Global Trend\n\n")
		fmt.Fprintf(&b, "- **Coverage**: %d-%d\n", first.Year, last.Year)
		fmt.Fprintf(&b, "- **Total production %d**: %s\n", first.Year, formatNumber(first.Total))
		fmt.Fprintf(&b, "- **Total production %d**: %s\n", last.Year, formatNumber(last.Total))
		if first.Total > 0 {
			growth := (last.Total - first.Total) / first.Total * 100
			fmt.Fprintf(&b, "- **Growth over period**: %.1f%%\n", growth)
		}
		switch globalStatus {
		case trend.StatusOK, trend.StatusLowSample:
			fmt.Fprintf(&b, "- **Fitted slope**: %s per year (R2=%.3f)\n",
				formatNumber(globalFit.Slope), globalFit.R2)
		default:
			fmt.Fprintf(&b, "- **Fitted slope**: %s\n", globalStatus)
		}

		if len(totals) >= 4 {
			mid := len(totals) / 2
			b.WriteString("\n| Period | Start Total | End Total | Growth |\n")
			b.WriteString("|--------|-------------|-----------|--------|\n")
			writePeriodRow(&b, totals[:mid+1])
			writePeriodRow(&b, totals[mid:])
		}
	}

	b.WriteString("\n### Country Production Trends\n\n")
	fmt.Fprintf(&b, "One ordinary-least-squares line per country, total production "+
		"against year. Year coverage is uneven across countries, so each fit "+
		"carries its own sample size; countries observed fewer than %d years "+
		"are flagged below instead of being ranked.\n\n", minObs)

	b.WriteString("| Rank | Area | Slope (1000 t/yr) | R2 | Years |\n")
	b.WriteString("|------|------|-------------------|-----|-------|\n")
	// Reliable models sort first, so the first flagged one ends the table.
	shown := 0
	for _, m := range models {
		if shown >= topN || !m.Group.Reliable() {
			break
		}
		fmt.Fprintf(&b, "| %d | %s | %.1f | %.3f | %d |\n",
			m.Rank, m.Area, m.Group.Fit.Slope, m.Group.Fit.R2, m.Group.N)
		shown++
	}

	writeFlaggedSection(&b, models)
	writeTopProducerSection(&b, producers, topN)
	writeFeedShareSection(&b, shares)

	b.WriteString("\n### Charts\n\n")
	for _, name := range []string{
		chartGlobalTrend, chartCountryTrends, chartSlopes,
		chartFeedHistogram, chartFoodFeed,
	} {
		fmt.Fprintf(&b, "![%s](%s)\n\n", strings.TrimSuffix(name, ".png"), name)
	}

	fmt.Fprintf(&b, "---\n*Generated %s*\n", time.Now().Format("2 January 2006"))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writePeriodRow(b *strings.Builder, totals []YearTotal) {
	if len(totals) < 2 {
		return
	}
	first := totals[0]
	last := totals[len(totals)-1]
	growth := "n/a"
	if first.Total > 0 {
		growth = fmt.Sprintf("%.1f%%", (last.Total-first.Total)/first.Total*100)
	}
	fmt.Fprintf(b, "| %d-%d | %s | %s | %s |\n",
		first.Year, last.Year, formatNumber(first.Total), formatNumber(last.Total), growth)
}

func writeFlaggedSection(b *strings.Builder, models []CountryModel) {
	var flagged []CountryModel
	for _, m := range models {
		if !m.Group.Reliable() {
			flagged = append(flagged, m)
		}
	}
	if len(flagged) == 0 {
		return
	}

	fmt.Fprintf(b, "\n#### Flagged Areas (%d)\n\n", len(flagged))
	limit := 20
	if len(flagged) < limit {
		limit = len(flagged)
	}
	for _, m := range flagged[:limit] {
		fmt.Fprintf(b, "- **%s**: %s (%d years)\n", m.Area, m.Group.Status, m.Group.N)
	}
	if len(flagged) > limit {
		fmt.Fprintf(b, "- … and %d more, see the Country_Trends sheet\n", len(flagged)-limit)
	}
}

func writeTopProducerSection(b *strings.Builder, producers []TopProducer, topN int) {
	if len(producers) == 0 {
		return
	}
	b.WriteString("\n### Top Producers\n\n")
	b.WriteString("Areas ranked in an item's top 3 by production in at least one year.\n\n")
	b.WriteString("| Area | Item | Years in Top 3 | Best Rank |\n")
	b.WriteString("|------|------|----------------|-----------|\n")

	limit := topN
	if len(producers) < limit {
		limit = len(producers)
	}
	for _, tp := range producers[:limit] {
		fmt.Fprintf(b, "| %s | %s | %d | %d |\n", tp.Area, tp.Item, tp.Appearances, tp.BestRank)
	}
}

func writeFeedShareSection(b *strings.Builder, shares []FeedShare) {
	type areaShare struct {
		area       string
		food, feed float64
	}
	acc := make(map[string]*areaShare)
	for _, s := range shares {
		as := acc[s.Area]
		if as == nil {
			as = &areaShare{area: s.Area}
			acc[s.Area] = as
		}
		as.food += s.Food
		as.feed += s.Feed
	}

	type ranked struct {
		area string
		pct  float64
	}
	var rows []ranked
	for _, as := range acc {
		if pct, ok := PercentFeed(as.feed, as.food); ok {
			rows = append(rows, ranked{area: as.area, pct: pct})
		}
	}
	if len(rows) == 0 {
		return
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].pct != rows[j].pct {
			return rows[i].pct > rows[j].pct
		}
		return rows[i].area < rows[j].area
	})

	b.WriteString("\n### Feed Share Extremes\n\n")
	limit := 5
	if len(rows) < limit {
		limit = len(rows)
	}
	b.WriteString("Highest share of production going to feed:\n\n")
	for _, r := range rows[:limit] {
		fmt.Fprintf(b, "- **%s**: %.1f%%\n", r.area, r.pct)
	}
	b.WriteString("\nLowest:\n\n")
	for i := len(rows) - 1; i >= len(rows)-limit && i >= 0; i-- {
		fmt.Fprintf(b, "- **%s**: %.1f%%\n", rows[i].area, rows[i].pct)
	}
}

func formatNumber(num float64) string {
	switch {
	case num >= 1000000 || num <= -1000000:
		return fmt.Sprintf("%.2fM", num/1000000)
	case num >= 1000 || num <= -1000:
		return fmt.Sprintf("%.1fK", num/1000)
	}
	return fmt.Sprintf("%.0f", num)
}
