package main

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/obergmartin/WorldFoodProduction/trend"
)

// Chart file names, referenced from the markdown report.
const (
	chartGlobalTrend   = "global_production_trend.png"
	chartCountryTrends = "top_country_trends.png"
	chartFeedHistogram = "percent_feed_histogram.png"
	chartFoodFeed      = "food_vs_feed_scatter.png"
	chartSlopes        = "top_trend_slopes.png"
)

var chartPalette = []color.RGBA{
	{R: 0, G: 100, B: 0, A: 255},
	{R: 178, G: 34, B: 34, A: 255},
	{R: 65, G: 105, B: 225, A: 255},
	{R: 255, G: 140, B: 0, A: 255},
	{R: 128, G: 0, B: 128, A: 255},
	{R: 0, G: 139, B: 139, A: 255},
	{R: 184, G: 134, B: 11, A: 255},
	{R: 105, G: 105, B: 105, A: 255},
	{R: 220, G: 20, B: 60, A: 255},
	{R: 34, G: 139, B: 34, A: 255},
}

func createCharts(outDir string, models []CountryModel, shares []FeedShare,
	totals []YearTotal, globalFit trend.Fit, globalStatus trend.Status, topN int) error {

	if err := createGlobalTrendChart(filepath.Join(outDir, chartGlobalTrend), totals, globalFit, globalStatus); err != nil {
		return err
	}
	if err := createCountryTrendChart(filepath.Join(outDir, chartCountryTrends), models, topN); err != nil {
		return err
	}
	if err := createFeedShareHistogram(filepath.Join(outDir, chartFeedHistogram), shares); err != nil {
		return err
	}
	if err := createFoodFeedScatter(filepath.Join(outDir, chartFoodFeed), shares); err != nil {
		return err
	}
	return createSlopeBarChart(filepath.Join(outDir, chartSlopes), models, topN)
}

func createGlobalTrendChart(path string, totals []YearTotal, fit trend.Fit, status trend.Status) error {
	p := plot.New()
	p.Title.Text = "WORLD FOOD AND FEED PRODUCTION"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Total Production (1000 tonnes)"

	points := make(plotter.XYs, len(totals))
	for i, t := range totals {
		points[i].X = float64(t.Year)
		points[i].Y = t.Total
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	line.Width = vg.Points(2)

	p.Add(line)
	p.Add(plotter.NewGrid())
	p.Legend.Add("observed", line)

	if status == trend.StatusOK || status == trend.StatusLowSample {
		fitted := plotter.NewFunction(func(x float64) float64 {
			return fit.Intercept + fit.Slope*x
		})
		fitted.Color = color.RGBA{R: 178, G: 34, B: 34, A: 255}
		fitted.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(fitted)
		p.Legend.Add(fmt.Sprintf("OLS trend (R2=%.3f)", fit.R2), fitted)
	}
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func createCountryTrendChart(path string, models []CountryModel, topN int) error {
	p := plot.New()
	p.Title.Text = "TOP COUNTRY PRODUCTION TRENDS"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Total Production (1000 tonnes)"

	drawn := 0
	for _, model := range models {
		if !model.Group.Reliable() {
			continue
		}
		if drawn >= topN {
			break
		}
		c := chartPalette[drawn%len(chartPalette)]

		pts := make(plotter.XYs, len(model.Group.Points))
		for i, pt := range model.Group.Points {
			pts[i].X = pt.X
			pts[i].Y = pt.Y
		}
		sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })

		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = c
		scatter.GlyphStyle.Radius = vg.Points(2)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}

		minX, maxX := pts[0].X, pts[len(pts)-1].X
		fit := model.Group.Fit
		fitted, err := plotter.NewLine(plotter.XYs{
			{X: minX, Y: fit.Intercept + fit.Slope*minX},
			{X: maxX, Y: fit.Intercept + fit.Slope*maxX},
		})
		if err != nil {
			return err
		}
		fitted.Color = c
		fitted.Width = vg.Points(1.5)

		p.Add(scatter, fitted)
		p.Legend.Add(model.Area, scatter, fitted)
		drawn++
	}
	if drawn == 0 {
		return nil
	}

	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(14*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func createFeedShareHistogram(path string, shares []FeedShare) error {
	var values plotter.Values
	for _, s := range shares {
		if s.Defined {
			values = append(values, s.PctFeed)
		}
	}
	if len(values) == 0 {
		return nil
	}

	p := plot.New()
	p.Title.Text = "DISTRIBUTION OF PERCENT FEED"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Percent Feed (%)"
	p.Y.Label.Text = "Country-Years"

	hist, err := plotter.NewHist(values, 20)
	if err != nil {
		return err
	}
	hist.FillColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}

	p.Add(hist)
	p.Add(plotter.NewGrid())

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func createFoodFeedScatter(path string, shares []FeedShare) error {
	type areaTotal struct {
		area       string
		food, feed float64
	}
	acc := make(map[string]*areaTotal)
	for _, s := range shares {
		at := acc[s.Area]
		if at == nil {
			at = &areaTotal{area: s.Area}
			acc[s.Area] = at
		}
		at.food += s.Food
		at.feed += s.Feed
	}
	areas := make([]areaTotal, 0, len(acc))
	for _, at := range acc {
		areas = append(areas, *at)
	}
	sort.Slice(areas, func(i, j int) bool {
		return areas[i].food+areas[i].feed > areas[j].food+areas[j].feed
	})

	p := plot.New()
	p.Title.Text = "FOOD vs FEED PRODUCTION BY COUNTRY"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Food Production (1000 tonnes)"
	p.Y.Label.Text = "Feed Production (1000 tonnes)"

	for i, at := range areas {
		point := plotter.XYs{{X: at.food, Y: at.feed}}
		scatter, err := plotter.NewScatter(point)
		if err != nil {
			return err
		}

		pct, ok := PercentFeed(at.feed, at.food)
		switch {
		case !ok:
			scatter.GlyphStyle.Color = color.RGBA{R: 105, G: 105, B: 105, A: 255}
		case pct > 40:
			scatter.GlyphStyle.Color = color.RGBA{R: 178, G: 34, B: 34, A: 255}
		case pct > 20:
			scatter.GlyphStyle.Color = color.RGBA{R: 255, G: 140, B: 0, A: 255}
		case pct > 10:
			scatter.GlyphStyle.Color = color.RGBA{R: 184, G: 134, B: 11, A: 255}
		default:
			scatter.GlyphStyle.Color = color.RGBA{R: 0, G: 100, B: 0, A: 255}
		}

		radius := vg.Points(3)
		if i < 3 {
			radius = vg.Points(7)
		} else if i < 10 {
			radius = vg.Points(5)
		}
		scatter.GlyphStyle.Radius = radius
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}

		p.Add(scatter)
	}

	// Label only the biggest producers; a label per country is unreadable.
	labelCount := 12
	if len(areas) < labelCount {
		labelCount = len(areas)
	}
	labelXYs := make(plotter.XYs, labelCount)
	labelText := make([]string, labelCount)
	for i := 0; i < labelCount; i++ {
		labelXYs[i].X = areas[i].food
		labelXYs[i].Y = areas[i].feed
		labelText[i] = areas[i].area
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: labelText})
	if err != nil {
		return err
	}
	p.Add(labels)
	p.Add(plotter.NewGrid())

	if err := p.Save(14*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func createSlopeBarChart(path string, models []CountryModel, topN int) error {
	var (
		values plotter.Values
		labels []string
	)
	for _, model := range models {
		if !model.Group.Reliable() {
			continue
		}
		if len(values) >= topN {
			break
		}
		values = append(values, model.Group.Fit.Slope)
		labels = append(labels, model.Area)
	}
	if len(values) == 0 {
		return nil
	}

	p := plot.New()
	p.Title.Text = "FASTEST GROWING PRODUCERS (OLS SLOPE)"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Country"
	p.Y.Label.Text = "Fitted Slope (1000 tonnes / year)"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XCenter

	if err := p.Save(12*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
