package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

func main() {
	input := flag.String("input", "FAO.csv", "path to the wide food/feed production CSV")
	outDir := flag.String("out", "report", "output directory for charts, workbook and report")
	minObs := flag.Int("min-obs", 3, "minimum yearly observations before a country trend is ranked")
	topN := flag.Int("top", 10, "number of countries in trend charts and tables")
	flag.Parse()

	if err := run(*input, *outDir, *minObs, *topN); err != nil {
		slog.Error("report generation failed", "error", err)
		os.Exit(1)
	}
}

func run(input, outDir string, minObs, topN int) error {
	slog.Info("loading dataset", "path", input)
	obs, stats, err := LoadObservations(input)
	if err != nil {
		return err
	}
	slog.Info("dataset reshaped",
		"wide_rows", stats.WideRows,
		"observations", stats.Kept,
		"dropped_empty", stats.DroppedEmpty,
		"dropped_bad", stats.DroppedBad,
		"dropped_element", stats.DroppedElement)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	shares := BuildFeedShares(obs)
	totals := BuildGlobalTotals(shares)
	producers := BuildTopProducers(obs)
	models := BuildCountryModels(shares, minObs)
	globalFit, globalStatus := FitGlobalTrend(totals, minObs)

	reliable := 0
	for _, m := range models {
		if m.Group.Reliable() {
			reliable++
		}
	}
	slog.Info("trends fitted",
		"areas", len(models),
		"reliable", reliable,
		"flagged", len(models)-reliable,
		"min_obs", minObs)

	if err := createCharts(outDir, models, shares, totals, globalFit, globalStatus, topN); err != nil {
		return err
	}

	workbook := filepath.Join(outDir, "production_analysis.xlsx")
	if err := createWorkbook(workbook, models, shares, producers, totals); err != nil {
		return err
	}

	report := filepath.Join(outDir, "production_report.md")
	if err := createNarrativeReport(report, models, shares, producers, totals,
		globalFit, globalStatus, stats, minObs, topN); err != nil {
		return err
	}

	slog.Info("report complete", "workbook", workbook, "report", report, "charts", outDir)
	return nil
}
