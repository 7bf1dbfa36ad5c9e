package main

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/obergmartin/WorldFoodProduction/trend"
)

// createWorkbook writes the tabular half of the report: one sheet per
// aggregate, country trends first.
func createWorkbook(path string, models []CountryModel, shares []FeedShare,
	producers []TopProducer, totals []YearTotal) error {

	f := excelize.NewFile()

	const trendSheet = "Country_Trends"
	if err := f.SetSheetName("Sheet1", trendSheet); err != nil {
		return err
	}

	trendHeaders := []string{"Rank", "Area", "Slope (1000 t/yr)", "Intercept",
		"R2", "Years Observed", "Status"}
	writeHeaders(f, trendSheet, trendHeaders, 18)

	for i, model := range models {
		row := i + 2
		if model.Rank > 0 {
			f.SetCellValue(trendSheet, fmt.Sprintf("A%d", row), model.Rank)
		} else {
			f.SetCellValue(trendSheet, fmt.Sprintf("A%d", row), "-")
		}
		f.SetCellValue(trendSheet, fmt.Sprintf("B%d", row), model.Area)
		if model.Group.Status == trend.StatusInsufficient {
			f.SetCellValue(trendSheet, fmt.Sprintf("C%d", row), "n/a")
			f.SetCellValue(trendSheet, fmt.Sprintf("D%d", row), "n/a")
			f.SetCellValue(trendSheet, fmt.Sprintf("E%d", row), "n/a")
		} else {
			f.SetCellValue(trendSheet, fmt.Sprintf("C%d", row), fmt.Sprintf("%.2f", model.Group.Fit.Slope))
			f.SetCellValue(trendSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%.2f", model.Group.Fit.Intercept))
			f.SetCellValue(trendSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("%.4f", model.Group.Fit.R2))
		}
		f.SetCellValue(trendSheet, fmt.Sprintf("F%d", row), model.Group.N)
		f.SetCellValue(trendSheet, fmt.Sprintf("G%d", row), model.Group.Status.String())
	}

	const shareSheet = "Feed_Share"
	f.NewSheet(shareSheet)
	shareHeaders := []string{"Area", "Year", "Food (1000 t)", "Feed (1000 t)",
		"Total (1000 t)", "Percent Feed"}
	writeHeaders(f, shareSheet, shareHeaders, 16)

	for i, s := range shares {
		row := i + 2
		f.SetCellValue(shareSheet, fmt.Sprintf("A%d", row), s.Area)
		f.SetCellValue(shareSheet, fmt.Sprintf("B%d", row), s.Year)
		f.SetCellValue(shareSheet, fmt.Sprintf("C%d", row), s.Food)
		f.SetCellValue(shareSheet, fmt.Sprintf("D%d", row), s.Feed)
		f.SetCellValue(shareSheet, fmt.Sprintf("E%d", row), s.Total)
		if s.Defined {
			f.SetCellValue(shareSheet, fmt.Sprintf("F%d", row), fmt.Sprintf("%.1f%%", s.PctFeed))
		} else {
			f.SetCellValue(shareSheet, fmt.Sprintf("F%d", row), "n/a")
		}
	}

	const producerSheet = "Top_Producers"
	f.NewSheet(producerSheet)
	producerHeaders := []string{"Area", "Item", "Years in Top 3", "Best Rank"}
	writeHeaders(f, producerSheet, producerHeaders, 22)

	for i, tp := range producers {
		row := i + 2
		f.SetCellValue(producerSheet, fmt.Sprintf("A%d", row), tp.Area)
		f.SetCellValue(producerSheet, fmt.Sprintf("B%d", row), tp.Item)
		f.SetCellValue(producerSheet, fmt.Sprintf("C%d", row), tp.Appearances)
		f.SetCellValue(producerSheet, fmt.Sprintf("D%d", row), tp.BestRank)
	}

	const totalSheet = "Global_Totals"
	f.NewSheet(totalSheet)
	totalHeaders := []string{"Year", "Total Production (1000 t)"}
	writeHeaders(f, totalSheet, totalHeaders, 24)

	for i, t := range totals {
		row := i + 2
		f.SetCellValue(totalSheet, fmt.Sprintf("A%d", row), t.Year)
		f.SetCellValue(totalSheet, fmt.Sprintf("B%d", row), t.Total)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string, width float64) {
	for i, header := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, col+"1", header)
		f.SetColWidth(sheet, col, col, width)
	}
}
