package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Element names carried through from the source data.
const (
	ElementFood = "Food"
	ElementFeed = "Feed"
)

// Observation is one long-form row: one area, item, element and year.
type Observation struct {
	Area     string
	ItemCode int
	Item     string
	Element  string
	Year     int
	Value    float64
}

// ReshapeStats accounts for every wide cell so the wide-to-long reshape
// stays lossless except for the declared drops.
type ReshapeStats struct {
	WideRows       int
	YearColumns    int
	Kept           int
	KeptSum        float64
	DroppedEmpty   int // empty or NA cell
	DroppedBad     int // non-numeric cell
	DroppedElement int // cells on rows whose element is neither Food nor Feed
}

// LoadObservations reads the wide per-year production CSV at path and
// reshapes it into long observations.
func LoadObservations(path string) ([]Observation, ReshapeStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReshapeStats{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	obs, stats, err := LoadObservationsFromReader(f)
	if err != nil {
		return nil, stats, fmt.Errorf("load %s: %w", path, err)
	}
	return obs, stats, nil
}

// LoadObservationsFromReader parses a wide CSV: identifying columns (Area,
// Item, Item Code, Element, plus ignored metadata such as codes, unit and
// coordinates) followed by one column per calendar year, named either
// "Y1961" or "1961". One observation is produced per non-missing year cell
// on a Food or Feed row; everything else is counted as a drop.
func LoadObservationsFromReader(r io.Reader) ([]Observation, ReshapeStats, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, ReshapeStats{}, fmt.Errorf("read header: %w", err)
	}

	areaIdx, itemIdx, itemCodeIdx, elementIdx := -1, -1, -1, -1
	type yearColumn struct {
		idx  int
		year int
	}
	var yearCols []yearColumn

	for i, h := range header {
		name := strings.TrimSpace(h)
		switch strings.ToLower(name) {
		case "area":
			areaIdx = i
		case "item":
			itemIdx = i
		case "item code":
			itemCodeIdx = i
		case "element":
			elementIdx = i
		default:
			if y, ok := parseYearHeader(name); ok {
				yearCols = append(yearCols, yearColumn{idx: i, year: y})
			}
		}
	}
	if areaIdx < 0 || itemIdx < 0 || elementIdx < 0 || len(yearCols) == 0 {
		return nil, ReshapeStats{}, fmt.Errorf(
			"schema mismatch: need Area, Item, Element and at least one year column, got header %q",
			header)
	}

	var (
		obs   []Observation
		stats ReshapeStats
	)
	stats.YearColumns = len(yearCols)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read row %d: %w", stats.WideRows+2, err)
		}
		stats.WideRows++

		element := strings.TrimSpace(record[elementIdx])
		if element != ElementFood && element != ElementFeed {
			stats.DroppedElement += len(yearCols)
			continue
		}

		area := strings.TrimSpace(record[areaIdx])
		item := strings.TrimSpace(record[itemIdx])
		itemCode := 0
		if itemCodeIdx >= 0 {
			itemCode, _ = strconv.Atoi(strings.TrimSpace(record[itemCodeIdx]))
		}

		for _, yc := range yearCols {
			cell := strings.TrimSpace(record[yc.idx])
			if cell == "" || cell == "NA" || cell == "NaN" || cell == "null" {
				stats.DroppedEmpty++
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				stats.DroppedBad++
				continue
			}
			obs = append(obs, Observation{
				Area:     area,
				ItemCode: itemCode,
				Item:     item,
				Element:  element,
				Year:     yc.year,
				Value:    v,
			})
			stats.Kept++
			stats.KeptSum += v
		}
	}

	if len(obs) == 0 {
		return nil, stats, errors.New("no usable observations in dataset")
	}
	return obs, stats, nil
}

func parseYearHeader(name string) (int, bool) {
	s := name
	if len(s) == 5 && (s[0] == 'Y' || s[0] == 'y') {
		s = s[1:]
	}
	if len(s) != 4 {
		return 0, false
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1900 || y > 2100 {
		return 0, false
	}
	return y, true
}
