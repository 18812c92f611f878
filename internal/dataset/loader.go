// Package dataset reads the product spreadsheet into memory. Column
// positions are not fixed across vendors, so the header row is matched by
// substring: "brand", "symptom", and any number of "ingredient" columns.
package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"allergy-insights-go/internal/logger"
	"allergy-insights-go/internal/types"
)

// Load reads product records from an .xlsx file, or from a remote workbook
// when path is an http(s) URL.
func Load(path string) ([]types.ProductRecord, error) {
	if strings.HasPrefix(strings.ToLower(path), "http://") ||
		strings.HasPrefix(strings.ToLower(path), "https://") {
		return loadRemote(path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return fromWorkbook(f)
}

func fromWorkbook(f *excelize.File) ([]types.ProductRecord, error) {
	log := logger.Component("dataset")
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	brandIdx := -1
	symptomsIdx := -1
	var ingredientIdx []int
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "ingredient"):
			ingredientIdx = append(ingredientIdx, i)
		case strings.Contains(l, "brand"):
			if brandIdx == -1 {
				brandIdx = i
			}
		case strings.Contains(l, "symptom"):
			if symptomsIdx == -1 {
				symptomsIdx = i
			}
		}
	}
	if brandIdx == -1 {
		return nil, fmt.Errorf("no brand column in header %v", header)
	}
	if symptomsIdx == -1 {
		return nil, fmt.Errorf("no symptoms column in header %v", header)
	}
	log.WithFields(map[string]interface{}{
		"brandIdx":       brandIdx,
		"symptomsIdx":    symptomsIdx,
		"ingredientCols": len(ingredientIdx),
	}).Info("detected dataset columns")

	var out []types.ProductRecord
	for i, r := range rows {
		if i == 0 {
			continue
		}
		rec := types.ProductRecord{}
		if brandIdx < len(r) {
			rec.Brand = strings.TrimSpace(r[brandIdx])
		}
		if symptomsIdx < len(r) {
			rec.Symptoms = strings.TrimSpace(r[symptomsIdx])
		}
		// rows without a brand carry nothing attributable; skip quietly
		if rec.Brand == "" {
			continue
		}
		for _, ci := range ingredientIdx {
			if ci >= len(r) {
				continue
			}
			// empty cell = no ingredient in this slot
			if cell := strings.TrimSpace(r[ci]); cell != "" {
				rec.Ingredients = append(rec.Ingredients, cell)
			}
		}
		out = append(out, rec)
	}
	log.WithField("products", len(out)).Info("dataset loaded")
	return out, nil
}
