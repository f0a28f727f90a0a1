package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"flotta/internal/domain"
)

const sheetName = "Logbook"

// Workbook builds an XLSX workbook for a logbook extraction: one data row
// per logbook row plus a summary block. The caller owns closing the file.
func Workbook(result *domain.LogbookExtractionResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return nil, err
		}
	}

	for r := range result.Rows {
		record := rowToRecord(&result.Rows[r])
		for c, value := range record {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	summaryRow := len(result.Rows) + 3
	summary := [][2]any{
		{"Rows extracted", result.Summary.RowsExtracted},
		{"Rows with issues", result.Summary.RowsWithIssues},
		{"Needs review", result.NeedsReview},
	}
	for i, pair := range summary {
		labelCell, err := excelize.CoordinatesToCellName(1, summaryRow+i)
		if err != nil {
			return nil, err
		}
		valueCell, err := excelize.CoordinatesToCellName(2, summaryRow+i)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, labelCell, pair[0]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, valueCell, pair[1]); err != nil {
			return nil, err
		}
	}

	return f, nil
}
