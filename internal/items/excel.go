package items

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

const excelSheet = "Sheet1"

// BuildExcel renders the item list as a workbook with the same columns as
// the CSV export, for consumers who want native spreadsheets instead of a
// BOM-prefixed CSV.
func BuildExcel(items []models.Item) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(excelSheet); err != nil {
		return nil, fmt.Errorf("failed to create worksheet: %w", err)
	}

	for col, label := range csvHeaders {
		cellName, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(excelSheet, cellName, label); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for rowIdx := range items {
		row := itemToRow(&items[rowIdx])
		for col, value := range row {
			cellName, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve data cell: %w", err)
			}
			if err := f.SetCellValue(excelSheet, cellName, value); err != nil {
				return nil, fmt.Errorf("failed to write data cell: %w", err)
			}
		}
	}

	return f, nil
}
