// Package export renders reconciled declarations as spreadsheet reports
// for brokers and accountants.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/inkwell-commerce/declare/internal/model"
)

const sheetName = "Declarations"

var header = []string{"Order", "Description", "Code", "Origin", "SKU", "Quantity", "Value"}

// WriteDeclarationReport writes one row per declaration line across the
// given orders to an XLSX file at path.
func WriteDeclarationReport(path string, orders []*model.Order) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := 2
	for _, order := range orders {
		for i := range order.DeclarationLines {
			line := &order.DeclarationLines[i]
			values := []any{
				order.Reference,
				line.Description,
				line.Code,
				line.OriginCountry,
				line.SKU,
				line.Quantity,
				line.Value.StringFixed(2),
			}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return fmt.Errorf("failed to compute cell: %w", err)
				}
				if err := f.SetCellValue(sheetName, cell, v); err != nil {
					return fmt.Errorf("failed to write row %d: %w", row, err)
				}
			}
			row++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
