// =============================================================================
// ORAE Bridge - XLSX Report
// =============================================================================
//
// Writes a record set to a workbook for review in test mode: one sheet per
// record family, one column per layout field, one row per record. Values
// are written as text so fixed-width zero padding survives.
//
// =============================================================================

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/orae-rims-bridge/internal/rims"
)

// ViolationsSheet holds validation messages when any are given.
const ViolationsSheet = "Violations"

// WriteRecordSet writes set to path as XLSX.
//
// PARAMETERS:
//   - path: The output workbook path.
//   - set: The record set. Nil writes header rows only.
//   - layout: Field order and headers. Nil means the built-in layout.
//   - violations: Optional messages written to a Violations sheet.
func WriteRecordSet(path string, set *rims.RecordSet, layout *rims.Layout, violations []string) error {
	if layout == nil {
		layout = rims.DefaultLayout()
	}
	if set == nil {
		set = &rims.RecordSet{}
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	orderRows := make([]map[string]string, len(set.OrderRecords))
	for i := range set.OrderRecords {
		orderRows[i] = set.OrderRecords[i].Values()
	}
	if err := writeSheet(f, rims.FamilyOrder, layout.Order, orderRows, header); err != nil {
		return err
	}

	tenderRows := make([]map[string]string, len(set.TenderRecords))
	for i := range set.TenderRecords {
		tenderRows[i] = set.TenderRecords[i].Values()
	}
	if err := writeSheet(f, rims.FamilyTender, layout.Tender, tenderRows, header); err != nil {
		return err
	}

	if len(violations) > 0 {
		if _, err := f.NewSheet(ViolationsSheet); err != nil {
			return fmt.Errorf("failed to create sheet '%s': %w", ViolationsSheet, err)
		}
		for i, msg := range violations {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(ViolationsSheet, cell, msg); err != nil {
				return fmt.Errorf("failed to write violation: %w", err)
			}
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, fields []rims.Field, rows []map[string]string, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet '%s': %w", sheet, err)
	}
	if len(fields) == 0 {
		return nil
	}

	for col, field := range fields {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, field.Code); err != nil {
			return fmt.Errorf("failed to write header %s: %w", field.Code, err)
		}
		for r, values := range rows {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(sheet, cell, values[field.Code]); err != nil {
				return fmt.Errorf("failed to write %s: %w", field.Code, err)
			}
		}
	}

	last, err := excelize.CoordinatesToCellName(len(fields), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}
