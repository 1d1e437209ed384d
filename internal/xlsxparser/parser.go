// =============================================================================
// ORAE Bridge - XLSX Layout Parser
// =============================================================================
//
// This module reads and writes RIMS field layout workbooks. A layout workbook
// overrides the built-in field lengths used by output validation.
//
// WORKBOOK STRUCTURE:
//   One sheet per record family, named RIMSLF and RIMTNF. The first row holds
//   headers; columns are located by header text, so their order is free.
//
//   | Field  | Name          | Length |
//   |--------|---------------|--------|
//   | SLFTTP | TransType     | 2      |
//   | SLFSKU | SKUNumber     | 9      |
//   | SLFPST | PolledStore   |        |
//
//   A blank Length marks a numeric field, which has no length check. The
//   Name column is optional.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/orae-rims-bridge/internal/rims"
)

// Header texts, matched case-insensitively.
const (
	HeaderField  = "Field"
	HeaderName   = "Name"
	HeaderLength = "Length"
)

// =============================================================================
// COLUMN CONFIGURATION
// =============================================================================

// LayoutColumns records which columns of a sheet hold which data. Column
// indices are 0-based; -1 means absent.
type LayoutColumns struct {
	FieldColumn  int
	NameColumn   int
	LengthColumn int
}

// locateColumns finds the layout columns in a header row.
//
// RETURNS:
//   - The located columns.
//   - An error if the Field or Length header is missing.
func locateColumns(header []string) (LayoutColumns, error) {
	columns := LayoutColumns{FieldColumn: -1, NameColumn: -1, LengthColumn: -1}
	for i, cell := range header {
		switch {
		case strings.EqualFold(strings.TrimSpace(cell), HeaderField):
			columns.FieldColumn = i
		case strings.EqualFold(strings.TrimSpace(cell), HeaderName):
			columns.NameColumn = i
		case strings.EqualFold(strings.TrimSpace(cell), HeaderLength):
			columns.LengthColumn = i
		}
	}
	if columns.FieldColumn < 0 {
		return columns, fmt.Errorf("missing %q header", HeaderField)
	}
	if columns.LengthColumn < 0 {
		return columns, fmt.Errorf("missing %q header", HeaderLength)
	}
	return columns, nil
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseLayout reads a layout workbook.
//
// PARAMETERS:
//   - layoutPath: The path to the XLSX workbook.
//
// RETURNS:
//   - A Layout whose field tables come entirely from the workbook.
//   - An error if the file cannot be opened, a family sheet is missing, or a
//     row is malformed.
func ParseLayout(layoutPath string) (*rims.Layout, error) {
	f, err := excelize.OpenFile(layoutPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout file: %w", err)
	}
	defer f.Close()

	order, err := parseSheet(f, rims.FamilyOrder)
	if err != nil {
		return nil, err
	}
	tender, err := parseSheet(f, rims.FamilyTender)
	if err != nil {
		return nil, err
	}

	return &rims.Layout{Order: order, Tender: tender}, nil
}

// parseSheet parses a single family sheet from an open workbook.
func parseSheet(f *excelize.File, sheetName string) ([]rims.Field, error) {
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("layout file has no %s sheet", sheetName)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet '%s': %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet '%s' is empty", sheetName)
	}

	columns, err := locateColumns(rows[0])
	if err != nil {
		return nil, fmt.Errorf("sheet '%s': %w", sheetName, err)
	}

	var fields []rims.Field
	seen := make(map[string]bool)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}

		field, err := parseRow(row, columns)
		if err != nil {
			return nil, fmt.Errorf("sheet '%s' row %d: %w", sheetName, i+1, err)
		}
		if seen[field.Code] {
			return nil, fmt.Errorf("sheet '%s' row %d: duplicate field %s", sheetName, i+1, field.Code)
		}
		seen[field.Code] = true
		fields = append(fields, field)
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("sheet '%s' defines no fields", sheetName)
	}
	return fields, nil
}

// parseRow extracts one Field from a data row.
func parseRow(row []string, columns LayoutColumns) (rims.Field, error) {
	getCell := func(index int) string {
		if index >= 0 && index < len(row) {
			return strings.TrimSpace(row[index])
		}
		return ""
	}

	field := rims.Field{
		Code: strings.ToUpper(getCell(columns.FieldColumn)),
		Name: getCell(columns.NameColumn),
	}
	if field.Code == "" {
		return field, fmt.Errorf("missing field code")
	}

	if raw := getCell(columns.LengthColumn); raw != "" {
		length, err := strconv.Atoi(raw)
		if err != nil || length < 0 {
			return field, fmt.Errorf("invalid length %q for %s", raw, field.Code)
		}
		field.Length = length
	}
	return field, nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// WRITER
// =============================================================================

// WriteLayout writes layout as a workbook ParseLayout can read back. It is
// how a starting template for layout_template is produced.
func WriteLayout(layoutPath string, layout *rims.Layout) error {
	if layout == nil {
		layout = rims.DefaultLayout()
	}

	f := excelize.NewFile()
	defer f.Close()

	for _, family := range []struct {
		sheet  string
		fields []rims.Field
	}{
		{rims.FamilyOrder, layout.Order},
		{rims.FamilyTender, layout.Tender},
	} {
		if _, err := f.NewSheet(family.sheet); err != nil {
			return fmt.Errorf("failed to create sheet '%s': %w", family.sheet, err)
		}
		if err := f.SetSheetRow(family.sheet, "A1", &[]interface{}{HeaderField, HeaderName, HeaderLength}); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		for i, field := range family.fields {
			var length interface{} = field.Length
			if field.Numeric() {
				length = ""
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(family.sheet, cell, &[]interface{}{field.Code, field.Name, length}); err != nil {
				return fmt.Errorf("failed to write %s: %w", field.Code, err)
			}
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if err := f.SaveAs(layoutPath); err != nil {
		return fmt.Errorf("failed to save layout file: %w", err)
	}
	return nil
}
