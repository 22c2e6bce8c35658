package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/GridCalc/internal/data"
	"github.com/piwi3910/GridCalc/internal/grid"
)

// ExportXLSX writes the grid document to an Excel workbook with one sheet
// per area: Options, Blocks, Thrusters, and Results. The Blocks and
// Thrusters sheets use the same columns the importer reads, so an exported
// workbook can be re-imported.
func ExportXLSX(path string, d *data.Data, c *grid.Calculator) error {
	calc := c.Calculate(d)

	f := excelize.NewFile()
	defer f.Close()

	if err := writeOptionsSheet(f, c); err != nil {
		return err
	}
	if err := writeBlocksSheet(f, d, c); err != nil {
		return err
	}
	if err := writeThrustersSheet(f, d, c); err != nil {
		return err
	}
	if err := writeResultsSheet(f, &calc); err != nil {
		return err
	}

	// Drop the implicit default sheet.
	f.DeleteSheet(f.GetSheetName(0))

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeOptionsSheet(f *excelize.File, c *grid.Calculator) error {
	const sheet = "Options"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, []interface{}{"Parameter", "Value", "Unit"}); err != nil {
		return err
	}
	for i, s := range grid.Scalars {
		if err := setRow(f, sheet, i+2, []interface{}{s.Label, *s.Ptr(c), s.Unit}); err != nil {
			return err
		}
	}
	return nil
}

func writeBlocksSheet(f *excelize.File, d *data.Data, c *grid.Calculator) error {
	const sheet = "Blocks"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, []interface{}{"Block", "Direction", "Count"}); err != nil {
		return err
	}
	row := 2
	for _, g := range data.UndirectedGroups {
		for _, b := range d.Blocks(g) {
			n := c.Count(g, b.ID)
			if n == 0 {
				continue
			}
			if err := setRow(f, sheet, row, []interface{}{string(b.ID), "", n}); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeThrustersSheet(f *excelize.File, d *data.Data, c *grid.Calculator) error {
	const sheet = "Thrusters"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, []interface{}{"Block", "Direction", "Count"}); err != nil {
		return err
	}
	row := 2
	for _, dir := range data.Directions {
		for _, b := range d.Blocks(data.GroupThrusters) {
			n := c.ThrusterCount(dir, b.ID)
			if n == 0 {
				continue
			}
			if err := setRow(f, sheet, row, []interface{}{string(b.ID), dir.String(), n}); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeResultsSheet(f *excelize.File, calc *grid.Calculated) error {
	const sheet = "Results"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, []interface{}{"Output", "Value", "Unit"}); err != nil {
		return err
	}
	for i, o := range grid.Outputs {
		v := o.Get(calc)
		// Spreadsheets have no +Inf cell value.
		var cell interface{} = v
		if math.IsInf(v, 1) {
			cell = "inf"
		}
		if err := setRow(f, sheet, i+2, []interface{}{o.Label, cell, o.Unit}); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
