// Package export renders a grid document to shareable file formats: a PDF
// report, an Excel workbook, and a QR-coded grid card.
package export

import (
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/GridCalc/internal/data"
	"github.com/piwi3910/GridCalc/internal/grid"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
	rowHeight    = 6.0
)

// ExportPDF generates a PDF report for the grid: the input parameters, the
// block counts, and the full set of derived outputs.
func ExportPDF(path string, d *data.Data, c *grid.Calculator) error {
	calc := c.Calculate(d)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, "Grid Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetX(marginLeft)
	meta := fmt.Sprintf("Document %s | %s", c.ID, time.Now().Format("2006-01-02 15:04"))
	pdf.CellFormat(contentWidth, 5, meta, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	y := pdf.GetY() + 2
	pdf.Line(marginLeft, y, pageWidth-marginRight, y)
	pdf.SetY(y + 4)

	renderParameters(pdf, c)
	renderBlockCounts(pdf, d, c)
	renderResults(pdf, &calc)

	// Footer on the last page
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by GridCalc", "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

// renderParameters draws the scalar parameter table.
func renderParameters(pdf *fpdf.Fpdf, c *grid.Calculator) {
	sectionTitle(pdf, "Parameters")

	pdf.SetFont("Helvetica", "", 9)
	for i, s := range grid.Scalars {
		stripeRow(pdf, i)
		pdf.SetX(marginLeft)
		pdf.CellFormat(90, rowHeight, s.Label, "1", 0, "L", true, 0, "")
		pdf.CellFormat(60, rowHeight, fmt.Sprintf("%.2f", *s.Ptr(c)), "1", 0, "R", true, 0, "")
		pdf.CellFormat(30, rowHeight, s.Unit, "1", 1, "C", true, 0, "")
	}
	pdf.Ln(4)
}

// renderBlockCounts draws one table of non-zero block counts, thrusters
// with their direction, everything else without.
func renderBlockCounts(pdf *fpdf.Fpdf, d *data.Data, c *grid.Calculator) {
	sectionTitle(pdf, "Blocks")

	headers := []string{"Group", "Block", "Size", "Direction", "Count"}
	widths := []float64{35, 75, 20, 25, 25}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetX(marginLeft)
	for i, h := range headers {
		pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(rowHeight)

	pdf.SetFont("Helvetica", "", 9)
	rowIdx := 0
	writeRow := func(group string, b data.Block, direction string, n uint64) {
		stripeRow(pdf, rowIdx)
		rowIdx++
		pdf.SetX(marginLeft)
		cells := []string{group, b.Name, string(b.Size), direction, fmt.Sprintf("%d", n)}
		aligns := []string{"L", "L", "C", "C", "R"}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], rowHeight, cell, "1", 0, aligns[i], true, 0, "")
		}
		pdf.Ln(rowHeight)
	}

	for _, g := range data.UndirectedGroups {
		for _, b := range d.Blocks(g) {
			if n := c.Count(g, b.ID); n > 0 {
				writeRow(string(g), b, "-", n)
			}
		}
	}
	for _, dir := range data.Directions {
		for _, b := range d.Blocks(data.GroupThrusters) {
			if n := c.ThrusterCount(dir, b.ID); n > 0 {
				writeRow(string(data.GroupThrusters), b, dir.String(), n)
			}
		}
	}

	if rowIdx == 0 {
		pdf.SetX(marginLeft)
		pdf.SetFillColor(255, 255, 255)
		pdf.CellFormat(contentWidth, rowHeight, "No blocks placed", "1", 1, "C", true, 0, "")
	}
	pdf.Ln(4)
}

// renderResults draws the full derived-output table.
func renderResults(pdf *fpdf.Fpdf, calc *grid.Calculated) {
	sectionTitle(pdf, "Results")

	pdf.SetFont("Helvetica", "", 9)
	for i, o := range grid.Outputs {
		stripeRow(pdf, i)
		pdf.SetX(marginLeft)
		pdf.CellFormat(110, rowHeight, o.Label, "1", 0, "L", true, 0, "")
		pdf.CellFormat(45, rowHeight, FormatValue(o.Get(calc)), "1", 0, "R", true, 0, "")
		pdf.CellFormat(25, rowHeight, o.Unit, "1", 1, "C", true, 0, "")
	}
}

// sectionTitle writes a bold section heading.
func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 8, title, "", 1, "L", false, 0, "")
}

// stripeRow alternates the fill color for readability.
func stripeRow(pdf *fpdf.Fpdf, i int) {
	if i%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
}

// FormatValue renders a derived output value the way the result views do:
// two decimals, with infinite durations spelled out.
func FormatValue(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", v)
}
