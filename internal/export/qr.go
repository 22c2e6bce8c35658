package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/GridCalc/internal/data"
	"github.com/piwi3910/GridCalc/internal/grid"
)

// Grid card layout constants (A4 portrait in mm).
const (
	cardQRSize  = 80.0
	cardPadding = 6.0
)

// ExportGridCard generates a one-page PDF "grid card": the key figures of
// the grid next to a QR code that encodes the complete document. Scanning
// the code yields the same JSON a saved file contains, so a card printed
// and pinned to a wall can be reopened later.
func ExportGridCard(path string, d *data.Data, c *grid.Calculator) error {
	var doc bytes.Buffer
	if err := c.ToJSON(&doc); err != nil {
		return fmt.Errorf("failed to serialize grid: %w", err)
	}

	qrPNG, err := qrcode.Encode(doc.String(), qrcode.Medium, 512)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	calc := c.Calculate(d)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, fmt.Sprintf("Grid Card %s", c.ID), "", 1, "L", false, 0, "")

	// QR code on the right
	imgName := fmt.Sprintf("grid_%s", c.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	qrX := pageWidth - marginRight - cardQRSize
	qrY := marginTop + 14
	pdf.ImageOptions(imgName, qrX, qrY, cardQRSize, cardQRSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(qrX, qrY+cardQRSize+1)
	pdf.CellFormat(cardQRSize, 4, "Scan to restore this grid", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// Key figures on the left
	textW := qrX - marginLeft - cardPadding
	y := qrY
	figures := []struct {
		label string
		key   string
	}{
		{"Volume (Any)", "volume.any"},
		{"Mass (Empty)", "mass.empty"},
		{"Mass (Filled)", "mass.filled"},
		{"Power Generation", "power.generation"},
		{"Battery Capacity", "power.capacity_battery"},
		{"Hydrogen Generation", "hydrogen.generation"},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, fig := range figures {
		spec, ok := grid.OutputByKey(fig.key)
		if !ok {
			continue
		}
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(textW*0.55, 6, fig.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(textW*0.45, 6, FormatValue(spec.Get(&calc))+" "+spec.Unit, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	// Thrust overview, one line per direction
	y += 4
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(textW, 6, "Thrust", "", 0, "L", false, 0, "")
	y += 8
	pdf.SetFont("Helvetica", "", 10)
	for _, dir := range data.Directions {
		force := calc.Acceleration[dir].Force / 1000.0
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(textW*0.55, 6, dir.String()+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(textW*0.45, 6, FormatValue(force)+" kN", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by GridCalc", "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}
