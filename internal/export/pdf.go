// FilePath: internal/export/pdf.go
package export

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

// EncodePDF renders a display grid as a landscape A4 document. The
// title and header row repeat on every page when the table does not
// fit on one.
func EncodePDF(title, rangeLabel string, grid [][]string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(false, 12)

	pageW, pageH := pdf.GetPageSize()
	usableW := pageW - 20
	bottom := pageH - 14

	var header []string
	if len(grid) > 0 {
		header = grid[0]
	}

	colW := usableW
	if len(header) > 0 {
		colW = usableW / float64(len(header))
	}

	const lineH = 7.0

	writeHeader := func() {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(usableW, 8, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(usableW, 6, rangeLabel, "", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 236, 245)
		for _, cell := range header {
			pdf.CellFormat(colW, lineH, cell, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}

	writeHeader()
	if len(grid) > 1 {
		for _, row := range grid[1:] {
			if pdf.GetY()+lineH > bottom {
				writeHeader()
			}
			for i := 0; i < len(header); i++ {
				cell := ""
				if i < len(row) {
					cell = row[i]
				}
				pdf.CellFormat(colW, lineH, cell, "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
