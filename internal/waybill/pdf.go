// Package waybill renders the printable waybill PDF. The document is built
// from the same projection the JSON waybill endpoint serves, so the two views
// never drift apart.
package waybill

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/modestcargo/cargo-api/internal/domain"
)

// Renderer produces waybill PDFs. It is stateless and safe for concurrent use.
type Renderer struct{}

// NewRenderer constructs a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

const (
	labelWidth = 50.0
	lineHeight = 6.0
)

// Render lays out one waybill on a single A4 page and returns the PDF bytes.
func (r *Renderer) Render(wb domain.Waybill) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Waybill "+wb.WaybillNumber, false)
	pdf.AddPage()

	// Header band.
	pdf.SetFillColor(30, 58, 95)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 14, "MODEST CARGO WAYBILL", "", 1, "C", true, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, lineHeight, "Waybill No: "+wb.WaybillNumber)
	pdf.Ln(lineHeight)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, lineHeight, "Tracking No: "+wb.TrackingNumber)
	pdf.Ln(lineHeight)
	pdf.Cell(0, lineHeight, "Status: "+wb.Status)
	pdf.Ln(lineHeight)
	pdf.Cell(0, lineHeight, "Issued: "+wb.CreatedAt.Format("Jan 2, 2006"))
	pdf.Ln(10)

	r.partyBlock(pdf, "SENDER", wb.SenderName, wb.SenderAddress, wb.SenderPhone)
	r.partyBlock(pdf, "RECEIVER", wb.ReceiverName, wb.ReceiverAddress, wb.ReceiverPhone)

	// Cargo details.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, lineHeight+2, "CARGO DETAILS")
	pdf.Ln(lineHeight + 2)
	pdf.SetFont("Helvetica", "", 10)
	r.row(pdf, "Description", wb.CargoDescription)
	r.row(pdf, "Weight", fmt.Sprintf("%g kg", wb.Weight))
	r.row(pdf, "Dimensions", wb.Dimensions)
	r.row(pdf, "Service Type", wb.ServiceType)
	pdf.Ln(6)

	// Tracking history table.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, lineHeight+2, "TRACKING HISTORY")
	pdf.Ln(lineHeight + 2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(239, 246, 255)
	pdf.CellFormat(55, 7, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(55, 7, "Status", "1", 0, "L", true, 0, "")
	pdf.CellFormat(80, 7, "Location", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, ev := range wb.TrackingHistory {
		pdf.CellFormat(55, 7, ev.Timestamp.Format("Jan 2, 2006 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, ev.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 7, ev.Location, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(107, 114, 128)
	pdf.Cell(0, 5, "This waybill is a computer-generated document and requires no signature.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("waybill.Renderer.Render: %w", err)
	}
	return buf.Bytes(), nil
}

// partyBlock prints one sender/receiver section.
func (r *Renderer) partyBlock(pdf *gofpdf.Fpdf, heading, name, address, phone string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, lineHeight+2, heading)
	pdf.Ln(lineHeight + 2)
	pdf.SetFont("Helvetica", "", 10)
	r.row(pdf, "Name", name)
	r.row(pdf, "Address", address)
	r.row(pdf, "Phone", phone)
	pdf.Ln(6)
}

// row prints one label/value line.
func (r *Renderer) row(pdf *gofpdf.Fpdf, label, value string) {
	if value == "" {
		value = "-"
	}
	pdf.SetTextColor(107, 114, 128)
	pdf.Cell(labelWidth, lineHeight, label)
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(0, lineHeight, value)
	pdf.Ln(lineHeight)
}
